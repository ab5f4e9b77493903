package transform

import "context"

// ScriptTransformer compiles a script file into `<base>.js` in the target format.
type ScriptTransformer interface {
	TransformScript(ctx context.Context, path string, target Target) error
}

// StyleTransformer compiles a style file into `<base>.css`.
type StyleTransformer interface {
	TransformStyle(ctx context.Context, path string, target Target) error
}

// ComponentTransformer compiles a single-file component into script and style files.
type ComponentTransformer interface {
	TransformComponent(ctx context.Context, path string, target Target) error
}

// Set bundles the three transformers the tree compiler dispatches to.
type Set struct {
	Script    ScriptTransformer
	Style     StyleTransformer
	Component ComponentTransformer
}
