package transform

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"

	"github.com/evanw/esbuild/pkg/api"

	"git.home.luguber.info/inful/uibuild/internal/config"
	"git.home.luguber.info/inful/uibuild/internal/foundation/errors"
	"git.home.luguber.info/inful/uibuild/internal/fsutil"
	"git.home.luguber.info/inful/uibuild/internal/logfields"
)

// vueSpecifier matches quoted import specifiers that end in .vue.
var vueSpecifier = regexp.MustCompile(`(['"])([^'"\n]+)\.vue(['"])`)

// ScriptCompiler compiles scripts with esbuild's transform API.
type ScriptCompiler struct {
	target      api.Target
	jsxFactory  string
	jsxFragment string
}

// NewScriptCompiler configures a ScriptCompiler from the build section.
func NewScriptCompiler(cfg *config.Config) *ScriptCompiler {
	return &ScriptCompiler{
		target:      ESTarget(cfg.Build.Target),
		jsxFactory:  cfg.Build.JSXFactory,
		jsxFragment: cfg.Build.JSXFragment,
	}
}

// TransformScript rewrites path as `<base>.js` in the target format. The original is
// removed when its extension differs.
func (s *ScriptCompiler) TransformScript(ctx context.Context, path string, target Target) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return errors.FileSystemError(err, "read", path).Build()
	}

	code, err := s.Compile(path, src, target)
	if err != nil {
		return err
	}

	out := fsutil.ReplaceExt(path, ".js")
	if err := fsutil.WriteFile(out, code); err != nil {
		return err
	}
	if out != path {
		if err := os.Remove(path); err != nil {
			return errors.FileSystemError(err, "remove", path).Build()
		}
	}
	slog.Debug("Compiled script", logfields.Path(path), logfields.Format(string(target.Format)))
	return nil
}

// Compile transforms source code named by path without touching the filesystem.
func (s *ScriptCompiler) Compile(path string, src []byte, target Target) ([]byte, error) {
	result := api.Transform(rewriteVueSpecifiers(string(src)), api.TransformOptions{
		Loader:      loaderFor(path),
		Format:      ESFormat(target.Format),
		Target:      s.target,
		JSXFactory:  s.jsxFactory,
		JSXFragment: s.jsxFragment,
		Sourcefile:  filepath.Base(path),
		LogLevel:    api.LogLevelSilent,
	})
	if err := MessagesError(result.Errors); err != nil {
		return nil, errors.TransformError(err, "script", path).Build()
	}
	for _, w := range result.Warnings {
		slog.Warn("Script compiler warning", logfields.Path(path), slog.String("warning", w.Text))
	}
	return result.Code, nil
}

func rewriteVueSpecifiers(code string) string {
	return vueSpecifier.ReplaceAllString(code, "$1$2.js$3")
}
