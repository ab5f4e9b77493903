// Package bundle produces the packed browser distribution of the component library.
package bundle

import (
	"context"
	"encoding/json"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/evanw/esbuild/pkg/api"

	"git.home.luguber.info/inful/uibuild/internal/config"
	"git.home.luguber.info/inful/uibuild/internal/entry"
	"git.home.luguber.info/inful/uibuild/internal/foundation/errors"
	"git.home.luguber.info/inful/uibuild/internal/logfields"
	"git.home.luguber.info/inful/uibuild/internal/transform"
)

// Bundler packs the package entry into a single file.
type Bundler interface {
	Bundle(ctx context.Context, minify bool) error
}

// ESBuildBundler bundles with esbuild into an IIFE assigned to a global.
type ESBuildBundler struct {
	Entry      string
	OutDir     string
	Name       string
	GlobalName string
	Externals  []string
	Target     api.Target
	Mode       config.BuildMode
}

// NewESBuildBundler lays out a bundler for the configured project. The entry is the
// package entry at the root of the ES-module tree.
func NewESBuildBundler(cfg *config.Config) *ESBuildBundler {
	global := cfg.Build.GlobalName
	if global == "" {
		global = entry.Pascalize(cfg.Name)
	}
	return &ESBuildBundler{
		Entry:      filepath.Join(cfg.ESPath(), entry.FileName),
		OutDir:     cfg.DistPath(),
		Name:       cfg.Name,
		GlobalName: global,
		Externals:  cfg.Build.Externals,
		Target:     transform.ESTarget(cfg.Build.Target),
		Mode:       cfg.Build.Mode,
	}
}

// OutputPath names the bundle written for the given minify setting.
func (b *ESBuildBundler) OutputPath(minify bool) string {
	if minify {
		return filepath.Join(b.OutDir, b.Name+".min.js")
	}
	return filepath.Join(b.OutDir, b.Name+".js")
}

// Bundle writes `<dist>/<name>.js`, or `<dist>/<name>.min.js` when minify is set.
func (b *ESBuildBundler) Bundle(ctx context.Context, minify bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	out := b.OutputPath(minify)
	mode := b.Mode
	if mode == "" {
		mode = config.ModeProduction
	}

	opts := api.BuildOptions{
		EntryPoints:       []string{b.Entry},
		Bundle:            true,
		Outfile:           out,
		Format:            api.FormatIIFE,
		GlobalName:        b.GlobalName,
		Target:            b.Target,
		Platform:          api.PlatformBrowser,
		Define:            map[string]string{"process.env.NODE_ENV": `"` + string(mode) + `"`},
		Plugins:           []api.Plugin{globalExternals(b.Externals)},
		Metafile:          true,
		Write:             true,
		LogLevel:          api.LogLevelSilent,
		MinifyWhitespace:  minify,
		MinifyIdentifiers: minify,
		MinifySyntax:      minify,
	}

	result := api.Build(opts)
	if err := transform.MessagesError(result.Errors); err != nil {
		return errors.WrapError(err, errors.CategoryBundle, "bundle failed").
			WithContext("path", out).
			WithContext("entry", b.Entry).
			Build()
	}
	for _, w := range result.Warnings {
		slog.Warn("Bundler warning", logfields.Output(out), slog.String("warning", w.Text))
	}

	attrs := []any{logfields.Output(out), logfields.Minify(minify)}
	if size, inputs, ok := summarize(result.Metafile); ok {
		attrs = append(attrs, slog.Int("bytes", size), logfields.Count(inputs))
	}
	slog.Info("Bundled package", attrs...)
	return nil
}

// globalExternals resolves each external module to the browser global of the same name in
// PascalCase, so `import Vue from 'vue'` reads window.Vue.
func globalExternals(externals []string) api.Plugin {
	return api.Plugin{
		Name: "global-externals",
		Setup: func(build api.PluginBuild) {
			if len(externals) == 0 {
				return
			}
			quoted := make([]string, len(externals))
			for i, e := range externals {
				quoted[i] = regexp.QuoteMeta(e)
			}
			build.OnResolve(api.OnResolveOptions{Filter: `^(` + strings.Join(quoted, "|") + `)$`},
				func(args api.OnResolveArgs) (api.OnResolveResult, error) {
					return api.OnResolveResult{Path: args.Path, Namespace: "global-external"}, nil
				})
			build.OnLoad(api.OnLoadOptions{Filter: `.*`, Namespace: "global-external"},
				func(args api.OnLoadArgs) (api.OnLoadResult, error) {
					contents := "module.exports = globalThis." + entry.Pascalize(args.Path) + ";"
					return api.OnLoadResult{Contents: &contents, Loader: api.LoaderJS}, nil
				})
		},
	}
}

type metafile struct {
	Inputs  map[string]json.RawMessage `json:"inputs"`
	Outputs map[string]struct {
		Bytes int `json:"bytes"`
	} `json:"outputs"`
}

// summarize reports the output size and input count recorded in an esbuild metafile.
func summarize(raw string) (bytes int, inputs int, ok bool) {
	if raw == "" {
		return 0, 0, false
	}
	var m metafile
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return 0, 0, false
	}
	for _, o := range m.Outputs {
		bytes += o.Bytes
	}
	return bytes, len(m.Inputs), true
}
