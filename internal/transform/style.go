package transform

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/evanw/esbuild/pkg/api"

	"git.home.luguber.info/inful/uibuild/internal/config"
	"git.home.luguber.info/inful/uibuild/internal/foundation/errors"
	"git.home.luguber.info/inful/uibuild/internal/fsutil"
	"git.home.luguber.info/inful/uibuild/internal/logfields"
)

// StyleCompiler compiles style sources to CSS. Preprocessor sources are kept next to the
// generated `.css` so style entries can reference either.
type StyleCompiler struct {
	lessCommand []string
	sassCommand []string
	runner      CommandRunner
}

// NewStyleCompiler configures a StyleCompiler. A nil runner uses ExecRunner.
func NewStyleCompiler(cfg *config.Config, runner CommandRunner) *StyleCompiler {
	if runner == nil {
		runner = ExecRunner{}
	}
	return &StyleCompiler{
		lessCommand: cfg.Style.LessCommand,
		sassCommand: cfg.Style.SassCommand,
		runner:      runner,
	}
}

// TransformStyle writes `<base>.css` for path.
func (s *StyleCompiler) TransformStyle(ctx context.Context, path string, target Target) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	css, err := s.preprocess(ctx, path, target)
	if err != nil {
		return err
	}

	result := api.Transform(string(css), api.TransformOptions{
		Loader:           api.LoaderCSS,
		Sourcefile:       filepath.Base(path),
		MinifyWhitespace: target.Production(),
		MinifySyntax:     target.Production(),
		LegalComments:    api.LegalCommentsNone,
		LogLevel:         api.LogLevelSilent,
	})
	if err := MessagesError(result.Errors); err != nil {
		return errors.TransformError(err, "style", path).Build()
	}

	out := fsutil.ReplaceExt(path, ".css")
	if err := fsutil.WriteFile(out, result.Code); err != nil {
		return err
	}
	slog.Debug("Compiled style", logfields.Path(path), logfields.Output(out))
	return nil
}

func (s *StyleCompiler) preprocess(ctx context.Context, path string, target Target) ([]byte, error) {
	var argv []string
	switch filepath.Ext(path) {
	case ".less":
		argv = s.lessCommand
	case ".scss", ".sass":
		argv = s.sassCommand
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.FileSystemError(err, "read", path).Build()
		}
		return data, nil
	}

	if len(argv) == 0 {
		return nil, errors.NewError(errors.CategoryConfig, "no compiler configured for style").
			WithContext("path", path).Build()
	}
	cmd := append(append([]string{}, argv...), filepath.Base(path))
	out, err := s.runner.Run(ctx, filepath.Dir(path), target.Env(), nil, cmd)
	if err != nil {
		return nil, errors.TransformError(err, "style", path).Build()
	}
	return out, nil
}
