package transform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/sync/errgroup"

	"git.home.luguber.info/inful/uibuild/internal/config"
	"git.home.luguber.info/inful/uibuild/internal/foundation/errors"
	"git.home.luguber.info/inful/uibuild/internal/fsutil"
	"git.home.luguber.info/inful/uibuild/internal/logfields"
)

const sfcOptions = "__vue_sfc__"

var exportDefault = regexp.MustCompile(`export\s+default\s*`)

// ComponentCompiler compiles single-file components.
type ComponentCompiler struct {
	script          ScriptTransformer
	style           StyleTransformer
	templateCommand []string
	runner          CommandRunner
}

// NewComponentCompiler wires a ComponentCompiler to the script and style transformers that
// compile its products. A nil runner uses ExecRunner.
func NewComponentCompiler(cfg *config.Config, script ScriptTransformer, style StyleTransformer, runner CommandRunner) *ComponentCompiler {
	if runner == nil {
		runner = ExecRunner{}
	}
	return &ComponentCompiler{
		script:          script,
		style:           style,
		templateCommand: cfg.SFC.TemplateCommand,
		runner:          runner,
	}
}

// TransformComponent splits path into `<base>.<script lang>` and one `<base>-sfc[-N].<lang>`
// per style block, removes path and compiles the products.
func (c *ComponentCompiler) TransformComponent(ctx context.Context, path string, target Target) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return errors.FileSystemError(err, "read", path).Build()
	}
	desc, err := ParseSFC(src)
	if err != nil {
		return errors.TransformError(err, "component", path).Build()
	}
	if err := os.Remove(path); err != nil {
		return errors.FileSystemError(err, "remove", path).Build()
	}
	if desc.HasScoped() {
		slog.Warn("Scoped styles are emitted unscoped", logfields.Path(path))
	}

	script, err := c.assembleScript(ctx, path, desc, target)
	if err != nil {
		return err
	}
	scriptPath := fsutil.ReplaceExt(path, "."+scriptExt(desc.Script))
	if err := fsutil.WriteFile(scriptPath, []byte(script)); err != nil {
		return err
	}

	stylePaths := make([]string, 0, len(desc.Styles))
	for i, block := range desc.Styles {
		stylePath := SFCStylePath(path, styleLang(block), i)
		if err := fsutil.WriteFile(stylePath, []byte(strings.TrimSpace(block.Content)+"\n")); err != nil {
			return err
		}
		stylePaths = append(stylePaths, stylePath)
	}

	g := errgroup.Group{}
	g.Go(func() (err error) {
		defer recoverInto(&err, scriptPath)
		return c.script.TransformScript(ctx, scriptPath, target)
	})
	for _, stylePath := range stylePaths {
		g.Go(func() (err error) {
			defer recoverInto(&err, stylePath)
			return c.style.TransformStyle(ctx, stylePath, target)
		})
	}
	return g.Wait()
}

func recoverInto(err *error, path string) {
	if r := recover(); r != nil {
		*err = errors.PanicError(r, path).Build()
	}
}

// SFCStylePath names the file extracted for the index-th style block of a component.
func SFCStylePath(path, lang string, index int) string {
	suffix := "-sfc"
	if index > 0 {
		suffix += fmt.Sprintf("-%d", index+1)
	}
	return fsutil.ReplaceExt(path, suffix+"."+lang)
}

func (c *ComponentCompiler) assembleScript(ctx context.Context, path string, desc *SFCDescriptor, target Target) (string, error) {
	var b strings.Builder

	body := ""
	if desc.Script != nil {
		body = strings.TrimSpace(desc.Script.Content)
	}
	if loc := exportDefault.FindStringIndex(body); loc != nil {
		body = body[:loc[0]] + "const " + sfcOptions + " = " + body[loc[1]:]
	} else {
		if body != "" {
			b.WriteString(body)
			b.WriteString("\n")
		}
		body = "const " + sfcOptions + " = {};"
	}
	b.WriteString(body)
	b.WriteString("\n")

	if desc.Template != nil {
		tmpl := strings.TrimSpace(desc.Template.Content)
		if len(c.templateCommand) > 0 {
			render, err := c.runner.Run(ctx, filepath.Dir(path), target.Env(), []byte(tmpl), c.templateCommand)
			if err != nil {
				return "", errors.TransformError(err, "template", path).Build()
			}
			b.WriteString("\n")
			b.WriteString(strings.TrimSpace(string(render)))
			b.WriteString("\n")
			fmt.Fprintf(&b, "%s.render = render;\n%s.staticRenderFns = staticRenderFns;\n", sfcOptions, sfcOptions)
		} else {
			fmt.Fprintf(&b, "%s.template = %s;\n", sfcOptions, jsString(tmpl))
		}
	}

	fmt.Fprintf(&b, "\nexport default %s;\n", sfcOptions)
	return b.String(), nil
}

// jsString quotes s as a JavaScript string literal.
func jsString(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	return strings.TrimSuffix(buf.String(), "\n")
}

func scriptExt(block *SFCBlock) string {
	if block == nil || block.Lang == "" {
		return "js"
	}
	return block.Lang
}

func styleLang(block SFCBlock) string {
	if block.Lang == "" {
		return "css"
	}
	return block.Lang
}
