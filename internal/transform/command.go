package transform

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"git.home.luguber.info/inful/uibuild/internal/foundation/errors"
)

// CommandRunner runs an external compiler and returns its stdout.
type CommandRunner interface {
	Run(ctx context.Context, dir string, env []string, stdin []byte, argv []string) ([]byte, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, dir string, env []string, stdin []byte, argv []string) ([]byte, error) {
	if len(argv) == 0 {
		return nil, errors.NewError(errors.CategoryConfig, "empty command").Build()
	}
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...) //nolint:gosec // command comes from project config
	cmd.Dir = dir
	cmd.Env = env
	if stdin != nil {
		cmd.Stdin = bytes.NewReader(stdin)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		b := errors.ExternalError(err, strings.Join(argv, " "))
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			b = b.WithContext("stderr", msg)
		}
		return nil, b.Build()
	}
	return stdout.Bytes(), nil
}
