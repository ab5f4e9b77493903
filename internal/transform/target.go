package transform

import (
	"os"

	"git.home.luguber.info/inful/uibuild/internal/config"
)

// Target is the output format and build mode a single compile pass emits.
type Target struct {
	Format config.ModuleFormat
	Mode   config.BuildMode
}

// Production reports whether output should be minified.
func (t Target) Production() bool { return t.Mode == config.ModeProduction }

// Env returns the process environment for spawned compilers with the target exported as
// NODE_ENV and BABEL_MODULE. The current process environment is left untouched.
func (t Target) Env() []string {
	env := os.Environ()
	if t.Mode != "" {
		env = append(env, "NODE_ENV="+string(t.Mode))
	}
	if t.Format != "" {
		env = append(env, "BABEL_MODULE="+string(t.Format))
	}
	return env
}
