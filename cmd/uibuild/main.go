package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/uibuild/cmd/uibuild/commands"
	"git.home.luguber.info/inful/uibuild/internal/foundation/errors"
	"git.home.luguber.info/inful/uibuild/internal/version"
)

func main() {
	cli := &commands.CLI{}
	parser := kong.Parse(cli,
		kong.Name("uibuild"),
		kong.Description("Build a component library into es/, lib/ and dist/ outputs"),
		kong.Vars{"version": version.String()},
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	global := &commands.Global{Ctx: ctx}
	err := parser.Run(global, cli)
	stop()
	if err != nil {
		errors.NewCLIErrorAdapter(cli.Verbose, nil).HandleError(err)
	}
}
