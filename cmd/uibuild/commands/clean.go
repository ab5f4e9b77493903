package commands

import (
	"fmt"

	"git.home.luguber.info/inful/uibuild/internal/build"
)

// CleanCmd implements the 'clean' command.
type CleanCmd struct{}

func (c *CleanCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	res := build.NewPipeline(cfg).Clean(g.Context())
	if res.Err != nil {
		return res.Err
	}
	fmt.Println("Removed build outputs")
	return nil
}
