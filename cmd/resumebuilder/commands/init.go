package commands

import (
	"fmt"

	"git.home.luguber.info/inful/resumebuilder/internal/config"
	"git.home.luguber.info/inful/resumebuilder/internal/resume"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force      bool   `help:"Overwrite existing files"`
	Source     string `short:"s" help:"Path of the example resume document" default:"resume.yaml"`
	WithConfig bool   `name:"with-config" help:"Also write a build configuration file"`
}

func (i *InitCmd) Run(g *Global, root *CLI) error {
	if err := resume.Init(i.Source, i.Force); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(g.Stdout, "wrote %s\n", i.Source)

	if i.WithConfig {
		if err := config.Init(root.Config, i.Force); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(g.Stdout, "wrote %s\n", root.Config)
	}
	return nil
}
