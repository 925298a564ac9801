package commands

import (
	"fmt"
	"os"

	"git.home.luguber.info/inful/resumebuilder/internal/pipeline"
)

// TriggersCmd prints the rebuild triggers, one per line, for Makefile and
// go:generate wrappers.
type TriggersCmd struct {
	Source string `short:"s" help:"Resume document"`
}

func (t *TriggersCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	if t.Source != "" {
		cfg.Source = t.Source
	}
	triggers := pipeline.New(cfg, g.Runner).Triggers()
	if _, err := os.Stat(root.Config); err == nil {
		triggers = append(triggers, root.Config)
	}
	for _, path := range triggers {
		_, _ = fmt.Fprintln(g.Stdout, path)
	}
	return nil
}
