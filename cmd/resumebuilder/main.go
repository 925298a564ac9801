package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/resumebuilder/cmd/resumebuilder/commands"
	"git.home.luguber.info/inful/resumebuilder/internal/command"
	ferrors "git.home.luguber.info/inful/resumebuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/resumebuilder/internal/version"
)

func main() {
	cli := &commands.CLI{}
	global := commands.NewGlobal(command.NewExecRunner(), os.Stdout)
	parser := kong.Parse(cli,
		kong.Name("resumebuilder"),
		kong.Description("Compile a resume document into Go constant tables, build provenance and a typeset PDF."),
		kong.Vars{"version": version.String()},
		kong.UsageOnError(),
		kong.Bind(global),
	)
	err := parser.Run(global, cli)
	ferrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
}
