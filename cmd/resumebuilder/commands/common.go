package commands

import (
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/resumebuilder/internal/command"
	"git.home.luguber.info/inful/resumebuilder/internal/config"
)

// Global holds process-wide collaborators passed to every command.
type Global struct {
	Logger *slog.Logger
	Level  *slog.LevelVar
	Runner command.Runner
	Stdout io.Writer
}

// NewGlobal creates a Global whose logger writes to stderr.
func NewGlobal(runner command.Runner, stdout io.Writer) *Global {
	level := new(slog.LevelVar)
	return &Global{
		Logger: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})),
		Level:  level,
		Runner: runner,
		Stdout: stdout,
	}
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Build configuration file (optional)" default:"resumebuilder.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build    BuildCmd    `cmd:"" default:"withargs" help:"Generate constant tables, provenance and the typeset document"`
	Watch    WatchCmd    `cmd:"" help:"Rebuild whenever the source document or HEAD changes"`
	Init     InitCmd     `cmd:"" help:"Write an example resume document"`
	Triggers TriggersCmd `cmd:"" help:"Print the files whose change requires a rebuild"`
}

// AfterApply runs after flag parsing; it installs the logger.
func (c *CLI) AfterApply(g *Global) error {
	level := config.NormalizeLogLevel(os.Getenv(config.EnvPrefix + "LOG_LEVEL")).Slog()
	if c.Verbose {
		level = slog.LevelDebug
	}
	g.Level.Set(level)
	slog.SetDefault(g.Logger)
	return nil
}

// loadConfig resolves the configuration. The default file is optional; an
// explicitly named file must exist.
func loadConfig(g *Global, root *CLI) (*config.Config, error) {
	path := root.Config
	if path == config.DefaultPath {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			path = ""
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if !root.Verbose {
		g.Level.Set(cfg.Logging.Level.Slog())
	}
	return cfg, nil
}

// BuildFlags override configuration for a build.
type BuildFlags struct {
	Source         string `short:"s" help:"Resume document"`
	Out            string `short:"o" help:"Directory for the generated Go sources"`
	Package        string `help:"Package name of the generated Go sources"`
	Document       string `short:"d" help:"Output path of the typeset PDF"`
	Markup         string `help:"Keep the intermediate Typst markup at this path"`
	SkipDocument   bool   `name:"skip-document" help:"Only generate the Go sources"`
	ReleaseVersion string `name:"release-version" help:"Release version recorded as provenance"`
	Report         string `help:"Directory for build-report.json and build-report.txt"`
	MetricsFile    string `name:"metrics-file" help:"Write Prometheus metrics in textfile format to this path"`
}

func (f *BuildFlags) applyTo(cfg *config.Config) error {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&cfg.Source, f.Source)
	set(&cfg.Output.Dir, f.Out)
	set(&cfg.Output.Package, f.Package)
	set(&cfg.Document.Output, f.Document)
	set(&cfg.Document.Markup, f.Markup)
	set(&cfg.ReleaseVersion, f.ReleaseVersion)
	set(&cfg.Output.ReportDir, f.Report)
	set(&cfg.Output.MetricsFile, f.MetricsFile)
	if f.SkipDocument {
		cfg.Document.Skip = true
	}
	return cfg.Validate()
}
