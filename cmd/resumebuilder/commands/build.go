package commands

import (
	"context"
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/resumebuilder/internal/config"
	"git.home.luguber.info/inful/resumebuilder/internal/logfields"
	"git.home.luguber.info/inful/resumebuilder/internal/metrics"
	"git.home.luguber.info/inful/resumebuilder/internal/pipeline"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	BuildFlags `embed:""`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	if err := b.applyTo(cfg); err != nil {
		return err
	}

	var rec *metrics.PrometheusRecorder
	if cfg.Output.MetricsFile != "" {
		rec = metrics.NewPrometheusRecorder(nil)
	}
	_, err = RunBuild(context.Background(), g, cfg, rec)
	return err
}

// RunBuild runs one build, then persists the report and metrics when
// configured. Report and metrics failures are logged and never change the
// build result.
func RunBuild(ctx context.Context, g *Global, cfg *config.Config, rec *metrics.PrometheusRecorder) (*pipeline.Report, error) {
	p := pipeline.New(cfg, g.Runner)
	if rec != nil {
		p.WithRecorder(rec)
	}
	report, err := p.Run(ctx)

	if cfg.Output.ReportDir != "" {
		if perr := report.Persist(cfg.Output.ReportDir); perr != nil {
			slog.Warn("Failed to persist build report", logfields.Path(cfg.Output.ReportDir), logfields.Error(perr))
		}
	}
	if rec != nil && cfg.Output.MetricsFile != "" {
		if merr := rec.WriteTextfile(cfg.Output.MetricsFile); merr != nil {
			slog.Warn("Failed to write metrics file", logfields.Path(cfg.Output.MetricsFile), logfields.Error(merr))
		}
	}
	if err != nil {
		return report, err
	}

	for _, a := range report.Artifacts {
		_, _ = fmt.Fprintf(g.Stdout, "wrote %s\n", a)
	}
	if !report.ProvenanceWritten {
		_, _ = fmt.Fprintf(g.Stdout, "provenance unchanged (%s)\n", report.Provenance.Commit)
	}
	return report, nil
}
