package commands

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"git.home.luguber.info/inful/resumebuilder/internal/config"
	"git.home.luguber.info/inful/resumebuilder/internal/git"
	"git.home.luguber.info/inful/resumebuilder/internal/logfields"
	"git.home.luguber.info/inful/resumebuilder/internal/metrics"
	"git.home.luguber.info/inful/resumebuilder/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	BuildFlags `embed:""`

	Debounce    time.Duration `help:"Quiet period before a rebuild"`
	Poll        time.Duration `help:"Also poll the HEAD revision at this interval (0 disables)"`
	MetricsAddr string        `name:"metrics-addr" help:"Serve Prometheus metrics on this address"`
}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	cfg, err := w.resolve(g, root)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rec := metrics.NewPrometheusRecorder(nil)
	if cfg.Watch.MetricsAddr != "" {
		shutdown := serveMetrics(cfg.Watch.MetricsAddr, rec)
		defer shutdown()
	}

	opts := watch.Options{
		Files:        []string{cfg.Source},
		Debounce:     cfg.Watch.Debounce,
		PollInterval: cfg.Watch.PollInterval,
		BuildOnStart: true,
	}
	if repo, err := git.Locate(cfg.RepoDir); err != nil {
		slog.Warn("No repository found; HEAD changes will not trigger rebuilds", logfields.Path(cfg.RepoDir), logfields.Error(err))
	} else {
		opts.Files = append(opts.Files, repo.HEADFile())
		opts.Head = repo.Head
	}
	if _, err := os.Stat(root.Config); err == nil {
		opts.Files = append(opts.Files, root.Config)
	}

	build := func(ctx context.Context, reason string) {
		// Reload so edits to the configuration file apply to the next build.
		cfg, err := w.resolve(g, root)
		if err != nil {
			slog.Error("Invalid configuration; build skipped", logfields.Trigger(reason), logfields.Error(err))
			return
		}
		report, err := RunBuild(ctx, g, cfg, rec)
		if err != nil {
			slog.Error("Build failed", logfields.Trigger(reason), logfields.BuildID(report.BuildID), logfields.Error(err))
		}
	}

	watcher, err := watch.New(opts, build)
	if err != nil {
		return err
	}
	return watcher.Run(ctx)
}

func (w *WatchCmd) resolve(g *Global, root *CLI) (*config.Config, error) {
	cfg, err := loadConfig(g, root)
	if err != nil {
		return nil, err
	}
	if w.Debounce > 0 {
		cfg.Watch.Debounce = w.Debounce
	}
	if w.Poll > 0 {
		cfg.Watch.PollInterval = w.Poll
	}
	if w.MetricsAddr != "" {
		cfg.Watch.MetricsAddr = w.MetricsAddr
	}
	if err := w.applyTo(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func serveMetrics(addr string, rec *metrics.PrometheusRecorder) func() {
	srv := &http.Server{
		Addr:              addr,
		Handler:           metrics.HTTPHandler(rec.Registry()),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		slog.Info("Serving metrics", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Metrics server failed", logfields.Error(err))
		}
	}()
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			slog.Warn("Metrics server shutdown failed", logfields.Error(err))
		}
	}
}
