// Package watch re-runs a build when its rebuild triggers change.
//
// File triggers are observed with fsnotify on their parent directories, which
// survives editors and git replacing files by rename. A commit on the checked
// out branch moves the branch ref but leaves HEAD untouched, so an optional
// gocron job also polls the HEAD revision. Triggers coalesce through a
// one-slot channel and a debounce timer; builds run one at a time.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-co-op/gocron/v2"

	"git.home.luguber.info/inful/resumebuilder/internal/logfields"
)

// BuildFunc runs one build. reason names the trigger that caused it.
type BuildFunc func(ctx context.Context, reason string)

// Options configures a Watcher.
type Options struct {
	// Files are the trigger files.
	Files    []string
	Debounce time.Duration
	// PollInterval enables HEAD polling through Head when positive.
	PollInterval time.Duration
	Head         func() (string, error)
	// BuildOnStart runs one build before waiting for changes.
	BuildOnStart bool
}

// Watcher monitors trigger files and runs builds.
type Watcher struct {
	opts    Options
	build   BuildFunc
	files   map[string]struct{}
	watcher *fsnotify.Watcher
	trigger chan string

	mu       sync.Mutex
	lastHead string
}

// New creates a Watcher. Call Run to start it.
func New(opts Options, build BuildFunc) (*Watcher, error) {
	if len(opts.Files) == 0 {
		return nil, fmt.Errorf("no trigger files")
	}
	files := make(map[string]struct{}, len(opts.Files))
	for _, f := range opts.Files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return nil, fmt.Errorf("resolve trigger %s: %w", f, err)
		}
		files[abs] = struct{}{}
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	return &Watcher{
		opts:    opts,
		build:   build,
		files:   files,
		watcher: fsw,
		trigger: make(chan string, 1),
	}, nil
}

// Run watches until ctx is done. It returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() {
		if err := w.watcher.Close(); err != nil {
			slog.Error("Error closing file watcher", logfields.Error(err))
		}
	}()

	dirs := make(map[string]struct{})
	for f := range w.files {
		dirs[filepath.Dir(f)] = struct{}{}
	}
	for d := range dirs {
		if err := w.watcher.Add(d); err != nil {
			return fmt.Errorf("failed to watch directory %s: %w", d, err)
		}
	}

	if w.opts.PollInterval > 0 && w.opts.Head != nil {
		stop, err := w.startPoll()
		if err != nil {
			return err
		}
		defer stop()
	}

	go w.watchLoop(ctx)

	slog.Info("Watching for changes", slog.Int("triggers", len(w.files)), slog.Duration("debounce", w.opts.Debounce))
	if w.opts.BuildOnStart {
		w.build(ctx, "start")
	}
	w.buildLoop(ctx)
	return nil
}

func (w *Watcher) watchLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if _, tracked := w.files[filepath.Clean(event.Name)]; !tracked {
				continue
			}
			switch {
			case event.Op.Has(fsnotify.Write), event.Op.Has(fsnotify.Create), event.Op.Has(fsnotify.Rename):
				slog.Debug("Trigger changed", logfields.Trigger(event.Name), slog.String("op", event.Op.String()))
				w.notify(event.Name)
			case event.Op.Has(fsnotify.Remove):
				slog.Warn("Trigger removed", logfields.Trigger(event.Name))
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("File watcher error", logfields.Error(err))
		}
	}
}

// notify requests a build; a request already pending absorbs it.
func (w *Watcher) notify(reason string) {
	select {
	case w.trigger <- reason:
	default:
	}
}

// buildLoop debounces requests and runs builds sequentially.
func (w *Watcher) buildLoop(ctx context.Context) {
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	var reason string
	for {
		select {
		case <-ctx.Done():
			return
		case r := <-w.trigger:
			reason = r
			timer.Reset(w.opts.Debounce)
		case <-timer.C:
			slog.Info("Rebuilding", logfields.Trigger(reason))
			w.build(ctx, reason)
		}
	}
}

func (w *Watcher) startPoll() (func(), error) {
	head, err := w.opts.Head()
	if err != nil {
		slog.Warn("Cannot read HEAD revision", logfields.Error(err))
	}
	w.setHead(head)

	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}
	_, err = s.NewJob(
		gocron.DurationJob(w.opts.PollInterval),
		gocron.NewTask(w.pollHead),
		gocron.WithName("head-poll"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = s.Shutdown()
		return nil, fmt.Errorf("failed to create HEAD poll job: %w", err)
	}
	s.Start()
	return func() {
		if err := s.Shutdown(); err != nil {
			slog.Error("Scheduler shutdown failed", logfields.Error(err))
		}
	}, nil
}

func (w *Watcher) pollHead() {
	head, err := w.opts.Head()
	if err != nil {
		slog.Debug("HEAD poll failed", logfields.Error(err))
		return
	}
	if prev := w.setHead(head); prev != head {
		slog.Debug("HEAD moved", logfields.Revision(head))
		w.notify("HEAD " + head)
	}
}

func (w *Watcher) setHead(head string) string {
	w.mu.Lock()
	defer w.mu.Unlock()
	prev := w.lastHead
	w.lastHead = head
	return prev
}
