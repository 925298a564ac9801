package typst

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/resumebuilder/internal/command"
	"git.home.luguber.info/inful/resumebuilder/internal/fileutil"
	ferrors "git.home.luguber.info/inful/resumebuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/resumebuilder/internal/logfields"
	"git.home.luguber.info/inful/resumebuilder/internal/resume"
)

var (
	// ErrCompileFailed indicates typst ran and exited non-zero.
	ErrCompileFailed = errors.New("typst compile failed")
	// ErrEngineUnavailable indicates typst could not be started.
	ErrEngineUnavailable = errors.New("typst could not be started")
)

// Renderer writes the markup for a document and compiles it to PDF.
type Renderer struct {
	runner command.Runner
	binary string
	style  Style
}

// NewRenderer creates a Renderer invoking binary ("typst" when empty).
func NewRenderer(runner command.Runner, binary string, style Style) *Renderer {
	if binary == "" {
		binary = "typst"
	}
	return &Renderer{runner: runner, binary: binary, style: style}
}

// Render writes the markup for doc to markupPath and compiles it to
// outputPath. Any failure is fatal; there is no retry and no fallback output.
func (r *Renderer) Render(ctx context.Context, doc *resume.Document, markupPath, outputPath string) error {
	markup := MarkupWithStyle(doc, r.style)
	if err := fileutil.WriteFile(markupPath, []byte(markup)); err != nil {
		return ferrors.WriteError("cannot write document markup").
			WithCause(err).
			WithContext("path", markupPath).
			Build()
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return ferrors.WriteError("cannot create document output directory").
			WithCause(err).
			WithContext("path", outputPath).
			Build()
	}

	cmd := command.Command{Name: r.binary, Args: []string{"compile", markupPath, outputPath}}
	slog.Debug("Compiling document", logfields.Command(cmd.String()), logfields.Path(outputPath))

	res, err := r.runner.Run(ctx, cmd)
	if err != nil {
		return ferrors.RenderToolFailure("typesetting engine could not be started").
			WithCause(fmt.Errorf("%w: %w", ErrEngineUnavailable, err)).
			WithContext("command", cmd.String()).
			Build()
	}
	if !res.Success() {
		stderr := strings.TrimSpace(string(res.Stderr))
		if stderr == "" {
			stderr = strings.TrimSpace(string(res.Stdout))
		}
		slog.Warn("typst stderr", logfields.ExitCode(res.ExitCode), slog.String("error_output", stderr))
		return ferrors.RenderToolFailure("typesetting engine failed").
			WithCause(fmt.Errorf("%w: exit status %d: %s", ErrCompileFailed, res.ExitCode, stderr)).
			WithContextMap(ferrors.ErrorContext{
				"command":   cmd.String(),
				"exit_code": res.ExitCode,
				"stderr":    stderr,
			}).
			Build()
	}
	return nil
}
