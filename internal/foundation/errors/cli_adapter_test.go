package errors

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"
)

func TestCLIErrorAdapter_ExitCodeFor(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.Default())

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil error", nil, 0},
		{"validation error", ValidationError("invalid input").Build(), 2},
		{"parse error", ParseError("bad yaml").Build(), 3},
		{"write error", WriteError("disk full").Build(), 4},
		{"render error", RenderToolFailure("typst exited 1").Build(), 5},
		{"config error", ConfigError("bad config").Build(), 7},
		{"wrapped render error", fmt.Errorf("document: %w", RenderToolFailure("boom").Build()), 5},
		{"unclassified error", errors.New("unknown error"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := adapter.ExitCodeFor(tt.err)
			if got != tt.expected {
				t.Errorf("ExitCodeFor() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCLIErrorAdapter_FormatError(t *testing.T) {
	quiet := NewCLIErrorAdapter(false, slog.Default())
	verbose := NewCLIErrorAdapter(true, slog.Default())

	err := ParseError("missing field profile.name").WithContext("stage", "load").Build()

	if got := quiet.FormatError(err); got != "Error in load stage: missing field profile.name" {
		t.Errorf("unexpected quiet message: %q", got)
	}
	if got := verbose.FormatError(err); !strings.Contains(got, "[parse:fatal]") {
		t.Errorf("expected verbose message to include classification, got %q", got)
	}
	if got := quiet.FormatError(InternalError("nil pointer").Build()); !strings.Contains(got, "use -v") {
		t.Errorf("expected internal errors to be hidden, got %q", got)
	}
	if got := quiet.FormatError(errors.New("boom")); got != "Error: boom" {
		t.Errorf("unexpected unclassified message: %q", got)
	}
}

func TestCLIErrorAdapter_HandleError(t *testing.T) {
	var logBuf, outBuf bytes.Buffer
	adapter := NewCLIErrorAdapter(false, slog.New(slog.NewTextHandler(&logBuf, nil)))
	adapter.out = &outBuf
	exitCode := -1
	adapter.exit = func(code int) { exitCode = code }

	adapter.HandleError(WriteError("cannot write build_info.go").Build())

	if exitCode != 4 {
		t.Errorf("expected exit code 4, got %d", exitCode)
	}
	if !strings.Contains(outBuf.String(), "cannot write build_info.go") {
		t.Errorf("expected message on output, got %q", outBuf.String())
	}
	if !strings.Contains(logBuf.String(), "category=write") {
		t.Errorf("expected fatal error to be logged, got %q", logBuf.String())
	}
}
