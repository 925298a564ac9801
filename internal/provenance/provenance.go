// Package provenance derives and persists build metadata: the release version
// and the source-control revision of the checkout being built.
package provenance

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/dave/jennifer/jen"

	"git.home.luguber.info/inful/resumebuilder/internal/codegen"
	"git.home.luguber.info/inful/resumebuilder/internal/command"
	"git.home.luguber.info/inful/resumebuilder/internal/fileutil"
	ferrors "git.home.luguber.info/inful/resumebuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/resumebuilder/internal/logfields"
)

const (
	// UnknownVersion is used when the build environment supplies no release version.
	UnknownVersion = "unknown"
	// DevRevision is used when the revision cannot be determined.
	DevRevision = "dev"
)

// Info is the provenance of one build.
type Info struct {
	Version string
	Commit  string
	// Timestamp currently mirrors Commit. Downstream caches use it as an
	// invalidation key, so it must change whenever the revision changes.
	Timestamp string
}

// Inputs are the environment-derived values provenance depends on. They are
// passed in explicitly; this package never reads the process environment.
type Inputs struct {
	ReleaseVersion string
	// RepoDir is the working directory for the version-control tool.
	RepoDir string
	// GitBinary defaults to "git".
	GitBinary string
}

// Result reports what a provenance run resolved and did.
type Result struct {
	Info Info
	// Fallback is a warning-severity error describing why Commit fell back
	// to DevRevision. Nil when the revision was resolved.
	Fallback error
	// Written is false when the persisted file already held identical content.
	Written bool
}

// Generator resolves provenance and writes the provenance source file.
type Generator struct {
	runner command.Runner
	inputs Inputs
	opts   codegen.Options
}

// NewGenerator creates a Generator running git through runner.
func NewGenerator(runner command.Runner, inputs Inputs, opts codegen.Options) *Generator {
	if inputs.GitBinary == "" {
		inputs.GitBinary = "git"
	}
	return &Generator{runner: runner, inputs: inputs, opts: opts}
}

// Resolve computes provenance. It never fails: an unusable version-control
// answer degrades to DevRevision and is reported in Result.Fallback.
func (g *Generator) Resolve(ctx context.Context) Result {
	version := strings.TrimSpace(g.inputs.ReleaseVersion)
	if version == "" {
		version = UnknownVersion
	}

	commit, fallback := g.revision(ctx)
	if fallback != nil {
		slog.Warn("Revision unavailable, using fallback",
			logfields.Revision(DevRevision),
			logfields.Error(fallback))
	}
	return Result{
		Info:     Info{Version: version, Commit: commit, Timestamp: commit},
		Fallback: fallback,
	}
}

func (g *Generator) revision(ctx context.Context) (string, error) {
	cmd := command.Command{
		Name: g.inputs.GitBinary,
		Args: []string{"rev-parse", "--short", "HEAD"},
		Dir:  g.inputs.RepoDir,
	}
	res, err := g.runner.Run(ctx, cmd)
	if err != nil {
		return DevRevision, ferrors.WrapError(err, ferrors.CategoryToolUnavailable, "version control tool could not be started").
			Warning().
			WithContext("command", cmd.String()).
			Build()
	}
	if !res.Success() {
		return DevRevision, ferrors.ToolUnavailable("version control tool exited with non-zero status").
			WithContext("command", cmd.String()).
			WithContext("exit_code", res.ExitCode).
			WithContext("stderr", strings.TrimSpace(string(res.Stderr))).
			Build()
	}
	rev := strings.TrimSpace(string(res.Stdout))
	if rev == "" {
		return DevRevision, ferrors.ToolUnavailable("version control tool printed no revision").
			WithContext("command", cmd.String()).
			Build()
	}
	return rev, nil
}

// Render produces the provenance source file for info.
func Render(info Info, opts codegen.Options) ([]byte, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	f := codegen.NewFile(opts)
	f.Comment("Build provenance. BuildTimestamp mirrors BuildCommit and serves as a cache key.")
	f.Const().Defs(
		jen.Id("BuildVersion").Op("=").Lit(info.Version),
		jen.Id("BuildCommit").Op("=").Lit(info.Commit),
		jen.Id("BuildTimestamp").Op("=").Lit(info.Timestamp),
	)
	var b strings.Builder
	if err := f.Render(&b); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryInternal, "provenance source failed to format").Build()
	}
	return []byte(b.String()), nil
}

// Generate resolves provenance and writes it to path only when the rendered
// content differs from what is already there.
func (g *Generator) Generate(ctx context.Context, path string) (Result, error) {
	res := g.Resolve(ctx)
	src, err := Render(res.Info, g.opts)
	if err != nil {
		return res, err
	}
	written, err := fileutil.WriteIfChanged(path, src)
	if err != nil {
		return res, ferrors.WriteError("cannot write provenance").
			WithCause(err).
			WithContext("path", path).
			Build()
	}
	res.Written = written
	slog.Debug("Provenance resolved",
		logfields.Version(res.Info.Version),
		logfields.Revision(res.Info.Commit),
		slog.Bool("written", written))
	return res, nil
}

// Triggers lists the files whose change must re-run provenance, relative to
// the repository directory.
func Triggers(repoDir string) []string {
	return []string{filepath.Join(repoDir, ".git", "HEAD")}
}
