// Package pipeline sequences one build: load the resume document, then
// generate the constant tables, the provenance file and the typeset document.
//
// Stages run one after another and the first fatal error stops the build.
// A failed load therefore writes nothing. Recoverable conditions, such as the
// revision falling back to "dev", are recorded as report warnings.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/resumebuilder/internal/codegen"
	"git.home.luguber.info/inful/resumebuilder/internal/command"
	"git.home.luguber.info/inful/resumebuilder/internal/config"
	ferrors "git.home.luguber.info/inful/resumebuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/resumebuilder/internal/logfields"
	"git.home.luguber.info/inful/resumebuilder/internal/metrics"
	"git.home.luguber.info/inful/resumebuilder/internal/provenance"
	"git.home.luguber.info/inful/resumebuilder/internal/resume"
	"git.home.luguber.info/inful/resumebuilder/internal/typst"
	"git.home.luguber.info/inful/resumebuilder/internal/workspace"
)

// Pipeline runs builds for one configuration.
type Pipeline struct {
	cfg      *config.Config
	runner   command.Runner
	recorder metrics.Recorder
}

// New creates a Pipeline. External tools are run through runner.
func New(cfg *config.Config, runner command.Runner) *Pipeline {
	return &Pipeline{cfg: cfg, runner: runner, recorder: metrics.NoopRecorder{}}
}

// WithRecorder sets the metrics recorder.
func (p *Pipeline) WithRecorder(r metrics.Recorder) *Pipeline {
	if r == nil {
		r = metrics.NoopRecorder{}
	}
	p.recorder = r
	return p
}

// Triggers lists the files whose change requires a rebuild: the source
// document and the version-control HEAD pointer.
func (p *Pipeline) Triggers() []string {
	return append([]string{p.cfg.Source}, provenance.Triggers(p.cfg.RepoDir)...)
}

// buildState carries the loaded document across stages. Stages only read doc.
type buildState struct {
	doc    *resume.Document
	report *Report
}

type stage struct {
	name StageName
	fn   func(ctx context.Context, bs *buildState) error
}

// Run executes one build. The report is returned even when the build fails.
func (p *Pipeline) Run(ctx context.Context) (*Report, error) {
	report := newReport(uuid.NewString())
	report.Triggers = p.Triggers()
	report.ConfigSnapshot = p.cfg.Snapshot()
	log := slog.With(logfields.BuildID(report.BuildID))
	log.Info("Build started", logfields.Path(p.cfg.Source))

	bs := &buildState{report: report}
	err := p.runStages(ctx, log, bs, []stage{
		{StageLoad, p.stageLoad},
		{StageConstants, p.stageConstants},
		{StageProvenance, p.stageProvenance},
		{StageDocument, p.stageDocument},
	})

	report.finish()
	dur := report.End.Sub(report.Start)
	p.recorder.ObserveBuildDuration(dur)
	p.recorder.IncBuildOutcome(string(report.Outcome))
	if err != nil {
		return report, err
	}
	log.Info("Build completed",
		logfields.Revision(report.Provenance.Commit),
		logfields.DurationMS(float64(dur.Milliseconds())),
		slog.String("outcome", string(report.Outcome)))
	return report, nil
}

// runStages executes stages in order, recording timing and stopping on the
// first fatal error.
func (p *Pipeline) runStages(ctx context.Context, log *slog.Logger, bs *buildState, stages []stage) error {
	for _, st := range stages {
		if err := ctx.Err(); err != nil {
			se := newCanceledStageError(st.name, withStage(
				ferrors.RuntimeError("build canceled").WithCause(err).Build(), st.name))
			bs.report.Errors = append(bs.report.Errors, se)
			bs.report.StageResults[st.name] = string(metrics.ResultCanceled)
			p.recorder.IncStageResult(string(st.name), metrics.ResultCanceled)
			return se
		}

		t0 := time.Now()
		err := st.fn(ctx, bs)
		dur := time.Since(t0)
		bs.report.StageDurations[st.name] = dur
		p.recorder.ObserveStageDuration(string(st.name), dur)
		log.Debug("Stage finished", logfields.Stage(string(st.name)), logfields.DurationMS(float64(dur.Microseconds())/1000))

		result := metrics.ResultSuccess
		switch {
		case err == nil:
		case errors.Is(err, errSkipped):
			result = metrics.ResultSkipped
			log.Info("Stage skipped", logfields.Stage(string(st.name)))
		default:
			var se *StageError
			if !errors.As(err, &se) {
				se = newFatalStageError(st.name, err)
			}
			se.Err = withStage(se.Err, st.name)
			if se.Kind == StageErrorWarning {
				result = metrics.ResultWarning
				bs.report.Warnings = append(bs.report.Warnings, se)
				break
			}
			result = metrics.ResultFatal
			if se.Kind == StageErrorCanceled {
				result = metrics.ResultCanceled
			}
			bs.report.Errors = append(bs.report.Errors, se)
			bs.report.StageResults[st.name] = string(result)
			p.recorder.IncStageResult(string(st.name), result)
			return se
		}
		bs.report.StageResults[st.name] = string(result)
		p.recorder.IncStageResult(string(st.name), result)
	}
	return nil
}

// withStage records the failing stage on classified errors so the CLI can
// name it.
func withStage(err error, name StageName) error {
	if ce, ok := err.(*ferrors.ClassifiedError); ok {
		return ce.WithContext("stage", string(name))
	}
	return err
}

func (p *Pipeline) stageLoad(_ context.Context, bs *buildState) error {
	doc, err := resume.Load(p.cfg.Source)
	if err != nil {
		return newFatalStageError(StageLoad, err)
	}
	bs.doc = doc
	return nil
}

func (p *Pipeline) codegenOptions() codegen.Options {
	return codegen.Options{Package: p.cfg.Output.Package, Source: p.cfg.Source}
}

func (p *Pipeline) stageConstants(_ context.Context, bs *buildState) error {
	path := p.cfg.ConstantsPath()
	if err := codegen.Write(bs.doc, p.codegenOptions(), path); err != nil {
		return newFatalStageError(StageConstants, err)
	}
	bs.report.Artifacts = append(bs.report.Artifacts, path)
	return nil
}

func (p *Pipeline) stageProvenance(ctx context.Context, bs *buildState) error {
	gen := provenance.NewGenerator(p.runner, provenance.Inputs{
		ReleaseVersion: p.cfg.ReleaseVersion,
		RepoDir:        p.cfg.RepoDir,
		GitBinary:      p.cfg.Tools.Git,
	}, p.codegenOptions())

	path := p.cfg.ProvenancePath()
	res, err := gen.Generate(ctx, path)
	bs.report.Provenance = res.Info
	if err != nil {
		return newFatalStageError(StageProvenance, err)
	}
	bs.report.ProvenanceWritten = res.Written
	bs.report.Artifacts = append(bs.report.Artifacts, path)
	p.recorder.IncProvenanceWrite(res.Written)
	if res.Fallback != nil {
		p.recorder.IncProvenanceFallback()
		return newWarnStageError(StageProvenance, res.Fallback)
	}
	return nil
}

func (p *Pipeline) stageDocument(ctx context.Context, bs *buildState) error {
	doc := p.cfg.Document
	if doc.Skip {
		return errSkipped
	}

	markup := doc.Markup
	if markup == "" {
		ws := workspace.NewManager("")
		if doc.WorkDir != "" {
			ws = workspace.NewPersistentManager(doc.WorkDir, "typst")
		}
		if err := ws.Create(); err != nil {
			return newFatalStageError(StageDocument,
				ferrors.WrapError(err, ferrors.CategoryWrite, "cannot create workspace").Fatal().Build())
		}
		defer func() {
			if err := ws.Cleanup(); err != nil {
				slog.Warn("Workspace cleanup failed", logfields.Error(err))
			}
		}()
		var err error
		if markup, err = ws.File("resume.typ"); err != nil {
			return newFatalStageError(StageDocument,
				ferrors.WrapError(err, ferrors.CategoryInternal, "workspace unavailable").Build())
		}
	}

	style := typst.Style{Margin: doc.Margin, Font: doc.Font, FontSize: doc.FontSize, LinkColor: doc.LinkColor}
	r := typst.NewRenderer(p.runner, p.cfg.Tools.Typst, style)
	if err := r.Render(ctx, bs.doc, markup, doc.Output); err != nil {
		return newFatalStageError(StageDocument, err)
	}
	bs.report.Artifacts = append(bs.report.Artifacts, doc.Output)
	return nil
}
