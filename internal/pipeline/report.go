package pipeline

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/resumebuilder/internal/fileutil"
	"git.home.luguber.info/inful/resumebuilder/internal/provenance"
)

// BuildOutcome is the typed enumeration of final build result states.
type BuildOutcome string

const (
	OutcomeSuccess  BuildOutcome = "success"
	OutcomeWarning  BuildOutcome = "warning"
	OutcomeFailed   BuildOutcome = "failed"
	OutcomeCanceled BuildOutcome = "canceled"
)

// Report captures what one build did.
type Report struct {
	BuildID        string
	Start          time.Time
	End            time.Time
	Errors         []error // fatal errors causing build abortion (at most one)
	Warnings       []error // recoverable conditions, e.g. revision fallback
	StageDurations map[StageName]time.Duration
	StageResults   map[StageName]string
	// Artifacts lists the files written by this build, in write order.
	Artifacts         []string
	Provenance        provenance.Info
	ProvenanceWritten bool
	Triggers          []string
	ConfigSnapshot    string
	Outcome           BuildOutcome
}

func newReport(buildID string) *Report {
	return &Report{
		BuildID:        buildID,
		Start:          time.Now(),
		StageDurations: make(map[StageName]time.Duration),
		StageResults:   make(map[StageName]string),
	}
}

func (r *Report) finish() {
	r.End = time.Now()
	r.deriveOutcome()
}

func (r *Report) deriveOutcome() {
	if len(r.Errors) > 0 {
		for _, e := range r.Errors {
			if se, ok := e.(*StageError); ok && se.Kind == StageErrorCanceled {
				r.Outcome = OutcomeCanceled
				return
			}
		}
		r.Outcome = OutcomeFailed
		return
	}
	if len(r.Warnings) > 0 {
		r.Outcome = OutcomeWarning
		return
	}
	r.Outcome = OutcomeSuccess
}

// Summary returns a human-readable single-line summary.
func (r *Report) Summary() string {
	dur := r.End.Sub(r.Start)
	return fmt.Sprintf("build=%s duration=%s artifacts=%d errors=%d warnings=%d revision=%s outcome=%s",
		r.BuildID, dur.Truncate(time.Millisecond), len(r.Artifacts), len(r.Errors), len(r.Warnings), r.Provenance.Commit, r.Outcome)
}

// Persist writes build-report.json and build-report.txt into dir.
func (r *Report) Persist(dir string) error {
	if r.End.IsZero() {
		r.finish()
	}
	jb, err := json.MarshalIndent(r.serializable(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report json: %w", err)
	}
	if err := fileutil.WriteFile(filepath.Join(dir, "build-report.json"), append(jb, '\n')); err != nil {
		return err
	}
	return fileutil.WriteFile(filepath.Join(dir, "build-report.txt"), []byte(r.Summary()+"\n"))
}

// ReportSerializable mirrors Report with string errors for JSON output.
type ReportSerializable struct {
	BuildID           string            `json:"build_id"`
	Start             time.Time         `json:"start"`
	End               time.Time         `json:"end"`
	Errors            []string          `json:"errors"`
	Warnings          []string          `json:"warnings"`
	StageDurationsMS  map[string]int64  `json:"stage_durations_ms"`
	StageResults      map[string]string `json:"stage_results"`
	Artifacts         []string          `json:"artifacts"`
	Version           string            `json:"version"`
	Commit            string            `json:"commit"`
	ProvenanceWritten bool              `json:"provenance_written"`
	Triggers          []string          `json:"triggers"`
	ConfigSnapshot    string            `json:"config_snapshot,omitempty"`
	Outcome           string            `json:"outcome"`
}

func (r *Report) serializable() *ReportSerializable {
	s := &ReportSerializable{
		BuildID:           r.BuildID,
		Start:             r.Start,
		End:               r.End,
		Errors:            make([]string, len(r.Errors)),
		Warnings:          make([]string, len(r.Warnings)),
		StageDurationsMS:  make(map[string]int64, len(r.StageDurations)),
		StageResults:      make(map[string]string, len(r.StageResults)),
		Artifacts:         append([]string{}, r.Artifacts...),
		Version:           r.Provenance.Version,
		Commit:            r.Provenance.Commit,
		ProvenanceWritten: r.ProvenanceWritten,
		Triggers:          append([]string{}, r.Triggers...),
		ConfigSnapshot:    r.ConfigSnapshot,
		Outcome:           string(r.Outcome),
	}
	for i, e := range r.Errors {
		s.Errors[i] = e.Error()
	}
	for i, w := range r.Warnings {
		s.Warnings[i] = w.Error()
	}
	for k, v := range r.StageDurations {
		s.StageDurationsMS[string(k)] = v.Milliseconds()
	}
	for k, v := range r.StageResults {
		s.StageResults[string(k)] = v
	}
	return s
}
