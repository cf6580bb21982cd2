package build

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// BuildOutcome is the typed enumeration of final build result states.
type BuildOutcome string

const (
	OutcomeSuccess  BuildOutcome = "success"
	OutcomeWarning  BuildOutcome = "warning"
	OutcomeFailed   BuildOutcome = "failed"
	OutcomeCanceled BuildOutcome = "canceled"
)

// BuildReport captures high-level metrics about one generation run.
type BuildReport struct {
	ID             string
	Outcome        BuildOutcome
	OutputDir      string
	Start          time.Time
	End            time.Time
	Pages          int      // HTML documents written
	Assets         int      // public files copied
	Artifacts      []string // deployment artifacts created (sitemap.xml, CNAME, ...)
	Errors         []error  // fatal errors causing build abortion (at most one today)
	Warnings       []string // recoverable issues (missing translations, dangling references)
	StageDurations map[string]time.Duration
}

func newBuildReport(outputDir string) *BuildReport {
	return &BuildReport{
		ID:             uuid.NewString(),
		OutputDir:      outputDir,
		Start:          time.Now(),
		StageDurations: make(map[string]time.Duration),
	}
}

// finish derives the final outcome from accumulated errors and warnings.
func (r *BuildReport) finish(canceled bool) {
	r.End = time.Now()
	switch {
	case canceled:
		r.Outcome = OutcomeCanceled
	case len(r.Errors) > 0:
		r.Outcome = OutcomeFailed
	case len(r.Warnings) > 0:
		r.Outcome = OutcomeWarning
	default:
		r.Outcome = OutcomeSuccess
	}
}

// Duration returns the wall-clock build time.
func (r *BuildReport) Duration() time.Duration { return r.End.Sub(r.Start) }

// reportSerializable mirrors BuildReport with JSON-friendly field types
// (errors as strings, durations in milliseconds).
type reportSerializable struct {
	ID             string           `json:"id"`
	Outcome        BuildOutcome     `json:"outcome"`
	OutputDir      string           `json:"output_dir"`
	Start          time.Time        `json:"start"`
	End            time.Time        `json:"end"`
	Pages          int              `json:"pages"`
	Assets         int              `json:"assets"`
	Artifacts      []string         `json:"artifacts,omitempty"`
	Errors         []string         `json:"errors,omitempty"`
	Warnings       []string         `json:"warnings,omitempty"`
	StageDurations map[string]int64 `json:"stage_durations_ms"`
}

// MarshalJSON serializes the report for persistence.
func (r *BuildReport) MarshalJSON() ([]byte, error) {
	s := reportSerializable{
		ID:             r.ID,
		Outcome:        r.Outcome,
		OutputDir:      r.OutputDir,
		Start:          r.Start,
		End:            r.End,
		Pages:          r.Pages,
		Assets:         r.Assets,
		Artifacts:      r.Artifacts,
		Warnings:       r.Warnings,
		StageDurations: make(map[string]int64, len(r.StageDurations)),
	}
	for _, err := range r.Errors {
		s.Errors = append(s.Errors, err.Error())
	}
	for stage, d := range r.StageDurations {
		s.StageDurations[stage] = d.Milliseconds()
	}
	return json.Marshal(s)
}

// Persist writes the report as indented JSON to path, creating parent
// directories as needed.
func (r *BuildReport) Persist(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}
