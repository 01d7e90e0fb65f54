// Package pipeline runs the conversion of one CV document as a sequence of
// named steps: fetch, ingest, extract, normalize, report and publish.
package pipeline

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/cv2profile/internal/ai"
	"github.com/spigell/cv2profile/internal/duration"
	"github.com/spigell/cv2profile/internal/ingestion"
	"github.com/spigell/cv2profile/internal/logger"
	"github.com/spigell/cv2profile/internal/profile"
	"github.com/spigell/cv2profile/internal/publish"
	"github.com/spigell/cv2profile/internal/report"
	"github.com/spigell/cv2profile/internal/source"
)

// Request carries everything that is scoped to a single conversion. Nothing
// about the caller is kept between requests.
type Request struct {
	ID     uuid.UUID
	Now    time.Time
	Source string
	User   string
}

func NewRequest(location string, now time.Time) *Request {
	return &Request{ID: uuid.New(), Now: now, Source: location}
}

// Today is the date ongoing periods run to.
func (r *Request) Today() duration.Date {
	return duration.Today(r.Now)
}

// State accumulates step results.
type State struct {
	Request    *Request
	Blob       *source.Blob
	Document   *ingestion.Document
	Extraction *ai.Extraction
	// Issues are schema deviations of the raw extraction. They are informational.
	Issues  []string
	Profile *profile.Profile
	Report  *report.Report
}

func NewState(req *Request) *State {
	return &State{Request: req}
}

// Deps aggregates dependencies shared across all steps.
type Deps struct {
	Fetcher   source.Fetcher
	Extractor ai.Extractor
	Publisher publish.Publisher
	Logger    *zap.Logger
}

// Stats are step specific facts reported after a step completes.
type Stats map[string]any

// Step is a single stage of the conversion.
type Step interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	Validate(deps Deps) error
	Apply(ctx context.Context, deps Deps, state *State) (Stats, error)
}

// Status represents runtime information about a step.
type Status struct {
	Name    string
	Enabled bool
	Reason  string
}

// StepError reports which step failed.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string { return fmt.Sprintf("%s: %v", e.Step, e.Err) }

func (e *StepError) Unwrap() error { return e.Err }

// DefaultSteps returns a fresh chain in execution order.
func DefaultSteps() []Step {
	return []Step{
		NewFetch(),
		NewIngest(),
		NewExtract(),
		NewNormalize(),
		NewReport(),
		NewPublish(),
	}
}

// DisableByName marks a step with the provided name as disabled while keeping it in the list.
func DisableByName(steps []Step, name, reason string) {
	for _, step := range steps {
		if step.Name() == name {
			step.Disable(reason)
		}
	}
}

// Run validates and then executes the enabled steps sequentially. The first
// failing step stops the run.
func Run(ctx context.Context, deps Deps, steps []Step, state *State) error {
	if state == nil || state.Request == nil {
		return fmt.Errorf("request is required")
	}

	for _, step := range steps {
		if !step.IsEnabled() {
			continue
		}
		if err := step.Validate(deps); err != nil {
			return &StepError{Step: step.Name(), Err: err}
		}
	}

	log := logger.WithFields(deps.Logger, logger.RequestFields(state.Request.ID.String(), state.Request.Source)...)
	deps.Logger = log

	for _, step := range steps {
		if !step.IsEnabled() {
			log.Debug("step disabled", zap.String("name", step.Name()))
			continue
		}

		started := time.Now()
		stats, err := step.Apply(ctx, deps, state)
		if err != nil {
			return &StepError{Step: step.Name(), Err: err}
		}

		fields := make([]zap.Field, 0, len(stats)+2)
		fields = append(fields, zap.String("name", step.Name()), zap.Duration("took", time.Since(started)))
		for _, key := range slices.Sorted(maps.Keys(stats)) {
			fields = append(fields, zap.Any(key, stats[key]))
		}
		log.Info("pipeline step", fields...)
	}

	return nil
}

// Describe returns status entries for the provided steps.
func Describe(steps []Step) []Status {
	statuses := make([]Status, 0, len(steps))
	for _, step := range steps {
		status := Status{Name: step.Name(), Enabled: step.IsEnabled()}
		if r, ok := step.(interface{ DisabledReason() string }); ok {
			status.Reason = r.DisabledReason()
		}
		statuses = append(statuses, status)
	}
	return statuses
}

// toggle implements the enable/disable half of Step.
type toggle struct {
	disabled bool
	reason   string
}

func (t *toggle) Disable(reason string) {
	t.disabled = true
	t.reason = reason
}

func (t *toggle) IsEnabled() bool { return !t.disabled }

func (t *toggle) DisabledReason() string { return t.reason }
