package pipeline

import (
	"context"
	"errors"

	"github.com/spigell/cv2profile/internal/report"
)

type reportStep struct{ toggle }

// NewReport creates the step that computes durations and totals.
func NewReport() Step { return &reportStep{} }

func (s *reportStep) Name() string { return "report" }

func (s *reportStep) Validate(Deps) error { return nil }

func (s *reportStep) Apply(_ context.Context, _ Deps, state *State) (Stats, error) {
	if state.Profile == nil {
		return nil, errors.New("no profile to report")
	}

	r, err := report.Build(state.Profile, state.Request.Today())
	if err != nil {
		return nil, err
	}

	state.Report = r
	return Stats{
		"total_work":      r.TotalWork.Text,
		"total_education": r.TotalEducation.Text,
	}, nil
}
