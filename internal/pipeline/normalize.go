package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/cv2profile/internal/profile"
)

type normalizeStep struct{ toggle }

// NewNormalize creates the step that turns the raw extraction into a Profile.
func NewNormalize() Step { return &normalizeStep{} }

func (s *normalizeStep) Name() string { return "normalize" }

func (s *normalizeStep) Validate(Deps) error { return nil }

func (s *normalizeStep) Apply(_ context.Context, deps Deps, state *State) (Stats, error) {
	if state.Extraction == nil {
		return nil, errors.New("no extraction to normalize")
	}

	payload, err := json.Marshal(state.Extraction.Payload)
	if err != nil {
		return nil, fmt.Errorf("marshal extraction: %w", err)
	}

	state.Issues = profile.CheckSchema(payload)
	for _, issue := range state.Issues {
		deps.Logger.Warn("extraction deviates from schema", zap.String("issue", issue))
	}

	p := profile.Normalize(state.Extraction.Payload)
	if err := profile.Validate(p); err != nil {
		return nil, err
	}

	state.Profile = p
	return Stats{
		"work_entries":      len(p.WorkExperience),
		"education_entries": len(p.Education),
		"schema_issues":     len(state.Issues),
	}, nil
}
