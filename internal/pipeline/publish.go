package pipeline

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/spigell/cv2profile/internal/publish"
)

type publishStep struct{ toggle }

// NewPublish creates the step that announces the finished report. Publishing
// failures are logged and do not fail the conversion.
func NewPublish() Step { return &publishStep{} }

func (s *publishStep) Name() string { return "publish" }

func (s *publishStep) Validate(Deps) error { return nil }

func (s *publishStep) Apply(ctx context.Context, deps Deps, state *State) (Stats, error) {
	if deps.Publisher == nil {
		deps.Logger.Debug("publisher is not configured; skipping publish step")
		return Stats{"published": false}, nil
	}
	if state.Report == nil {
		return nil, errors.New("no report to publish")
	}

	event := publish.NewEvent(state.Request.ID.String(), state.Request.Source, state.Request.User, state.Request.Now, state.Report)
	if err := deps.Publisher.Publish(ctx, event); err != nil {
		deps.Logger.Warn("publishing profile failed", zap.Error(err))
		return Stats{"published": false}, nil
	}

	return Stats{"published": true}, nil
}
