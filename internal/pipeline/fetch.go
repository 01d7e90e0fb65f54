package pipeline

import (
	"context"
	"errors"
	"strings"
)

type fetchStep struct{ toggle }

// NewFetch creates the step that downloads the document named by Request.Source.
func NewFetch() Step { return &fetchStep{} }

func (s *fetchStep) Name() string { return "fetch" }

func (s *fetchStep) Validate(deps Deps) error {
	if deps.Fetcher == nil {
		return errors.New("fetcher is required")
	}
	return nil
}

func (s *fetchStep) Apply(ctx context.Context, deps Deps, state *State) (Stats, error) {
	location := strings.TrimSpace(state.Request.Source)
	if location == "" {
		return nil, errors.New("document location is required")
	}

	blob, err := deps.Fetcher.Fetch(ctx, location)
	if err != nil {
		return nil, err
	}

	state.Blob = blob
	return Stats{"document": blob.Name, "bytes": len(blob.Data)}, nil
}
