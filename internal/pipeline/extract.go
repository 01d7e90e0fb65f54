package pipeline

import (
	"context"
	"errors"

	"github.com/spigell/cv2profile/internal/ai"
)

type extractStep struct{ toggle }

// NewExtract creates the step that asks the language model for the profile.
func NewExtract() Step { return &extractStep{} }

func (s *extractStep) Name() string { return "extract" }

func (s *extractStep) Validate(deps Deps) error {
	if deps.Extractor == nil {
		return errors.New("extractor is required")
	}
	return nil
}

func (s *extractStep) Apply(ctx context.Context, deps Deps, state *State) (Stats, error) {
	doc := state.Document
	if doc == nil {
		return nil, errors.New("no ingested document")
	}

	req := &ai.Request{Text: doc.Text, Today: state.Request.Today()}
	if doc.Visual() {
		req.Attachment = &ai.Attachment{MIME: doc.MIME, Data: doc.Data}
	}

	extraction, err := deps.Extractor.Extract(ctx, req)
	if err != nil {
		return nil, err
	}

	state.Extraction = extraction
	return Stats{"model": extraction.Model, "attachment": req.Attachment != nil}, nil
}
