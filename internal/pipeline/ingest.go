package pipeline

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/spigell/cv2profile/internal/ingestion"
)

type ingestStep struct{ toggle }

// NewIngest creates the step that extracts text from the fetched document.
func NewIngest() Step { return &ingestStep{} }

func (s *ingestStep) Name() string { return "ingest" }

func (s *ingestStep) Validate(Deps) error { return nil }

func (s *ingestStep) Apply(_ context.Context, deps Deps, state *State) (Stats, error) {
	if state.Blob == nil {
		return nil, errors.New("no document to ingest")
	}

	doc, err := ingestion.Extract(state.Blob.Name, state.Blob.Data)
	if err != nil {
		return nil, err
	}

	if doc.Text == "" {
		deps.Logger.Warn("document has no text layer, relying on the attachment",
			zap.String("mime", doc.MIME),
		)
	}

	state.Document = doc
	return Stats{
		"mime":        doc.MIME,
		"pages":       doc.Pages,
		"text_length": len(doc.Text),
		"links":       len(doc.Links),
	}, nil
}
