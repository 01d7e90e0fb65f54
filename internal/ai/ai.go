package ai

import (
	"context"

	"github.com/spigell/cv2profile/internal/duration"
)

// Attachment is the original document, passed along so the model can check
// section classification against the layout.
type Attachment struct {
	MIME string
	Data []byte
}

type Request struct {
	// Text is the plain text extracted from the document. It may be empty for scans.
	Text       string
	Attachment *Attachment
	// Today resolves ongoing periods.
	Today duration.Date
}

type Extraction struct {
	Payload map[string]any
	Raw     string
	Model   string
}

type Extractor interface {
	Extract(ctx context.Context, req *Request) (*Extraction, error)
}
