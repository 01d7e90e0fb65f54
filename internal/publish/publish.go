// Package publish announces finished profiles to downstream consumers.
package publish

import (
	"context"
	"time"

	"github.com/spigell/cv2profile/internal/report"
)

// Event is the message sent for every converted CV.
type Event struct {
	RequestID string         `json:"requestId"`
	Source    string         `json:"source,omitempty"`
	User      string         `json:"user,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	Report    *report.Report `json:"report"`
}

func NewEvent(requestID, source, user string, createdAt time.Time, r *report.Report) *Event {
	return &Event{
		RequestID: requestID,
		Source:    source,
		User:      user,
		CreatedAt: createdAt.UTC(),
		Report:    r,
	}
}

type Publisher interface {
	Publish(ctx context.Context, event *Event) error
}
