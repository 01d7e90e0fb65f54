// Package source fetches CV documents from local files, HTTP servers and S3
// compatible object stores.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// DefaultMaxBytes caps the size of a fetched document.
const DefaultMaxBytes int64 = 20 << 20

// ErrTooLarge is returned when a document exceeds the configured size limit.
var ErrTooLarge = errors.New("document is too large")

// Blob is a fetched document.
type Blob struct {
	Name string
	// ContentType is the type reported by the origin, if any.
	ContentType string
	Data        []byte
}

type Fetcher interface {
	Fetch(ctx context.Context, location string) (*Blob, error)
}

// readLimited reads r fully, failing once more than limit bytes arrive.
func readLimited(r io.Reader, limit int64) ([]byte, error) {
	if limit <= 0 {
		limit = DefaultMaxBytes
	}

	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}

	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrTooLarge, limit)
	}

	return data, nil
}
