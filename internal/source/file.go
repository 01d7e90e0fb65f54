package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// File reads documents from the local filesystem. Locations are plain paths
// or file:// URLs.
type File struct {
	MaxBytes int64
}

func (f *File) Fetch(_ context.Context, location string) (*Blob, error) {
	path := strings.TrimPrefix(location, "file://")

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}
	defer file.Close()

	data, err := readLimited(file, f.MaxBytes)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", path, err)
	}

	return &Blob{Name: filepath.Base(path), Data: data}, nil
}
