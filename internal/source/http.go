package source

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path"
	"time"

	"go.uber.org/zap"
)

const (
	defaultUserAgent = "cv2profile/1.0"
	acceptEncoding   = "gzip"
)

// HTTP downloads documents over http and https.
type HTTP struct {
	HTTPClient *http.Client
	UserAgent  string
	MaxBytes   int64
	logger     *zap.Logger
}

func NewHTTP(logger *zap.Logger, timeout time.Duration) *HTTP {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &HTTP{
		HTTPClient: &http.Client{Timeout: timeout},
		UserAgent:  defaultUserAgent,
		MaxBytes:   DefaultMaxBytes,
		logger:     logger,
	}
}

func (h *HTTP) Fetch(ctx context.Context, location string) (*Blob, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", h.UserAgent)
	req.Header.Set("Accept-Encoding", acceptEncoding)

	h.logger.Debug("make request", zap.String("url", req.URL.String()))
	resp, err := h.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bad status: %s", resp.Status)
	}

	var reader io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gzipReader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		defer gzipReader.Close()
		reader = gzipReader
	}

	data, err := readLimited(reader, h.MaxBytes)
	if err != nil {
		return nil, err
	}

	return &Blob{
		Name:        responseName(resp),
		ContentType: resp.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// responseName prefers the Content-Disposition filename over the last path segment.
func responseName(resp *http.Response) string {
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil {
		if name := params["filename"]; name != "" {
			return path.Base(name)
		}
	}

	name := path.Base(resp.Request.URL.Path)
	if name == "/" || name == "." {
		return "document"
	}
	return name
}
