package source

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

func TestFileFetch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cv.txt")
	if err := os.WriteFile(path, []byte("Jane Doe"), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	f := &File{}
	for _, location := range []string{path, "file://" + path} {
		blob, err := f.Fetch(context.Background(), location)
		if err != nil {
			t.Fatalf("fetch %q: %v", location, err)
		}
		if blob.Name != "cv.txt" || string(blob.Data) != "Jane Doe" {
			t.Fatalf("unexpected blob: %+v", blob)
		}
	}

	if _, err := f.Fetch(context.Background(), filepath.Join(dir, "missing.pdf")); err == nil {
		t.Fatalf("expected error for missing file")
	}

	small := &File{MaxBytes: 3}
	if _, err := small.Fetch(context.Background(), path); !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
}

func TestHTTPFetch(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/files/cv.pdf", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != "test-agent" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.4"))
	})
	mux.HandleFunc("/gzipped", func(w http.ResponseWriter, _ *http.Request) {
		var buf bytes.Buffer
		gz := gzip.NewWriter(&buf)
		_, _ = gz.Write([]byte("compressed body"))
		_ = gz.Close()

		w.Header().Set("Content-Encoding", "gzip")
		w.Header().Set("Content-Disposition", `attachment; filename="resume.txt"`)
		_, _ = w.Write(buf.Bytes())
	})
	mux.HandleFunc("/big", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", 64)))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	h := NewHTTP(zap.NewNop(), 0)
	h.UserAgent = "test-agent"

	blob, err := h.Fetch(context.Background(), server.URL+"/files/cv.pdf")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if blob.Name != "cv.pdf" || blob.ContentType != "application/pdf" || string(blob.Data) != "%PDF-1.4" {
		t.Fatalf("unexpected blob: %+v", blob)
	}

	blob, err = h.Fetch(context.Background(), server.URL+"/gzipped")
	if err != nil {
		t.Fatalf("fetch gzipped: %v", err)
	}
	if blob.Name != "resume.txt" || string(blob.Data) != "compressed body" {
		t.Fatalf("unexpected gzipped blob: %+v", blob)
	}

	if _, err := h.Fetch(context.Background(), server.URL+"/missing"); err == nil || !strings.Contains(err.Error(), "bad status") {
		t.Fatalf("expected bad status error, got %v", err)
	}

	h.MaxBytes = 10
	if _, err := h.Fetch(context.Background(), server.URL+"/big"); !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
}

type fakeGetter struct {
	input *s3.GetObjectInput
	body  string
	err   error
}

func (f *fakeGetter) GetObject(_ context.Context, params *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &s3.GetObjectOutput{
		Body:        io.NopCloser(strings.NewReader(f.body)),
		ContentType: aws.String("application/pdf"),
	}, nil
}

func TestS3Fetch(t *testing.T) {
	getter := &fakeGetter{body: "%PDF-1.4"}
	fetcher := &S3{Client: getter}

	blob, err := fetcher.Fetch(context.Background(), "s3://cvs/uploads/2024/jane.pdf")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}

	if aws.ToString(getter.input.Bucket) != "cvs" || aws.ToString(getter.input.Key) != "uploads/2024/jane.pdf" {
		t.Fatalf("unexpected request: bucket=%q key=%q", aws.ToString(getter.input.Bucket), aws.ToString(getter.input.Key))
	}

	if blob.Name != "jane.pdf" || blob.ContentType != "application/pdf" || string(blob.Data) != "%PDF-1.4" {
		t.Fatalf("unexpected blob: %+v", blob)
	}

	getter.err = errors.New("access denied")
	if _, err := fetcher.Fetch(context.Background(), "s3://cvs/jane.pdf"); err == nil {
		t.Fatalf("expected error from client")
	}
}

func TestParseS3Location(t *testing.T) {
	tests := []struct {
		location string
		bucket   string
		key      string
		wantErr  bool
	}{
		{location: "s3://bucket/key.pdf", bucket: "bucket", key: "key.pdf"},
		{location: "s3://bucket/a/b/c.docx", bucket: "bucket", key: "a/b/c.docx"},
		{location: "s3://bucket", wantErr: true},
		{location: "s3:///key", wantErr: true},
		{location: "https://bucket/key", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.location, func(t *testing.T) {
			bucket, key, err := parseS3Location(tt.location)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if bucket != tt.bucket || key != tt.key {
				t.Fatalf("expected %s/%s, got %s/%s", tt.bucket, tt.key, bucket, key)
			}
		})
	}
}

type recordingFetcher struct {
	locations []string
}

func (r *recordingFetcher) Fetch(_ context.Context, location string) (*Blob, error) {
	r.locations = append(r.locations, location)
	return &Blob{Name: location}, nil
}

func TestRouter(t *testing.T) {
	files := &recordingFetcher{}
	web := &recordingFetcher{}

	router := NewRouter().
		Register(files, "file").
		Register(web, "http", "https")

	for _, location := range []string{"/tmp/cv.pdf", "file:///tmp/cv.pdf", "HTTPS://example.com/cv.pdf", "http://example.com/cv.pdf"} {
		if _, err := router.Fetch(context.Background(), location); err != nil {
			t.Fatalf("fetch %q: %v", location, err)
		}
	}

	if len(files.locations) != 2 || len(web.locations) != 2 {
		t.Fatalf("unexpected dispatch: files=%v web=%v", files.locations, web.locations)
	}

	if _, err := router.Fetch(context.Background(), "s3://bucket/key"); err == nil {
		t.Fatalf("expected error for unregistered scheme")
	}

	if _, err := router.Fetch(context.Background(), "  "); err == nil {
		t.Fatalf("expected error for empty location")
	}
}
