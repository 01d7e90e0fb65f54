package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestTruncate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		limit  int
		expect string
	}{
		{
			name:   "returns empty when limit non-positive",
			input:  "hello world",
			limit:  0,
			expect: "",
		},
		{
			name:   "shorter than limit",
			input:  "hello",
			limit:  10,
			expect: "hello",
		},
		{
			name:   "truncates and adds ellipsis",
			input:  "hello world",
			limit:  5,
			expect: "hello...",
		},
		{
			name:   "trims surrounding whitespace",
			input:  "  spaced  ",
			limit:  5,
			expect: "space...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Truncate(tt.input, tt.limit); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestNew(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.json")

	log, err := New(Options{JSON: true, Debug: true, OutputPaths: []string{path}})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}

	log.Debug("converting", zap.String("request_id", "abc"))
	_ = log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}

	var entry map[string]any
	if err := json.Unmarshal(data, &entry); err != nil {
		t.Fatalf("expected a json line, got %q: %v", data, err)
	}

	if entry["step"] != "converting" || entry["level"] != "debug" || entry["request_id"] != "abc" {
		t.Fatalf("unexpected entry: %+v", entry)
	}

	quiet, err := New(Options{OutputPaths: []string{path}})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	if quiet.Core().Enabled(zapcore.DebugLevel) {
		t.Fatalf("debug level must be disabled by default")
	}
}
