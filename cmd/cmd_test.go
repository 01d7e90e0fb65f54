package cmd

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/cv2profile/internal/duration"
	"github.com/spigell/cv2profile/internal/profile"
	"github.com/spigell/cv2profile/internal/report"
)

func TestPrintDurations(t *testing.T) {
	var out bytes.Buffer
	today := duration.MustParse("31-07-2024")

	err := printDurations(&out, []string{"01-01-2020:31-12-2020", "01-06-2020:31-03-2021", "01-01-2024:"}, today)
	if err != nil {
		t.Fatalf("print: %v", err)
	}

	want := strings.Join([]string{
		"01-01-2020:31-12-2020\t1 years, 0 months",
		"01-06-2020:31-03-2021\t0 years, 10 months",
		"01-01-2024:\t0 years, 7 months",
		"total\t1 years, 10 months",
		"",
	}, "\n")
	if out.String() != want {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", out.String(), want)
	}
}

func TestPrintDurationsRejectsMalformed(t *testing.T) {
	today := duration.MustParse("31-07-2024")

	if err := printDurations(&bytes.Buffer{}, []string{"01-01-2020"}, today); err == nil {
		t.Fatalf("expected error for range without separator")
	}

	err := printDurations(&bytes.Buffer{}, []string{"2020-01-01:"}, today)
	if !errors.Is(err, duration.ErrMalformedDate) {
		t.Fatalf("expected malformed date, got %v", err)
	}
}

func TestReferenceTime(t *testing.T) {
	got, err := referenceTime("29-02-2024")
	if err != nil {
		t.Fatalf("reference time: %v", err)
	}
	if got.Year() != 2024 || got.Month() != time.February || got.Day() != 29 {
		t.Fatalf("unexpected time: %v", got)
	}

	if _, err := referenceTime("30-02-2024"); err == nil {
		t.Fatalf("expected error for impossible date")
	}
}

func TestHandleAction(t *testing.T) {
	r, err := report.Build(&profile.Profile{Name: "Jane Doe"}, duration.MustParse("31-07-2024"))
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	var out bytes.Buffer
	if err := handleAction(PromptShowJSON, zap.NewNop(), r, report.FormatMarkdown, &out); err != nil {
		t.Fatalf("show json: %v", err)
	}
	if !strings.Contains(out.String(), `"name": "Jane Doe"`) {
		t.Fatalf("expected json output, got %s", out.String())
	}

	if err := handleAction(PromptExit, zap.NewNop(), r, report.FormatMarkdown, &out); !errors.Is(err, errExit) {
		t.Fatalf("expected exit, got %v", err)
	}

	if err := handleAction("unknown", zap.NewNop(), r, report.FormatMarkdown, &out); err == nil {
		t.Fatalf("expected error for unknown action")
	}
}

func TestVersionLine(t *testing.T) {
	line := versionLine()
	if !strings.HasPrefix(line, "cv2profile version: ") {
		t.Fatalf("unexpected version line %q", line)
	}
}
