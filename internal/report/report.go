// Package report computes entry and section durations for a profile and
// renders the result for people and machines.
package report

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spigell/cv2profile/internal/duration"
	"github.com/spigell/cv2profile/internal/profile"
)

// EntryView is a work or education entry ready for display.
type EntryView struct {
	Title        string            `json:"title"`
	Organization string            `json:"organization"`
	Period       string            `json:"period"`
	Start        string            `json:"periodStart"`
	End          string            `json:"periodEnd"`
	Duration     duration.Duration `json:"duration"`
	DurationText string            `json:"durationText"`
	Description  string            `json:"description"`
}

// Total is the merged duration of a section.
type Total struct {
	Duration duration.Duration `json:"duration"`
	Text     string            `json:"text"`
	// Computed is false when Text is the upstream free-text value.
	Computed bool `json:"computed"`
	// Present is false when the section has no entries and no total is shown.
	Present bool `json:"present"`
}

type Report struct {
	Today          string           `json:"today"`
	Profile        *profile.Profile `json:"profile"`
	Work           []EntryView      `json:"workExperience"`
	Education      []EntryView      `json:"education"`
	TotalWork      Total            `json:"totalWorkExperience"`
	TotalEducation Total            `json:"totalEducationDuration"`
}

// Build computes per-entry durations and section totals of p as of today.
// Dates must already be empty or in duration.Layout, as profile.Normalize
// guarantees; anything else is reported as an error.
func Build(p *profile.Profile, today duration.Date) (*Report, error) {
	if p == nil {
		return nil, fmt.Errorf("profile is nil")
	}

	work, workTotal, err := section(p.WorkEntries(), p.TotalWorkExperience, today)
	if err != nil {
		return nil, fmt.Errorf("work experience: %w", err)
	}

	education, eduTotal, err := section(p.EducationEntries(), p.TotalEducationDuration, today)
	if err != nil {
		return nil, fmt.Errorf("education: %w", err)
	}

	return &Report{
		Today:          today.String(),
		Profile:        p,
		Work:           work,
		Education:      education,
		TotalWork:      workTotal,
		TotalEducation: eduTotal,
	}, nil
}

func section(entries []profile.Entry, upstreamTotal string, today duration.Date) ([]EntryView, Total, error) {
	views := make([]EntryView, 0, len(entries))
	pairs := make([][2]string, 0, len(entries))

	for i, entry := range entries {
		start, end := entry.Range()

		d, err := duration.BetweenStrings(start, end, today)
		if err != nil {
			return nil, Total{}, fmt.Errorf("entry %d: %w", i, err)
		}

		text := d.String()
		if text == "" {
			text = entry.Fallback()
		}

		views = append(views, EntryView{
			Title:        entry.Title(),
			Organization: entry.Organization(),
			Period:       entry.DisplayPeriod(),
			Start:        start,
			End:          end,
			Duration:     d,
			DurationText: text,
			Description:  entry.Details(),
		})
		pairs = append(pairs, [2]string{start, end})
	}

	if len(entries) == 0 {
		return views, Total{}, nil
	}

	total, err := duration.AggregateStrings(pairs, today)
	if err != nil {
		return nil, Total{}, err
	}

	if total.IsZero() {
		return views, Total{Text: upstreamTotal, Present: true}, nil
	}

	return views, Total{Duration: total, Text: FormatTotal(total), Computed: true, Present: true}, nil
}

// FormatTotal renders a section total as "N years, M months". Both parts are
// always present.
func FormatTotal(d duration.Duration) string {
	return fmt.Sprintf("%d years, %d months", d.Years, d.Months)
}

func (r *Report) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "profile_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return "", err
	}
	return file.Name(), nil
}
