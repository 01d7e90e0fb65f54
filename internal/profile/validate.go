package profile

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/spigell/cv2profile/internal/duration"
)

// Proficiencies is the closed set of language levels, in ascending order.
var Proficiencies = []string{"Beginner", "Good", "Fluent", "Proficient", "Native/Bilingual"}

// alternate layouts the model tends to produce despite being asked for DD-MM-YYYY
var dateLayouts = []string{"2-1-2006", "02.01.2006", "2.1.2006", "02/01/2006", "2006-01-02"}

var validate = validator.New()

// CanonicalDate rewrites recognised date spellings into duration.Layout.
// Anything else is returned trimmed and unchanged.
func CanonicalDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	if _, err := time.Parse(duration.Layout, s); err == nil {
		return s
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(duration.Layout)
		}
	}

	return s
}

// CanonicalProficiency maps a language level onto Proficiencies, ignoring case.
// Levels outside the set become empty.
func CanonicalProficiency(s string) string {
	s = strings.TrimSpace(s)
	for _, level := range Proficiencies {
		if strings.EqualFold(s, level) {
			return level
		}
	}
	return ""
}

// usableDates reports whether an entry's dates can be handed to the duration
// engine: both empty or in layout, and not reversed.
func usableDates(entry any, start, end string) bool {
	if err := validate.Struct(entry); err != nil {
		return false
	}

	if start == "" || end == "" {
		return true
	}

	s, err := duration.Parse(start)
	if err != nil {
		return false
	}
	e, err := duration.Parse(end)
	if err != nil {
		return false
	}

	return !e.Before(s)
}

// Validate checks the invariants Normalize establishes: entry dates are empty
// or in duration.Layout and language levels belong to Proficiencies.
func Validate(p *Profile) error {
	if p == nil {
		return fmt.Errorf("profile is nil")
	}

	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("invalid profile: %w", err)
	}

	return nil
}
