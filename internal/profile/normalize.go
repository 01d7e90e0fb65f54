package profile

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Normalize shapes an extraction payload into a Profile. It never fails:
// missing or mistyped fields degrade to empty values, list items that are not
// objects are skipped, links gain a scheme, unknown language levels are
// cleared and entry dates are prepared for duration math.
func Normalize(raw map[string]any) *Profile {
	if raw == nil {
		raw = map[string]any{}
	}

	p := &Profile{
		Name:                   coerceString(raw["name"]),
		Emails:                 coerceStrings(raw["emails"]),
		Phones:                 coerceStrings(raw["phones"]),
		Links:                  coerceStrings(raw["links"]),
		Location:               coerceString(raw["location"]),
		Biography:              coerceString(raw["biography"]),
		TotalWorkExperience:    coerceString(raw["totalWorkExperience"]),
		TotalEducationDuration: coerceString(raw["totalEducationDuration"]),
		WorkExperience:         decodeList[WorkExperience](raw["workExperience"]),
		Education:              decodeList[Education](raw["education"]),
		Skills:                 coerceStrings(raw["skills"]),
		Languages:              decodeList[Language](raw["languages"]),
		Publications:           decodeList[Publication](raw["publications"]),
		Projects:               decodeList[Project](raw["projects"]),
	}

	for i, link := range p.Links {
		p.Links[i] = FixURL(link)
	}

	for i := range p.WorkExperience {
		w := &p.WorkExperience[i]
		w.PeriodStart, w.PeriodEnd = CanonicalDate(w.PeriodStart), CanonicalDate(w.PeriodEnd)
		if !usableDates(w, w.PeriodStart, w.PeriodEnd) {
			w.PeriodStart, w.PeriodEnd = "", ""
		}
	}

	for i := range p.Education {
		e := &p.Education[i]
		e.PeriodStart, e.PeriodEnd = CanonicalDate(e.PeriodStart), CanonicalDate(e.PeriodEnd)
		if !usableDates(e, e.PeriodStart, e.PeriodEnd) {
			e.PeriodStart, e.PeriodEnd = "", ""
		}
	}

	for i := range p.Languages {
		l := &p.Languages[i]
		l.Name = strings.TrimSpace(l.Name)
		l.Degree = CanonicalProficiency(l.Degree)
	}

	for i := range p.Publications {
		pub := &p.Publications[i]
		pub.Tags = nonNil(pub.Tags)
		pub.URL = FixURL(pub.URL)
	}

	for i := range p.Projects {
		proj := &p.Projects[i]
		proj.Skills = nonNil(proj.Skills)
		proj.URL = FixURL(proj.URL)
	}

	return p
}

// decodeList decodes every object in v into T, skipping anything that cannot
// be decoded. The result is never nil.
func decodeList[T any](v any) []T {
	items, ok := v.([]any)
	if !ok {
		return []T{}
	}

	result := make([]T, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}

		var decoded T
		if err := decode(obj, &decoded); err != nil {
			continue
		}
		result = append(result, decoded)
	}

	return result
}

func decode(input map[string]any, target any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		DecodeHook:       looseValueHook,
		Result:           target,
	})
	if err != nil {
		return fmt.Errorf("create decoder: %w", err)
	}

	return decoder.Decode(input)
}

// looseValueHook flattens values the model placed where a string or a list
// of strings was expected.
func looseValueHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	switch {
	case to.Kind() == reflect.String:
		return coerceString(data), nil
	case to.Kind() == reflect.Slice && to.Elem().Kind() == reflect.String:
		return coerceStrings(data), nil
	default:
		return data, nil
	}
}

func coerceString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case json.Number:
		return val.String()
	case fmt.Stringer:
		return strings.TrimSpace(val.String())
	case map[string]any, []any:
		return ""
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", v))
	}
}

func coerceStrings(v any) []string {
	switch val := v.(type) {
	case []string:
		return nonNil(compact(val))
	case []any:
		result := make([]string, 0, len(val))
		for _, item := range val {
			if s := coerceString(item); s != "" {
				result = append(result, s)
			}
		}
		return result
	case string:
		if s := strings.TrimSpace(val); s != "" {
			return []string{s}
		}
	}
	return []string{}
}

func compact(values []string) []string {
	result := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			result = append(result, v)
		}
	}
	return result
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
