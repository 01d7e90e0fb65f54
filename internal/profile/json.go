package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrNoJSON is returned when a model response carries no usable JSON object.
var ErrNoJSON = errors.New("no valid JSON object found")

var objectPattern = regexp.MustCompile(`(?s)\{.*\}`)

// ExtractJSON locates the outermost JSON object in a model response, which may
// be wrapped in prose or a fenced code block, and decodes it.
func ExtractJSON(response string) (map[string]any, error) {
	cleaned := strings.TrimSpace(response)
	if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimPrefix(cleaned, "```")
		if idx := strings.LastIndex(cleaned, "```"); idx != -1 {
			cleaned = cleaned[:idx]
		}
	}

	match := objectPattern.FindString(cleaned)
	if match == "" {
		return nil, ErrNoJSON
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(match), &data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoJSON, err)
	}

	return data, nil
}
