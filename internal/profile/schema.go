package profile

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema.json
var schemaSource []byte

var compiledSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaSource))
})

// CheckSchema compares a raw extraction payload with the expected shape and
// returns one line per deviation. Deviations are informational: Normalize
// absorbs them.
func CheckSchema(payload []byte) []string {
	schema, err := compiledSchema()
	if err != nil {
		return []string{fmt.Sprintf("schema: %v", err)}
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(payload))
	if err != nil {
		return []string{fmt.Sprintf("payload: %v", err)}
	}

	if result.Valid() {
		return nil
	}

	issues := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		issues = append(issues, fmt.Sprintf("%s: %s", e.Field(), e.Description()))
	}
	return issues
}
