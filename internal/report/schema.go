package report

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/qri-io/jsonschema"
)

//go:embed schema.json
var schemaJSON []byte

var reportSchema = func() *jsonschema.Schema {
	schema := &jsonschema.Schema{}
	if err := json.Unmarshal(schemaJSON, schema); err != nil {
		panic(err)
	}
	return schema
}()

// ValidateSchema checks report JSON against the embedded report schema and
// returns a human-readable flaw per violation. A nil, empty result means the
// document is a well-formed report.
func ValidateSchema(ctx context.Context, data []byte) ([]string, error) {
	if !json.Valid(data) {
		return []string{"document is not valid JSON"}, nil
	}
	keyErrs, err := reportSchema.ValidateBytes(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("validate report: %w", err)
	}
	flaws := make([]string, 0, len(keyErrs))
	for _, kerr := range keyErrs {
		flaws = append(flaws, kerr.Error())
	}
	return flaws, nil
}
