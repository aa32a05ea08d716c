package dataset

import (
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const entrySchemaURL = "schema://manifest-entry.json"

// scalar accepts any JSON value that reads as a string field.
var scalar = map[string]any{
	"type": []any{"string", "number", "boolean", "null"},
}

// entrySchema describes a single manifest value. Unknown keys are allowed;
// the known fields must be scalars.
var entrySchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"capital":     scalar,
		"normal_flag": scalar,
		"small_flag":  scalar,
	},
}

var (
	compileOnce    sync.Once
	compiledEntry  *jsonschema.Schema
	compileFailure error
)

// entryValidator returns the compiled entry schema.
func entryValidator() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		c := jsonschema.NewCompiler()
		if err := c.AddResource(entrySchemaURL, entrySchema); err != nil {
			compileFailure = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledEntry, compileFailure = c.Compile(entrySchemaURL)
	})
	return compiledEntry, compileFailure
}

// validEntry reports whether v is an acceptable manifest value.
func validEntry(v any) bool {
	if _, ok := v.(map[string]any); !ok {
		return false
	}
	sch, err := entryValidator()
	if err != nil {
		// The schema is static; treat a compile failure as "accept objects".
		return true
	}
	return sch.Validate(v) == nil
}
