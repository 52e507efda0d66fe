package confusion

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// tablesSchema constrains curated table files: every map value must be a
// non-empty list of non-empty strings.
var tablesSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"version": map[string]any{
			"type":    "integer",
			"minimum": 1,
		},
		"onsets":     confusionMapSchema,
		"rimes":      confusionMapSchema,
		"characters": confusionMapSchema,
	},
	"required":             []any{"version"},
	"additionalProperties": false,
}

var confusionMapSchema = map[string]any{
	"type": "object",
	"additionalProperties": map[string]any{
		"type":     "array",
		"minItems": 1,
		"items": map[string]any{
			"type":      "string",
			"minLength": 1,
		},
	},
}

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func compiled() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The jsonschema library expects a parsed JSON value, so round-trip
		// the definition through encoding/json first.
		defBytes, err := json.Marshal(tablesSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema definition: %w", err)
			return
		}
		var defParsed any
		if err := json.Unmarshal(defBytes, &defParsed); err != nil {
			compileErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource("schema://tables.json", defParsed); err != nil {
			compileErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile("schema://tables.json")
	})
	return compiledSchema, compileErr
}

// Load reads a curated tables file, validates it against the schema, and
// decodes it. Malformed curated data is a configuration error surfaced to
// the operator, never silently partial.
func Load(r io.Reader) (*Tables, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read tables: %w", err)
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("tables are not valid JSON: %w", err)
	}

	schema, err := compiled()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(parsed); err != nil {
		return nil, fmt.Errorf("tables failed schema validation: %w", err)
	}

	var t Tables
	if err := json.Unmarshal(raw, &t); err != nil {
		return nil, fmt.Errorf("decode tables: %w", err)
	}
	return &t, nil
}
