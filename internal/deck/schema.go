package deck

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// deckSchema is the JSON Schema imported deck files must satisfy.
const deckSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["version", "items"],
  "properties": {
    "version": {"type": "integer", "minimum": 1},
    "exported_at": {"type": "string"},
    "items": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["title"],
        "properties": {
          "title": {"type": "string", "minLength": 1},
          "content": {"type": "string"},
          "frequency_coefficient": {"type": "number", "minimum": 0.5, "maximum": 1.5}
        },
        "additionalProperties": false
      }
    }
  },
  "additionalProperties": false
}`

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(strings.NewReader(deckSchema))
		if err != nil {
			schemaErr = fmt.Errorf("parse deck schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("deck.schema.json", doc); err != nil {
			schemaErr = fmt.Errorf("add deck schema: %w", err)
			return
		}
		schema, schemaErr = c.Compile("deck.schema.json")
	})
	return schema, schemaErr
}

// validate checks a raw deck document against the schema.
func validate(r io.Reader) error {
	sch, err := compiledSchema()
	if err != nil {
		return err
	}
	doc, err := jsonschema.UnmarshalJSON(r)
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := sch.Validate(doc); err != nil {
		return fmt.Errorf("deck validation failed: %w", err)
	}
	return nil
}
