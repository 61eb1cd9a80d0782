package manifest

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// modsSchema validates the manifest document before any descriptor is
// touched. Malformed manifests fail fast with path-scoped messages instead
// of surfacing as nil-field surprises mid-run.
const modsSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "Mods Manifest",
  "type": "object",
  "required": ["version", "mods"],
  "properties": {
    "version": {
      "type": "string",
      "minLength": 1
    },
    "mods": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name", "source"],
        "properties": {
          "name": {"type": "string", "minLength": 1},
          "source": {"type": "string", "minLength": 1},
          "version": {"type": "string"},
          "file": {"type": "string"},
          "disabled": {"type": "boolean"}
        },
        "additionalProperties": false
      }
    }
  },
  "additionalProperties": false
}`

// validateDocument checks a decoded manifest document against the schema.
func validateDocument(doc interface{}) error {
	schemaLoader := gojsonschema.NewStringLoader(modsSchema)
	docLoader := gojsonschema.NewGoLoader(doc)

	result, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, fmt.Sprintf("%s: %s", e.Field(), e.Description()))
	}
	return fmt.Errorf("invalid manifest: %s", strings.Join(msgs, "; "))
}
