package scorevendor

import "eventhub-workers/internal/common/validation"

var inputSchema = validation.MustCompile(`{
	"type": "object",
	"required": ["events", "vendor"],
	"properties": {
		"events": {
			"type": "array",
			"minItems": 1,
			"items": {
				"type": "object",
				"required": ["id"],
				"properties": {
					"id": {"type": "string", "minLength": 1},
					"requirements": {"type": ["array", "null"], "items": {"type": "string"}}
				}
			}
		},
		"vendor": {
			"type": "object",
			"required": ["id"],
			"properties": {
				"id": {"type": "string", "minLength": 1},
				"services": {"type": ["array", "null"], "items": {"type": "string"}},
				"verified": {"type": "boolean"},
				"rating": {"type": "number"}
			}
		}
	}
}`)

// ValidateVariables checks raw job variables against the input schema.
func ValidateVariables(variables string) *validation.ValidationResult {
	return inputSchema.ValidateJSON(variables)
}
