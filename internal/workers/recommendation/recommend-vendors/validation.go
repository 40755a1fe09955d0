package recommendvendors

import "eventhub-workers/internal/common/validation"

// Job variables carry the whole process scope, so unknown properties pass.
var inputSchema = validation.MustCompile(`{
	"type": "object",
	"required": ["eventIds"],
	"properties": {
		"eventIds": {
			"type": "array",
			"minItems": 1,
			"maxItems": 100,
			"items": {"type": "string"}
		},
		"limit": {
			"type": "integer",
			"minimum": 1,
			"maximum": 500
		},
		"minScore": {
			"type": "number",
			"minimum": 0,
			"maximum": 1
		}
	}
}`)

// ValidateVariables checks raw job variables against the input schema.
func ValidateVariables(variables string) *validation.ValidationResult {
	return inputSchema.ValidateJSON(variables)
}
