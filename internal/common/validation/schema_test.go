package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `{
	"type": "object",
	"required": ["eventIds"],
	"properties": {
		"eventIds": {"type": "array", "items": {"type": "string"}},
		"limit": {"type": "integer", "minimum": 1, "maximum": 200}
	}
}`

func TestSchema_ValidateJSON(t *testing.T) {
	s := MustCompile(testSchema)

	tests := []struct {
		name      string
		document  string
		valid     bool
		errorPath string
	}{
		{"valid", `{"eventIds": ["e1", "e2"], "limit": 10}`, true, ""},
		{"missing ids", `{"limit": 10}`, false, "(root)"},
		{"wrong item type", `{"eventIds": [1]}`, false, "eventIds.0"},
		{"limit too large", `{"eventIds": [], "limit": 500}`, false, "limit"},
		{"not json", `{eventIds`, false, "(root)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := s.ValidateJSON(tt.document)
			assert.Equal(t, tt.valid, result.Valid)
			if !tt.valid {
				require.NotEmpty(t, result.Errors)
				assert.True(t, result.HasErrors(tt.errorPath), "errors: %v", result.GetErrorMessages())
			}
		})
	}
}

func TestSchema_ValidateInput(t *testing.T) {
	s := MustCompile(testSchema)

	result := s.ValidateInput(map[string]interface{}{"eventIds": []string{"e1"}})
	assert.True(t, result.Valid)

	result = s.ValidateInput(map[string]interface{}{"eventIds": "e1"})
	assert.False(t, result.Valid)
	assert.Len(t, result.GetErrorsForField("eventIds"), 1)
}

func TestCompile_BadSchema(t *testing.T) {
	_, err := Compile(`{"type": 12}`)
	assert.Error(t, err)
	assert.Panics(t, func() { MustCompile(`not a schema`) })
}
