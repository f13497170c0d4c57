// internal/common/validation/schema_test.go
package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const answerSchema = `{
	"type": "object",
	"required": ["sessionId", "answerText"],
	"properties": {
		"sessionId": {"type": "string", "minLength": 1},
		"answerText": {"type": "string"},
		"responseTimeSeconds": {"type": "number", "minimum": 0},
		"answerMode": {"type": "string", "enum": ["text", "voice"]}
	}
}`

type recipient struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"max=5"`
}

// ==========================
// Schema Tests
// ==========================

func TestSchema_Validate(t *testing.T) {
	schema := MustCompileSchema(answerSchema)

	tests := []struct {
		name     string
		data     map[string]interface{}
		valid    bool
		errField string
	}{
		{
			name:  "valid",
			data:  map[string]interface{}{"sessionId": "s-1", "answerText": "hello", "responseTimeSeconds": 12.5},
			valid: true,
		},
		{
			name:     "missing required",
			data:     map[string]interface{}{"sessionId": "s-1"},
			errField: "answerText",
		},
		{
			name:     "negative response time",
			data:     map[string]interface{}{"sessionId": "s-1", "answerText": "", "responseTimeSeconds": -1},
			errField: "responseTimeSeconds",
		},
		{
			name:     "bad mode",
			data:     map[string]interface{}{"sessionId": "s-1", "answerText": "", "answerMode": "video"},
			errField: "answerMode",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := schema.Validate(tt.data)
			assert.Equal(t, tt.valid, result.Valid)
			if !tt.valid {
				assert.True(t, result.HasErrors(tt.errField), "errors: %v", result.GetErrorMessages())
			}
		})
	}
}

func TestSchema_ValidateJSON_Malformed(t *testing.T) {
	result := MustCompileSchema(answerSchema).ValidateJSON(`{"sessionId":`)
	assert.False(t, result.Valid)
	assert.NotEmpty(t, result.Error())
}

func TestCompileSchema_Invalid(t *testing.T) {
	_, err := CompileSchema(`{"type": 12}`)
	assert.Error(t, err)
}

func TestDecode(t *testing.T) {
	schema := MustCompileSchema(answerSchema)

	var out struct {
		SessionID  string `json:"sessionId"`
		AnswerText string `json:"answerText"`
	}
	result := Decode(schema, `{"sessionId":"s-9","answerText":"I like Go"}`, &out)
	require.True(t, result.Valid, result.Error())
	assert.Equal(t, "s-9", out.SessionID)
	assert.Equal(t, "I like Go", out.AnswerText)
}

// ==========================
// Struct Tag Tests
// ==========================

func TestValidateStruct(t *testing.T) {
	assert.True(t, ValidateStruct(recipient{Email: "a@b.io"}).Valid)

	result := ValidateStruct(recipient{Email: "nope", Name: "toolong"})
	assert.False(t, result.Valid)
	assert.True(t, result.HasErrors("email"))
	assert.True(t, result.HasErrors("name"))
}

func TestValidateEmail(t *testing.T) {
	assert.True(t, ValidateEmail("candidate@example.com"))
	assert.False(t, ValidateEmail("candidate"))
	assert.False(t, ValidateEmail(""))
}
