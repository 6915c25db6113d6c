package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeminiModelMapping(t *testing.T) {
	assert.Equal(t, "gemini-2.5-flash", resolveModel("gemini-flash", geminiModels))
	assert.Equal(t, "gemini-2.5-pro", resolveModel("gemini-pro", geminiModels))
	assert.Equal(t, "gemini-2.0-flash", resolveModel("gemini-2.0-flash", geminiModels))
}

func TestBuildGeminiSchema(t *testing.T) {
	def := testQuestionSchema().Definition
	schema := buildGeminiSchema(def)

	assert.EqualValues(t, "OBJECT", schema.Type)
	require.Contains(t, schema.Properties, "questions")

	questions := schema.Properties["questions"]
	assert.EqualValues(t, "ARRAY", questions.Type)
	require.NotNil(t, questions.Items)
	assert.EqualValues(t, "OBJECT", questions.Items.Type)
	assert.EqualValues(t, "STRING", questions.Items.Properties["text"].Type)
	assert.EqualValues(t, "INTEGER", questions.Items.Properties["marks"].Type)
}

func TestBuildGeminiSchema_EnumAndRequired(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"difficulty": map[string]any{"type": "string", "enum": []any{"Easy", "Medium", "Hard"}},
		},
		"required": []any{"difficulty"},
	}
	schema := buildGeminiSchema(def)

	assert.Equal(t, []string{"Easy", "Medium", "Hard"}, schema.Properties["difficulty"].Enum)
	assert.Equal(t, []string{"difficulty"}, schema.Required)
}

func TestNewGeminiProvider_RequiresKey(t *testing.T) {
	_, err := NewGeminiProvider(context.Background(), GeminiConfig{})
	assert.Error(t, err)
}

func TestBuildGeminiSchema_StringRequired(t *testing.T) {
	schema := buildGeminiSchema(testQuestionSchema().Definition)
	assert.Equal(t, []string{"questions"}, schema.Required)
	assert.ElementsMatch(t, []string{"text", "marks"}, schema.Properties["questions"].Items.Required)
}
