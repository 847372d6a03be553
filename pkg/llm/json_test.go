package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON_PlainObject(t *testing.T) {
	result, err := ExtractJSON(`{"suggestions": []}`)
	require.NoError(t, err)
	assert.Equal(t, `{"suggestions": []}`, result)
}

func TestExtractJSON_MarkdownFences(t *testing.T) {
	response := "```json\n{\"suggestions\": [{\"code_name\": \"Nike\"}]}\n```"
	result, err := ExtractJSON(response)
	require.NoError(t, err)
	assert.Equal(t, `{"suggestions": [{"code_name": "Nike"}]}`, result)
}

func TestExtractJSON_SurroundingProse(t *testing.T) {
	response := `Here are the suggestions you asked for: {"suggestions": []} Hope that helps!`
	result, err := ExtractJSON(response)
	require.NoError(t, err)
	assert.Equal(t, `{"suggestions": []}`, result)
}

func TestExtractJSON_NestedObjects(t *testing.T) {
	response := `{"a": {"b": {"c": 1}}, "d": [1, 2]}`
	result, err := ExtractJSON(response)
	require.NoError(t, err)
	assert.Equal(t, response, result)
}

func TestExtractJSON_BracesInsideStrings(t *testing.T) {
	response := `{"reasoning": "matches the pattern {brand}"}`
	result, err := ExtractJSON(response)
	require.NoError(t, err)
	assert.Equal(t, response, result)
}

func TestExtractJSON_EscapedQuotesInsideStrings(t *testing.T) {
	response := `{"reasoning": "the answer says \"nike\" twice"}`
	result, err := ExtractJSON(response)
	require.NoError(t, err)
	assert.Equal(t, response, result)
}

func TestExtractJSON_Array(t *testing.T) {
	result, err := ExtractJSON(`some text [1, 2, 3] more text`)
	require.NoError(t, err)
	assert.Equal(t, `[1, 2, 3]`, result)
}

func TestExtractJSON_ObjectBeforeArray(t *testing.T) {
	result, err := ExtractJSON(`{"a": 1} and [2]`)
	require.NoError(t, err)
	assert.Equal(t, `{"a": 1}`, result)
}

func TestExtractJSON_NoJSON(t *testing.T) {
	_, err := ExtractJSON("I could not produce any suggestions.")
	assert.Error(t, err)
}

func TestExtractJSON_UnbalancedBraces(t *testing.T) {
	_, err := ExtractJSON(`{"suggestions": [`)
	assert.Error(t, err)
}
