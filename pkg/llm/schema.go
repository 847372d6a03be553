package llm

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/greglas75/coding-ui-sub018/pkg/models"
)

// suggestionPayload is the wire shape providers are prompted to return.
type suggestionPayload struct {
	Suggestions []struct {
		CodeName   string  `json:"code_name"`
		Confidence float64 `json:"confidence"`
		Reasoning  string  `json:"reasoning"`
	} `json:"suggestions"`
}

// suggestionSchema constrains the provider response before decoding.
// Code names are not enum-constrained here: near-miss casing is repaired
// against the vocabulary during normalization instead of rejecting the
// whole set.
func suggestionSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"required":             []string{"suggestions"},
		"properties": map[string]any{
			"suggestions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":                 "object",
					"additionalProperties": false,
					"required":             []string{"code_name", "confidence"},
					"properties": map[string]any{
						"code_name":  map[string]any{"type": "string", "minLength": 1},
						"confidence": map[string]any{"type": "number", "minimum": 0.0, "maximum": 1.0},
						"reasoning":  map[string]any{"type": "string"},
					},
				},
			},
		},
	}
}

var compiledSuggestionSchema = mustCompileSchema(suggestionSchema())

func mustCompileSchema(schemaMap map[string]any) *jsonschema.Schema {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		panic(fmt.Sprintf("llm: marshal suggestion schema: %v", err))
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("suggestions.json", bytes.NewReader(b)); err != nil {
		panic(fmt.Sprintf("llm: add suggestion schema: %v", err))
	}
	schema, err := compiler.Compile("suggestions.json")
	if err != nil {
		panic(fmt.Sprintf("llm: compile suggestion schema: %v", err))
	}
	return schema
}

// ParseSuggestionResponse extracts, validates, and decodes a provider
// response into ranked suggestions. A payload with zero entries decodes to
// an empty slice: absence of suggestions is a valid outcome.
func ParseSuggestionResponse(responseText string) ([]models.AiCodeSuggestion, error) {
	jsonStr, err := ExtractJSON(responseText)
	if err != nil {
		return nil, NewError(ErrorTypeResponse, "malformed response", false, err)
	}

	var v any
	if err := json.Unmarshal([]byte(jsonStr), &v); err != nil {
		return nil, NewError(ErrorTypeResponse, "malformed response", false, err)
	}
	if err := compiledSuggestionSchema.Validate(v); err != nil {
		return nil, NewError(ErrorTypeResponse, "response does not match suggestion schema", false, err)
	}

	var payload suggestionPayload
	if err := json.Unmarshal([]byte(jsonStr), &payload); err != nil {
		return nil, NewError(ErrorTypeResponse, "decode response", false, err)
	}

	suggestions := make([]models.AiCodeSuggestion, 0, len(payload.Suggestions))
	for _, s := range payload.Suggestions {
		suggestions = append(suggestions, models.AiCodeSuggestion{
			CodeName:   s.CodeName,
			Confidence: s.Confidence,
			Reasoning:  s.Reasoning,
		})
	}
	return suggestions, nil
}
