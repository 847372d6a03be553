// Package llm implements the suggestion engine clients: provider-backed
// generation of ranked code suggestions for survey answers.
package llm

import (
	"context"

	"github.com/greglas75/coding-ui-sub018/pkg/models"
)

// GenerateRequest carries everything needed for one suggestion-generation
// call. AnswerTranslation, VisionModel, Language, and Country are optional;
// CustomTemplate overrides the preset's template when set.
type GenerateRequest struct {
	AnswerText        string
	AnswerTranslation string
	CategoryName      string
	PresetName        string
	CustomTemplate    string
	Model             string
	VisionModel       string
	Codes             []string
	Language          string
	Country           string
}

// GenerateResult is the normalized provider response. An empty suggestion
// list is a valid outcome, not an error.
type GenerateResult struct {
	Suggestions []models.AiCodeSuggestion
	WebContext  []models.WebSnippet
	Images      []models.ImageResult
}

// SuggestionClient generates ranked code suggestions for one answer.
// Use this interface for dependency injection to enable mocking in tests.
type SuggestionClient interface {
	// Generate performs one suggestion-generation call. Transport, quota,
	// and provider-side failures surface as a classified *Error.
	Generate(ctx context.Context, req *GenerateRequest) (*GenerateResult, error)

	// Model returns the model identifier this client calls.
	Model() string
}

// SuggestionClientFactory creates suggestion clients for a model name.
// Use this interface for dependency injection and testing.
type SuggestionClientFactory interface {
	CreateClient(model string) (SuggestionClient, error)
}
