package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/greglas75/coding-ui-sub018/pkg/prompts"
)

// OpenAIClient provides suggestion generation via OpenAI-compatible chat
// completion endpoints.
type OpenAIClient struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

// NewOpenAIClient creates a suggestion client for an OpenAI model.
func NewOpenAIClient(apiKey, model string, logger *zap.Logger) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}
	if model == "" {
		return nil, fmt.Errorf("model is required")
	}

	return &OpenAIClient{
		client: openai.NewClient(apiKey),
		model:  model,
		logger: logger.Named("openai"),
	}, nil
}

// Generate implements SuggestionClient.
func (c *OpenAIClient) Generate(ctx context.Context, req *GenerateRequest) (*GenerateResult, error) {
	prompt := buildPrompt(req)

	c.logger.Debug("Suggestion request",
		zap.String("model", c.model),
		zap.String("category", req.CategoryName),
		zap.Int("codes", len(req.Codes)))

	start := time.Now()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompts.SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: generationTemperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		c.logger.Error("Suggestion request failed",
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return nil, c.classify(err)
	}

	if len(resp.Choices) == 0 {
		return nil, NewError(ErrorTypeResponse, "no choices in response", false, nil)
	}

	suggestions, err := ParseSuggestionResponse(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}

	c.logger.Info("Suggestion request completed",
		zap.Int("suggestions", len(suggestions)),
		zap.Int("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int("completion_tokens", resp.Usage.CompletionTokens),
		zap.Duration("elapsed", time.Since(start)))

	return &GenerateResult{Suggestions: suggestions}, nil
}

// Model implements SuggestionClient.
func (c *OpenAIClient) Model() string {
	return c.model
}

func (c *OpenAIClient) classify(err error) error {
	classified := ClassifyError(err)
	classified.Model = c.model
	return classified
}

// Ensure OpenAIClient implements SuggestionClient at compile time.
var _ SuggestionClient = (*OpenAIClient)(nil)
