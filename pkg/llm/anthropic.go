package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/liushuangls/go-anthropic/v2"
	"go.uber.org/zap"

	"github.com/greglas75/coding-ui-sub018/pkg/prompts"
)

// anthropicMaxTokens bounds the response size; a ranked suggestion list is
// small.
const anthropicMaxTokens = 1024

// AnthropicClient provides suggestion generation via the Anthropic Messages
// API.
type AnthropicClient struct {
	client *anthropic.Client
	model  string
	logger *zap.Logger
}

// NewAnthropicClient creates a suggestion client for a Claude model.
func NewAnthropicClient(apiKey, model string, logger *zap.Logger) (*AnthropicClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("anthropic api key is required")
	}
	if model == "" {
		return nil, fmt.Errorf("model is required")
	}

	return &AnthropicClient{
		client: anthropic.NewClient(apiKey),
		model:  model,
		logger: logger.Named("anthropic"),
	}, nil
}

// Generate implements SuggestionClient.
func (c *AnthropicClient) Generate(ctx context.Context, req *GenerateRequest) (*GenerateResult, error) {
	prompt := buildPrompt(req)

	c.logger.Debug("Suggestion request",
		zap.String("model", c.model),
		zap.String("category", req.CategoryName),
		zap.Int("codes", len(req.Codes)))

	start := time.Now()

	resp, err := c.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:     anthropic.Model(c.model),
		System:    prompts.SystemPrompt,
		MaxTokens: anthropicMaxTokens,
		Messages: []anthropic.Message{
			{Role: anthropic.RoleUser, Content: []anthropic.MessageContent{
				{Type: "text", Text: &prompt},
			}},
		},
	})
	if err != nil {
		c.logger.Error("Suggestion request failed",
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return nil, c.classify(err)
	}

	text := firstTextContent(resp.Content)
	if text == "" {
		return nil, NewError(ErrorTypeResponse, "no text content in response", false, nil)
	}

	suggestions, err := ParseSuggestionResponse(text)
	if err != nil {
		return nil, err
	}

	c.logger.Info("Suggestion request completed",
		zap.Int("suggestions", len(suggestions)),
		zap.Duration("elapsed", time.Since(start)))

	return &GenerateResult{Suggestions: suggestions}, nil
}

// Model implements SuggestionClient.
func (c *AnthropicClient) Model() string {
	return c.model
}

func (c *AnthropicClient) classify(err error) error {
	classified := ClassifyError(err)
	classified.Model = c.model
	return classified
}

// firstTextContent returns the first text block of a messages response.
func firstTextContent(content []anthropic.MessageContent) string {
	for _, block := range content {
		if block.Text != nil {
			return *block.Text
		}
	}
	return ""
}

// Ensure AnthropicClient implements SuggestionClient at compile time.
var _ SuggestionClient = (*AnthropicClient)(nil)
