package llm

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/greglas75/coding-ui-sub018/pkg/config"
	"github.com/greglas75/coding-ui-sub018/pkg/retry"
)

// ClientFactory creates suggestion clients based on the requested model name.
// Models with a "claude-" prefix route to Anthropic; everything else goes to
// OpenAI. Created clients are cached per model so the circuit breaker state is
// shared across calls for the same provider/model pair.
type ClientFactory struct {
	cfg    config.AIConfig
	logger *zap.Logger

	mu      sync.Mutex
	clients map[string]SuggestionClient
}

// NewClientFactory creates a new factory.
func NewClientFactory(cfg config.AIConfig, logger *zap.Logger) *ClientFactory {
	return &ClientFactory{
		cfg:     cfg,
		logger:  logger,
		clients: make(map[string]SuggestionClient),
	}
}

// CreateClient returns a resilient suggestion client for the given model.
// An empty model name resolves to the configured default.
func (f *ClientFactory) CreateClient(model string) (SuggestionClient, error) {
	if model == "" {
		model = f.cfg.DefaultModel
	}
	if model == "" {
		return nil, fmt.Errorf("no model specified and no default configured")
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if client, ok := f.clients[model]; ok {
		return client, nil
	}

	inner, err := f.createProviderClient(model)
	if err != nil {
		return nil, err
	}

	retryCfg := retry.DefaultConfig()
	retryCfg.MaxRetries = f.cfg.MaxRetries

	client := NewResilientClient(inner,
		NewCircuitBreaker(DefaultCircuitBreakerConfig()),
		retryCfg,
		f.logger)

	f.clients[model] = client
	return client, nil
}

func (f *ClientFactory) createProviderClient(model string) (SuggestionClient, error) {
	if strings.HasPrefix(model, "claude-") {
		client, err := NewAnthropicClient(f.cfg.AnthropicAPIKey, model, f.logger)
		if err != nil {
			return nil, fmt.Errorf("create anthropic client: %w", err)
		}
		return client, nil
	}

	client, err := NewOpenAIClient(f.cfg.OpenAIAPIKey, model, f.logger)
	if err != nil {
		return nil, fmt.Errorf("create openai client: %w", err)
	}
	return client, nil
}

// Ensure ClientFactory implements SuggestionClientFactory at compile time.
var _ SuggestionClientFactory = (*ClientFactory)(nil)
