package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/greglas75/coding-ui-sub018/pkg/retry"
)

// ResilientClient wraps a SuggestionClient with retry and circuit breaker
// behavior. Retries apply only to transient failures; the breaker trips after
// sustained provider outages so batch runs fail fast instead of burning quota.
type ResilientClient struct {
	inner    SuggestionClient
	breaker  *CircuitBreaker
	retryCfg *retry.Config
	logger   *zap.Logger
}

// NewResilientClient wraps the given client. A nil breaker or retry config
// falls back to defaults.
func NewResilientClient(inner SuggestionClient, breaker *CircuitBreaker, retryCfg *retry.Config, logger *zap.Logger) *ResilientClient {
	if breaker == nil {
		breaker = NewCircuitBreaker(DefaultCircuitBreakerConfig())
	}
	if retryCfg == nil {
		retryCfg = retry.DefaultConfig()
	}
	return &ResilientClient{
		inner:    inner,
		breaker:  breaker,
		retryCfg: retryCfg,
		logger:   logger.Named("resilient"),
	}
}

// Generate implements SuggestionClient.
func (c *ResilientClient) Generate(ctx context.Context, req *GenerateRequest) (*GenerateResult, error) {
	// Check circuit breaker before attempting the provider call
	allowed, err := c.breaker.Allow()
	if !allowed {
		c.logger.Error("Circuit breaker prevented suggestion call",
			zap.String("model", c.inner.Model()),
			zap.String("circuit_state", c.breaker.State().String()),
			zap.Int("consecutive_failures", c.breaker.ConsecutiveFailures()),
			zap.Error(err))
		return nil, err
	}

	var result *GenerateResult
	err = retry.Do(ctx, c.retryCfg, func() error {
		var callErr error
		result, callErr = c.inner.Generate(ctx, req)
		if callErr != nil {
			classified := ClassifyError(callErr)
			if classified.Retryable {
				c.logger.Warn("Suggestion call failed, retrying",
					zap.String("model", c.inner.Model()),
					zap.String("error_type", string(classified.Type)),
					zap.Error(callErr))
				return classified
			}
			c.logger.Error("Suggestion call failed with non-retryable error",
				zap.String("model", c.inner.Model()),
				zap.String("error_type", string(classified.Type)),
				zap.Error(callErr))
			return classified
		}
		return nil
	})

	if err != nil {
		c.breaker.RecordFailure()
		c.logger.Error("Circuit breaker recorded failure",
			zap.String("circuit_state", c.breaker.State().String()),
			zap.Int("consecutive_failures", c.breaker.ConsecutiveFailures()))
		return nil, fmt.Errorf("suggestion call failed after retries: %w", err)
	}

	c.breaker.RecordSuccess()
	return result, nil
}

// Model implements SuggestionClient.
func (c *ResilientClient) Model() string {
	return c.inner.Model()
}

var _ SuggestionClient = (*ResilientClient)(nil)
