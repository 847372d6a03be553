package llm

import (
	"context"
)

// MockSuggestionClient is a configurable mock for testing suggestion
// orchestration. Set the function fields to control behavior in tests.
type MockSuggestionClient struct {
	// GenerateFunc is called when Generate is invoked.
	// If nil, returns an empty result and nil error.
	GenerateFunc func(ctx context.Context, req *GenerateRequest) (*GenerateResult, error)

	// ModelName is returned by Model. Defaults to "mock-model".
	ModelName string

	// Call tracking for verification
	GenerateCalls int
	LastRequest   *GenerateRequest
}

// NewMockSuggestionClient creates a new mock with sensible defaults.
func NewMockSuggestionClient() *MockSuggestionClient {
	return &MockSuggestionClient{
		ModelName: "mock-model",
	}
}

// Generate implements SuggestionClient.
func (m *MockSuggestionClient) Generate(ctx context.Context, req *GenerateRequest) (*GenerateResult, error) {
	m.GenerateCalls++
	m.LastRequest = req
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, req)
	}
	return &GenerateResult{}, nil
}

// Model implements SuggestionClient.
func (m *MockSuggestionClient) Model() string {
	if m.ModelName == "" {
		return "mock-model"
	}
	return m.ModelName
}

// MockClientFactory returns a fixed client from CreateClient.
// Set CreateClientFunc for per-model behavior.
type MockClientFactory struct {
	// Client is returned when CreateClientFunc is nil.
	Client SuggestionClient

	// CreateClientFunc is called when CreateClient is invoked.
	CreateClientFunc func(model string) (SuggestionClient, error)

	// Call tracking for verification
	CreateClientCalls int
	LastModel         string
}

// CreateClient implements SuggestionClientFactory.
func (m *MockClientFactory) CreateClient(model string) (SuggestionClient, error) {
	m.CreateClientCalls++
	m.LastModel = model
	if m.CreateClientFunc != nil {
		return m.CreateClientFunc(model)
	}
	return m.Client, nil
}

var (
	_ SuggestionClient        = (*MockSuggestionClient)(nil)
	_ SuggestionClientFactory = (*MockClientFactory)(nil)
)
