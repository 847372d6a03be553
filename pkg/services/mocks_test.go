package services

import (
	"context"
	"time"

	"github.com/greglas75/coding-ui-sub018/pkg/models"
)

// mockAnswerRepository is a configurable in-memory AnswerRepository.
type mockAnswerRepository struct {
	getWithCategoryFunc func(ctx context.Context, id int64) (*models.Answer, *models.Category, error)
	getFunc             func(ctx context.Context, id int64) (*models.Answer, error)
	updateFunc          func(ctx context.Context, id int64, suggestions *models.AiSuggestionSet) error
	queryUncatFunc      func(ctx context.Context, categoryID int64, limit int) ([]*models.Answer, error)
	queryHighConfFunc   func(ctx context.Context, categoryID *int64, minConfidence float64, limit int) ([]models.HighConfidenceCandidate, error)
	confirmFunc         func(ctx context.Context, id int64, code, actor string, confirmedAt time.Time) error

	updateCalls  int
	confirmCalls int
}

func (m *mockAnswerRepository) Get(ctx context.Context, id int64) (*models.Answer, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockAnswerRepository) GetWithCategory(ctx context.Context, id int64) (*models.Answer, *models.Category, error) {
	if m.getWithCategoryFunc != nil {
		return m.getWithCategoryFunc(ctx, id)
	}
	return nil, nil, nil
}

func (m *mockAnswerRepository) UpdateSuggestions(ctx context.Context, id int64, suggestions *models.AiSuggestionSet) error {
	m.updateCalls++
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, suggestions)
	}
	return nil
}

func (m *mockAnswerRepository) QueryUncategorized(ctx context.Context, categoryID int64, limit int) ([]*models.Answer, error) {
	if m.queryUncatFunc != nil {
		return m.queryUncatFunc(ctx, categoryID, limit)
	}
	return nil, nil
}

func (m *mockAnswerRepository) QueryHighConfidence(ctx context.Context, categoryID *int64, minConfidence float64, limit int) ([]models.HighConfidenceCandidate, error) {
	if m.queryHighConfFunc != nil {
		return m.queryHighConfFunc(ctx, categoryID, minConfidence, limit)
	}
	return nil, nil
}

func (m *mockAnswerRepository) Confirm(ctx context.Context, id int64, code, actor string, confirmedAt time.Time) error {
	m.confirmCalls++
	if m.confirmFunc != nil {
		return m.confirmFunc(ctx, id, code, actor, confirmedAt)
	}
	return nil
}

// mockCategoryRepository is a configurable in-memory CategoryRepository.
type mockCategoryRepository struct {
	getFunc  func(ctx context.Context, id int64) (*models.Category, error)
	listFunc func(ctx context.Context) ([]*models.Category, error)
}

func (m *mockCategoryRepository) Get(ctx context.Context, id int64) (*models.Category, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockCategoryRepository) List(ctx context.Context) ([]*models.Category, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, nil
}

// mockCodeRepository serves a fixed vocabulary.
type mockCodeRepository struct {
	names     []string
	listErr   error
	listCalls int
}

func (m *mockCodeRepository) ListForCategory(ctx context.Context, categoryID int64) ([]models.Code, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	codes := make([]models.Code, 0, len(m.names))
	for i, name := range m.names {
		codes = append(codes, models.Code{ID: int64(i + 1), Name: name})
	}
	return codes, nil
}

func (m *mockCodeRepository) ListNamesForCategory(ctx context.Context, categoryID int64) ([]string, error) {
	m.listCalls++
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.names, nil
}

// mockAuditRepository collects entries in memory.
type mockAuditRepository struct {
	entries   []*models.AuditLogEntry
	createErr error
}

func (m *mockAuditRepository) Create(ctx context.Context, entry *models.AuditLogEntry) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.entries = append(m.entries, entry)
	return nil
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }
