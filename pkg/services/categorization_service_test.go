package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/greglas75/coding-ui-sub018/pkg/apperrors"
	"github.com/greglas75/coding-ui-sub018/pkg/llm"
	"github.com/greglas75/coding-ui-sub018/pkg/models"
)

func newTestCategorizer(
	answers *mockAnswerRepository,
	codes *mockCodeRepository,
	factory *llm.MockClientFactory,
	now time.Time,
) *categorizationService {
	svc := NewCategorizationService(answers, codes, factory, DefaultSuggestionTTL, "", zap.NewNop()).(*categorizationService)
	svc.now = func() time.Time { return now }
	return svc
}

func fixedAnswer(suggestions *models.AiSuggestionSet) (*models.Answer, *models.Category) {
	answer := &models.Answer{
		ID:          42,
		CategoryID:  7,
		Text:        "I always buy nike shoes",
		Status:      models.StatusUncategorized,
		Suggestions: suggestions,
	}
	category := &models.Category{ID: 7, Name: "Sportswear Brands"}
	return answer, category
}

func TestCategorize_ReusesFreshCache(t *testing.T) {
	now := time.Now()
	cached := &models.AiSuggestionSet{
		Suggestions: []models.AiCodeSuggestion{{CodeName: "Nike", Confidence: 0.9}},
		Model:       "gpt-4o-mini",
		GeneratedAt: now.Add(-1 * time.Hour),
	}
	answer, category := fixedAnswer(cached)

	answers := &mockAnswerRepository{
		getWithCategoryFunc: func(ctx context.Context, id int64) (*models.Answer, *models.Category, error) {
			return answer, category, nil
		},
	}
	factory := &llm.MockClientFactory{Client: llm.NewMockSuggestionClient()}
	svc := newTestCategorizer(answers, &mockCodeRepository{names: []string{"Nike"}}, factory, now)

	set, err := svc.Categorize(context.Background(), 42, false)
	require.NoError(t, err)
	assert.Equal(t, cached, set)
	assert.Zero(t, factory.CreateClientCalls, "fresh cache must not call the provider")
	assert.Zero(t, answers.updateCalls, "fresh cache must not rewrite storage")
}

func TestCategorize_RegeneratesStaleCache(t *testing.T) {
	now := time.Now()
	cached := &models.AiSuggestionSet{
		Suggestions: []models.AiCodeSuggestion{{CodeName: "Adidas", Confidence: 0.5}},
		GeneratedAt: now.Add(-25 * time.Hour),
	}
	answer, category := fixedAnswer(cached)

	var persisted *models.AiSuggestionSet
	answers := &mockAnswerRepository{
		getWithCategoryFunc: func(ctx context.Context, id int64) (*models.Answer, *models.Category, error) {
			return answer, category, nil
		},
		updateFunc: func(ctx context.Context, id int64, suggestions *models.AiSuggestionSet) error {
			persisted = suggestions
			return nil
		},
	}
	client := llm.NewMockSuggestionClient()
	client.GenerateFunc = func(ctx context.Context, req *llm.GenerateRequest) (*llm.GenerateResult, error) {
		return &llm.GenerateResult{
			Suggestions: []models.AiCodeSuggestion{{CodeName: "Nike", Confidence: 0.97, Reasoning: "brand mention"}},
		}, nil
	}
	factory := &llm.MockClientFactory{Client: client}
	svc := newTestCategorizer(answers, &mockCodeRepository{names: []string{"Adidas", "Nike"}}, factory, now)

	set, err := svc.Categorize(context.Background(), 42, false)
	require.NoError(t, err)
	require.NotNil(t, persisted)
	assert.Equal(t, persisted, set, "returned set must be the persisted one")
	require.Len(t, set.Suggestions, 1)
	assert.Equal(t, "Nike", set.Suggestions[0].CodeName)
	assert.Equal(t, now, set.GeneratedAt)
	assert.Equal(t, 1, client.GenerateCalls)
}

func TestCategorize_ForceBypassesFreshCache(t *testing.T) {
	now := time.Now()
	cached := &models.AiSuggestionSet{GeneratedAt: now.Add(-1 * time.Minute)}
	answer, category := fixedAnswer(cached)

	answers := &mockAnswerRepository{
		getWithCategoryFunc: func(ctx context.Context, id int64) (*models.Answer, *models.Category, error) {
			return answer, category, nil
		},
	}
	client := llm.NewMockSuggestionClient()
	factory := &llm.MockClientFactory{Client: client}
	svc := newTestCategorizer(answers, &mockCodeRepository{names: []string{"Nike"}}, factory, now)

	_, err := svc.Categorize(context.Background(), 42, true)
	require.NoError(t, err)
	assert.Equal(t, 1, client.GenerateCalls)
	assert.Equal(t, 1, answers.updateCalls)
}

func TestCategorize_AnswerNotFound(t *testing.T) {
	answers := &mockAnswerRepository{
		getWithCategoryFunc: func(ctx context.Context, id int64) (*models.Answer, *models.Category, error) {
			return nil, nil, apperrors.ErrNotFound
		},
	}
	svc := newTestCategorizer(answers, &mockCodeRepository{}, &llm.MockClientFactory{}, time.Now())

	_, err := svc.Categorize(context.Background(), 99, false)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCategorize_EmptyVocabularyPersistsEmptySet(t *testing.T) {
	now := time.Now()
	answer, category := fixedAnswer(nil)

	var persisted *models.AiSuggestionSet
	answers := &mockAnswerRepository{
		getWithCategoryFunc: func(ctx context.Context, id int64) (*models.Answer, *models.Category, error) {
			return answer, category, nil
		},
		updateFunc: func(ctx context.Context, id int64, suggestions *models.AiSuggestionSet) error {
			persisted = suggestions
			return nil
		},
	}
	factory := &llm.MockClientFactory{Client: llm.NewMockSuggestionClient()}
	svc := newTestCategorizer(answers, &mockCodeRepository{names: nil}, factory, now)

	set, err := svc.Categorize(context.Background(), 42, false)
	require.NoError(t, err)
	require.NotNil(t, persisted)
	assert.Empty(t, set.Suggestions)
	assert.Equal(t, now, set.GeneratedAt)
	assert.Zero(t, factory.CreateClientCalls, "no vocabulary means no provider call")
}

func TestCategorize_EmptyProviderResultIsValid(t *testing.T) {
	now := time.Now()
	answer, category := fixedAnswer(nil)

	answers := &mockAnswerRepository{
		getWithCategoryFunc: func(ctx context.Context, id int64) (*models.Answer, *models.Category, error) {
			return answer, category, nil
		},
	}
	client := llm.NewMockSuggestionClient()
	client.GenerateFunc = func(ctx context.Context, req *llm.GenerateRequest) (*llm.GenerateResult, error) {
		return &llm.GenerateResult{Suggestions: nil}, nil
	}
	svc := newTestCategorizer(answers, &mockCodeRepository{names: []string{"Nike"}}, &llm.MockClientFactory{Client: client}, now)

	set, err := svc.Categorize(context.Background(), 42, false)
	require.NoError(t, err)
	assert.NotNil(t, set.Suggestions)
	assert.Empty(t, set.Suggestions)
	assert.Equal(t, 1, answers.updateCalls, "empty result still gets persisted")
}

func TestCategorize_NoWriteOnProviderFailure(t *testing.T) {
	now := time.Now()
	answer, category := fixedAnswer(nil)

	answers := &mockAnswerRepository{
		getWithCategoryFunc: func(ctx context.Context, id int64) (*models.Answer, *models.Category, error) {
			return answer, category, nil
		},
	}
	client := llm.NewMockSuggestionClient()
	client.GenerateFunc = func(ctx context.Context, req *llm.GenerateRequest) (*llm.GenerateResult, error) {
		return nil, errors.New("upstream unavailable")
	}
	svc := newTestCategorizer(answers, &mockCodeRepository{names: []string{"Nike"}}, &llm.MockClientFactory{Client: client}, now)

	_, err := svc.Categorize(context.Background(), 42, false)
	require.Error(t, err)
	assert.Zero(t, answers.updateCalls, "failed generation must leave storage untouched")
}

func TestCategorize_NormalizationFiltersAndSorts(t *testing.T) {
	now := time.Now()
	answer, category := fixedAnswer(nil)

	answers := &mockAnswerRepository{
		getWithCategoryFunc: func(ctx context.Context, id int64) (*models.Answer, *models.Category, error) {
			return answer, category, nil
		},
	}
	client := llm.NewMockSuggestionClient()
	client.GenerateFunc = func(ctx context.Context, req *llm.GenerateRequest) (*llm.GenerateResult, error) {
		return &llm.GenerateResult{
			Suggestions: []models.AiCodeSuggestion{
				{CodeName: "adidas", Confidence: 0.6},  // case repaired to vocabulary
				{CodeName: "Puma", Confidence: 1.4},    // clamped to 1
				{CodeName: "Reebok", Confidence: 0.8},  // not in vocabulary, dropped
				{CodeName: "Nike", Confidence: -0.2},   // clamped to 0
			},
		}, nil
	}
	svc := newTestCategorizer(answers, &mockCodeRepository{names: []string{"Adidas", "Nike", "Puma"}}, &llm.MockClientFactory{Client: client}, now)

	set, err := svc.Categorize(context.Background(), 42, false)
	require.NoError(t, err)
	require.Len(t, set.Suggestions, 3)
	assert.Equal(t, "Puma", set.Suggestions[0].CodeName)
	assert.Equal(t, 1.0, set.Suggestions[0].Confidence)
	assert.Equal(t, "Adidas", set.Suggestions[1].CodeName)
	assert.Equal(t, "Nike", set.Suggestions[2].CodeName)
	assert.Equal(t, 0.0, set.Suggestions[2].Confidence)
}

func TestCategorize_RequestCarriesAnswerContext(t *testing.T) {
	now := time.Now()
	answer, category := fixedAnswer(nil)
	answer.TranslatedText = strPtr("I always buy Nike shoes")
	answer.Language = strPtr("pl")
	answer.Country = strPtr("Poland")
	category.CustomTemplate = strPtr("Pick the brand.")
	category.PresetName = strPtr("brand_tracking")

	answers := &mockAnswerRepository{
		getWithCategoryFunc: func(ctx context.Context, id int64) (*models.Answer, *models.Category, error) {
			return answer, category, nil
		},
	}
	client := llm.NewMockSuggestionClient()
	svc := newTestCategorizer(answers, &mockCodeRepository{names: []string{"Nike"}}, &llm.MockClientFactory{Client: client}, now)

	_, err := svc.Categorize(context.Background(), 42, false)
	require.NoError(t, err)
	require.NotNil(t, client.LastRequest)
	assert.Equal(t, "I always buy nike shoes", client.LastRequest.AnswerText)
	assert.Equal(t, "I always buy Nike shoes", client.LastRequest.AnswerTranslation)
	assert.Equal(t, "pl", client.LastRequest.Language)
	assert.Equal(t, "Poland", client.LastRequest.Country)
	assert.Equal(t, "Sportswear Brands", client.LastRequest.CategoryName)
	assert.Equal(t, "brand_tracking", client.LastRequest.PresetName)
	assert.Equal(t, "Pick the brand.", client.LastRequest.CustomTemplate)
	assert.Equal(t, []string{"Nike"}, client.LastRequest.Codes)
}

func TestCategorize_PersistFailurePropagates(t *testing.T) {
	now := time.Now()
	answer, category := fixedAnswer(nil)

	answers := &mockAnswerRepository{
		getWithCategoryFunc: func(ctx context.Context, id int64) (*models.Answer, *models.Category, error) {
			return answer, category, nil
		},
		updateFunc: func(ctx context.Context, id int64, suggestions *models.AiSuggestionSet) error {
			return errors.New("connection reset")
		},
	}
	svc := newTestCategorizer(answers, &mockCodeRepository{names: []string{"Nike"}}, &llm.MockClientFactory{Client: llm.NewMockSuggestionClient()}, now)

	_, err := svc.Categorize(context.Background(), 42, false)
	assert.ErrorContains(t, err, "persist suggestions")
}
