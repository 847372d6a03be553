package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/greglas75/coding-ui-sub018/pkg/llm"
	"github.com/greglas75/coding-ui-sub018/pkg/models"
	"github.com/greglas75/coding-ui-sub018/pkg/repositories"
)

// CategorizationService generates and caches AI code suggestions for single
// answers.
type CategorizationService interface {
	// Categorize returns the suggestion set for an answer, generating a new
	// one when the cache is missing or stale. force bypasses the freshness
	// check. The returned set is always the persisted state: on any upstream
	// failure nothing is written and the stored state is untouched.
	Categorize(ctx context.Context, answerID int64, force bool) (*models.AiSuggestionSet, error)
}

type categorizationService struct {
	answers      repositories.AnswerRepository
	codes        repositories.CodeRepository
	factory      llm.SuggestionClientFactory
	ttl          time.Duration
	defaultModel string
	logger       *zap.Logger

	// now is swappable in tests to pin the freshness clock.
	now func() time.Time
}

// NewCategorizationService creates a new categorization service. A
// non-positive ttl falls back to DefaultSuggestionTTL; an empty defaultModel
// falls back to DefaultModel.
func NewCategorizationService(
	answers repositories.AnswerRepository,
	codes repositories.CodeRepository,
	factory llm.SuggestionClientFactory,
	ttl time.Duration,
	defaultModel string,
	logger *zap.Logger,
) CategorizationService {
	if ttl <= 0 {
		ttl = DefaultSuggestionTTL
	}
	return &categorizationService{
		answers:      answers,
		codes:        codes,
		factory:      factory,
		ttl:          ttl,
		defaultModel: defaultModel,
		logger:       logger.Named("categorization"),
		now:          time.Now,
	}
}

func (s *categorizationService) Categorize(ctx context.Context, answerID int64, force bool) (*models.AiSuggestionSet, error) {
	answer, category, err := s.answers.GetWithCategory(ctx, answerID)
	if err != nil {
		return nil, fmt.Errorf("load answer %d: %w", answerID, err)
	}

	decision := EvaluateCache(answer.Suggestions, s.now(), force, s.ttl)
	if decision == CacheFresh {
		s.logger.Debug("Reusing cached suggestions",
			zap.Int64("answer_id", answerID),
			zap.Time("generated_at", answer.Suggestions.GeneratedAt))
		return answer.Suggestions, nil
	}

	cfg := ResolveCategoryConfig(category, s.defaultModel)

	vocabulary, err := s.codes.ListNamesForCategory(ctx, category.ID)
	if err != nil {
		return nil, fmt.Errorf("load vocabulary for category %d: %w", category.ID, err)
	}

	generatedAt := s.now()
	set := &models.AiSuggestionSet{
		Suggestions: []models.AiCodeSuggestion{},
		Model:       cfg.Model,
		GeneratedAt: generatedAt,
		PresetUsed:  cfg.PresetName,
	}

	// An empty vocabulary yields a valid empty set: there is nothing to code
	// into, and persisting the empty result keeps the cache gate working.
	if len(vocabulary) > 0 {
		client, err := s.factory.CreateClient(cfg.Model)
		if err != nil {
			return nil, fmt.Errorf("create suggestion client: %w", err)
		}

		req := &llm.GenerateRequest{
			AnswerText:     answer.Text,
			CategoryName:   category.Name,
			PresetName:     cfg.PresetName,
			CustomTemplate: templateOverride(category, cfg),
			Model:          cfg.Model,
			VisionModel:    cfg.VisionModel,
			Codes:          vocabulary,
		}
		if answer.TranslatedText != nil {
			req.AnswerTranslation = *answer.TranslatedText
		}
		if answer.Language != nil {
			req.Language = *answer.Language
		}
		if answer.Country != nil {
			req.Country = *answer.Country
		}

		result, err := client.Generate(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("generate suggestions for answer %d: %w", answerID, err)
		}

		set.Suggestions = normalizeSuggestions(result.Suggestions, vocabulary)
		set.WebContext = result.WebContext
		set.Images = result.Images
	}

	if err := s.answers.UpdateSuggestions(ctx, answerID, set); err != nil {
		return nil, fmt.Errorf("persist suggestions for answer %d: %w", answerID, err)
	}

	s.logger.Info("Suggestions generated",
		zap.Int64("answer_id", answerID),
		zap.String("model", set.Model),
		zap.String("preset", set.PresetUsed),
		zap.Int("suggestions", len(set.Suggestions)),
		zap.String("cache_decision", decision.String()))

	return set, nil
}

// templateOverride returns the category's custom template only when the
// resolved template actually diverged from the preset, so the provider layer
// can keep using the preset path otherwise.
func templateOverride(category *models.Category, cfg models.CategoryConfig) string {
	if category.CustomTemplate != nil && *category.CustomTemplate != "" {
		return cfg.Template
	}
	return ""
}

// normalizeSuggestions produces the canonical stored form of a provider
// result: confidence clamped to [0,1], code names restricted to the
// vocabulary (case-insensitive match, canonical spelling restored), ordered
// by descending confidence. Order ties keep provider order.
func normalizeSuggestions(raw []models.AiCodeSuggestion, vocabulary []string) []models.AiCodeSuggestion {
	canonical := make(map[string]string, len(vocabulary))
	for _, name := range vocabulary {
		canonical[strings.ToLower(name)] = name
	}

	normalized := make([]models.AiCodeSuggestion, 0, len(raw))
	for _, s := range raw {
		name, ok := canonical[strings.ToLower(strings.TrimSpace(s.CodeName))]
		if !ok {
			continue
		}
		if s.Confidence < 0 {
			s.Confidence = 0
		}
		if s.Confidence > 1 {
			s.Confidence = 1
		}
		s.CodeName = name
		normalized = append(normalized, s)
	}

	sort.SliceStable(normalized, func(i, j int) bool {
		return normalized[i].Confidence > normalized[j].Confidence
	})
	return normalized
}

var _ CategorizationService = (*categorizationService)(nil)
