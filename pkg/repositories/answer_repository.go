// Package repositories contains PostgreSQL data access for the coding engine.
package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/greglas75/coding-ui-sub018/pkg/apperrors"
	"github.com/greglas75/coding-ui-sub018/pkg/database"
	"github.com/greglas75/coding-ui-sub018/pkg/models"
)

// AnswerRepository defines the interface for answer data access.
type AnswerRepository interface {
	// Get retrieves an answer by ID.
	Get(ctx context.Context, id int64) (*models.Answer, error)
	// GetWithCategory retrieves an answer together with its category in one
	// round trip.
	GetWithCategory(ctx context.Context, id int64) (*models.Answer, *models.Category, error)
	// UpdateSuggestions persists a suggestion set and the mirrored top code
	// name in a single update so the two columns never diverge.
	UpdateSuggestions(ctx context.Context, id int64, suggestions *models.AiSuggestionSet) error
	// QueryUncategorized returns answers in a category with no selected code
	// and no cached suggestions, up to limit.
	QueryUncategorized(ctx context.Context, categoryID int64, limit int) ([]*models.Answer, error)
	// QueryHighConfidence returns uncoded answers whose top suggestion meets
	// the confidence cutoff, best first. A nil categoryID spans all categories.
	QueryHighConfidence(ctx context.Context, categoryID *int64, minConfidence float64, limit int) ([]models.HighConfidenceCandidate, error)
	// Confirm marks an answer as confirmed with the given code and actor.
	Confirm(ctx context.Context, id int64, code, actor string, confirmedAt time.Time) error
}

// answerRepository implements AnswerRepository using PostgreSQL.
type answerRepository struct {
	db *database.DB
}

// NewAnswerRepository creates a new answer repository.
func NewAnswerRepository(db *database.DB) AnswerRepository {
	return &answerRepository{db: db}
}

const answerColumns = `
	id, category_id, answer_text, translation_en, language, country,
	selected_code, COALESCE(general_status, ''), ai_suggestions, ai_suggested_code,
	coding_date, confirmed_by, created_at, updated_at`

func (r *answerRepository) Get(ctx context.Context, id int64) (*models.Answer, error) {
	query := `
		SELECT` + answerColumns + `
		FROM answers
		WHERE id = $1`

	answer, err := scanAnswer(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get answer: %w", err)
	}
	return answer, nil
}

func (r *answerRepository) GetWithCategory(ctx context.Context, id int64) (*models.Answer, *models.Category, error) {
	query := `
		SELECT a.id, a.category_id, a.answer_text, a.translation_en, a.language, a.country,
		       a.selected_code, COALESCE(a.general_status, ''), a.ai_suggestions, a.ai_suggested_code,
		       a.coding_date, a.confirmed_by, a.created_at, a.updated_at,
		       c.id, c.name, c.preset_name, c.custom_template, c.model, c.vision_model,
		       c.use_web_context, c.created_at
		FROM answers a
		JOIN categories c ON c.id = a.category_id
		WHERE a.id = $1`

	var answer models.Answer
	var category models.Category
	var rawStatus string
	var rawSuggestions []byte

	err := r.db.QueryRow(ctx, query, id).Scan(
		&answer.ID,
		&answer.CategoryID,
		&answer.Text,
		&answer.TranslatedText,
		&answer.Language,
		&answer.Country,
		&answer.SelectedCode,
		&rawStatus,
		&rawSuggestions,
		&answer.SuggestedCode,
		&answer.CodedAt,
		&answer.CodedBy,
		&answer.CreatedAt,
		&answer.UpdatedAt,
		&category.ID,
		&category.Name,
		&category.PresetName,
		&category.CustomTemplate,
		&category.Model,
		&category.VisionModel,
		&category.UseWebContext,
		&category.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.ErrNotFound
		}
		return nil, nil, fmt.Errorf("failed to get answer with category: %w", err)
	}

	status, err := models.ParseAnswerStatus(rawStatus)
	if err != nil {
		return nil, nil, fmt.Errorf("answer %d: %w", answer.ID, err)
	}
	answer.Status = status

	if len(rawSuggestions) > 0 {
		var set models.AiSuggestionSet
		if err := json.Unmarshal(rawSuggestions, &set); err != nil {
			return nil, nil, fmt.Errorf("answer %d: failed to unmarshal suggestions: %w", answer.ID, err)
		}
		answer.Suggestions = &set
	}

	return &answer, &category, nil
}

func (r *answerRepository) UpdateSuggestions(ctx context.Context, id int64, suggestions *models.AiSuggestionSet) error {
	payload, err := json.Marshal(suggestions)
	if err != nil {
		return fmt.Errorf("failed to marshal suggestions: %w", err)
	}

	query := `
		UPDATE answers
		SET ai_suggestions = $2,
		    ai_suggested_code = $3,
		    updated_at = NOW()
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id, payload, suggestions.TopCodeName())
	if err != nil {
		return fmt.Errorf("failed to update suggestions: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *answerRepository) QueryUncategorized(ctx context.Context, categoryID int64, limit int) ([]*models.Answer, error) {
	query := `
		SELECT` + answerColumns + `
		FROM answers
		WHERE category_id = $1
		  AND selected_code IS NULL
		  AND ai_suggestions IS NULL
		ORDER BY id
		LIMIT $2`

	rows, err := r.db.Query(ctx, query, categoryID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query uncategorized answers: %w", err)
	}
	defer rows.Close()

	var answers []*models.Answer
	for rows.Next() {
		answer, err := scanAnswer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan answer: %w", err)
		}
		answers = append(answers, answer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate answers: %w", err)
	}
	return answers, nil
}

func (r *answerRepository) QueryHighConfidence(ctx context.Context, categoryID *int64, minConfidence float64, limit int) ([]models.HighConfidenceCandidate, error) {
	// The top suggestion is always element 0: suggestion sets are stored
	// sorted by confidence descending.
	query := `
		SELECT id, answer_text, category_id,
		       ai_suggestions->'suggestions'->0->>'code_name',
		       (ai_suggestions->'suggestions'->0->>'confidence')::float8,
		       COALESCE(ai_suggestions->>'model', ''),
		       COALESCE(ai_suggestions->'suggestions'->0->>'reasoning', '')
		FROM answers
		WHERE general_status = 'uncategorized'
		  AND selected_code IS NULL
		  AND ai_suggestions IS NOT NULL
		  AND jsonb_array_length(ai_suggestions->'suggestions') > 0
		  AND (ai_suggestions->'suggestions'->0->>'confidence')::float8 >= $1
		  AND ($2::bigint IS NULL OR category_id = $2)
		ORDER BY (ai_suggestions->'suggestions'->0->>'confidence')::float8 DESC, id
		LIMIT $3`

	rows, err := r.db.Query(ctx, query, minConfidence, categoryID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query high-confidence candidates: %w", err)
	}
	defer rows.Close()

	var candidates []models.HighConfidenceCandidate
	for rows.Next() {
		var c models.HighConfidenceCandidate
		if err := rows.Scan(
			&c.AnswerID,
			&c.AnswerText,
			&c.CategoryID,
			&c.SuggestedCode,
			&c.Confidence,
			&c.Model,
			&c.Reasoning,
		); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate candidates: %w", err)
	}
	return candidates, nil
}

func (r *answerRepository) Confirm(ctx context.Context, id int64, code, actor string, confirmedAt time.Time) error {
	// Guarded update: only an answer that is still uncoded can be confirmed,
	// so a concurrent human decision is never overwritten.
	query := `
		UPDATE answers
		SET selected_code = $2,
		    general_status = $3,
		    coding_date = $4,
		    confirmed_by = $5,
		    updated_at = NOW()
		WHERE id = $1
		  AND selected_code IS NULL
		  AND general_status = 'uncategorized'`

	tag, err := r.db.Exec(ctx, query, id, code, models.StatusConfirmed, confirmedAt, actor)
	if err != nil {
		return fmt.Errorf("failed to confirm answer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrConflict
	}
	return nil
}

// scanAnswer reads one answer row. The suggestions column round-trips through
// jsonb.
func scanAnswer(row pgx.Row) (*models.Answer, error) {
	var answer models.Answer
	var rawStatus string
	var rawSuggestions []byte

	err := row.Scan(
		&answer.ID,
		&answer.CategoryID,
		&answer.Text,
		&answer.TranslatedText,
		&answer.Language,
		&answer.Country,
		&answer.SelectedCode,
		&rawStatus,
		&rawSuggestions,
		&answer.SuggestedCode,
		&answer.CodedAt,
		&answer.CodedBy,
		&answer.CreatedAt,
		&answer.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	status, err := models.ParseAnswerStatus(rawStatus)
	if err != nil {
		return nil, fmt.Errorf("answer %d: %w", answer.ID, err)
	}
	answer.Status = status

	if len(rawSuggestions) > 0 {
		var set models.AiSuggestionSet
		if err := json.Unmarshal(rawSuggestions, &set); err != nil {
			return nil, fmt.Errorf("answer %d: failed to unmarshal suggestions: %w", answer.ID, err)
		}
		answer.Suggestions = &set
	}

	return &answer, nil
}
