package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/greglas75/coding-ui-sub018/pkg/repositories"
)

// DefaultBatchLimit caps how many answers one category batch picks up.
const DefaultBatchLimit = 100

// BatchItemError records one failed item of a batch run.
type BatchItemError struct {
	AnswerID int64  `json:"answer_id"`
	Error    string `json:"error"`
}

// BatchResult summarizes a batch run. Succeeded + Failed always equals
// Processed; Processed can fall short of Total when the run is cancelled
// mid-flight.
type BatchResult struct {
	Total     int              `json:"total"`
	Processed int              `json:"processed"`
	Succeeded int              `json:"succeeded"`
	Failed    int              `json:"failed"`
	Errors    []BatchItemError `json:"errors,omitempty"`
	Elapsed   time.Duration    `json:"elapsed"`
}

// BatchService runs suggestion generation over many answers with per-item
// failure isolation.
type BatchService interface {
	// RunBatch categorizes the given answers one at a time. A failing item is
	// recorded and skipped; it never aborts the rest. On context
	// cancellation the partial result is returned together with the context
	// error.
	RunBatch(ctx context.Context, answerIDs []int64) (*BatchResult, error)

	// RunForCategory picks up to limit uncoded answers without cached
	// suggestions in a category and runs them as a batch. A non-positive
	// limit falls back to DefaultBatchLimit.
	RunForCategory(ctx context.Context, categoryID int64, limit int) (*BatchResult, error)
}

type batchService struct {
	categorizer CategorizationService
	answers     repositories.AnswerRepository
	logger      *zap.Logger
}

// NewBatchService creates a new batch service.
func NewBatchService(
	categorizer CategorizationService,
	answers repositories.AnswerRepository,
	logger *zap.Logger,
) BatchService {
	return &batchService{
		categorizer: categorizer,
		answers:     answers,
		logger:      logger.Named("batch"),
	}
}

func (s *batchService) RunBatch(ctx context.Context, answerIDs []int64) (*BatchResult, error) {
	start := time.Now()
	result := &BatchResult{Total: len(answerIDs)}

	for _, id := range answerIDs {
		// Cancellation is honored between items, never mid-item: everything
		// processed so far stays persisted.
		if err := ctx.Err(); err != nil {
			result.Elapsed = time.Since(start)
			s.logger.Warn("Batch cancelled",
				zap.Int("processed", result.Processed),
				zap.Int("total", result.Total),
				zap.Error(err))
			return result, err
		}

		result.Processed++
		if _, err := s.categorizer.Categorize(ctx, id, false); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, BatchItemError{AnswerID: id, Error: err.Error()})
			s.logger.Warn("Batch item failed",
				zap.Int64("answer_id", id),
				zap.Error(err))
			continue
		}
		result.Succeeded++
	}

	result.Elapsed = time.Since(start)
	s.logger.Info("Batch completed",
		zap.Int("total", result.Total),
		zap.Int("succeeded", result.Succeeded),
		zap.Int("failed", result.Failed),
		zap.Duration("elapsed", result.Elapsed))
	return result, nil
}

func (s *batchService) RunForCategory(ctx context.Context, categoryID int64, limit int) (*BatchResult, error) {
	if limit <= 0 {
		limit = DefaultBatchLimit
	}

	answers, err := s.answers.QueryUncategorized(ctx, categoryID, limit)
	if err != nil {
		return nil, err
	}
	if len(answers) == 0 {
		s.logger.Debug("No pending answers in category", zap.Int64("category_id", categoryID))
		return &BatchResult{}, nil
	}

	ids := make([]int64, 0, len(answers))
	for _, answer := range answers {
		ids = append(ids, answer.ID)
	}

	s.logger.Info("Running category batch",
		zap.Int64("category_id", categoryID),
		zap.Int("answers", len(ids)))
	return s.RunBatch(ctx, ids)
}

var _ BatchService = (*batchService)(nil)
