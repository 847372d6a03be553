package services

import (
	"context"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/greglas75/coding-ui-sub018/pkg/llm"
	"github.com/greglas75/coding-ui-sub018/pkg/repositories"
)

// CategorySweepResult summarizes one category's slice of a sweep.
type CategorySweepResult struct {
	CategoryID int64
	Batch      *BatchResult
	Confirm    *AutoConfirmResult
	Err        error
}

// SweepResult summarizes one full sweep across all categories.
type SweepResult struct {
	Categories []CategorySweepResult
	Elapsed    time.Duration
}

// SweepService drives the unattended pipeline: for every category, generate
// suggestions for pending answers and then auto-confirm the high-confidence
// ones. Categories fan out on a bounded worker pool; failures stay isolated
// per category.
type SweepService interface {
	Sweep(ctx context.Context) (*SweepResult, error)
}

type sweepService struct {
	categories repositories.CategoryRepository
	batch      BatchService
	confirm    AutoConfirmService
	pool       *llm.WorkerPool
	batchLimit int
	threshold  float64
	logger     *zap.Logger
}

// NewSweepService creates a new sweep service. Zero batchLimit and threshold
// fall back to the service defaults.
func NewSweepService(
	categories repositories.CategoryRepository,
	batch BatchService,
	confirm AutoConfirmService,
	pool *llm.WorkerPool,
	batchLimit int,
	threshold float64,
	logger *zap.Logger,
) SweepService {
	return &sweepService{
		categories: categories,
		batch:      batch,
		confirm:    confirm,
		pool:       pool,
		batchLimit: batchLimit,
		threshold:  threshold,
		logger:     logger.Named("sweep"),
	}
}

func (s *sweepService) Sweep(ctx context.Context) (*SweepResult, error) {
	start := time.Now()

	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		return &SweepResult{Elapsed: time.Since(start)}, nil
	}

	items := make([]llm.WorkItem[CategorySweepResult], 0, len(categories))
	for _, category := range categories {
		categoryID := category.ID
		items = append(items, llm.WorkItem[CategorySweepResult]{
			ID: strconv.FormatInt(categoryID, 10),
			Execute: func(ctx context.Context) (CategorySweepResult, error) {
				return s.sweepCategory(ctx, categoryID), nil
			},
		})
	}

	results := llm.Process(ctx, s.pool, items, nil)

	sweep := &SweepResult{Categories: make([]CategorySweepResult, 0, len(results))}
	for _, r := range results {
		if r.Err != nil {
			// Only context cancellation surfaces here; work errors are
			// carried inside the result.
			sweep.Categories = append(sweep.Categories, CategorySweepResult{Err: r.Err})
			continue
		}
		sweep.Categories = append(sweep.Categories, r.Result)
	}
	sweep.Elapsed = time.Since(start)

	var failed int
	for _, c := range sweep.Categories {
		if c.Err != nil {
			failed++
		}
	}
	s.logger.Info("Sweep completed",
		zap.Int("categories", len(sweep.Categories)),
		zap.Int("failed", failed),
		zap.Duration("elapsed", sweep.Elapsed))
	return sweep, nil
}

func (s *sweepService) sweepCategory(ctx context.Context, categoryID int64) CategorySweepResult {
	result := CategorySweepResult{CategoryID: categoryID}

	result.Batch, result.Err = s.batch.RunForCategory(ctx, categoryID, s.batchLimit)
	if result.Err != nil {
		s.logger.Warn("Category sweep failed during batch",
			zap.Int64("category_id", categoryID),
			zap.Error(result.Err))
		return result
	}

	result.Confirm, result.Err = s.confirm.AutoConfirm(ctx, &categoryID, s.threshold)
	if result.Err != nil {
		s.logger.Warn("Category sweep failed during auto-confirm",
			zap.Int64("category_id", categoryID),
			zap.Error(result.Err))
	}
	return result
}

var _ SweepService = (*sweepService)(nil)
