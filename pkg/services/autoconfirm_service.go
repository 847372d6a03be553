package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/greglas75/coding-ui-sub018/pkg/apperrors"
	"github.com/greglas75/coding-ui-sub018/pkg/models"
	"github.com/greglas75/coding-ui-sub018/pkg/repositories"
)

const (
	// DefaultAutoConfirmThreshold is the minimum top-suggestion confidence
	// for unattended confirmation.
	DefaultAutoConfirmThreshold = 0.95

	// autoConfirmCandidateCap bounds one pass so a huge backlog cannot turn
	// a sweep into an unbounded write storm.
	autoConfirmCandidateCap = 1000
)

// AutoConfirmResult summarizes one auto-confirmation pass.
type AutoConfirmResult struct {
	TotalCandidates int           `json:"total_candidates"`
	ConfirmedCount  int           `json:"confirmed_count"`
	SkippedCount    int           `json:"skipped_count"`
	Elapsed         time.Duration `json:"elapsed"`
}

// AutoConfirmService promotes high-confidence suggestions to confirmed codes
// without human review, leaving an audit trail.
type AutoConfirmService interface {
	// AutoConfirm confirms every uncoded answer whose top suggestion meets
	// the threshold. A nil categoryID spans all categories; a non-positive
	// threshold falls back to the default. Per-candidate failures are
	// isolated; an audit write failure is logged but never rolls back the
	// confirmation it describes.
	AutoConfirm(ctx context.Context, categoryID *int64, threshold float64) (*AutoConfirmResult, error)
}

type autoConfirmService struct {
	answers repositories.AnswerRepository
	audit   AuditService
	logger  *zap.Logger
	now     func() time.Time
}

// NewAutoConfirmService creates a new auto-confirm service.
func NewAutoConfirmService(
	answers repositories.AnswerRepository,
	audit AuditService,
	logger *zap.Logger,
) AutoConfirmService {
	return &autoConfirmService{
		answers: answers,
		audit:   audit,
		logger:  logger.Named("autoconfirm"),
		now:     time.Now,
	}
}

func (s *autoConfirmService) AutoConfirm(ctx context.Context, categoryID *int64, threshold float64) (*AutoConfirmResult, error) {
	if threshold <= 0 {
		threshold = DefaultAutoConfirmThreshold
	}

	start := time.Now()
	candidates, err := s.answers.QueryHighConfidence(ctx, categoryID, threshold, autoConfirmCandidateCap)
	if err != nil {
		return nil, err
	}

	result := &AutoConfirmResult{TotalCandidates: len(candidates)}
	if len(candidates) == 0 {
		result.Elapsed = time.Since(start)
		return result, nil
	}

	for _, candidate := range candidates {
		if err := ctx.Err(); err != nil {
			result.Elapsed = time.Since(start)
			return result, err
		}

		confirmedAt := s.now()
		err := s.answers.Confirm(ctx, candidate.AnswerID, candidate.SuggestedCode, models.ActorAutoConfirm, confirmedAt)
		if err != nil {
			// A conflict means a human (or another sweep) got there first.
			// Either way this candidate is done, the rest still proceed.
			result.SkippedCount++
			if errors.Is(err, apperrors.ErrConflict) {
				s.logger.Debug("Answer already coded, skipping",
					zap.Int64("answer_id", candidate.AnswerID))
			} else {
				s.logger.Warn("Failed to confirm answer",
					zap.Int64("answer_id", candidate.AnswerID),
					zap.Error(err))
			}
			continue
		}
		result.ConfirmedCount++

		entry := &models.AuditLogEntry{
			AnswerID:     candidate.AnswerID,
			CategoryID:   &candidate.CategoryID,
			SelectedCode: candidate.SuggestedCode,
			Confidence:   candidate.Confidence,
			Model:        candidate.Model,
			Action:       models.AuditActionAutoConfirm,
			Metadata: map[string]any{
				"threshold": threshold,
				"reasoning": candidate.Reasoning,
			},
			CreatedAt: confirmedAt,
		}
		if err := s.audit.Append(ctx, entry); err != nil {
			// The confirmation already happened; losing the audit record is
			// a provenance gap, not a reason to undo the decision.
			s.logger.Warn("Audit write failed for confirmed answer",
				zap.Int64("answer_id", candidate.AnswerID),
				zap.String("code", candidate.SuggestedCode),
				zap.Error(err))
		}
	}

	result.Elapsed = time.Since(start)
	s.logger.Info("Auto-confirm pass completed",
		zap.Int("candidates", result.TotalCandidates),
		zap.Int("confirmed", result.ConfirmedCount),
		zap.Int("skipped", result.SkippedCount),
		zap.Float64("threshold", threshold),
		zap.Duration("elapsed", result.Elapsed))
	return result, nil
}

var _ AutoConfirmService = (*autoConfirmService)(nil)
