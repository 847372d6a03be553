package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/greglas75/coding-ui-sub018/pkg/models"
	"github.com/greglas75/coding-ui-sub018/pkg/repositories"
)

// AuditService records automated decisions in the append-only audit log.
type AuditService interface {
	// Append stamps identity and timestamp on the entry and persists it.
	// Entries are write-once.
	Append(ctx context.Context, entry *models.AuditLogEntry) error
}

type auditService struct {
	repo   repositories.AuditRepository
	logger *zap.Logger
	now    func() time.Time
}

// NewAuditService creates a new audit service.
func NewAuditService(repo repositories.AuditRepository, logger *zap.Logger) AuditService {
	return &auditService{
		repo:   repo,
		logger: logger.Named("audit"),
		now:    time.Now,
	}
}

func (s *auditService) Append(ctx context.Context, entry *models.AuditLogEntry) error {
	if !entry.Action.IsValid() {
		return fmt.Errorf("invalid audit action %q", entry.Action)
	}

	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = s.now()
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		return fmt.Errorf("append audit entry: %w", err)
	}

	s.logger.Debug("Audit entry recorded",
		zap.String("entry_id", entry.ID.String()),
		zap.Int64("answer_id", entry.AnswerID),
		zap.String("action", string(entry.Action)))
	return nil
}

var _ AuditService = (*auditService)(nil)
