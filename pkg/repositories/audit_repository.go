package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/greglas75/coding-ui-sub018/pkg/database"
	"github.com/greglas75/coding-ui-sub018/pkg/models"
)

// AuditRepository defines the interface for the append-only audit log.
// There is deliberately no update or delete operation.
type AuditRepository interface {
	Create(ctx context.Context, entry *models.AuditLogEntry) error
}

// auditRepository implements AuditRepository using PostgreSQL.
type auditRepository struct {
	db *database.DB
}

// NewAuditRepository creates a new audit repository.
func NewAuditRepository(db *database.DB) AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Create(ctx context.Context, entry *models.AuditLogEntry) error {
	metadata, err := json.Marshal(entry.Metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal audit metadata: %w", err)
	}

	query := `
		INSERT INTO ai_audit_log (id, answer_id, category_id, selected_code, confidence, model, action, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err = r.db.Exec(ctx, query,
		entry.ID,
		entry.AnswerID,
		entry.CategoryID,
		entry.SelectedCode,
		entry.Confidence,
		entry.Model,
		entry.Action,
		metadata,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create audit entry: %w", err)
	}
	return nil
}
