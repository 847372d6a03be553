package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/greglas75/coding-ui-sub018/pkg/models"
)

func TestAuditService_AppendStampsIdentity(t *testing.T) {
	repo := &mockAuditRepository{}
	svc := NewAuditService(repo, zap.NewNop())

	entry := &models.AuditLogEntry{
		AnswerID:     42,
		SelectedCode: "Nike",
		Confidence:   0.97,
		Model:        "gpt-4o-mini",
		Action:       models.AuditActionAutoConfirm,
	}
	err := svc.Append(context.Background(), entry)
	require.NoError(t, err)

	require.Len(t, repo.entries, 1)
	assert.NotEqual(t, uuid.Nil, repo.entries[0].ID)
	assert.False(t, repo.entries[0].CreatedAt.IsZero())
}

func TestAuditService_AppendKeepsProvidedTimestamp(t *testing.T) {
	repo := &mockAuditRepository{}
	svc := NewAuditService(repo, zap.NewNop())

	at := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	entry := &models.AuditLogEntry{
		AnswerID:     42,
		SelectedCode: "Nike",
		Action:       models.AuditActionAutoConfirm,
		CreatedAt:    at,
	}
	require.NoError(t, svc.Append(context.Background(), entry))
	assert.Equal(t, at, repo.entries[0].CreatedAt)
}

func TestAuditService_RejectsInvalidAction(t *testing.T) {
	svc := NewAuditService(&mockAuditRepository{}, zap.NewNop())

	entry := &models.AuditLogEntry{
		AnswerID: 42,
		Action:   models.AuditAction("manual_override"),
	}
	err := svc.Append(context.Background(), entry)
	assert.ErrorContains(t, err, "invalid audit action")
}
