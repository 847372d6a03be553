package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AuditAction represents the kind of automated decision being recorded.
type AuditAction string

const (
	// AuditActionAutoConfirm records an unattended confidence-threshold
	// promotion of a suggestion to a confirmed code.
	AuditActionAutoConfirm AuditAction = "auto_confirm"
)

// IsValid returns true if the action is a member of the closed set.
func (a AuditAction) IsValid() bool {
	return a == AuditActionAutoConfirm
}

// ParseAuditAction normalizes an external action string onto the closed set.
func ParseAuditAction(raw string) (AuditAction, error) {
	switch raw {
	case string(AuditActionAutoConfirm):
		return AuditActionAutoConfirm, nil
	default:
		return "", fmt.Errorf("unknown audit action %q", raw)
	}
}

// ActorAutoConfirm identifies the automated confirmer in coded_by and audit
// records. Distinct from any human actor value.
const ActorAutoConfirm = "ai-auto-confirm"

// AuditLogEntry is one append-only provenance record of an automated
// decision. Entries are write-once: no update or delete path exists.
type AuditLogEntry struct {
	ID           uuid.UUID      `json:"id"`
	AnswerID     int64          `json:"answer_id"`
	CategoryID   *int64         `json:"category_id,omitempty"`
	SelectedCode string         `json:"selected_code"`
	Confidence   float64        `json:"confidence"`
	Model        string         `json:"model"`
	Action       AuditAction    `json:"action"`
	Metadata     map[string]any `json:"metadata,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
}
