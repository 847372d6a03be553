// Package models contains domain types for the coding engine.
package models

import (
	"fmt"
	"time"
)

// AnswerStatus represents the coding state of an answer.
type AnswerStatus string

const (
	StatusUncategorized AnswerStatus = "uncategorized"
	StatusConfirmed     AnswerStatus = "confirmed"
	StatusRejected      AnswerStatus = "rejected"
	StatusIgnored       AnswerStatus = "ignored"
)

// String returns the string representation of an AnswerStatus.
func (s AnswerStatus) String() string {
	return string(s)
}

// IsValid returns true if the status is a member of the closed set.
func (s AnswerStatus) IsValid() bool {
	switch s {
	case StatusUncategorized, StatusConfirmed, StatusRejected, StatusIgnored:
		return true
	default:
		return false
	}
}

// ParseAnswerStatus normalizes an external status string onto the closed set.
// Legacy aliases from the source system ("whitelist", "blacklist",
// "gibberish") are mapped to their canonical values; an empty string means
// the answer has not been coded yet. Unrecognized values are rejected rather
// than silently accepted.
func ParseAnswerStatus(raw string) (AnswerStatus, error) {
	switch raw {
	case "", "uncategorized":
		return StatusUncategorized, nil
	case "confirmed", "whitelist":
		return StatusConfirmed, nil
	case "rejected", "blacklist":
		return StatusRejected, nil
	case "ignored", "gibberish":
		return StatusIgnored, nil
	default:
		return "", fmt.Errorf("unknown answer status %q", raw)
	}
}

// Answer is a single open-ended survey response to be coded.
type Answer struct {
	ID             int64      `json:"id"`
	CategoryID     int64      `json:"category_id"`
	Text           string     `json:"text"`
	TranslatedText *string    `json:"translated_text,omitempty"`
	Language       *string    `json:"language,omitempty"`
	Country        *string    `json:"country,omitempty"`
	SelectedCode   *string    `json:"selected_code,omitempty"`
	Status         AnswerStatus `json:"status"`

	// Suggestions is the most recent AI suggestion set, if any.
	// SuggestedCode mirrors the top suggestion's code name for fast display;
	// the two fields are always written in the same update.
	Suggestions   *AiSuggestionSet `json:"ai_suggestions,omitempty"`
	SuggestedCode *string          `json:"ai_suggested_code,omitempty"`

	CodedAt   *time.Time `json:"coded_at,omitempty"`
	CodedBy   *string    `json:"coded_by,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// HighConfidenceCandidate is one row of the auto-confirmation candidate query:
// an uncoded answer whose best suggestion meets the confidence cutoff.
type HighConfidenceCandidate struct {
	AnswerID      int64   `json:"answer_id"`
	AnswerText    string  `json:"answer_text"`
	SuggestedCode string  `json:"suggested_code"`
	Confidence    float64 `json:"confidence"`
	Model         string  `json:"model"`
	Reasoning     string  `json:"reasoning"`
	CategoryID    int64   `json:"category_id"`
}
