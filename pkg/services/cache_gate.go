// Package services contains the categorization orchestration logic: cache
// gating, suggestion generation, batch execution, auto-confirmation, and the
// audit trail.
package services

import (
	"time"

	"github.com/greglas75/coding-ui-sub018/pkg/models"
)

// DefaultSuggestionTTL is how long a cached suggestion set stays fresh.
const DefaultSuggestionTTL = 24 * time.Hour

// CacheDecision is the outcome of evaluating a cached suggestion set.
type CacheDecision int

const (
	// CacheMissing means no suggestion set exists for the answer.
	CacheMissing CacheDecision = iota
	// CacheFresh means the cached set is current and must be reused.
	CacheFresh
	// CacheStale means a set exists but regeneration is required.
	CacheStale
)

func (d CacheDecision) String() string {
	switch d {
	case CacheMissing:
		return "missing"
	case CacheFresh:
		return "fresh"
	case CacheStale:
		return "stale"
	default:
		return "unknown"
	}
}

// EvaluateCache decides whether a cached suggestion set can be reused.
// A set is fresh only when force is off and its age is strictly below ttl;
// a set aged exactly ttl is stale. A non-positive ttl falls back to the
// default.
func EvaluateCache(suggestions *models.AiSuggestionSet, now time.Time, force bool, ttl time.Duration) CacheDecision {
	if suggestions == nil {
		return CacheMissing
	}
	if force {
		return CacheStale
	}
	if ttl <= 0 {
		ttl = DefaultSuggestionTTL
	}
	if now.Sub(suggestions.GeneratedAt) < ttl {
		return CacheFresh
	}
	return CacheStale
}
