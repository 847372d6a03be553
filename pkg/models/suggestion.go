package models

import "time"

// AiCodeSuggestion is one candidate code produced by the suggestion engine.
type AiCodeSuggestion struct {
	CodeName   string  `json:"code_name"`
	Confidence float64 `json:"confidence"` // 0..1
	Reasoning  string  `json:"reasoning"`
}

// WebSnippet is a web-context search result attached as evidence.
type WebSnippet struct {
	Title   string `json:"title,omitempty"`
	URL     string `json:"url,omitempty"`
	Snippet string `json:"snippet,omitempty"`
}

// ImageResult is image evidence gathered during web lookup.
type ImageResult struct {
	URL       string `json:"url"`
	SourceURL string `json:"source_url,omitempty"`
}

// AiSuggestionSet is the cached result of one suggestion-generation call.
// A set is immutable once written: regeneration replaces the whole set,
// never patches it in place.
type AiSuggestionSet struct {
	// Suggestions are ordered by descending confidence; the first element
	// is the best suggestion.
	Suggestions []AiCodeSuggestion `json:"suggestions"`
	Model       string             `json:"model"`
	GeneratedAt time.Time          `json:"generated_at"`

	// PresetUsed records the preset name resolved at generation time, even
	// when the effective template was a custom override. Kept so provenance
	// survives later category config changes.
	PresetUsed string `json:"preset_used"`

	WebContext []WebSnippet  `json:"web_context,omitempty"`
	Images     []ImageResult `json:"images,omitempty"`
}

// TopCodeName returns the best suggestion's code name, or nil when the set
// is empty. This is the value mirrored into the answer's denormalized
// suggested-code column.
func (s *AiSuggestionSet) TopCodeName() *string {
	if s == nil || len(s.Suggestions) == 0 {
		return nil
	}
	name := s.Suggestions[0].CodeName
	return &name
}
