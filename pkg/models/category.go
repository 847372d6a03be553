package models

import "time"

// Category is the configuration scope for suggestion generation. Each answer
// belongs to exactly one category; the category decides which prompt template,
// model, and evidence sources are used when generating suggestions for it.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`

	// PresetName selects a named prompt template. CustomTemplate, when set,
	// overrides the preset's template text (the preset name is still recorded
	// for provenance).
	PresetName     *string `json:"preset_name,omitempty"`
	CustomTemplate *string `json:"custom_template,omitempty"`

	Model       *string `json:"model,omitempty"`
	VisionModel *string `json:"vision_model,omitempty"`

	// UseWebContext enables web lookup evidence. Vision analysis is only
	// meaningful when web context is enabled, since the images come from it.
	UseWebContext *bool `json:"use_web_context,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// CategoryConfig is the fully resolved generation configuration for a
// category, with all defaults applied. Produced by
// services.ResolveCategoryConfig; never stored.
type CategoryConfig struct {
	PresetName    string
	Template      string
	Model         string
	VisionModel   string // empty unless UseWebContext is true
	UseWebContext bool
}

// Code is one entry of the controlled vocabulary answers are coded into.
type Code struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
