package services

import (
	"github.com/greglas75/coding-ui-sub018/pkg/models"
	"github.com/greglas75/coding-ui-sub018/pkg/prompts"
)

// DefaultModel is used when neither the category nor the caller pins a model.
const DefaultModel = "gpt-4o-mini"

// ResolveCategoryConfig applies defaults to a category's generation settings.
// defaultModel overrides the package default when non-empty. The resolved
// template honors custom-template precedence: when the category carries a
// custom template it wins, but the preset name is still recorded for
// provenance. VisionModel is cleared when web context is disabled, since
// vision evidence only comes from web lookup.
func ResolveCategoryConfig(category *models.Category, defaultModel string) models.CategoryConfig {
	if defaultModel == "" {
		defaultModel = DefaultModel
	}

	cfg := models.CategoryConfig{
		PresetName:    prompts.DefaultPresetName,
		Model:         defaultModel,
		UseWebContext: true,
	}

	if category.PresetName != nil && *category.PresetName != "" {
		cfg.PresetName = *category.PresetName
	}
	cfg.Template = prompts.TemplateFor(cfg.PresetName)
	if category.CustomTemplate != nil && *category.CustomTemplate != "" {
		cfg.Template = *category.CustomTemplate
	}

	if category.Model != nil && *category.Model != "" {
		cfg.Model = *category.Model
	}

	if category.UseWebContext != nil {
		cfg.UseWebContext = *category.UseWebContext
	}

	if cfg.UseWebContext && category.VisionModel != nil {
		cfg.VisionModel = *category.VisionModel
	}

	return cfg
}
