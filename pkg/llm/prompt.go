package llm

import (
	"github.com/greglas75/coding-ui-sub018/pkg/prompts"
)

// generationTemperature keeps suggestion output stable across reruns.
const generationTemperature = 0.2

// buildPrompt assembles the user prompt for a request. A custom template
// takes precedence over the named preset.
func buildPrompt(req *GenerateRequest) string {
	template := req.CustomTemplate
	if template == "" {
		template = prompts.TemplateFor(req.PresetName)
	}

	return prompts.BuildSuggestionPrompt(prompts.SuggestionPromptInput{
		Template:          template,
		CategoryName:      req.CategoryName,
		AnswerText:        req.AnswerText,
		AnswerTranslation: req.AnswerTranslation,
		Language:          req.Language,
		Country:           req.Country,
		Codes:             req.Codes,
	})
}
