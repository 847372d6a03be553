package prompts

import (
	"fmt"
	"strings"
)

// SystemPrompt is the fixed system message for suggestion generation. The
// per-category behavior lives in the preset/custom template, which becomes
// part of the user prompt.
const SystemPrompt = "You classify open-ended survey answers into a fixed code vocabulary. " +
	"Respond with JSON only."

// SuggestionPromptInput carries everything needed to assemble one
// suggestion-generation prompt.
type SuggestionPromptInput struct {
	Template          string
	CategoryName      string
	AnswerText        string
	AnswerTranslation string
	Language          string
	Country           string
	Codes             []string
}

// BuildSuggestionPrompt assembles the user prompt for one answer. The
// response format block pins the JSON shape the engine parses; the code list
// is the full vocabulary so the model never invents codes.
func BuildSuggestionPrompt(in SuggestionPromptInput) string {
	var b strings.Builder

	b.WriteString(strings.TrimSpace(in.Template))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("## Category\n%s\n\n", in.CategoryName))

	b.WriteString("## Answer\n")
	b.WriteString(in.AnswerText)
	b.WriteString("\n")
	if in.AnswerTranslation != "" {
		b.WriteString(fmt.Sprintf("English translation: %s\n", in.AnswerTranslation))
	}
	if in.Language != "" {
		b.WriteString(fmt.Sprintf("Language: %s\n", in.Language))
	}
	if in.Country != "" {
		b.WriteString(fmt.Sprintf("Country: %s\n", in.Country))
	}
	b.WriteString("\n")

	b.WriteString("## Code vocabulary\n")
	for _, code := range in.Codes {
		b.WriteString("- ")
		b.WriteString(code)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(`## Response format
Return ONLY a JSON object with this exact shape:
{
  "suggestions": [
    {"code_name": "<code from the vocabulary>", "confidence": 0.0-1.0, "reasoning": "<one sentence>"}
  ]
}
Order suggestions by descending confidence. Use only codes from the
vocabulary above. Return {"suggestions": []} if no code fits.`)

	return b.String()
}
