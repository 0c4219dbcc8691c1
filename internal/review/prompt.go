package review

import (
	"fmt"
	"strings"

	"github.com/abhisek/formwiz/internal/catalog"
	"github.com/abhisek/formwiz/internal/forms"
	"github.com/abhisek/formwiz/internal/llm"
)

const systemPrompt = `You are reviewing the answers a person entered into a multi-step registration form. Point out values that look mistyped, inconsistent with each other, or implausible. Do not invent problems.`

// Schema is the reply shape for a review.
var Schema = &llm.Schema{
	Name:        "answer-review",
	Description: "A short review of collected form answers",
	Definition: map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"summary": map[string]any{
				"type":        "string",
				"description": "One or two sentences about the answers overall",
			},
			"issues": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":                 "object",
					"additionalProperties": false,
					"properties": map[string]any{
						"field":    map[string]any{"type": "string", "description": "The field key, exactly as given"},
						"severity": map[string]any{"type": "string", "enum": []any{"info", "warning", "error"}},
						"message":  map[string]any{"type": "string"},
					},
					"required": []any{"field", "severity", "message"},
				},
			},
		},
		"required": []any{"summary", "issues"},
	},
}

func buildPrompt(cat catalog.Catalog, answers []forms.Answer) string {
	var b strings.Builder
	lastCat, lastForm := "", ""
	for _, a := range answers {
		if a.CategoryID != lastCat {
			name := a.CategoryID
			if c, ok := cat.Category(a.CategoryID); ok {
				name = c.Name
			}
			fmt.Fprintf(&b, "\n## %s\n", name)
			lastCat, lastForm = a.CategoryID, ""
		}
		if a.FormID != lastForm {
			fmt.Fprintf(&b, "### %s\n", a.FormTitle)
			lastForm = a.FormID
		}
		fmt.Fprintf(&b, "- %s (%s): %s\n", a.Label, a.Key, a.Value)
	}

	b.WriteString(`
Instructions:
1. Summarize the answers in one or two sentences.
2. List an issue only for a concrete problem with a specific field, using the key shown in parentheses.
3. Use "error" for values that are almost certainly wrong, "warning" for suspicious values, "info" for minor suggestions.
4. Return an empty issues list when everything looks fine.`)
	return strings.TrimLeft(b.String(), "\n")
}
