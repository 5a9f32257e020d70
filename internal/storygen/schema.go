package storygen

import "github.com/abhisek/storybuddy/internal/llm"

// StorySchema is the reply shape asked of the LLM: the story plus
// structured questions, so nothing has to go through the text parser.
var StorySchema = &llm.Schema{
	Name:        "story-quiz",
	Description: "A short children's story with multiple-choice comprehension questions",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"story": map[string]any{
				"type":        "string",
				"description": "The story text, 4 to 10 short sentences",
			},
			"questions": map[string]any{
				"type":        "array",
				"description": "3 to 5 comprehension questions answerable from the story",
				"minItems":    1,
				"maxItems":    8,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{
							"type":        "string",
							"description": "The question text",
						},
						"options": map[string]any{
							"type":        "array",
							"description": "Exactly four answer choices, in the order shown as A to D",
							"items":       map[string]any{"type": "string"},
							"minItems":    4,
							"maxItems":    4,
						},
						"answer": map[string]any{
							"type":        "string",
							"description": "Letter of the correct option",
							"enum":        []any{"A", "B", "C", "D"},
						},
					},
					"required":             []any{"question", "options", "answer"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"story", "questions"},
		"additionalProperties": false,
	},
}
