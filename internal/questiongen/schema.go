package questiongen

import (
	"github.com/abhisek/questify/internal/llm"
	"github.com/abhisek/questify/internal/paper"
)

// QuestionsSchema defines the JSON schema for question generation responses.
var QuestionsSchema = &llm.Schema{
	Name:        "exam-questions",
	Description: "Exam questions generated from one syllabus unit",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{
							"type":        "string",
							"description": "The exam question, answerable from the unit content alone",
						},
						"marks": map[string]any{
							"type":        "integer",
							"description": "Marks awarded for the question",
						},
						"difficulty": map[string]any{
							"type":        "string",
							"enum":        difficultyEnum(),
							"description": "How hard the question is",
						},
					},
					"required":             []any{"question", "marks", "difficulty"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}

func difficultyEnum() []any {
	out := make([]any, len(paper.Difficulties))
	for i, d := range paper.Difficulties {
		out[i] = string(d)
	}
	return out
}
