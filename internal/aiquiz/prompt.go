package aiquiz

import "fmt"

const (
	defaultCount      = 3
	maxCount          = 10
	defaultDifficulty = "medium"
)

const systemPrompt = `
You write multiple-choice questions for an online exam portal.

Rules:
1. Every question has exactly four choices and a single correct one.
2. Difficulty is one of "easy", "medium" or "hard".
3. Each question has:
   - "prompt": the question text, at most 500 characters
   - "choices": four plausible options, each at most 200 characters
   - "correct_answer": the letter of the correct choice (A, B, C or D)
   - "explanation": a short justification of the correct choice

Expected JSON:

[
  {
    "topic": "<topic>",
    "difficulty": "<easy | medium | hard>",
    "prompt": "<question>",
    "choices": ["A) ...", "B) ...", "C) ...", "D) ..."],
    "correct_answer": "C",
    "explanation": "<why C is correct>"
  }
]

Quality:
- Do not make the correct answer obvious. Keep choices similar in length and style.
- Use plausible distractors.
- Easy covers definitions, medium covers application, hard covers analysis.
- Never reveal the answer in the prompt.
- Reply with pure, valid JSON and nothing else.
`

func BuildUserPrompt(req DraftRequest) string {
	count := req.Count
	if count <= 0 {
		count = defaultCount
	}
	if count > maxCount {
		count = maxCount
	}

	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = defaultDifficulty
	}

	return fmt.Sprintf(
		"Write %d multiple-choice questions about %q with %q difficulty. "+
			"Follow the format from the system prompt exactly.",
		count, req.Topic, difficulty,
	)
}
