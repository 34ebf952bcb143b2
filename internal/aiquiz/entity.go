package aiquiz

import "github.com/google/uuid"

// Draft is one question as the model returns it.
type Draft struct {
	Topic         string   `json:"topic"`
	Difficulty    string   `json:"difficulty"`
	Prompt        string   `json:"prompt"`
	Choices       []string `json:"choices"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

type DraftRequest struct {
	ExamID     uuid.UUID `json:"exam_id" validate:"required"`
	Topic      string    `json:"topic" validate:"required,max=120"`
	Difficulty string    `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
	Count      int       `json:"count" validate:"min=0,max=10"`
}
