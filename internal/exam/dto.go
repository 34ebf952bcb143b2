package exam

import (
	"time"

	"github.com/google/uuid"
)

type CreateExamDTO struct {
	Title           string `json:"title" validate:"required,max=200"`
	Description     string `json:"description" validate:"max=1000"`
	DurationMinutes int    `json:"duration_minutes" validate:"min=1,max=300"`
	IsActive        *bool  `json:"is_active"`
}

// UpdateExamDTO replaces every editable field. Version is the value the
// caller last read; a stale version is reported as a conflict.
type UpdateExamDTO struct {
	Title           string `json:"title" validate:"required,max=200"`
	Description     string `json:"description" validate:"max=1000"`
	DurationMinutes int    `json:"duration_minutes" validate:"min=1,max=300"`
	IsActive        bool   `json:"is_active"`
	Version         int    `json:"version" validate:"min=1"`
}

type QuestionDTO struct {
	Prompt        string `json:"prompt" validate:"required,max=500"`
	ChoiceA       string `json:"choice_a" validate:"required,max=200"`
	ChoiceB       string `json:"choice_b" validate:"required,max=200"`
	ChoiceC       string `json:"choice_c" validate:"required,max=200"`
	ChoiceD       string `json:"choice_d" validate:"required,max=200"`
	CorrectAnswer string `json:"correct_answer" validate:"required,oneof=A B C D"`
	OrderIndex    *int   `json:"order_index" validate:"omitempty,min=0"`
}

type ExamSummary struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	DurationMinutes int       `json:"duration_minutes"`
	IsActive        bool      `json:"is_active"`
	Version         int       `json:"version"`
	QuestionCount   int       `json:"question_count"`
	CreatedAt       time.Time `json:"created_at"`
}

func toSummary(e *Exam, count int) *ExamSummary {
	return &ExamSummary{
		ID:              e.ID,
		Title:           e.Title,
		Description:     e.Description,
		DurationMinutes: e.DurationMinutes,
		IsActive:        e.IsActive,
		Version:         e.Version,
		QuestionCount:   count,
		CreatedAt:       e.CreatedAt,
	}
}
