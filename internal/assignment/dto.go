package assignment

import (
	"time"

	"github.com/google/uuid"
)

type ReplaceAssignmentsDTO struct {
	ExamIDs []uuid.UUID `json:"exam_ids"`
}

// AvailableExam is one assigned exam as the assignee sees it.
type AvailableExam struct {
	ExamID          uuid.UUID  `json:"exam_id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	DurationMinutes int        `json:"duration_minutes"`
	IsActive        bool       `json:"is_active"`
	QuestionCount   int        `json:"question_count"`
	HasTaken        bool       `json:"has_taken"`
	ResultID        *uuid.UUID `json:"result_id,omitempty"`
}

// UserExamAssignment is one catalog exam from the admin's point of view for
// a given user: whether it is assigned and, if taken, how it went.
type UserExamAssignment struct {
	ExamID      uuid.UUID  `json:"exam_id"`
	Title       string     `json:"title"`
	IsActive    bool       `json:"is_active"`
	IsSelected  bool       `json:"is_selected"`
	IsSolved    bool       `json:"is_solved"`
	Score       *float64   `json:"score,omitempty"`
	IsPassed    *bool      `json:"is_passed,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}
