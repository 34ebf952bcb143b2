package attempt

import (
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/examhub/internal/exam"
)

const unknownExamTitle = "Unknown Exam"

// QuestionView is a question as shown to the person taking the exam. It has
// no field for the correct answer.
type QuestionView struct {
	ID      uuid.UUID `json:"id"`
	Prompt  string    `json:"prompt"`
	ChoiceA string    `json:"choice_a"`
	ChoiceB string    `json:"choice_b"`
	ChoiceC string    `json:"choice_c"`
	ChoiceD string    `json:"choice_d"`
}

type ExamSession struct {
	ExamID          uuid.UUID      `json:"exam_id"`
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	DurationMinutes int            `json:"duration_minutes"`
	StartedAt       time.Time      `json:"started_at"`
	Questions       []QuestionView `json:"questions"`
}

// StartOutcome carries either a fresh session or, when the exam was already
// completed, the id of the existing result.
type StartOutcome struct {
	AlreadyCompleted bool         `json:"already_completed"`
	ResultID         *uuid.UUID   `json:"result_id,omitempty"`
	Session          *ExamSession `json:"session,omitempty"`
}

type SubmitOutcome struct {
	AlreadyCompleted bool      `json:"already_completed"`
	ResultID         uuid.UUID `json:"result_id"`
}

type SubmitDTO struct {
	Answers []string `json:"answers"`
}

type ResultView struct {
	ID               uuid.UUID `json:"id"`
	ExamID           uuid.UUID `json:"exam_id"`
	ExamTitle        string    `json:"exam_title"`
	TotalQuestions   int       `json:"total_questions"`
	CorrectAnswers   int       `json:"correct_answers"`
	IncorrectAnswers int       `json:"incorrect_answers"`
	Score            float64   `json:"score"`
	IsPassed         bool      `json:"is_passed"`
	StartedAt        time.Time `json:"started_at"`
	CompletedAt      time.Time `json:"completed_at"`
	DurationSeconds  int64     `json:"duration_seconds"`
	Duration         string    `json:"duration"`
}

func toQuestionViews(questions []exam.Question) []QuestionView {
	views := make([]QuestionView, 0, len(questions))
	for _, q := range questions {
		views = append(views, QuestionView{
			ID:      q.ID,
			Prompt:  q.Prompt,
			ChoiceA: q.ChoiceA,
			ChoiceB: q.ChoiceB,
			ChoiceC: q.ChoiceC,
			ChoiceD: q.ChoiceD,
		})
	}
	return views
}

func toScoredQuestions(questions []exam.Question) []ScoredQuestion {
	scored := make([]ScoredQuestion, 0, len(questions))
	for _, q := range questions {
		scored = append(scored, ScoredQuestion{ID: q.ID, CorrectAnswer: q.CorrectAnswer})
	}
	return scored
}
