// Package seed inserts a sample exam into an empty catalog.
package seed

import (
	"context"

	"github.com/google/uuid"
	"github.com/saulo-duarte/examhub/internal/config"
	"github.com/saulo-duarte/examhub/internal/exam"
)

// Catalog is the part of the exam service seeding needs.
type Catalog interface {
	ListExams(ctx context.Context) ([]*exam.ExamSummary, error)
	CreateExam(ctx context.Context, dto exam.CreateExamDTO) (*exam.Exam, error)
	AddQuestions(ctx context.Context, examID uuid.UUID, dtos []exam.QuestionDTO) ([]*exam.Question, error)
}

const SampleExamTitle = "Go Programming Basics"

var sampleQuestions = []exam.QuestionDTO{
	{
		Prompt:        "Which keyword starts a new goroutine?",
		ChoiceA:       "go",
		ChoiceB:       "async",
		ChoiceC:       "spawn",
		ChoiceD:       "thread",
		CorrectAnswer: exam.AnswerA,
	},
	{
		Prompt:        "What is the zero value of a map type?",
		ChoiceA:       "An empty map",
		ChoiceB:       "nil",
		ChoiceC:       "0",
		ChoiceD:       "It has no zero value",
		CorrectAnswer: exam.AnswerB,
	},
	{
		Prompt:        "Which statement defers a call until the surrounding function returns?",
		ChoiceA:       "finally",
		ChoiceB:       "after",
		ChoiceC:       "defer",
		ChoiceD:       "ensure",
		CorrectAnswer: exam.AnswerC,
	},
}

// Run seeds the catalog when it is empty. Failures are logged and ignored.
func Run(ctx context.Context, catalog Catalog) {
	log := config.WithContext(ctx)

	exams, err := catalog.ListExams(ctx)
	if err != nil {
		log.WithError(err).Warn("Seed skipped: could not list exams")
		return
	}
	if len(exams) > 0 {
		log.Debug("Seed skipped: catalog already has exams")
		return
	}

	active := true
	e, err := catalog.CreateExam(ctx, exam.CreateExamDTO{
		Title:           SampleExamTitle,
		Description:     "A short check of core Go language knowledge.",
		DurationMinutes: 10,
		IsActive:        &active,
	})
	if err != nil {
		log.WithError(err).Warn("Seed failed: could not create sample exam")
		return
	}

	if _, err := catalog.AddQuestions(ctx, e.ID, sampleQuestions); err != nil {
		log.WithError(err).Warn("Seed failed: could not add sample questions")
		return
	}

	log.WithField("exam_id", e.ID).Info("Sample exam seeded")
}
