package attempt

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/saulo-duarte/examhub/internal/assignment"
	"github.com/saulo-duarte/examhub/internal/config"
	"github.com/saulo-duarte/examhub/internal/exam"
	util "github.com/saulo-duarte/examhub/internal/utils"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

var (
	ErrResultNotFound = errors.New("result not found")
	ErrNoQuestions    = errors.New("this exam has no questions")
)

type ExamReader interface {
	GetActiveExam(ctx context.Context, id uuid.UUID) (*exam.Exam, error)
}

type AssignmentReader interface {
	IsAssigned(ctx context.Context, userID, examID uuid.UUID) (bool, error)
	ListAvailable(ctx context.Context, userID uuid.UUID) ([]*assignment.AvailableExam, error)
}

type AttemptService interface {
	ListAvailableExams(ctx context.Context, userID uuid.UUID) ([]*assignment.AvailableExam, error)
	StartAttempt(ctx context.Context, userID, examID uuid.UUID) (*StartOutcome, error)
	SubmitAttempt(ctx context.Context, userID, examID uuid.UUID, answers []string) (*SubmitOutcome, error)
	GetResult(ctx context.Context, userID, resultID uuid.UUID) (*ResultView, error)
	ListMyResults(ctx context.Context, userID uuid.UUID) ([]*ResultView, error)
}

type attemptService struct {
	repo        AttemptRepository
	exams       ExamReader
	assignments AssignmentReader
}

func NewService(repo AttemptRepository, exams ExamReader, assignments AssignmentReader) AttemptService {
	return &attemptService{repo: repo, exams: exams, assignments: assignments}
}

func (s *attemptService) ListAvailableExams(ctx context.Context, userID uuid.UUID) ([]*assignment.AvailableExam, error) {
	return s.assignments.ListAvailable(ctx, userID)
}

func (s *attemptService) ensureAssigned(ctx context.Context, userID, examID uuid.UUID) error {
	ok, err := s.assignments.IsAssigned(ctx, userID, examID)
	if err != nil {
		return err
	}
	if !ok {
		config.WithContext(ctx).WithField("exam_id", examID).Warn("Exam not assigned to caller")
		return assignment.ErrNotAssigned
	}
	return nil
}

func completed(id uuid.UUID) *StartOutcome {
	return &StartOutcome{AlreadyCompleted: true, ResultID: &id}
}

func (s *attemptService) StartAttempt(ctx context.Context, userID, examID uuid.UUID) (*StartOutcome, error) {
	log := config.WithContext(ctx).WithField("exam_id", examID)

	e, err := s.exams.GetActiveExam(ctx, examID)
	if err != nil {
		if !errors.Is(err, exam.ErrExamNotFound) {
			log.WithError(err).Error("Failed to load exam")
		}
		return nil, err
	}

	existing, err := s.repo.FindResult(ctx, userID, examID)
	if err != nil {
		log.WithError(err).Error("Failed to check for an existing result")
		return nil, err
	}
	if existing != nil {
		log.WithField("result_id", existing.ID).Info("Exam already completed")
		return completed(existing.ID), nil
	}

	if err := s.ensureAssigned(ctx, userID, examID); err != nil {
		return nil, err
	}

	if len(e.Questions) == 0 {
		log.Warn("Exam has no questions")
		return nil, ErrNoQuestions
	}

	a, err := s.repo.RecordAttempt(ctx, &Attempt{
		UserID:    userID,
		ExamID:    examID,
		StartedAt: util.NowFunc(),
	})
	if err != nil {
		log.WithError(err).Error("Failed to record attempt")
		return nil, err
	}

	log.WithField("started_at", a.StartedAt).Info("Attempt started")
	return &StartOutcome{
		Session: &ExamSession{
			ExamID:          e.ID,
			Title:           e.Title,
			Description:     e.Description,
			DurationMinutes: e.DurationMinutes,
			StartedAt:       a.StartedAt,
			Questions:       toQuestionViews(e.Questions),
		},
	}, nil
}

func (s *attemptService) SubmitAttempt(ctx context.Context, userID, examID uuid.UUID, answers []string) (*SubmitOutcome, error) {
	log := config.WithContext(ctx).WithField("exam_id", examID)

	existing, err := s.repo.FindResult(ctx, userID, examID)
	if err != nil {
		log.WithError(err).Error("Failed to check for an existing result")
		return nil, err
	}
	if existing != nil {
		log.WithField("result_id", existing.ID).Info("Duplicate submission")
		return &SubmitOutcome{AlreadyCompleted: true, ResultID: existing.ID}, nil
	}

	e, err := s.exams.GetActiveExam(ctx, examID)
	if err != nil {
		if !errors.Is(err, exam.ErrExamNotFound) {
			log.WithError(err).Error("Failed to load exam")
		}
		return nil, err
	}

	if err := s.ensureAssigned(ctx, userID, examID); err != nil {
		return nil, err
	}

	correct, total := Score(toScoredQuestions(e.Questions), answers)
	now := util.NowFunc()

	startedAt := util.MinutesBefore(now, e.DurationMinutes)
	a, err := s.repo.GetAttempt(ctx, userID, examID)
	if err != nil {
		log.WithError(err).Error("Failed to load attempt")
		return nil, err
	}
	if a != nil {
		startedAt = a.StartedAt
	}

	if answers == nil {
		answers = []string{}
	}
	raw, err := json.Marshal(answers)
	if err != nil {
		return nil, err
	}

	res := &Result{
		UserID:         userID,
		ExamID:         examID,
		TotalQuestions: total,
		CorrectAnswers: correct,
		Score:          Percentage(correct, total),
		IsPassed:       Passed(correct, total),
		Answers:        datatypes.JSON(raw),
		StartedAt:      startedAt,
		CompletedAt:    now,
	}

	created, err := s.repo.CreateResult(ctx, res)
	if err != nil {
		log.WithError(err).Error("Failed to store result")
		return nil, err
	}
	if !created {
		winner, err := s.repo.FindResult(ctx, userID, examID)
		if err != nil {
			log.WithError(err).Error("Failed to load concurrent result")
			return nil, err
		}
		if winner == nil {
			return nil, ErrResultNotFound
		}
		log.WithField("result_id", winner.ID).Info("Concurrent submission lost the race")
		return &SubmitOutcome{AlreadyCompleted: true, ResultID: winner.ID}, nil
	}

	log.WithFields(logrus.Fields{
		"result_id": res.ID,
		"score":     res.Score,
		"passed":    res.IsPassed,
	}).Info("Exam submitted")
	return &SubmitOutcome{ResultID: res.ID}, nil
}

// GetResult hides results owned by someone else behind ErrResultNotFound.
func (s *attemptService) GetResult(ctx context.Context, userID, resultID uuid.UUID) (*ResultView, error) {
	res, err := s.repo.GetResult(ctx, resultID)
	if err != nil {
		if !errors.Is(err, ErrResultNotFound) {
			config.WithContext(ctx).WithError(err).Error("Failed to load result")
		}
		return nil, err
	}
	if res.UserID != userID {
		config.WithContext(ctx).WithField("result_id", resultID).Warn("Result requested by non-owner")
		return nil, ErrResultNotFound
	}
	return toResultView(res), nil
}

func (s *attemptService) ListMyResults(ctx context.Context, userID uuid.UUID) ([]*ResultView, error) {
	results, err := s.repo.ListResultsByUser(ctx, userID)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to list results")
		return nil, err
	}

	views := make([]*ResultView, 0, len(results))
	for _, res := range results {
		views = append(views, toResultView(res))
	}
	return views, nil
}

func toResultView(res *Result) *ResultView {
	title := res.Exam.Title
	if title == "" {
		title = unknownExamTitle
	}
	elapsed := res.CompletedAt.Sub(res.StartedAt)

	return &ResultView{
		ID:               res.ID,
		ExamID:           res.ExamID,
		ExamTitle:        title,
		TotalQuestions:   res.TotalQuestions,
		CorrectAnswers:   res.CorrectAnswers,
		IncorrectAnswers: res.TotalQuestions - res.CorrectAnswers,
		Score:            res.Score,
		IsPassed:         res.IsPassed,
		StartedAt:        res.StartedAt,
		CompletedAt:      res.CompletedAt,
		DurationSeconds:  int64(elapsed.Seconds()),
		Duration:         util.FormatDuration(elapsed),
	}
}
