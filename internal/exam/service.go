package exam

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/saulo-duarte/examhub/internal/config"
	"github.com/saulo-duarte/examhub/internal/validation"
)

var (
	ErrExamNotFound        = errors.New("exam not found")
	ErrQuestionNotFound    = errors.New("question not found")
	ErrQuestionsLocked     = errors.New("exam questions cannot change once the exam has been attempted")
	ErrConcurrencyConflict = errors.New("exam was modified by another request")
)

type ExamService interface {
	CreateExam(ctx context.Context, dto CreateExamDTO) (*Exam, error)
	UpdateExam(ctx context.Context, id uuid.UUID, dto UpdateExamDTO) (*Exam, error)
	DeleteExam(ctx context.Context, id uuid.UUID) error
	GetExam(ctx context.Context, id uuid.UUID) (*Exam, error)
	GetActiveExam(ctx context.Context, id uuid.UUID) (*Exam, error)
	ListExams(ctx context.Context) ([]*ExamSummary, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	CountExisting(ctx context.Context, ids []uuid.UUID) (int64, error)

	AddQuestion(ctx context.Context, examID uuid.UUID, dto QuestionDTO) (*Question, error)
	AddQuestions(ctx context.Context, examID uuid.UUID, dtos []QuestionDTO) ([]*Question, error)
	UpdateQuestion(ctx context.Context, examID, questionID uuid.UUID, dto QuestionDTO) (*Question, error)
	DeleteQuestion(ctx context.Context, examID, questionID uuid.UUID) error
	ListQuestions(ctx context.Context, examID uuid.UUID) ([]*Question, error)
}

type examService struct {
	repo ExamRepository
}

func NewService(repo ExamRepository) ExamService {
	return &examService{repo: repo}
}

func (s *examService) CreateExam(ctx context.Context, dto CreateExamDTO) (*Exam, error) {
	log := config.WithContext(ctx)

	if err := validation.Struct(dto); err != nil {
		return nil, err
	}

	e := &Exam{
		Title:           dto.Title,
		Description:     dto.Description,
		DurationMinutes: dto.DurationMinutes,
		IsActive:        true,
	}
	if dto.IsActive != nil {
		e.IsActive = *dto.IsActive
	}

	if err := s.repo.Create(ctx, e); err != nil {
		log.WithError(err).Error("Failed to create exam")
		return nil, err
	}

	log.WithField("exam_id", e.ID).Info("Exam created")
	return e, nil
}

func (s *examService) UpdateExam(ctx context.Context, id uuid.UUID, dto UpdateExamDTO) (*Exam, error) {
	log := config.WithContext(ctx).WithField("exam_id", id)

	if err := validation.Struct(dto); err != nil {
		return nil, err
	}

	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	e.Title = dto.Title
	e.Description = dto.Description
	e.DurationMinutes = dto.DurationMinutes
	e.IsActive = dto.IsActive

	updated, err := s.repo.UpdateVersioned(ctx, e, dto.Version)
	if err != nil {
		log.WithError(err).Error("Failed to update exam")
		return nil, err
	}
	if !updated {
		exists, err := s.repo.Exists(ctx, id)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, ErrExamNotFound
		}
		log.WithField("version", dto.Version).Warn("Stale exam version on update")
		return nil, ErrConcurrencyConflict
	}

	log.Info("Exam updated")
	return e, nil
}

func (s *examService) DeleteExam(ctx context.Context, id uuid.UUID) error {
	log := config.WithContext(ctx).WithField("exam_id", id)

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrExamNotFound) {
			return err
		}
		log.WithError(err).Error("Failed to delete exam")
		return err
	}

	log.Info("Exam deleted with its questions, assignments and results")
	return nil
}

func (s *examService) GetExam(ctx context.Context, id uuid.UUID) (*Exam, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	questions, err := s.repo.ListQuestions(ctx, id)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to list exam questions")
		return nil, err
	}
	e.Questions = make([]Question, 0, len(questions))
	for _, q := range questions {
		e.Questions = append(e.Questions, *q)
	}
	return e, nil
}

// GetActiveExam returns an active exam with its questions in presentation
// order. Inactive and missing exams both report ErrExamNotFound.
func (s *examService) GetActiveExam(ctx context.Context, id uuid.UUID) (*Exam, error) {
	return s.repo.GetActiveWithQuestions(ctx, id)
}

func (s *examService) ListExams(ctx context.Context) ([]*ExamSummary, error) {
	log := config.WithContext(ctx)

	exams, err := s.repo.List(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to list exams")
		return nil, err
	}
	counts, err := s.repo.CountQuestionsByExam(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to count questions")
		return nil, err
	}

	summaries := make([]*ExamSummary, 0, len(exams))
	for _, e := range exams {
		summaries = append(summaries, toSummary(e, counts[e.ID]))
	}
	return summaries, nil
}

func (s *examService) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.repo.Exists(ctx, id)
}

func (s *examService) CountExisting(ctx context.Context, ids []uuid.UUID) (int64, error) {
	return s.repo.CountExisting(ctx, ids)
}

// ensureEditable fails when the exam is missing or anyone has started it.
func (s *examService) ensureEditable(ctx context.Context, examID uuid.UUID) error {
	exists, err := s.repo.Exists(ctx, examID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrExamNotFound
	}

	locked, err := s.repo.HasAttempts(ctx, examID)
	if err != nil {
		return err
	}
	if locked {
		config.WithContext(ctx).WithField("exam_id", examID).Warn("Rejected question change on attempted exam")
		return ErrQuestionsLocked
	}
	return nil
}

func (s *examService) AddQuestion(ctx context.Context, examID uuid.UUID, dto QuestionDTO) (*Question, error) {
	questions, err := s.AddQuestions(ctx, examID, []QuestionDTO{dto})
	if err != nil {
		return nil, err
	}
	return questions[0], nil
}

// AddQuestions validates every question before storing any of them.
// Questions without an explicit order are appended after the current last one.
func (s *examService) AddQuestions(ctx context.Context, examID uuid.UUID, dtos []QuestionDTO) ([]*Question, error) {
	log := config.WithContext(ctx).WithField("exam_id", examID)

	for _, dto := range dtos {
		if err := validation.Struct(dto); err != nil {
			return nil, err
		}
	}
	if err := s.ensureEditable(ctx, examID); err != nil {
		return nil, err
	}

	next, err := s.repo.NextOrderIndex(ctx, examID)
	if err != nil {
		log.WithError(err).Error("Failed to compute question order")
		return nil, err
	}

	questions := make([]*Question, 0, len(dtos))
	for _, dto := range dtos {
		q := &Question{ExamID: examID}
		applyQuestion(q, dto)
		if dto.OrderIndex == nil {
			q.OrderIndex = next
			next++
		}
		questions = append(questions, q)
	}

	if err := s.repo.AddQuestions(ctx, questions); err != nil {
		log.WithError(err).Error("Failed to add questions")
		return nil, err
	}

	log.WithField("count", len(questions)).Info("Questions added")
	return questions, nil
}

func (s *examService) UpdateQuestion(ctx context.Context, examID, questionID uuid.UUID, dto QuestionDTO) (*Question, error) {
	log := config.WithContext(ctx).WithField("question_id", questionID)

	if err := validation.Struct(dto); err != nil {
		return nil, err
	}
	if err := s.ensureEditable(ctx, examID); err != nil {
		return nil, err
	}

	q, err := s.repo.GetQuestion(ctx, questionID)
	if err != nil {
		return nil, err
	}
	if q.ExamID != examID {
		return nil, ErrQuestionNotFound
	}

	applyQuestion(q, dto)
	if err := s.repo.UpdateQuestion(ctx, q); err != nil {
		log.WithError(err).Error("Failed to update question")
		return nil, err
	}

	log.Info("Question updated")
	return q, nil
}

func (s *examService) DeleteQuestion(ctx context.Context, examID, questionID uuid.UUID) error {
	log := config.WithContext(ctx).WithField("question_id", questionID)

	if err := s.ensureEditable(ctx, examID); err != nil {
		return err
	}

	q, err := s.repo.GetQuestion(ctx, questionID)
	if err != nil {
		return err
	}
	if q.ExamID != examID {
		return ErrQuestionNotFound
	}

	if err := s.repo.DeleteQuestion(ctx, questionID); err != nil {
		log.WithError(err).Error("Failed to delete question")
		return err
	}

	log.Info("Question deleted")
	return nil
}

func (s *examService) ListQuestions(ctx context.Context, examID uuid.UUID) ([]*Question, error) {
	exists, err := s.repo.Exists(ctx, examID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrExamNotFound
	}
	return s.repo.ListQuestions(ctx, examID)
}

func applyQuestion(q *Question, dto QuestionDTO) {
	q.Prompt = dto.Prompt
	q.ChoiceA = dto.ChoiceA
	q.ChoiceB = dto.ChoiceB
	q.ChoiceC = dto.ChoiceC
	q.ChoiceD = dto.ChoiceD
	q.CorrectAnswer = dto.CorrectAnswer
	if dto.OrderIndex != nil {
		q.OrderIndex = *dto.OrderIndex
	}
}
