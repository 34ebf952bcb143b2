package exam

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tables owned jointly by an exam and a user. They are cleared before the
// exam row itself so no reference outlives the exam, even on stores
// without foreign key enforcement.
var dependentTables = []string{"results", "attempts", "assignments"}

var attemptTables = []string{"attempts", "results"}

type ExamRepository interface {
	Create(ctx context.Context, e *Exam) error
	GetByID(ctx context.Context, id uuid.UUID) (*Exam, error)
	GetActiveWithQuestions(ctx context.Context, id uuid.UUID) (*Exam, error)
	List(ctx context.Context) ([]*Exam, error)
	CountQuestionsByExam(ctx context.Context) (map[uuid.UUID]int, error)
	CountExisting(ctx context.Context, ids []uuid.UUID) (int64, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	UpdateVersioned(ctx context.Context, e *Exam, expectedVersion int) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
	HasAttempts(ctx context.Context, examID uuid.UUID) (bool, error)

	AddQuestions(ctx context.Context, questions []*Question) error
	GetQuestion(ctx context.Context, id uuid.UUID) (*Question, error)
	UpdateQuestion(ctx context.Context, q *Question) error
	DeleteQuestion(ctx context.Context, id uuid.UUID) error
	ListQuestions(ctx context.Context, examID uuid.UUID) ([]*Question, error)
	NextOrderIndex(ctx context.Context, examID uuid.UUID) (int, error)
}

type examRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) ExamRepository {
	return &examRepository{db: db}
}

func (r *examRepository) Create(ctx context.Context, e *Exam) error {
	return r.db.WithContext(ctx).Omit("Questions").Create(e).Error
}

func (r *examRepository) GetByID(ctx context.Context, id uuid.UUID) (*Exam, error) {
	var e Exam
	if err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExamNotFound
		}
		return nil, err
	}
	return &e, nil
}

func orderedQuestions(db *gorm.DB) *gorm.DB {
	return db.Order("order_index ASC").Order("id ASC")
}

func (r *examRepository) GetActiveWithQuestions(ctx context.Context, id uuid.UUID) (*Exam, error) {
	var e Exam
	err := r.db.WithContext(ctx).
		Preload("Questions", orderedQuestions).
		First(&e, "id = ? AND is_active = ?", id, true).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExamNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *examRepository) List(ctx context.Context) ([]*Exam, error) {
	var exams []*Exam
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&exams).Error; err != nil {
		return nil, err
	}
	return exams, nil
}

func (r *examRepository) CountQuestionsByExam(ctx context.Context) (map[uuid.UUID]int, error) {
	var rows []struct {
		ExamID uuid.UUID
		Total  int
	}
	err := r.db.WithContext(ctx).
		Model(&Question{}).
		Select("exam_id, COUNT(*) AS total").
		Group("exam_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[uuid.UUID]int, len(rows))
	for _, row := range rows {
		counts[row.ExamID] = row.Total
	}
	return counts, nil
}

func (r *examRepository) CountExisting(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&Exam{}).Where("id IN ?", ids).Count(&count).Error
	return count, err
}

func (r *examRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	count, err := r.CountExisting(ctx, []uuid.UUID{id})
	return count > 0, err
}

// UpdateVersioned writes e only if the stored version still equals
// expectedVersion. It reports whether a row was updated.
func (r *examRepository) UpdateVersioned(ctx context.Context, e *Exam, expectedVersion int) (bool, error) {
	now := time.Now().UTC()
	res := r.db.WithContext(ctx).
		Model(&Exam{}).
		Where("id = ? AND version = ?", e.ID, expectedVersion).
		Updates(map[string]interface{}{
			"title":            e.Title,
			"description":      e.Description,
			"duration_minutes": e.DurationMinutes,
			"is_active":        e.IsActive,
			"version":          expectedVersion + 1,
			"updated_at":       now,
		})
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	e.Version = expectedVersion + 1
	e.UpdatedAt = now
	return true, nil
}

func (r *examRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, table := range dependentTables {
			if err := tx.Exec("DELETE FROM "+table+" WHERE exam_id = ?", id).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("exam_id = ?", id).Delete(&Question{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&Exam{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrExamNotFound
		}
		return nil
	})
}

// HasAttempts reports whether anyone has started or finished the exam.
func (r *examRepository) HasAttempts(ctx context.Context, examID uuid.UUID) (bool, error) {
	for _, table := range attemptTables {
		var count int64
		if err := r.db.WithContext(ctx).Table(table).Where("exam_id = ?", examID).Count(&count).Error; err != nil {
			return false, err
		}
		if count > 0 {
			return true, nil
		}
	}
	return false, nil
}

func (r *examRepository) AddQuestions(ctx context.Context, questions []*Question) error {
	if len(questions) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&questions).Error
}

func (r *examRepository) GetQuestion(ctx context.Context, id uuid.UUID) (*Question, error) {
	var q Question
	if err := r.db.WithContext(ctx).First(&q, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}
	return &q, nil
}

func (r *examRepository) UpdateQuestion(ctx context.Context, q *Question) error {
	return r.db.WithContext(ctx).Save(q).Error
}

func (r *examRepository) DeleteQuestion(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&Question{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrQuestionNotFound
	}
	return nil
}

func (r *examRepository) ListQuestions(ctx context.Context, examID uuid.UUID) ([]*Question, error) {
	var questions []*Question
	if err := orderedQuestions(r.db.WithContext(ctx)).
		Where("exam_id = ?", examID).
		Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *examRepository) NextOrderIndex(ctx context.Context, examID uuid.UUID) (int, error) {
	var max sql.NullInt64
	err := r.db.WithContext(ctx).
		Model(&Question{}).
		Where("exam_id = ?", examID).
		Select("MAX(order_index)").
		Row().
		Scan(&max)
	if err != nil {
		return 0, err
	}
	if !max.Valid {
		return 0, nil
	}
	return int(max.Int64) + 1, nil
}
