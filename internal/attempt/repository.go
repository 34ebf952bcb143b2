package attempt

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AttemptRepository interface {
	RecordAttempt(ctx context.Context, a *Attempt) (*Attempt, error)
	GetAttempt(ctx context.Context, userID, examID uuid.UUID) (*Attempt, error)
	CreateResult(ctx context.Context, r *Result) (bool, error)
	FindResult(ctx context.Context, userID, examID uuid.UUID) (*Result, error)
	GetResult(ctx context.Context, id uuid.UUID) (*Result, error)
	ListResultsByUser(ctx context.Context, userID uuid.UUID) ([]*Result, error)
}

type attemptRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

var onUserExamConflict = clause.OnConflict{
	Columns:   []clause.Column{{Name: "user_id"}, {Name: "exam_id"}},
	DoNothing: true,
}

// RecordAttempt stores a unless the pair already has an attempt, and returns
// whichever row is stored.
func (r *attemptRepository) RecordAttempt(ctx context.Context, a *Attempt) (*Attempt, error) {
	res := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(onUserExamConflict).
		Create(a)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected > 0 {
		return a, nil
	}
	return r.GetAttempt(ctx, a.UserID, a.ExamID)
}

// GetAttempt returns nil, nil when the pair has no attempt.
func (r *attemptRepository) GetAttempt(ctx context.Context, userID, examID uuid.UUID) (*Attempt, error) {
	var a Attempt
	err := r.db.WithContext(ctx).First(&a, "user_id = ? AND exam_id = ?", userID, examID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

// CreateResult reports false, nil when a result already exists for the
// pair. The unique index decides, not a prior read.
func (r *attemptRepository) CreateResult(ctx context.Context, res *Result) (bool, error) {
	tx := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(onUserExamConflict).
		Create(res)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

// FindResult returns nil, nil when the pair has no result.
func (r *attemptRepository) FindResult(ctx context.Context, userID, examID uuid.UUID) (*Result, error) {
	var res Result
	err := r.db.WithContext(ctx).First(&res, "user_id = ? AND exam_id = ?", userID, examID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &res, nil
}

func (r *attemptRepository) GetResult(ctx context.Context, id uuid.UUID) (*Result, error) {
	var res Result
	err := r.db.WithContext(ctx).Preload("Exam").First(&res, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResultNotFound
		}
		return nil, err
	}
	return &res, nil
}

func (r *attemptRepository) ListResultsByUser(ctx context.Context, userID uuid.UUID) ([]*Result, error) {
	var results []*Result
	err := r.db.WithContext(ctx).
		Preload("Exam").
		Where("user_id = ?", userID).
		Order("completed_at DESC").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
