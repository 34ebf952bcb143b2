package assignment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AssignmentRepository interface {
	Assign(ctx context.Context, userID, examID uuid.UUID) (bool, error)
	Replace(ctx context.Context, userID uuid.UUID, examIDs []uuid.UUID) error
	IsAssigned(ctx context.Context, userID, examID uuid.UUID) (bool, error)
	ListAvailable(ctx context.Context, userID uuid.UUID) ([]*AvailableExam, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*UserExamAssignment, error)
}

type assignmentRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) AssignmentRepository {
	return &assignmentRepository{db: db}
}

var onUserExamConflict = clause.OnConflict{
	Columns:   []clause.Column{{Name: "user_id"}, {Name: "exam_id"}},
	DoNothing: true,
}

// Assign reports whether a new row was inserted. An existing pair is left
// untouched.
func (r *assignmentRepository) Assign(ctx context.Context, userID, examID uuid.UUID) (bool, error) {
	a := &Assignment{UserID: userID, ExamID: examID}
	res := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(onUserExamConflict).
		Create(a)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *assignmentRepository) Replace(ctx context.Context, userID uuid.UUID, examIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&Assignment{}).Error; err != nil {
			return err
		}
		if len(examIDs) == 0 {
			return nil
		}

		rows := make([]*Assignment, 0, len(examIDs))
		for _, id := range examIDs {
			rows = append(rows, &Assignment{UserID: userID, ExamID: id})
		}
		return tx.Omit(clause.Associations).Create(&rows).Error
	})
}

func (r *assignmentRepository) IsAssigned(ctx context.Context, userID, examID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Assignment{}).
		Where("user_id = ? AND exam_id = ?", userID, examID).
		Count(&count).Error
	return count > 0, err
}

const availableQuery = `
SELECT e.id AS exam_id, e.title, e.description, e.duration_minutes, e.is_active,
	(SELECT COUNT(*) FROM questions q WHERE q.exam_id = e.id) AS question_count,
	r.id AS result_id
FROM assignments a
JOIN exams e ON e.id = a.exam_id
LEFT JOIN results r ON r.exam_id = a.exam_id AND r.user_id = a.user_id
WHERE a.user_id = ?
ORDER BY e.title ASC`

func (r *assignmentRepository) ListAvailable(ctx context.Context, userID uuid.UUID) ([]*AvailableExam, error) {
	var rows []struct {
		ExamID          uuid.UUID
		Title           string
		Description     string
		DurationMinutes int
		IsActive        bool
		QuestionCount   int
		ResultID        uuid.NullUUID
	}
	if err := r.db.WithContext(ctx).Raw(availableQuery, userID).Scan(&rows).Error; err != nil {
		return nil, err
	}

	exams := make([]*AvailableExam, 0, len(rows))
	for _, row := range rows {
		item := &AvailableExam{
			ExamID:          row.ExamID,
			Title:           row.Title,
			Description:     row.Description,
			DurationMinutes: row.DurationMinutes,
			IsActive:        row.IsActive,
			QuestionCount:   row.QuestionCount,
			HasTaken:        row.ResultID.Valid,
		}
		if row.ResultID.Valid {
			id := row.ResultID.UUID
			item.ResultID = &id
		}
		exams = append(exams, item)
	}
	return exams, nil
}

const forUserQuery = `
SELECT e.id AS exam_id, e.title, e.is_active,
	a.id AS assignment_id,
	r.id AS result_id, r.score, r.is_passed, r.completed_at
FROM exams e
LEFT JOIN assignments a ON a.exam_id = e.id AND a.user_id = ?
LEFT JOIN results r ON r.exam_id = e.id AND r.user_id = ?
ORDER BY e.title ASC`

func (r *assignmentRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]*UserExamAssignment, error) {
	var rows []struct {
		ExamID       uuid.UUID
		Title        string
		IsActive     bool
		AssignmentID uuid.NullUUID
		ResultID     uuid.NullUUID
		Score        *float64
		IsPassed     *bool
		CompletedAt  *time.Time
	}
	if err := r.db.WithContext(ctx).Raw(forUserQuery, userID, userID).Scan(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]*UserExamAssignment, 0, len(rows))
	for _, row := range rows {
		items = append(items, &UserExamAssignment{
			ExamID:      row.ExamID,
			Title:       row.Title,
			IsActive:    row.IsActive,
			IsSelected:  row.AssignmentID.Valid,
			IsSolved:    row.ResultID.Valid,
			Score:       row.Score,
			IsPassed:    row.IsPassed,
			CompletedAt: row.CompletedAt,
		})
	}
	return items, nil
}
