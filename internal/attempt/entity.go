package attempt

import (
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/examhub/internal/exam"
	"github.com/saulo-duarte/examhub/internal/user"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Attempt records when a user first opened an exam.
type Attempt struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_attempt_user_exam" json:"user_id"`
	ExamID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_attempt_user_exam;index" json:"exam_id"`
	StartedAt time.Time `gorm:"not null" json:"started_at"`
	CreatedAt time.Time `json:"created_at"`

	User user.User `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Exam exam.Exam `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (a *Attempt) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// Result is the immutable outcome of a submitted attempt. At most one
// exists per (user, exam).
type Result struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_result_user_exam" json:"user_id"`
	ExamID         uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_result_user_exam;index" json:"exam_id"`
	TotalQuestions int            `gorm:"not null" json:"total_questions"`
	CorrectAnswers int            `gorm:"not null" json:"correct_answers"`
	Score          float64        `gorm:"not null" json:"score"`
	IsPassed       bool           `gorm:"not null" json:"is_passed"`
	Answers        datatypes.JSON `json:"answers"`
	StartedAt      time.Time      `gorm:"not null" json:"started_at"`
	CompletedAt    time.Time      `gorm:"not null;index" json:"completed_at"`

	User user.User `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Exam exam.Exam `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (r *Result) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
