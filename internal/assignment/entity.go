package assignment

import (
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/examhub/internal/exam"
	"github.com/saulo-duarte/examhub/internal/user"
	"gorm.io/gorm"
)

// Assignment grants one user eligibility for one exam.
type Assignment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_assignment_user_exam" json:"user_id"`
	ExamID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_assignment_user_exam;index" json:"exam_id"`
	CreatedAt time.Time `json:"created_at"`

	User user.User `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Exam exam.Exam `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (a *Assignment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
