package exam

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Answer markers accepted as a question's correct answer.
const (
	AnswerA = "A"
	AnswerB = "B"
	AnswerC = "C"
	AnswerD = "D"
)

var AnswerMarkers = []string{AnswerA, AnswerB, AnswerC, AnswerD}

type Exam struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title           string    `gorm:"type:varchar(200);not null" json:"title"`
	Description     string    `gorm:"type:varchar(1000)" json:"description"`
	DurationMinutes int       `gorm:"not null" json:"duration_minutes"`
	IsActive        bool      `gorm:"not null" json:"is_active"`
	Version         int       `gorm:"not null" json:"version"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	Questions []Question `gorm:"foreignKey:ExamID;constraint:OnDelete:CASCADE" json:"questions,omitempty"`
}

func (e *Exam) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.Version == 0 {
		e.Version = 1
	}
	return nil
}

type Question struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ExamID        uuid.UUID `gorm:"type:uuid;not null;index" json:"exam_id"`
	Prompt        string    `gorm:"type:varchar(500);not null" json:"prompt"`
	ChoiceA       string    `gorm:"type:varchar(200);not null" json:"choice_a"`
	ChoiceB       string    `gorm:"type:varchar(200);not null" json:"choice_b"`
	ChoiceC       string    `gorm:"type:varchar(200);not null" json:"choice_c"`
	ChoiceD       string    `gorm:"type:varchar(200);not null" json:"choice_d"`
	CorrectAnswer string    `gorm:"type:char(1);not null" json:"correct_answer"`
	OrderIndex    int       `gorm:"not null" json:"order_index"`
	CreatedAt     time.Time `json:"created_at"`
}

func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}
