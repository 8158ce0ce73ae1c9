package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreatedBy is the contributor identifier, not a user aggregate.
type Assessment struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	CourseID  uint       `gorm:"index" json:"course_id"`
	ChapterID uint       `gorm:"index" json:"chapter_id"`
	CreatedBy uint       `json:"created_by"`
	Questions []Question `json:"questions,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func (a *Assessment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

type Question struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AssessmentID  uuid.UUID `gorm:"type:uuid;index" json:"assessment_id"`
	Text          string    `gorm:"type:text" json:"text"`
	CorrectOption int       `json:"correct_option"`
	Options       []Option  `json:"options,omitempty"`
}

func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

type Option struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	QuestionID uuid.UUID `gorm:"type:uuid;index" json:"question_id"`
	Text       string    `gorm:"type:text" json:"text"`
}

func (o *Option) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
