package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UploadCheck is the durable fact that a contributor confirmed a chapter
// submission. Rows are immutable after creation except Evaluated, which the
// review flow flips later.
type UploadCheck struct {
	ID            uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	ContributorID uint          `gorm:"uniqueIndex:idx_contributor_chapter" json:"contributor_id"`
	ChapterID     uint          `gorm:"uniqueIndex:idx_contributor_chapter" json:"chapter_id"`
	Evaluated     bool          `json:"evaluated"`
	Timestamp     time.Time     `json:"timestamp"`
	ContentCheck  *ContentCheck `json:"content_check,omitempty"`
}

func (u *UploadCheck) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// ContentCheck records which content categories were present in storage at
// confirmation time. Exactly one per UploadCheck, created in the same
// transaction, never recomputed.
type ContentCheck struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UploadCheckID uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"upload_check_id"`
	HasDocument   bool      `json:"has_document"`
	HasVideo      bool      `json:"has_video"`
	HasAssessment bool      `json:"has_assessment"`
}

func (c *ContentCheck) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
