package dto

import (
	"time"

	"github.com/google/uuid"
)

type ConfirmSubmissionRequest struct {
	ContributorID    uint   `json:"contributor_id"`
	CourseID         uint   `json:"course_id"`
	ChapterID        uint   `json:"chapter_id"`
	ContributorName  string `json:"contributor_name"`
	ContributorEmail string `json:"contributor_email"`
}

type SubmissionDTO struct {
	ID            uuid.UUID `json:"id"`
	ContributorID uint      `json:"contributor_id"`
	ChapterID     uint      `json:"chapter_id"`
	Evaluated     bool      `json:"evaluated"`
	Timestamp     time.Time `json:"timestamp"`
	HasDocument   bool      `json:"has_document"`
	HasVideo      bool      `json:"has_video"`
	HasAssessment bool      `json:"has_assessment"`
}
