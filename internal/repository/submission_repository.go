package repository

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/priyankan19/oerhub/internal/model"
)

// ErrAlreadySubmitted means a submission record already exists for the
// (contributor, chapter) pair. Resubmission is rejected, not versioned.
var ErrAlreadySubmitted = errors.New("submission already recorded for this chapter")

type SubmissionRepository struct {
	db *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{db}
}

// CreateWithPresence persists the submission record and its content-presence
// record in one transaction, keeping the 1:1 invariant.
func (r *SubmissionRepository) CreateWithPresence(check *model.UploadCheck, presence *model.ContentCheck) error {
	var existing model.UploadCheck
	err := r.db.First(&existing, "contributor_id = ? AND chapter_id = ?", check.ContributorID, check.ChapterID).Error
	if err == nil {
		return ErrAlreadySubmitted
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(check).Error; err != nil {
			return err
		}
		presence.UploadCheckID = check.ID
		return tx.Create(presence).Error
	})
}

func (r *SubmissionRepository) FindByContributorAndChapter(contributorID, chapterID uint) (*model.UploadCheck, error) {
	var check model.UploadCheck
	err := r.db.Preload("ContentCheck").
		First(&check, "contributor_id = ? AND chapter_id = ?", contributorID, chapterID).Error
	if err != nil {
		return nil, err
	}
	return &check, nil
}

func (r *SubmissionRepository) ListByContributor(contributorID uint) ([]model.UploadCheck, error) {
	var checks []model.UploadCheck
	err := r.db.Preload("ContentCheck").
		Where("contributor_id = ?", contributorID).
		Order("timestamp DESC").
		Find(&checks).Error
	return checks, err
}

// MarkEvaluated is the only mutation a submission record allows.
func (r *SubmissionRepository) MarkEvaluated(id uuid.UUID) error {
	return r.db.Model(&model.UploadCheck{}).Where("id = ?", id).Update("evaluated", true).Error
}
