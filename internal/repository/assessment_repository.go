package repository

import (
	"gorm.io/gorm"

	"github.com/priyankan19/oerhub/internal/model"
)

type AssessmentRepository struct {
	db *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) *AssessmentRepository {
	return &AssessmentRepository{db}
}

// Create persists the assessment with its question/option tree atomically.
func (r *AssessmentRepository) Create(assessment *model.Assessment) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(assessment).Error
	})
}

func (r *AssessmentRepository) ByChapter(chapterID uint) ([]model.Assessment, error) {
	var assessments []model.Assessment
	err := r.db.Preload("Questions.Options").
		Where("chapter_id = ?", chapterID).
		Find(&assessments).Error
	return assessments, err
}
