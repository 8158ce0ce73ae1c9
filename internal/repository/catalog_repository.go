package repository

import (
	"gorm.io/gorm"

	"github.com/priyankan19/oerhub/internal/model"
)

type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db}
}

func (r *CatalogRepository) FindCourseByID(id uint) (*model.Course, error) {
	var course model.Course
	err := r.db.First(&course, "id = ?", id).Error
	return &course, err
}

func (r *CatalogRepository) FindChapterByID(id uint) (*model.Chapter, error) {
	var chapter model.Chapter
	err := r.db.First(&chapter, "id = ?", id).Error
	return &chapter, err
}

func (r *CatalogRepository) ChaptersByCourse(courseID uint) ([]model.Chapter, error) {
	var chapters []model.Chapter
	err := r.db.Where("course_id = ?", courseID).Order("chapter_number").Find(&chapters).Error
	return chapters, err
}

// CoursesByDepartment filters by department name, optionally narrowed by year
// of study and semester.
func (r *CatalogRepository) CoursesByDepartment(deptName, yearOfStudy string, semester int) ([]model.Course, error) {
	tx := r.db.
		Joins("JOIN departments ON departments.id = courses.department_id").
		Where("departments.dept_name ILIKE ?", deptName)
	if yearOfStudy != "" {
		tx = tx.Where("courses.year_of_study ILIKE ?", yearOfStudy)
	}
	if semester > 0 {
		tx = tx.Where("courses.semester = ?", semester)
	}

	var courses []model.Course
	err := tx.Find(&courses).Error
	return courses, err
}

func (r *CatalogRepository) OutcomesByCourse(courseID uint) ([]model.CourseOutcome, error) {
	var outcomes []model.CourseOutcome
	err := r.db.Where("course_id = ?", courseID).Order("outcome_code").Find(&outcomes).Error
	return outcomes, err
}
