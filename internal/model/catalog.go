package model

import (
	"time"
)

// Catalog entities are seeded by the syllabus importer and browsed read-only
// by students.

type Program struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	ProgramName string       `gorm:"type:varchar(255);uniqueIndex" json:"program_name"`
	Departments []Department `json:"departments,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

type Department struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProgramID uint      `gorm:"index" json:"program_id"`
	DeptName  string    `gorm:"type:varchar(255)" json:"dept_name"`
	Courses   []Course  `json:"courses,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Scheme struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255)" json:"name"`
	StartYear int       `json:"start_year"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Course struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	DepartmentID uint            `gorm:"index" json:"department_id"`
	SchemeID     uint            `gorm:"index" json:"scheme_id"`
	CourseCode   string          `gorm:"type:varchar(20);index" json:"course_code"`
	CourseName   string          `gorm:"type:varchar(255)" json:"course_name"`
	YearOfStudy  string          `gorm:"type:varchar(50)" json:"year_of_study"`
	Semester     int             `json:"semester"`
	Chapters     []Chapter       `json:"chapters,omitempty"`
	Outcomes     []CourseOutcome `json:"outcomes,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type Chapter struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	CourseID      uint      `gorm:"index" json:"course_id"`
	ChapterNumber int       `json:"chapter_number"`
	ChapterName   string    `gorm:"type:varchar(255)" json:"chapter_name"`
	Description   string    `gorm:"type:text" json:"description"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type CourseOutcome struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CourseID    uint      `gorm:"index" json:"course_id"`
	OutcomeCode string    `gorm:"type:varchar(10)" json:"outcome_code"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
