package syllabus

import (
	"fmt"
	"strings"

	"github.com/gen2brain/go-fitz"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/priyankan19/oerhub/internal/model"
)

// ImportStats summarizes what a syllabus import created or matched.
type ImportStats struct {
	Program  string `json:"program"`
	Courses  int    `json:"courses"`
	Chapters int    `json:"chapters"`
	Outcomes int    `json:"outcomes"`
}

type Importer struct {
	db       *gorm.DB
	semester int
	year     string
	logger   zerolog.Logger
}

func NewImporter(db *gorm.DB, semester int, yearOfStudy string, logger zerolog.Logger) *Importer {
	return &Importer{db: db, semester: semester, year: yearOfStudy, logger: logger}
}

// ImportPDF reads the syllabus document at path and upserts the catalog
// entities it describes. Re-importing the same document is a no-op.
func (im *Importer) ImportPDF(path string) (ImportStats, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return ImportStats{}, fmt.Errorf("open syllabus pdf: %w", err)
	}
	defer doc.Close()

	var pages []string
	for n := 0; n < doc.NumPage(); n++ {
		text, err := doc.Text(n)
		if err != nil {
			im.logger.Warn().Int("page", n).Err(err).Msg("skipping unreadable syllabus page")
			continue
		}
		pages = append(pages, text)
	}
	return im.Import(strings.Join(pages, "\n"))
}

// Import persists a parsed syllabus in a single transaction.
func (im *Importer) Import(text string) (ImportStats, error) {
	parsed := Parse(text)
	if len(parsed.Courses) == 0 {
		return ImportStats{}, fmt.Errorf("no course sections found in syllabus text")
	}

	stats := ImportStats{Program: parsed.ProgramName}
	err := im.db.Transaction(func(tx *gorm.DB) error {
		var program model.Program
		if err := tx.Where(model.Program{ProgramName: parsed.ProgramName}).
			FirstOrCreate(&program).Error; err != nil {
			return err
		}

		var dept model.Department
		if err := tx.Where(model.Department{ProgramID: program.ID, DeptName: parsed.Department}).
			FirstOrCreate(&dept).Error; err != nil {
			return err
		}

		var scheme model.Scheme
		if err := tx.Where(model.Scheme{Name: parsed.SchemeName, StartYear: parsed.StartYear}).
			FirstOrCreate(&scheme).Error; err != nil {
			return err
		}

		for _, pc := range parsed.Courses {
			var course model.Course
			lookup := model.Course{DepartmentID: dept.ID, SchemeID: scheme.ID, CourseCode: pc.Code}
			attrs := model.Course{CourseName: pc.Name, YearOfStudy: im.year, Semester: im.semester}
			if err := tx.Where(lookup).Attrs(attrs).FirstOrCreate(&course).Error; err != nil {
				return err
			}
			stats.Courses++

			for _, ch := range pc.Chapters {
				var chapter model.Chapter
				lookup := model.Chapter{CourseID: course.ID, ChapterNumber: ch.Number}
				if err := tx.Where(lookup).Attrs(model.Chapter{ChapterName: ch.Name}).
					FirstOrCreate(&chapter).Error; err != nil {
					return err
				}
				stats.Chapters++
			}

			for _, co := range pc.Outcomes {
				var outcome model.CourseOutcome
				lookup := model.CourseOutcome{CourseID: course.ID, OutcomeCode: co.Code}
				if err := tx.Where(lookup).Attrs(model.CourseOutcome{Description: co.Description}).
					FirstOrCreate(&outcome).Error; err != nil {
					return err
				}
				stats.Outcomes++
			}
		}
		return nil
	})
	if err != nil {
		return ImportStats{}, err
	}

	im.logger.Info().
		Str("program", stats.Program).
		Int("courses", stats.Courses).
		Int("chapters", stats.Chapters).
		Msg("syllabus imported")
	return stats, nil
}
