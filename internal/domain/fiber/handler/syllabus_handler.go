package handler

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/priyankan19/oerhub/internal/middleware"
	"github.com/priyankan19/oerhub/internal/syllabus"
	"github.com/priyankan19/oerhub/internal/util"
)

type SyllabusHandler struct {
	newImporter func(semester int, year string) *syllabus.Importer
}

func NewSyllabusHandler(newImporter func(semester int, year string) *syllabus.Importer) *SyllabusHandler {
	return &SyllabusHandler{newImporter: newImporter}
}

func (h *SyllabusHandler) RegisterRoutes(app *fiber.App) {
	app.Post("/syllabus/import", middleware.RateLimiter(2, time.Minute), h.Import)
}

// Import parses an uploaded syllabus PDF and seeds the course catalog.
func (h *SyllabusHandler) Import(c *fiber.Ctx) error {
	file, err := c.FormFile("syllabus")
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "syllabus file is required",
		}, err)
	}
	if !strings.EqualFold(filepath.Ext(file.Filename), ".pdf") {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "syllabus must be a PDF",
		}, nil)
	}

	semester := c.QueryInt("semester", 0)
	if semester == 0 {
		if n, err := strconv.Atoi(c.FormValue("semester")); err == nil {
			semester = n
		}
	}
	year := c.FormValue("year_of_study")

	tmp, err := os.CreateTemp("", "syllabus-*.pdf")
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "cannot stage syllabus file",
		}, err)
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpPath)

	if err := c.SaveFile(file, tmpPath); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "cannot save syllabus file",
		}, err)
	}

	stats, err := h.newImporter(semester, year).ImportPDF(tmpPath)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusUnprocessableEntity,
			Message: "failed to import syllabus",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Syllabus imported",
		Data:    stats,
	})
}
