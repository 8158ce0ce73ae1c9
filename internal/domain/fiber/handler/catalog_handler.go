package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/priyankan19/oerhub/internal/repository"
	"github.com/priyankan19/oerhub/internal/util"
)

// CatalogHandler is the read-only browse surface for students.
type CatalogHandler struct {
	catalog *repository.CatalogRepository
}

func NewCatalogHandler(catalog *repository.CatalogRepository) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

func (h *CatalogHandler) RegisterRoutes(app *fiber.App) {
	app.Get("/catalog/courses", h.Courses)
	app.Get("/catalog/courses/:id", h.Course)
	app.Get("/catalog/courses/:id/chapters", h.Chapters)
	app.Get("/catalog/courses/:id/outcomes", h.Outcomes)
}

func (h *CatalogHandler) Courses(c *fiber.Ctx) error {
	department := c.Query("department")
	if department == "" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "department query parameter is required",
		}, nil)
	}

	courses, err := h.catalog.CoursesByDepartment(department, c.Query("year"), c.QueryInt("semester", 0))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to list courses",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success list courses",
		Data:    courses,
	})
}

func (h *CatalogHandler) Course(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid course id",
		}, err)
	}

	course, err := h.catalog.FindCourseByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusNotFound,
				Message: "course not found",
			}, err)
		}
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to load course",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success load course",
		Data:    course,
	})
}

func (h *CatalogHandler) Chapters(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid course id",
		}, err)
	}

	chapters, err := h.catalog.ChaptersByCourse(uint(id))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to list chapters",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success list chapters",
		Data:    chapters,
	})
}

func (h *CatalogHandler) Outcomes(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid course id",
		}, err)
	}

	outcomes, err := h.catalog.OutcomesByCourse(uint(id))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to list outcomes",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success list outcomes",
		Data:    outcomes,
	})
}
