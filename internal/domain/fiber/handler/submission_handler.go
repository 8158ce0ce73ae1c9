package handler

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/priyankan19/oerhub/internal/dto"
	"github.com/priyankan19/oerhub/internal/middleware"
	"github.com/priyankan19/oerhub/internal/model"
	"github.com/priyankan19/oerhub/internal/repository"
	"github.com/priyankan19/oerhub/internal/usecase"
	"github.com/priyankan19/oerhub/internal/util"
)

type SubmissionHandler struct {
	uc          *usecase.SubmissionUsecase
	assessments *repository.AssessmentRepository
}

func NewSubmissionHandler(uc *usecase.SubmissionUsecase, assessments *repository.AssessmentRepository) *SubmissionHandler {
	return &SubmissionHandler{uc: uc, assessments: assessments}
}

func (h *SubmissionHandler) RegisterRoutes(app *fiber.App) {
	app.Post("/submissions/confirm", middleware.RateLimiter(5, time.Minute), h.Confirm)
	app.Get("/submissions/contributor/:id", h.ListByContributor)
	app.Post("/assessments", h.CreateAssessment)
	app.Get("/assessments/chapter/:id", h.AssessmentsByChapter)
}

// Confirm records the submission synchronously; enrichment and the success
// email are queued on the worker pool and do not delay the response.
func (h *SubmissionHandler) Confirm(c *fiber.Ctx) error {
	var req dto.ConfirmSubmissionRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid confirmation payload",
		}, err)
	}

	check, err := h.uc.Confirm(c.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrMissingContext):
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusBadRequest,
				Message: "contributor_id and chapter_id are required",
			}, err)
		case errors.Is(err, usecase.ErrChapterNotFound):
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusNotFound,
				Message: "chapter not found",
			}, err)
		case errors.Is(err, repository.ErrAlreadySubmitted):
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusConflict,
				Message: "submission already recorded for this chapter",
			}, err)
		}
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to confirm submission",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Submission confirmed",
		Data: fiber.Map{
			"id":        check.ID,
			"evaluated": check.Evaluated,
			"content":   check.ContentCheck,
		},
	})
}

func (h *SubmissionHandler) ListByContributor(c *fiber.Ctx) error {
	contributorID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid contributor id",
		}, err)
	}

	submissions, err := h.uc.Submissions(uint(contributorID))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to list submissions",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success list submissions",
		Data:    submissions,
	})
}

func (h *SubmissionHandler) CreateAssessment(c *fiber.Ctx) error {
	var req dto.CreateAssessmentRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid assessment payload",
		}, err)
	}
	if req.CourseID == 0 || req.ChapterID == 0 || len(req.Questions) == 0 {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "course_id, chapter_id and at least one question are required",
		}, nil)
	}

	assessment := model.Assessment{
		CourseID:  req.CourseID,
		ChapterID: req.ChapterID,
		CreatedBy: req.ContributorID,
	}
	for _, q := range req.Questions {
		question := model.Question{Text: q.Question, CorrectOption: q.Correct}
		for _, opt := range q.Options {
			question.Options = append(question.Options, model.Option{Text: opt})
		}
		assessment.Questions = append(assessment.Questions, question)
	}

	if err := h.assessments.Create(&assessment); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to create assessment",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Assessment created",
		Data:    fiber.Map{"id": assessment.ID},
	})
}

func (h *SubmissionHandler) AssessmentsByChapter(c *fiber.Ctx) error {
	chapterID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid chapter id",
		}, err)
	}

	assessments, err := h.assessments.ByChapter(uint(chapterID))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to list assessments",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success list assessments",
		Data:    assessments,
	})
}
