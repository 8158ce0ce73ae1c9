package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/priyankan19/oerhub/internal/dto"
	"github.com/priyankan19/oerhub/internal/middleware"
	"github.com/priyankan19/oerhub/internal/repository"
	"github.com/priyankan19/oerhub/internal/response"
	"github.com/priyankan19/oerhub/internal/service"
	"github.com/priyankan19/oerhub/internal/usecase"
	"github.com/priyankan19/oerhub/internal/util"
)

type ForumHandler struct {
	uc     *usecase.ForumUsecase
	gemini service.GeminiServiceInterface
}

func NewForumHandler(uc *usecase.ForumUsecase, gemini service.GeminiServiceInterface) *ForumHandler {
	return &ForumHandler{uc: uc, gemini: gemini}
}

func (h *ForumHandler) RegisterRoutes(app *fiber.App) {
	app.Get("/forum/questions", h.ListQuestions)
	app.Get("/forum/questions/:id", h.QuestionDetail)
	app.Post("/forum/questions", h.PostQuestion)
	app.Post("/forum/questions/:id/answers", h.PostAnswer)
	app.Post("/forum/vote", h.ToggleVote)
	app.Post("/forum/related", h.RelatedQuestions)
	app.Get("/forum/topics", h.ListTopics)
	app.Post("/assistant/chat", middleware.RateLimiter(10, time.Minute), h.Chat)
}

func (h *ForumHandler) ListQuestions(c *fiber.Ctx) error {
	query := repository.ForumQuery{
		Search:   c.Query("search"),
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", 20),
	}
	if topicID := c.Query("topic_id"); topicID != "" {
		id, err := uuid.Parse(topicID)
		if err != nil {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusBadRequest,
				Message: "invalid topic id",
			}, err)
		}
		query.TopicID = &id
	}

	questions, total, err := h.uc.ListQuestions(query)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to list questions",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:       fiber.StatusOK,
		Message:    "Success list questions",
		Data:       questions,
		Pagination: response.NewPagination(query.Page, query.PageSize, total),
	})
}

func (h *ForumHandler) QuestionDetail(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid question id",
		}, err)
	}

	question, err := h.uc.QuestionDetail(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusNotFound,
				Message: "question not found",
			}, err)
		}
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to load question",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success load question",
		Data:    question,
	})
}

func (h *ForumHandler) PostQuestion(c *fiber.Ctx) error {
	var req dto.CreateQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid question payload",
		}, err)
	}

	question, err := h.uc.PostQuestion(c.Context(), req)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidQuestion) {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusBadRequest,
				Message: "title and content are required",
			}, err)
		}
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to post question",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Question posted",
		Data:    question,
	})
}

func (h *ForumHandler) PostAnswer(c *fiber.Ctx) error {
	questionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid question id",
		}, err)
	}

	var req dto.CreateAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid answer payload",
		}, err)
	}

	answer, err := h.uc.PostAnswer(questionID, req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusNotFound,
				Message: "question not found",
			}, err)
		}
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to post answer",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Answer posted",
		Data:    answer,
	})
}

type voteRequest struct {
	UserID   uint   `json:"user_id"`
	TargetID string `json:"target_id"`
	Kind     string `json:"kind"`
}

// ToggleVote upvotes a question or answer, or removes an existing upvote.
func (h *ForumHandler) ToggleVote(c *fiber.Ctx) error {
	var req voteRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid vote payload",
		}, err)
	}

	targetID, err := uuid.Parse(req.TargetID)
	if err != nil || req.UserID == 0 || (req.Kind != "question" && req.Kind != "answer") {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "user_id, target_id and kind (question|answer) are required",
		}, err)
	}

	action, err := h.uc.ToggleVote(req.UserID, targetID, req.Kind)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to toggle vote",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Vote " + action,
		Data:    fiber.Map{"action": action},
	})
}

type relatedRequest struct {
	Text string `json:"text"`
	TopK int    `json:"top_k"`
}

func (h *ForumHandler) RelatedQuestions(c *fiber.Ctx) error {
	var req relatedRequest
	if err := c.BodyParser(&req); err != nil || req.Text == "" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "text is required",
		}, err)
	}

	questions, err := h.uc.RelatedQuestions(c.Context(), req.Text, req.TopK)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to find related questions",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success find related questions",
		Data:    questions,
	})
}

func (h *ForumHandler) ListTopics(c *fiber.Ctx) error {
	topics, err := h.uc.ListTopics()
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to list topics",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success list topics",
		Data:    topics,
	})
}

type chatRequest struct {
	Message string `json:"message"`
}

// Chat relays a single study question to the model. No history is kept.
func (h *ForumHandler) Chat(c *fiber.Ctx) error {
	var req chatRequest
	if err := c.BodyParser(&req); err != nil || req.Message == "" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "message is required",
		}, err)
	}

	reply, err := h.gemini.Chat(c.Context(), req.Message)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "assistant is unavailable",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success",
		Data:    fiber.Map{"reply": reply},
	})
}
