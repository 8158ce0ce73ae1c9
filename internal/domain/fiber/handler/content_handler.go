package handler

import (
	"mime"
	"path/filepath"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/priyankan19/oerhub/internal/usecase"
	"github.com/priyankan19/oerhub/internal/util"
)

// 100MB covers lecture videos; documents are far smaller.
const maxUploadBytes = 100 * 1024 * 1024

type ContentHandler struct {
	uc *usecase.ContentUsecase
}

func NewContentHandler(uc *usecase.ContentUsecase) *ContentHandler {
	return &ContentHandler{uc: uc}
}

func (h *ContentHandler) RegisterRoutes(app *fiber.App) {
	app.Post("/content/upload", h.Upload)
	app.Post("/content/drafts", h.SaveDraft)
	app.Post("/content/drafts/submit", h.SubmitDraft)
	app.Get("/content/files", h.ListFiles)
	app.Get("/content/files/:id", h.LoadFile)
	app.Delete("/content/files/:id", h.DeleteFile)
}

type draftRequest struct {
	ContributorID uint   `json:"contributor_id"`
	CourseID      uint   `json:"course_id"`
	ChapterNumber int    `json:"chapter_number"`
	Filename      string `json:"filename"`
	Content       string `json:"content"`
	FileID        string `json:"file_id"`
}

// contentContext reads the contributor/course/chapter triple shared by the
// multipart and query surfaces.
func contentContext(c *fiber.Ctx) (uint, uint, int, bool) {
	cid := queryOrFormInt(c, "contributor_id")
	course := queryOrFormInt(c, "course_id")
	chapter := queryOrFormInt(c, "chapter_number")
	if cid <= 0 || course <= 0 || chapter <= 0 {
		return 0, 0, 0, false
	}
	return uint(cid), uint(course), chapter, true
}

func queryOrFormInt(c *fiber.Ctx, key string) int {
	if v := c.QueryInt(key, 0); v > 0 {
		return v
	}
	n, err := strconv.Atoi(c.FormValue(key))
	if err != nil {
		return 0
	}
	return n
}

// Upload stores one multipart file under the requested content type.
func (h *ContentHandler) Upload(c *fiber.Ctx) error {
	contentType := c.FormValue("content_type")
	switch contentType {
	case usecase.ContentTypePDF, usecase.ContentTypeVideos, usecase.ContentTypeAssessments:
	default:
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "content_type must be pdf, videos or assessments",
		}, nil)
	}

	contributorID, courseID, chapterNumber, ok := contentContext(c)
	if !ok {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "contributor_id, course_id and chapter_number are required",
		}, nil)
	}

	file, err := c.FormFile("file")
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "file is required",
		}, err)
	}
	if file.Size > maxUploadBytes {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusRequestEntityTooLarge,
			Message: "file is too large (max 100MB)",
		}, nil)
	}

	src, err := file.Open()
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "cannot read uploaded file",
		}, err)
	}
	defer src.Close()

	mimeType := file.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = mime.TypeByExtension(filepath.Ext(file.Filename))
	}

	fileID, err := h.uc.UploadFile(c.Context(), contentType, contributorID, courseID, chapterNumber, file.Filename, mimeType, src)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to store file",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "File uploaded",
		Data:    fiber.Map{"file_id": fileID},
	})
}

func (h *ContentHandler) SaveDraft(c *fiber.Ctx) error {
	var req draftRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid draft payload",
		}, err)
	}
	if req.ContributorID == 0 || req.CourseID == 0 || req.ChapterNumber == 0 || req.Filename == "" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "contributor_id, course_id, chapter_number and filename are required",
		}, nil)
	}

	fileID, err := h.uc.SaveDraft(c.Context(), req.ContributorID, req.CourseID, req.ChapterNumber, req.Filename, req.Content, req.FileID)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to save draft",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Draft saved",
		Data:    fiber.Map{"file_id": fileID},
	})
}

func (h *ContentHandler) SubmitDraft(c *fiber.Ctx) error {
	var req draftRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid draft payload",
		}, err)
	}
	if req.ContributorID == 0 || req.CourseID == 0 || req.ChapterNumber == 0 || req.Filename == "" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "contributor_id, course_id, chapter_number and filename are required",
		}, nil)
	}

	fileID, err := h.uc.SubmitDraft(c.Context(), req.ContributorID, req.CourseID, req.ChapterNumber, req.Filename, req.Content, req.FileID)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to submit draft",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Draft submitted as PDF",
		Data:    fiber.Map{"file_id": fileID},
	})
}

func (h *ContentHandler) ListFiles(c *fiber.Ctx) error {
	contributorID, courseID, chapterNumber, ok := contentContext(c)
	if !ok {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "contributor_id, course_id and chapter_number are required",
		}, nil)
	}

	files, err := h.uc.ListFiles(c.Context(), contributorID, courseID, chapterNumber)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to list files",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success list files",
		Data:    files,
	})
}

func (h *ContentHandler) LoadFile(c *fiber.Ctx) error {
	content, mimeType, err := h.uc.LoadFile(c.Context(), c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to load file",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success load file",
		Data:    fiber.Map{"content": content, "mime_type": mimeType},
	})
}

func (h *ContentHandler) DeleteFile(c *fiber.Ctx) error {
	if err := h.uc.DeleteFile(c.Context(), c.Params("id")); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to delete file",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "File deleted",
	})
}
