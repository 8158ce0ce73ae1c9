package usecase

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/priyankan19/oerhub/internal/service"
)

// ContentUsecase covers the contributor file surface: uploads into typed
// store folders, draft editing, listing, download and delete.
type ContentUsecase struct {
	store     service.ObjectStore
	folders   *service.FolderResolver
	pdfgen    *service.PDFGenService
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
}

func NewContentUsecase(store service.ObjectStore, folders *service.FolderResolver, pdfgen *service.PDFGenService, logger zerolog.Logger) *ContentUsecase {
	return &ContentUsecase{
		store:     store,
		folders:   folders,
		pdfgen:    pdfgen,
		sanitizer: bluemonday.UGCPolicy(),
		logger:    logger,
	}
}

// UploadFile stores one uploaded file in the contributor's folder for the
// given content type, prefixing the name with the contributor ID the way the
// review tooling expects.
func (uc *ContentUsecase) UploadFile(ctx context.Context, contentType string, contributorID, courseID uint, chapterNumber int, name, mimeType string, r io.Reader) (string, error) {
	folderID, err := uc.folders.Resolve(ctx, contentType, contributorID, courseID, chapterNumber)
	if err != nil {
		return "", err
	}
	storedName := fmt.Sprintf("%d_%s", contributorID, name)
	return uc.store.Upload(ctx, folderID, storedName, mimeType, r)
}

// SaveDraft stores the sanitized editor HTML in the drafts folder. A fileID
// replaces an existing draft by delete-and-recreate, since the store's
// update surface is not exposed here.
func (uc *ContentUsecase) SaveDraft(ctx context.Context, contributorID, courseID uint, chapterNumber int, filename, content, fileID string) (string, error) {
	clean := uc.sanitizer.Sanitize(content)
	if !strings.HasSuffix(strings.ToLower(filename), ".html") {
		filename += ".html"
	}

	if fileID != "" {
		if err := uc.store.Delete(ctx, fileID); err != nil {
			uc.logger.Warn().Str("file", fileID).Err(err).Msg("could not delete previous draft")
		}
	}

	folderID, err := uc.folders.Resolve(ctx, ContentTypeDrafts, contributorID, courseID, chapterNumber)
	if err != nil {
		return "", err
	}
	storedName := fmt.Sprintf("%d_%s", contributorID, filename)
	return uc.store.Upload(ctx, folderID, storedName, "text/html", strings.NewReader(clean))
}

// SubmitDraft renders the draft to PDF into the pdf folder and removes the
// draft it came from.
func (uc *ContentUsecase) SubmitDraft(ctx context.Context, contributorID, courseID uint, chapterNumber int, filename, content, draftFileID string) (string, error) {
	clean := uc.sanitizer.Sanitize(content)
	if !strings.HasSuffix(strings.ToLower(filename), ".pdf") {
		filename += ".pdf"
	}

	var buf bytes.Buffer
	if err := uc.pdfgen.RenderDraft(filename, clean, &buf); err != nil {
		return "", err
	}

	folderID, err := uc.folders.Resolve(ctx, ContentTypePDF, contributorID, courseID, chapterNumber)
	if err != nil {
		return "", err
	}

	storedName := filename
	prefix := fmt.Sprintf("%d_", contributorID)
	if !strings.HasPrefix(storedName, prefix) {
		storedName = prefix + storedName
	}

	fileID, err := uc.store.Upload(ctx, folderID, storedName, "application/pdf", &buf)
	if err != nil {
		return "", err
	}

	if draftFileID != "" {
		if err := uc.store.Delete(ctx, draftFileID); err != nil {
			uc.logger.Warn().Str("file", draftFileID).Err(err).Msg("could not delete draft after submit")
		}
	}
	return fileID, nil
}

// ListFiles returns the contributor's stored files across all content types,
// tagged with the type they came from.
func (uc *ContentUsecase) ListFiles(ctx context.Context, contributorID, courseID uint, chapterNumber int) (map[string][]service.StoredFile, error) {
	out := make(map[string][]service.StoredFile, 4)
	for _, contentType := range []string{ContentTypeDrafts, ContentTypePDF, ContentTypeVideos, ContentTypeAssessments} {
		folderID, err := uc.folders.Resolve(ctx, contentType, contributorID, courseID, chapterNumber)
		if err != nil {
			return nil, err
		}
		files, err := uc.store.List(ctx, folderID)
		if err != nil {
			return nil, err
		}
		out[contentType] = files
	}
	return out, nil
}

// LoadFile downloads a stored file for the editor. HTML comes back as-is;
// anything else is reported as not editable.
func (uc *ContentUsecase) LoadFile(ctx context.Context, fileID string) (string, string, error) {
	body, mimeType, err := uc.store.Download(ctx, fileID)
	if err != nil {
		return "", "", err
	}
	defer body.Close()

	if !strings.Contains(mimeType, "text/html") {
		return fmt.Sprintf("<p>Cannot edit file of type %s in the editor.</p>", mimeType), mimeType, nil
	}
	raw, err := io.ReadAll(body)
	if err != nil {
		return "", "", fmt.Errorf("read file %s: %w", fileID, err)
	}
	return string(raw), mimeType, nil
}

func (uc *ContentUsecase) DeleteFile(ctx context.Context, fileID string) error {
	return uc.store.Delete(ctx, fileID)
}
