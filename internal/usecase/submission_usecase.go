package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/priyankan19/oerhub/internal/dto"
	"github.com/priyankan19/oerhub/internal/model"
	"github.com/priyankan19/oerhub/internal/pipeline"
	"github.com/priyankan19/oerhub/internal/repository"
	"github.com/priyankan19/oerhub/internal/service"
	"github.com/priyankan19/oerhub/internal/worker"
)

// Content-type keys double as folder names under the store root.
const (
	ContentTypePDF         = "pdf"
	ContentTypeVideos      = "videos"
	ContentTypeAssessments = "assessments"
	ContentTypeDrafts      = "drafts"
)

var (
	// ErrMissingContext: confirmation invoked without contributor/chapter
	// identifiers. Hard precondition, checked before any side effect.
	ErrMissingContext = errors.New("missing contributor or chapter context")
	// ErrChapterNotFound: the referenced chapter does not exist.
	ErrChapterNotFound = errors.New("chapter not found")
)

type SubmissionUsecase struct {
	submissions *repository.SubmissionRepository
	catalog     *repository.CatalogRepository
	store       service.ObjectStore
	folders     *service.FolderResolver
	pipe        *pipeline.Pipeline
	pool        *worker.Pool
	mailer      service.Mailer
	logger      zerolog.Logger
}

func NewSubmissionUsecase(
	submissions *repository.SubmissionRepository,
	catalog *repository.CatalogRepository,
	store service.ObjectStore,
	folders *service.FolderResolver,
	pipe *pipeline.Pipeline,
	pool *worker.Pool,
	mailer service.Mailer,
	logger zerolog.Logger,
) *SubmissionUsecase {
	return &SubmissionUsecase{
		submissions: submissions,
		catalog:     catalog,
		store:       store,
		folders:     folders,
		pipe:        pipe,
		pool:        pool,
		mailer:      mailer,
		logger:      logger,
	}
}

// RecordSubmission derives content-presence flags by listing each non-empty
// folder and creates the submission plus its presence record transactionally.
// An unknown chapter is logged and reported, with no record written.
func (uc *SubmissionUsecase) RecordSubmission(ctx context.Context, contributorID, chapterID uint, folders map[string]string) (*model.UploadCheck, error) {
	if contributorID == 0 || chapterID == 0 {
		return nil, ErrMissingContext
	}

	if _, err := uc.catalog.FindChapterByID(chapterID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			uc.logger.Warn().Uint("chapter_id", chapterID).Msg("submission for unknown chapter")
			return nil, ErrChapterNotFound
		}
		return nil, err
	}

	check := &model.UploadCheck{
		ContributorID: contributorID,
		ChapterID:     chapterID,
		Evaluated:     false,
		Timestamp:     time.Now(),
	}
	presence := &model.ContentCheck{
		HasDocument:   uc.folderHasFiles(ctx, folders[ContentTypePDF]),
		HasVideo:      uc.folderHasFiles(ctx, folders[ContentTypeVideos]),
		HasAssessment: uc.folderHasFiles(ctx, folders[ContentTypeAssessments]),
	}

	if err := uc.submissions.CreateWithPresence(check, presence); err != nil {
		return nil, err
	}
	check.ContentCheck = presence
	return check, nil
}

// folderHasFiles is an existence check, not content validation. An empty
// folder ID or a listing failure both count as "nothing present".
func (uc *SubmissionUsecase) folderHasFiles(ctx context.Context, folderID string) bool {
	if folderID == "" {
		return false
	}
	files, err := uc.store.List(ctx, folderID)
	if err != nil {
		uc.logger.Warn().Str("folder", folderID).Err(err).Msg("presence listing failed")
		return false
	}
	return len(files) > 0
}

// Confirm is the synchronous half of submission confirmation: the caller
// sees the recorded submission (or a structured error) in the response.
// Enrichment of the uploaded documents and the success email run detached
// on the worker pool; their outcomes surface on the pool's result channel.
func (uc *SubmissionUsecase) Confirm(ctx context.Context, req dto.ConfirmSubmissionRequest) (*model.UploadCheck, error) {
	if req.ContributorID == 0 || req.ChapterID == 0 {
		return nil, ErrMissingContext
	}

	chapter, err := uc.catalog.FindChapterByID(req.ChapterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChapterNotFound
		}
		return nil, err
	}

	folders, err := uc.folders.ResolveAll(ctx,
		[]string{ContentTypePDF, ContentTypeVideos, ContentTypeAssessments},
		req.ContributorID, req.CourseID, chapter.ChapterNumber)
	if err != nil {
		return nil, err
	}

	check, err := uc.RecordSubmission(ctx, req.ContributorID, req.ChapterID, folders)
	if err != nil {
		return nil, err
	}

	pdfFolder := folders[ContentTypePDF]
	uc.pool.Submit(fmt.Sprintf("enrich-submission-%s", check.ID), func() error {
		return uc.enrichFolder(context.Background(), pdfFolder)
	})

	if req.ContributorEmail != "" {
		name := req.ContributorName
		chapterName := chapter.ChapterName
		uc.pool.Submit(fmt.Sprintf("mail-submission-%s", check.ID), func() error {
			return uc.mailer.SendContributionSuccess(req.ContributorEmail, name, chapterName)
		})
	}

	return check, nil
}

// Submissions lists a contributor's recorded submissions with their
// presence flags flattened for the API.
func (uc *SubmissionUsecase) Submissions(contributorID uint) ([]dto.SubmissionDTO, error) {
	checks, err := uc.submissions.ListByContributor(contributorID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SubmissionDTO, 0, len(checks))
	for _, c := range checks {
		item := dto.SubmissionDTO{
			ID:            c.ID,
			ContributorID: c.ContributorID,
			ChapterID:     c.ChapterID,
			Evaluated:     c.Evaluated,
			Timestamp:     c.Timestamp,
		}
		if c.ContentCheck != nil {
			item.HasDocument = c.ContentCheck.HasDocument
			item.HasVideo = c.ContentCheck.HasVideo
			item.HasAssessment = c.ContentCheck.HasAssessment
		}
		out = append(out, item)
	}
	return out, nil
}

// enrichFolder downloads each stored document and runs the metadata pipeline
// over it. Results are reports, not persisted state; failures are reported
// on the pool's result channel and not retried.
func (uc *SubmissionUsecase) enrichFolder(ctx context.Context, folderID string) error {
	if folderID == "" {
		return nil
	}
	files, err := uc.store.List(ctx, folderID)
	if err != nil {
		return fmt.Errorf("list folder for enrichment: %w", err)
	}

	var firstErr error
	for _, f := range files {
		result, err := uc.enrichFile(ctx, f)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		uc.logger.Info().Str("file", f.Name).Str("report", result).Msg("enrichment report")
	}
	return firstErr
}

func (uc *SubmissionUsecase) enrichFile(ctx context.Context, f service.StoredFile) (string, error) {
	body, _, err := uc.store.Download(ctx, f.ID)
	if err != nil {
		return "", fmt.Errorf("download %s: %w", f.Name, err)
	}
	defer body.Close()

	tmp, err := os.CreateTemp("", "enrich-*"+filepath.Ext(f.Name))
	if err != nil {
		return "", fmt.Errorf("stage %s: %w", f.Name, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, body); err != nil {
		tmp.Close()
		return "", fmt.Errorf("stage %s: %w", f.Name, err)
	}
	tmp.Close()

	return uc.pipe.Run(ctx, tmpPath).Result, nil
}
