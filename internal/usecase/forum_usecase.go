package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/pgvector/pgvector-go"
	"github.com/rs/zerolog"

	"github.com/priyankan19/oerhub/internal/dto"
	"github.com/priyankan19/oerhub/internal/model"
	"github.com/priyankan19/oerhub/internal/repository"
	"github.com/priyankan19/oerhub/internal/service"
)

var ErrInvalidQuestion = errors.New("question needs a title and content")

type ForumUsecase struct {
	forum     *repository.ForumRepository
	gemini    service.GeminiServiceInterface
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
}

func NewForumUsecase(forum *repository.ForumRepository, gemini service.GeminiServiceInterface, logger zerolog.Logger) *ForumUsecase {
	return &ForumUsecase{
		forum:     forum,
		gemini:    gemini,
		sanitizer: bluemonday.UGCPolicy(),
		logger:    logger,
	}
}

func (uc *ForumUsecase) ListQuestions(q repository.ForumQuery) ([]model.ForumQuestion, int64, error) {
	return uc.forum.ListQuestions(q)
}

func (uc *ForumUsecase) QuestionDetail(id uuid.UUID) (*model.ForumQuestion, error) {
	return uc.forum.FindQuestion(id)
}

func (uc *ForumUsecase) ListTopics() ([]model.ForumTopic, error) {
	return uc.forum.ListTopics()
}

// PostQuestion sanitizes the user content and embeds it for similarity
// search. Embedding failure is logged, not fatal: the question still posts.
func (uc *ForumUsecase) PostQuestion(ctx context.Context, req dto.CreateQuestionRequest) (*model.ForumQuestion, error) {
	title := strings.TrimSpace(req.Title)
	content := strings.TrimSpace(uc.sanitizer.Sanitize(req.Content))
	if title == "" || content == "" {
		return nil, ErrInvalidQuestion
	}

	question := &model.ForumQuestion{
		AuthorID: req.AuthorID,
		Title:    title,
		Content:  content,
	}
	for _, name := range req.Topics {
		name = strings.TrimSpace(name)
		if name != "" {
			question.Topics = append(question.Topics, model.ForumTopic{Name: name})
		}
	}

	if embedding, err := uc.gemini.GenerateEmbedding(ctx, title+"\n"+content); err != nil {
		uc.logger.Warn().Err(err).Msg("question embedding failed")
	} else {
		question.Embedding = pgvector.NewVector(embedding)
	}

	if err := uc.forum.CreateQuestion(question); err != nil {
		return nil, err
	}
	return question, nil
}

func (uc *ForumUsecase) PostAnswer(questionID uuid.UUID, req dto.CreateAnswerRequest) (*model.ForumAnswer, error) {
	content := strings.TrimSpace(uc.sanitizer.Sanitize(req.Content))
	if content == "" {
		return nil, ErrInvalidQuestion
	}

	if _, err := uc.forum.FindQuestion(questionID); err != nil {
		return nil, err
	}

	answer := &model.ForumAnswer{
		QuestionID: questionID,
		AuthorID:   req.AuthorID,
		Content:    content,
	}
	if req.ParentID != "" {
		parentID, err := uuid.Parse(req.ParentID)
		if err != nil {
			return nil, errors.New("invalid parent_id")
		}
		answer.ParentID = &parentID
	}

	if err := uc.forum.CreateAnswer(answer); err != nil {
		return nil, err
	}
	return answer, nil
}

func (uc *ForumUsecase) ToggleVote(userID uint, targetID uuid.UUID, kind string) (string, error) {
	return uc.forum.ToggleVote(userID, targetID, kind)
}

// RelatedQuestions embeds the query text and returns the nearest stored
// questions.
func (uc *ForumUsecase) RelatedQuestions(ctx context.Context, text string, topK int) ([]model.ForumQuestion, error) {
	embedding, err := uc.gemini.GenerateEmbedding(ctx, text)
	if err != nil {
		return nil, err
	}
	if topK <= 0 {
		topK = 5
	}
	return uc.forum.SearchSimilar(pgvector.NewVector(embedding), topK)
}
