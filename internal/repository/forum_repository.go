package repository

import (
	"errors"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"github.com/priyankan19/oerhub/internal/model"
)

type ForumRepository struct {
	db *gorm.DB
}

func NewForumRepository(db *gorm.DB) *ForumRepository {
	return &ForumRepository{db}
}

type ForumQuery struct {
	Search   string
	TopicID  *uuid.UUID
	Page     int
	PageSize int
}

func (r *ForumRepository) ListQuestions(q ForumQuery) ([]model.ForumQuestion, int64, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 || q.PageSize > 100 {
		q.PageSize = 20
	}

	tx := r.db.Model(&model.ForumQuestion{}).Preload("Topics")
	if q.Search != "" {
		like := "%" + q.Search + "%"
		tx = tx.Where("title ILIKE ? OR content ILIKE ?", like, like)
	}
	if q.TopicID != nil {
		tx = tx.Joins("JOIN forum_question_topics fqt ON fqt.forum_question_id = forum_questions.id").
			Where("fqt.forum_topic_id = ?", *q.TopicID)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var questions []model.ForumQuestion
	err := tx.Order("created_at DESC").
		Offset((q.Page - 1) * q.PageSize).
		Limit(q.PageSize).
		Find(&questions).Error
	return questions, total, err
}

func (r *ForumRepository) FindQuestion(id uuid.UUID) (*model.ForumQuestion, error) {
	var question model.ForumQuestion
	err := r.db.Preload("Topics").Preload("Answers").First(&question, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *ForumRepository) CreateQuestion(q *model.ForumQuestion) error {
	return r.db.Create(q).Error
}

func (r *ForumRepository) CreateAnswer(a *model.ForumAnswer) error {
	return r.db.Create(a).Error
}

func (r *ForumRepository) CreateTopic(t *model.ForumTopic) error {
	return r.db.Create(t).Error
}

func (r *ForumRepository) ListTopics() ([]model.ForumTopic, error) {
	var topics []model.ForumTopic
	err := r.db.Order("name").Find(&topics).Error
	return topics, err
}

// ToggleVote adds or removes a user's upvote and adjusts the denormalized
// counter on the target row. Returns the new state ("added" or "removed").
func (r *ForumRepository) ToggleVote(userID uint, targetID uuid.UUID, kind string) (string, error) {
	table := "forum_questions"
	if kind == "answer" {
		table = "forum_answers"
	}

	var state string
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var vote model.ForumVote
		err := tx.First(&vote, "user_id = ? AND target_id = ? AND kind = ?", userID, targetID, kind).Error
		switch {
		case err == nil:
			if err := tx.Delete(&vote).Error; err != nil {
				return err
			}
			state = "removed"
			return tx.Table(table).Where("id = ?", targetID).
				UpdateColumn("upvotes", gorm.Expr("upvotes - 1")).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(&model.ForumVote{UserID: userID, TargetID: targetID, Kind: kind}).Error; err != nil {
				return err
			}
			state = "added"
			return tx.Table(table).Where("id = ?", targetID).
				UpdateColumn("upvotes", gorm.Expr("upvotes + 1")).Error
		default:
			return err
		}
	})
	return state, err
}

// SearchSimilar orders questions by embedding distance to the given vector.
func (r *ForumRepository) SearchSimilar(embedding pgvector.Vector, topK int) ([]model.ForumQuestion, error) {
	var questions []model.ForumQuestion
	err := r.db.Raw(`
        SELECT *, embedding <-> ? AS distance
        FROM forum_questions
        ORDER BY embedding <-> ?
        LIMIT ?
    `, embedding, embedding, topK).Scan(&questions).Error
	return questions, err
}
