package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type ForumTopic struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(100);uniqueIndex" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func (t *ForumTopic) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

type ForumQuestion struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	AuthorID  uint            `gorm:"index" json:"author_id"`
	Title     string          `gorm:"type:varchar(255)" json:"title"`
	Content   string          `gorm:"type:text" json:"content"`
	Embedding pgvector.Vector `gorm:"type:vector(3072)" json:"-"`
	Topics    []ForumTopic    `gorm:"many2many:forum_question_topics" json:"topics,omitempty"`
	Answers   []ForumAnswer   `json:"answers,omitempty"`
	Upvotes   int             `json:"upvotes"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (q *ForumQuestion) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

// ParentID allows one level of nested replies, matching the forum UI.
type ForumAnswer struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	QuestionID uuid.UUID  `gorm:"type:uuid;index" json:"question_id"`
	AuthorID   uint       `gorm:"index" json:"author_id"`
	ParentID   *uuid.UUID `gorm:"type:uuid;index" json:"parent_id,omitempty"`
	Content    string     `gorm:"type:text" json:"content"`
	Upvotes    int        `json:"upvotes"`
	CreatedAt  time.Time  `json:"created_at"`
}

func (a *ForumAnswer) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// ForumVote tracks per-user upvote toggles for questions and answers.
type ForumVote struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex:idx_vote_target" json:"user_id"`
	TargetID  uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_vote_target" json:"target_id"`
	Kind      string    `gorm:"type:varchar(10);uniqueIndex:idx_vote_target" json:"kind"` // "question" or "answer"
	CreatedAt time.Time `json:"created_at"`
}

func (v *ForumVote) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
