package repository

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/priyankan19/oerhub/internal/model"
)

// ForumQuestion carries a pgvector column, so only the vector-free forum
// tables are migrated here.
func openForumTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := db.AutoMigrate(&model.ForumAnswer{}, &model.ForumVote{}); err != nil {
		t.Fatal(err)
	}
	return db
}

func TestToggleVoteOnAnswer(t *testing.T) {
	db := openForumTestDB(t)
	repo := NewForumRepository(db)

	answer := &model.ForumAnswer{QuestionID: uuid.New(), AuthorID: 1, Content: "use pointers"}
	if err := repo.CreateAnswer(answer); err != nil {
		t.Fatal(err)
	}

	state, err := repo.ToggleVote(42, answer.ID, "answer")
	if err != nil {
		t.Fatal(err)
	}
	if state != "added" {
		t.Errorf("state = %q, want added", state)
	}

	var got model.ForumAnswer
	if err := db.First(&got, "id = ?", answer.ID).Error; err != nil {
		t.Fatal(err)
	}
	if got.Upvotes != 1 {
		t.Errorf("upvotes = %d, want 1", got.Upvotes)
	}
}

func TestToggleVoteRemovesExisting(t *testing.T) {
	db := openForumTestDB(t)
	repo := NewForumRepository(db)

	answer := &model.ForumAnswer{QuestionID: uuid.New(), AuthorID: 1, Content: "use channels"}
	if err := repo.CreateAnswer(answer); err != nil {
		t.Fatal(err)
	}

	if _, err := repo.ToggleVote(42, answer.ID, "answer"); err != nil {
		t.Fatal(err)
	}
	state, err := repo.ToggleVote(42, answer.ID, "answer")
	if err != nil {
		t.Fatal(err)
	}
	if state != "removed" {
		t.Errorf("state = %q, want removed", state)
	}

	var got model.ForumAnswer
	if err := db.First(&got, "id = ?", answer.ID).Error; err != nil {
		t.Fatal(err)
	}
	if got.Upvotes != 0 {
		t.Errorf("upvotes = %d, want 0", got.Upvotes)
	}
}

func TestVoteRecordsCreationTime(t *testing.T) {
	db := openForumTestDB(t)
	repo := NewForumRepository(db)

	answer := &model.ForumAnswer{QuestionID: uuid.New(), AuthorID: 1, Content: "read the docs"}
	if err := repo.CreateAnswer(answer); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.ToggleVote(7, answer.ID, "answer"); err != nil {
		t.Fatal(err)
	}

	var vote model.ForumVote
	if err := db.First(&vote, "user_id = ? AND target_id = ?", 7, answer.ID).Error; err != nil {
		t.Fatal(err)
	}
	if vote.CreatedAt.IsZero() {
		t.Error("vote creation time was not set")
	}
}
