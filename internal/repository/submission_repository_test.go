package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/priyankan19/oerhub/internal/model"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := db.AutoMigrate(&model.UploadCheck{}, &model.ContentCheck{}); err != nil {
		t.Fatal(err)
	}
	return db
}

func TestCreateWithPresence(t *testing.T) {
	repo := NewSubmissionRepository(openTestDB(t))

	check := &model.UploadCheck{ContributorID: 7, ChapterID: 3, Timestamp: time.Now()}
	presence := &model.ContentCheck{HasDocument: true, HasVideo: false, HasAssessment: false}
	if err := repo.CreateWithPresence(check, presence); err != nil {
		t.Fatal(err)
	}

	got, err := repo.FindByContributorAndChapter(7, 3)
	if err != nil {
		t.Fatal(err)
	}
	if got.Evaluated {
		t.Error("new submission should not be marked evaluated")
	}
	if got.ContentCheck == nil {
		t.Fatal("presence record not loaded")
	}
	if !got.ContentCheck.HasDocument || got.ContentCheck.HasVideo || got.ContentCheck.HasAssessment {
		t.Errorf("presence flags = %+v, want {true false false}", got.ContentCheck)
	}
	if got.ContentCheck.UploadCheckID != got.ID {
		t.Error("presence record not linked to the submission")
	}
}

func TestCreateWithPresenceRejectsDuplicate(t *testing.T) {
	db := openTestDB(t)
	repo := NewSubmissionRepository(db)

	first := &model.UploadCheck{ContributorID: 7, ChapterID: 3, Timestamp: time.Now()}
	if err := repo.CreateWithPresence(first, &model.ContentCheck{HasDocument: true}); err != nil {
		t.Fatal(err)
	}

	second := &model.UploadCheck{ContributorID: 7, ChapterID: 3, Timestamp: time.Now()}
	err := repo.CreateWithPresence(second, &model.ContentCheck{})
	if !errors.Is(err, ErrAlreadySubmitted) {
		t.Fatalf("err = %v, want ErrAlreadySubmitted", err)
	}

	var checks int64
	db.Model(&model.UploadCheck{}).Count(&checks)
	if checks != 1 {
		t.Errorf("submission count = %d, want 1", checks)
	}
	var presences int64
	db.Model(&model.ContentCheck{}).Count(&presences)
	if presences != 1 {
		t.Errorf("presence count = %d, want 1", presences)
	}
}

func TestCreateWithPresenceAllowsOtherChapters(t *testing.T) {
	repo := NewSubmissionRepository(openTestDB(t))

	if err := repo.CreateWithPresence(&model.UploadCheck{ContributorID: 7, ChapterID: 3, Timestamp: time.Now()}, &model.ContentCheck{}); err != nil {
		t.Fatal(err)
	}
	if err := repo.CreateWithPresence(&model.UploadCheck{ContributorID: 7, ChapterID: 4, Timestamp: time.Now()}, &model.ContentCheck{}); err != nil {
		t.Errorf("different chapter rejected: %v", err)
	}
	if err := repo.CreateWithPresence(&model.UploadCheck{ContributorID: 8, ChapterID: 3, Timestamp: time.Now()}, &model.ContentCheck{}); err != nil {
		t.Errorf("different contributor rejected: %v", err)
	}
}

func TestMarkEvaluated(t *testing.T) {
	repo := NewSubmissionRepository(openTestDB(t))

	check := &model.UploadCheck{ContributorID: 1, ChapterID: 1, Timestamp: time.Now()}
	if err := repo.CreateWithPresence(check, &model.ContentCheck{}); err != nil {
		t.Fatal(err)
	}
	if err := repo.MarkEvaluated(check.ID); err != nil {
		t.Fatal(err)
	}

	got, err := repo.FindByContributorAndChapter(1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Evaluated {
		t.Error("submission not marked evaluated")
	}
}

func TestListByContributor(t *testing.T) {
	repo := NewSubmissionRepository(openTestDB(t))

	for _, chapterID := range []uint{1, 2, 3} {
		check := &model.UploadCheck{ContributorID: 5, ChapterID: chapterID, Timestamp: time.Now()}
		if err := repo.CreateWithPresence(check, &model.ContentCheck{}); err != nil {
			t.Fatal(err)
		}
	}

	checks, err := repo.ListByContributor(5)
	if err != nil {
		t.Fatal(err)
	}
	if len(checks) != 3 {
		t.Fatalf("got %d submissions, want 3", len(checks))
	}
	for _, c := range checks {
		if c.ContentCheck == nil {
			t.Error("presence record not preloaded")
		}
	}
}
