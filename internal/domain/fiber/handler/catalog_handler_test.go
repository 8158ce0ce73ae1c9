package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/priyankan19/oerhub/internal/model"
	"github.com/priyankan19/oerhub/internal/repository"
)

func newCatalogApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatal(err)
	}
	err = db.AutoMigrate(&model.Program{}, &model.Department{}, &model.Scheme{},
		&model.Course{}, &model.Chapter{}, &model.CourseOutcome{})
	if err != nil {
		t.Fatal(err)
	}

	app := fiber.New()
	NewCatalogHandler(repository.NewCatalogRepository(db)).RegisterRoutes(app)
	return app, db
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("unmarshal %q: %v", raw, err)
	}
	return body
}

func TestCourseNotFound(t *testing.T) {
	app, _ := newCatalogApp(t)

	req := httptest.NewRequest(http.MethodGet, "/catalog/courses/999", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["success"] != false {
		t.Errorf("success = %v, want false", body["success"])
	}
}

func TestCourseInvalidID(t *testing.T) {
	app, _ := newCatalogApp(t)

	req := httptest.NewRequest(http.MethodGet, "/catalog/courses/abc", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestCourseChapters(t *testing.T) {
	app, db := newCatalogApp(t)

	course := model.Course{CourseCode: "ITC501", CourseName: "Internet Programming"}
	if err := db.Create(&course).Error; err != nil {
		t.Fatal(err)
	}
	for i := 1; i <= 3; i++ {
		chapter := model.Chapter{CourseID: course.ID, ChapterNumber: i, ChapterName: "Chapter"}
		if err := db.Create(&chapter).Error; err != nil {
			t.Fatal(err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/catalog/courses/1/chapters", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	data, ok := body["data"].([]any)
	if !ok {
		t.Fatalf("data = %T, want array", body["data"])
	}
	if len(data) != 3 {
		t.Errorf("got %d chapters, want 3", len(data))
	}
}

func TestCoursesRequiresDepartment(t *testing.T) {
	app, _ := newCatalogApp(t)

	req := httptest.NewRequest(http.MethodGet, "/catalog/courses", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}
