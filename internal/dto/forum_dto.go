package dto

type CreateQuestionRequest struct {
	AuthorID uint     `json:"author_id"`
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Topics   []string `json:"topics"`
}

type CreateAnswerRequest struct {
	AuthorID uint   `json:"author_id"`
	Content  string `json:"content"`
	ParentID string `json:"parent_id,omitempty"`
}

type CreateAssessmentRequest struct {
	ContributorID uint                 `json:"contributor_id"`
	CourseID      uint                 `json:"course_id"`
	ChapterID     uint                 `json:"chapter_id"`
	Questions     []AssessmentQuestion `json:"questions"`
}

type AssessmentQuestion struct {
	Question string   `json:"question"`
	Correct  int      `json:"correct"`
	Options  []string `json:"options"`
}
