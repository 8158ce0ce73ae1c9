package service

import (
	"context"
	"math"
	"testing"

	"google.golang.org/genai"
)

func TestSummarizeEmptyTextSkipsRemoteCall(t *testing.T) {
	// No client configured: reaching the remote call would panic.
	s := &GeminiService{}

	for _, text := range []string{"", "   ", "\n\t  \n"} {
		got, err := s.Summarize(context.Background(), text)
		if err != nil {
			t.Fatalf("Summarize(%q): %v", text, err)
		}
		if got != NoContentMessage {
			t.Errorf("Summarize(%q) = %q, want no-content message", text, got)
		}
	}
}

func TestChatRejectsEmptyMessage(t *testing.T) {
	s := &GeminiService{}
	if _, err := s.Chat(context.Background(), "  "); err == nil {
		t.Error("expected error for empty message")
	}
}

func TestGenerateEmbeddingRejectsEmptyText(t *testing.T) {
	s := &GeminiService{}
	if _, err := s.GenerateEmbedding(context.Background(), " "); err == nil {
		t.Error("expected error for empty text")
	}
}

func TestValidateGenerateResponse(t *testing.T) {
	if err := validateGenerateResponse(nil); err == nil {
		t.Error("nil response accepted")
	}
	if err := validateGenerateResponse(&genai.GenerateContentResponse{}); err == nil {
		t.Error("response without candidates accepted")
	}

	ok := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: "hello"}}},
		}},
	}
	if err := validateGenerateResponse(ok); err != nil {
		t.Errorf("valid response rejected: %v", err)
	}
}

func TestValidateEmbeddingResponse(t *testing.T) {
	if _, err := validateEmbeddingResponse(nil); err == nil {
		t.Error("nil response accepted")
	}
	if _, err := validateEmbeddingResponse(&genai.EmbedContentResponse{}); err == nil {
		t.Error("response without embeddings accepted")
	}

	bad := &genai.EmbedContentResponse{
		Embeddings: []*genai.ContentEmbedding{{Values: []float32{1, float32(math.NaN()), 3}}},
	}
	if _, err := validateEmbeddingResponse(bad); err == nil {
		t.Error("NaN embedding accepted")
	}

	good := &genai.EmbedContentResponse{
		Embeddings: []*genai.ContentEmbedding{{Values: []float32{0.1, 0.2}}},
	}
	values, err := validateEmbeddingResponse(good)
	if err != nil {
		t.Fatalf("valid embedding rejected: %v", err)
	}
	if len(values) != 2 {
		t.Errorf("got %d values, want 2", len(values))
	}
}
