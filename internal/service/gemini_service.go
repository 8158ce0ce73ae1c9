package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/priyankan19/oerhub/internal/config"
)

const (
	geminiTextModel      = "gemini-2.5-flash"
	geminiEmbeddingModel = "gemini-embedding-001"
)

// NoContentMessage is returned when there is nothing to summarize; the remote
// endpoint is not called in that case.
const NoContentMessage = "No text content could be extracted for summarization."

const summaryPromptTemplate = "Summarize the following document in 5-6 concise bullet points:\n\n%s"

// SummaryProvider turns extracted document text into a short bullet summary.
type SummaryProvider interface {
	Summarize(ctx context.Context, text string) (string, error)
}

type GeminiServiceInterface interface {
	SummaryProvider
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
	Chat(ctx context.Context, message string) (string, error)
}

type GeminiService struct {
	Client         *genai.Client
	RequestTimeout time.Duration
}

func NewGeminiService(ctx context.Context) (*GeminiService, error) {
	geminiConfig := config.LoadGeminiConfig()
	apiKey := geminiConfig.APIKey
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiService{
		Client:         client,
		RequestTimeout: 90 * time.Second,
	}, nil
}

// Summarize sends the fixed summary prompt. Failures are returned as errors;
// the pipeline records them inline instead of retrying.
func (s *GeminiService) Summarize(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return NoContentMessage, nil
	}
	return s.generate(ctx, fmt.Sprintf(summaryPromptTemplate, text))
}

// Chat relays a single user message; no conversation state kept across calls.
func (s *GeminiService) Chat(ctx context.Context, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", fmt.Errorf("message cannot be empty")
	}
	return s.generate(ctx, message)
}

func (s *GeminiService) generate(ctx context.Context, prompt string) (string, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, s.RequestTimeout)
	defer cancel()

	genConfig := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(0.1)),
	}
	result, err := s.Client.Models.GenerateContent(timeoutCtx, geminiTextModel, genai.Text(prompt), genConfig)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	if err := validateGenerateResponse(result); err != nil {
		return "", fmt.Errorf("invalid response: %w", err)
	}
	return result.Text(), nil
}

func (s *GeminiService) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, fmt.Errorf("text for embedding cannot be empty")
	}
	if len(trimmed) > 10000 {
		trimmed = trimmed[:10000]
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, s.RequestTimeout)
	defer cancel()

	content := []*genai.Content{genai.NewContentFromText(trimmed, genai.RoleUser)}
	result, err := s.Client.Models.EmbedContent(timeoutCtx, geminiEmbeddingModel, content, nil)
	if err != nil {
		return nil, fmt.Errorf("generate embedding: %w", err)
	}
	return validateEmbeddingResponse(result)
}

func validateGenerateResponse(resp *genai.GenerateContentResponse) error {
	if resp == nil {
		return fmt.Errorf("response is nil")
	}
	if len(resp.Candidates) == 0 {
		return fmt.Errorf("no candidates in response")
	}
	if resp.Candidates[0].Content == nil {
		return fmt.Errorf("candidate content is nil")
	}
	if len(resp.Candidates[0].Content.Parts) == 0 {
		return fmt.Errorf("no parts in content")
	}
	return nil
}

func validateEmbeddingResponse(resp *genai.EmbedContentResponse) ([]float32, error) {
	if resp == nil {
		return nil, fmt.Errorf("response is nil")
	}
	if len(resp.Embeddings) == 0 {
		return nil, fmt.Errorf("no embeddings returned")
	}

	embedding := resp.Embeddings[0].Values
	if len(embedding) == 0 {
		return nil, fmt.Errorf("embedding vector is empty")
	}
	for i, val := range embedding {
		if math.IsNaN(float64(val)) || math.IsInf(float64(val), 0) {
			return nil, fmt.Errorf("invalid embedding value at index %d: %v", i, val)
		}
	}
	return embedding, nil
}
