package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"

	"github.com/priyankan19/oerhub/internal/config"
)

const openRouterEndpoint = "https://openrouter.ai/api/v1/chat/completions"

// OpenRouterService is the fallback summary provider for deployments without
// a Gemini key. Same contract as the Gemini summarizer.
type OpenRouterService struct {
	APIKey string
	Model  string
	client *resty.Client
}

func NewOpenRouterService() *OpenRouterService {
	return &OpenRouterService{
		APIKey: config.LoadOpenRouterConfig().APIKey,
		Model:  "openai/gpt-4o-mini",
		client: resty.New(),
	}
}

func (s *OpenRouterService) Summarize(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return NoContentMessage, nil
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+s.APIKey).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{
			"model": s.Model,
			"messages": []map[string]string{
				{"role": "system", "content": "You summarize educational documents."},
				{"role": "user", "content": fmt.Sprintf(summaryPromptTemplate, text)},
			},
		}).
		Post(openRouterEndpoint)
	if err != nil {
		return "", fmt.Errorf("openrouter request: %w", err)
	}

	summary := gjson.Get(resp.String(), "choices.0.message.content").String()
	if summary == "" {
		return "", fmt.Errorf("no response from LLM")
	}
	return summary, nil
}
