package config

import (
	"os"
	"sync"
)

// GeminiConfig carries the API key for the Gemini summarizer and
// embedding calls.
type GeminiConfig struct {
	APIKey string
}

var (
	geminiConfig *GeminiConfig
	geminiOnce   sync.Once
)

func LoadGeminiConfig() *GeminiConfig {
	geminiOnce.Do(func() {
		geminiConfig = &GeminiConfig{
			APIKey: os.Getenv("GEMINI_API_KEY"),
		}
	})
	return geminiConfig
}
