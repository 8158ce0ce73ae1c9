package config

import (
	"os"
	"sync"
)

// OpenRouterConfig carries the API key for the OpenRouter fallback
// summary provider.
type OpenRouterConfig struct {
	APIKey string
}

var (
	openRouterConfig *OpenRouterConfig
	openRouterOnce   sync.Once
)

func LoadOpenRouterConfig() *OpenRouterConfig {
	openRouterOnce.Do(func() {
		openRouterConfig = &OpenRouterConfig{
			APIKey: os.Getenv("OPENROUTER_API_KEY"),
		}
	})
	return openRouterConfig
}
