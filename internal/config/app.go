package config

import (
	"log"
	"os"
	"strconv"
	"sync"
)

type AppConfig struct {
	Name            string
	Env             string
	Port            string
	BaseURL         string
	SummaryProvider string // "gemini" (default) or "openrouter"
	Workers         int
}

var (
	appConfig *AppConfig
	appOnce   sync.Once
)

func LoadAppConfig() *AppConfig {
	appOnce.Do(func() {
		env := os.Getenv("APP_ENV")
		if env == "" {
			env = "development"
			log.Printf("Warning: APP_ENV not set, defaulting to %s", env)
		}
		provider := os.Getenv("SUMMARY_PROVIDER")
		if provider == "" {
			provider = "gemini"
		}
		workers := 4
		if w, err := strconv.Atoi(os.Getenv("APP_WORKERS")); err == nil && w > 0 {
			workers = w
		}
		appConfig = &AppConfig{
			Name:            os.Getenv("APP_NAME"),
			Env:             env,
			Port:            os.Getenv("APP_PORT"),
			BaseURL:         os.Getenv("APP_URL"),
			SummaryProvider: provider,
			Workers:         workers,
		}
	})
	return appConfig
}
