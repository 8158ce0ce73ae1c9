package config

import (
	"os"
	"sync"
	"time"
)

type WhisperConfig struct {
	Binary  string
	Model   string // tiny keeps transcription inside request-scale latency
	Timeout time.Duration
}

var (
	whisperConfig *WhisperConfig
	whisperOnce   sync.Once
)

func LoadWhisperConfig() *WhisperConfig {
	whisperOnce.Do(func() {
		binary := os.Getenv("WHISPER_BINARY")
		if binary == "" {
			binary = "whisper"
		}
		model := os.Getenv("WHISPER_MODEL")
		if model == "" {
			model = "tiny"
		}
		timeout := 10 * time.Minute
		if t, err := time.ParseDuration(os.Getenv("WHISPER_TIMEOUT")); err == nil && t > 0 {
			timeout = t
		}
		whisperConfig = &WhisperConfig{
			Binary:  binary,
			Model:   model,
			Timeout: timeout,
		}
	})
	return whisperConfig
}
