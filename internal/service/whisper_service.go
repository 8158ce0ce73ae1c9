package service

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/priyankan19/oerhub/internal/config"
)

// Transcriber produces a transcript for a media file on local disk.
type Transcriber interface {
	Transcribe(ctx context.Context, path string) (string, error)
}

// WhisperService runs the local whisper CLI. Model size is a load-time
// parameter trading latency for accuracy; the default "tiny" keeps runs
// short enough for background processing of lecture videos.
type WhisperService struct {
	Binary  string
	Model   string
	Timeout time.Duration
}

func NewWhisperService() *WhisperService {
	whisperConfig := config.LoadWhisperConfig()
	return &WhisperService{
		Binary:  whisperConfig.Binary,
		Model:   whisperConfig.Model,
		Timeout: whisperConfig.Timeout,
	}
}

func (s *WhisperService) Transcribe(ctx context.Context, path string) (string, error) {
	if _, err := exec.LookPath(s.Binary); err != nil {
		return "", fmt.Errorf("whisper not found or not executable: %w", err)
	}

	outDir, err := os.MkdirTemp("", "whisper-*")
	if err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	defer os.RemoveAll(outDir)

	timeoutCtx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	cmd := exec.CommandContext(timeoutCtx, s.Binary, path,
		"--model", s.Model,
		"--output_format", "txt",
		"--output_dir", outDir,
	)
	out, err := cmd.CombinedOutput()
	if err != nil {
		if timeoutCtx.Err() != nil {
			return "", fmt.Errorf("transcription timed out after %s", s.Timeout)
		}
		return "", fmt.Errorf("whisper error: %w, output: %s", err, string(out))
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	transcript, err := os.ReadFile(filepath.Join(outDir, base+".txt"))
	if err != nil {
		return "", fmt.Errorf("read transcript: %w", err)
	}
	return strings.TrimSpace(string(transcript)), nil
}
