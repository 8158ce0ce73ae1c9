package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

type fakeSummarizer struct {
	calls   int
	lastIn  string
	summary string
	err     error
}

func (f *fakeSummarizer) Summarize(_ context.Context, text string) (string, error) {
	f.calls++
	f.lastIn = text
	if f.err != nil {
		return "", f.err
	}
	return f.summary, nil
}

type fakeTranscriber struct {
	calls      int
	transcript string
	err        error
}

func (f *fakeTranscriber) Transcribe(_ context.Context, _ string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.transcript, nil
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunMissingFile(t *testing.T) {
	p := New(nil, &fakeSummarizer{}, &fakeTranscriber{}, zerolog.Nop())

	out := p.Run(context.Background(), "/no/such/input.pdf")
	if !strings.HasPrefix(out.Result, "Error: ") {
		t.Errorf("result = %q, want error report", out.Result)
	}
	if !strings.Contains(out.Result, "/no/such/input.pdf") {
		t.Errorf("result %q does not name the missing path", out.Result)
	}
	if out.Kind != KindSkipped {
		t.Errorf("kind = %v, want skipped", out.Kind)
	}
}

func TestRunDocument(t *testing.T) {
	path := writeTemp(t, "chapter.pdf", "%PDF-1.4 fake")
	reader := ReaderFunc(func(string) (int, string, error) {
		return 3, "Hello world\nHello world\nHello world", nil
	})
	summarizer := &fakeSummarizer{summary: "- covers greetings"}
	transcriber := &fakeTranscriber{}
	p := New(reader, summarizer, transcriber, zerolog.Nop())

	out := p.Run(context.Background(), path)
	if !strings.Contains(out.Result, "Page Count: 3 pages") {
		t.Errorf("result missing page count: %q", out.Result)
	}
	if !strings.Contains(out.Result, "Gemini Summary:\n- covers greetings") {
		t.Errorf("result missing summary: %q", out.Result)
	}
	if summarizer.calls != 1 {
		t.Errorf("summarizer calls = %d, want 1", summarizer.calls)
	}
	if transcriber.calls != 0 {
		t.Errorf("transcriber calls = %d, want 0", transcriber.calls)
	}
}

func TestRunDocumentUnreadable(t *testing.T) {
	path := writeTemp(t, "broken.pdf", "not a pdf")
	reader := ReaderFunc(func(string) (int, string, error) {
		return 0, "", errors.New("open: not a pdf")
	})
	summarizer := &fakeSummarizer{summary: "summary anyway"}
	p := New(reader, summarizer, &fakeTranscriber{}, zerolog.Nop())

	out := p.Run(context.Background(), path)
	if !strings.Contains(out.Result, "Read Error: Could not read PDF pages:") {
		t.Errorf("result missing read error: %q", out.Result)
	}
	// Summarization still runs on the salvaged (empty) text.
	if summarizer.calls != 1 {
		t.Errorf("summarizer calls = %d, want 1", summarizer.calls)
	}
	if strings.Contains(out.Result, "Page Count") {
		t.Errorf("unreadable document should not report a page count: %q", out.Result)
	}
}

func TestRunDocumentSummaryFailure(t *testing.T) {
	path := writeTemp(t, "chapter.pdf", "x")
	reader := ReaderFunc(func(string) (int, string, error) {
		return 1, "some text", nil
	})
	summarizer := &fakeSummarizer{err: errors.New("quota exceeded")}
	p := New(reader, summarizer, &fakeTranscriber{}, zerolog.Nop())

	out := p.Run(context.Background(), path)
	if !strings.Contains(out.Result, "Gemini summarization failed: quota exceeded") {
		t.Errorf("result missing substituted error: %q", out.Result)
	}
}

func TestRunMedia(t *testing.T) {
	path := writeTemp(t, "lecture.mp4", "fake video bytes")
	summarizer := &fakeSummarizer{}
	transcriber := &fakeTranscriber{transcript: "welcome to the lecture"}
	p := New(nil, summarizer, transcriber, zerolog.Nop())

	out := p.Run(context.Background(), path)
	if !strings.Contains(out.Result, "Transcript:\nwelcome to the lecture") {
		t.Errorf("result missing transcript: %q", out.Result)
	}
	if summarizer.calls != 0 {
		t.Errorf("summarizer calls = %d, want 0", summarizer.calls)
	}
	if transcriber.calls != 1 {
		t.Errorf("transcriber calls = %d, want 1", transcriber.calls)
	}
}

func TestRunMediaTranscriptionFailure(t *testing.T) {
	path := writeTemp(t, "lecture.mp4", "fake")
	transcriber := &fakeTranscriber{err: errors.New("model not installed")}
	p := New(nil, &fakeSummarizer{}, transcriber, zerolog.Nop())

	out := p.Run(context.Background(), path)
	if !strings.Contains(out.Result, "Transcription failed: model not installed") {
		t.Errorf("result missing substituted error: %q", out.Result)
	}
}

func TestRunUnsupportedTypeSkips(t *testing.T) {
	path := writeTemp(t, "notes.txt", "plain text")
	summarizer := &fakeSummarizer{}
	transcriber := &fakeTranscriber{}
	p := New(nil, summarizer, transcriber, zerolog.Nop())

	out := p.Run(context.Background(), path)
	if out.Kind != KindSkipped {
		t.Errorf("kind = %v, want skipped", out.Kind)
	}
	if summarizer.calls != 0 || transcriber.calls != 0 {
		t.Error("skipped file should not reach the content branch")
	}
	if !strings.Contains(out.Result, "Filename: notes.txt") {
		t.Errorf("result missing metadata line: %q", out.Result)
	}
}
