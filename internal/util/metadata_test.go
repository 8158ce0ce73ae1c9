package util

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExtractFileMetadataMissingPath(t *testing.T) {
	meta := ExtractFileMetadata("/no/such/file.pdf")
	if meta.OK() {
		t.Fatal("expected error metadata for missing file")
	}
	if !strings.HasPrefix(meta.Err, "File not found at path: ") {
		t.Errorf("unexpected error message: %q", meta.Err)
	}
}

func TestExtractFileMetadataEmptyPath(t *testing.T) {
	meta := ExtractFileMetadata("")
	if meta.OK() {
		t.Fatal("expected error metadata for empty path")
	}
}

func TestExtractFileMetadata(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.pdf")
	content := []byte("0123456789")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	meta := ExtractFileMetadata(path)
	if !meta.OK() {
		t.Fatalf("unexpected error: %q", meta.Err)
	}
	if meta.FileName != "notes.pdf" {
		t.Errorf("file name = %q", meta.FileName)
	}
	if meta.MimeType != "application/pdf" {
		t.Errorf("mime type = %q", meta.MimeType)
	}
	if meta.SizeBytes != int64(len(content)) {
		t.Errorf("size = %d, want %d", meta.SizeBytes, len(content))
	}
	if meta.SizeKB != 0.01 {
		t.Errorf("size kb = %v, want 0.01", meta.SizeKB)
	}
}

// Media types must resolve even when the host has no mime tables, or
// video uploads would never reach transcription.
func TestExtractFileMetadataMediaExtensions(t *testing.T) {
	dir := t.TempDir()
	for ext, want := range map[string]string{
		".mp4":  "video/mp4",
		".webm": "video/webm",
		".mp3":  "audio/mpeg",
	} {
		path := filepath.Join(dir, "lecture"+ext)
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
		meta := ExtractFileMetadata(path)
		if !meta.OK() {
			t.Fatalf("unexpected error for %s: %q", ext, meta.Err)
		}
		if meta.MimeType != want {
			t.Errorf("mime type for %s = %q, want %q", ext, meta.MimeType, want)
		}
	}
}

func TestExtractFileMetadataUnknownExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "blob.qz9x")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	meta := ExtractFileMetadata(path)
	if !meta.OK() {
		t.Fatalf("unexpected error: %q", meta.Err)
	}
	if meta.MimeType != "unknown/unknown" {
		t.Errorf("mime type = %q, want unknown/unknown", meta.MimeType)
	}
}
