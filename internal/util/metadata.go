package util

import (
	"math"
	"mime"
	"os"
	"path/filepath"
)

// Minimal container images often ship without /etc/mime.types, which
// would leave media uploads typed unknown/unknown and skip transcription.
func init() {
	for ext, typ := range map[string]string{
		".mp4":  "video/mp4",
		".mov":  "video/quicktime",
		".mkv":  "video/x-matroska",
		".webm": "video/webm",
		".avi":  "video/x-msvideo",
		".mp3":  "audio/mpeg",
		".wav":  "audio/wav",
		".m4a":  "audio/mp4",
	} {
		mime.AddExtensionType(ext, typ)
	}
}

// FileMetadata describes an uploaded file on local disk. A failed lookup is
// reported through Err instead of an error return so pipeline runs can keep
// going and include the note in their report.
type FileMetadata struct {
	FileName  string  `json:"file_name"`
	MimeType  string  `json:"mime_type"`
	SizeBytes int64   `json:"size_bytes"`
	SizeKB    float64 `json:"size_kb"`
	Err       string  `json:"error,omitempty"`
}

func (m FileMetadata) OK() bool {
	return m.Err == ""
}

func ExtractFileMetadata(path string) FileMetadata {
	if path == "" {
		return FileMetadata{Err: "File not found at path: " + path}
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return FileMetadata{Err: "File not found at path: " + path}
		}
		return FileMetadata{Err: "Could not get file size for " + path + ": " + err.Error()}
	}

	mimeType := mime.TypeByExtension(filepath.Ext(path))
	if mimeType == "" {
		mimeType = "unknown/unknown"
	}

	size := info.Size()
	return FileMetadata{
		FileName:  filepath.Base(path),
		MimeType:  mimeType,
		SizeBytes: size,
		SizeKB:    math.Round(float64(size)/1024*100) / 100,
	}
}
