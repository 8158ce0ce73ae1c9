package pipeline

import (
	"github.com/priyankan19/oerhub/internal/util"
)

// Pipeline state is modeled as one struct per stage instead of a free-form
// map, so later stages can only read fields an earlier stage is guaranteed to
// have set.

type Kind int

const (
	KindSkipped Kind = iota
	KindDocument
	KindMedia
)

// Extracted is the state after metadata extraction. Meta.Err carries the
// input-not-found case; the run still proceeds to formatting.
type Extracted struct {
	Path string
	Meta util.FileMetadata
}

// Processed is the state after the content branch. For KindDocument the
// summary is always set (possibly the no-content message or an inline error
// string); for KindMedia the transcript is. ReadErr notes a PDF that could
// not be opened; summarization still ran on whatever text was salvaged.
type Processed struct {
	Extracted

	Kind       Kind
	PageCount  int
	Text       string
	ReadErr    string
	Summary    string
	Transcript string
}

// Formatted is the terminal state: a human-readable report assembled from
// whatever fields the earlier stages produced, error notes included.
type Formatted struct {
	Processed

	Result string
}
