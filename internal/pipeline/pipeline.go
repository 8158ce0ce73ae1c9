package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/priyankan19/oerhub/internal/service"
	"github.com/priyankan19/oerhub/internal/util"
)

// DocumentReader returns page count and concatenated text of a PDF.
type DocumentReader interface {
	Read(path string) (int, string, error)
}

// ReaderFunc adapts a plain function (util.ReadPDF) to DocumentReader.
type ReaderFunc func(path string) (int, string, error)

func (f ReaderFunc) Read(path string) (int, string, error) {
	return f(path)
}

// Pipeline enriches one uploaded file: extract metadata, branch on MIME type
// (video -> transcript, pdf -> page count + summary, other -> skip), then
// format a report. Every stage is fail-soft: errors become inline notes and
// the run always reaches the formatter.
type Pipeline struct {
	reader      DocumentReader
	summarizer  service.SummaryProvider
	transcriber service.Transcriber
	logger      zerolog.Logger
}

func New(reader DocumentReader, summarizer service.SummaryProvider, transcriber service.Transcriber, logger zerolog.Logger) *Pipeline {
	return &Pipeline{
		reader:      reader,
		summarizer:  summarizer,
		transcriber: transcriber,
		logger:      logger,
	}
}

func (p *Pipeline) Run(ctx context.Context, path string) Formatted {
	extracted := Extract(path)
	if !extracted.Meta.OK() {
		p.logger.Warn().Str("path", path).Str("error", extracted.Meta.Err).Msg("metadata extraction failed")
		return Format(Processed{Extracted: extracted, Kind: KindSkipped})
	}

	var processed Processed
	switch {
	case strings.HasPrefix(extracted.Meta.MimeType, "video/"):
		processed = p.TranscribeMedia(ctx, extracted)
	case extracted.Meta.MimeType == "application/pdf":
		processed = p.ProcessDocument(ctx, extracted)
	default:
		processed = Processed{Extracted: extracted, Kind: KindSkipped}
	}

	formatted := Format(processed)
	p.logger.Info().Str("file", extracted.Meta.FileName).Str("mime", extracted.Meta.MimeType).Msg("pipeline run complete")
	return formatted
}

// Extract is the first stage; a missing path becomes Meta.Err, not an error.
func Extract(path string) Extracted {
	return Extracted{Path: path, Meta: util.ExtractFileMetadata(path)}
}

// ProcessDocument reads the PDF and summarizes its text. An unreadable file
// is noted in ReadErr and summarization still runs on the salvaged text.
func (p *Pipeline) ProcessDocument(ctx context.Context, in Extracted) Processed {
	out := Processed{Extracted: in, Kind: KindDocument}

	pages, text, err := p.reader.Read(in.Path)
	if err != nil {
		out.ReadErr = fmt.Sprintf("Could not read PDF pages: %v", err)
	} else {
		out.PageCount = pages
		out.Text = text
	}

	summary, err := p.summarizer.Summarize(ctx, out.Text)
	if err != nil {
		out.Summary = fmt.Sprintf("Gemini summarization failed: %v", err)
	} else {
		out.Summary = summary
	}
	return out
}

// TranscribeMedia runs speech-to-text over the file; failure is substituted
// for the transcript.
func (p *Pipeline) TranscribeMedia(ctx context.Context, in Extracted) Processed {
	out := Processed{Extracted: in, Kind: KindMedia}

	transcript, err := p.transcriber.Transcribe(ctx, in.Path)
	if err != nil {
		out.Transcript = fmt.Sprintf("Transcription failed: %v", err)
	} else {
		out.Transcript = transcript
	}
	return out
}

// Format always produces a report, even when every stage failed.
func Format(in Processed) Formatted {
	if !in.Meta.OK() {
		return Formatted{Processed: in, Result: "Error: " + in.Meta.Err}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Filename: %s, Type: %s, Size: %d bytes",
		in.Meta.FileName, in.Meta.MimeType, in.Meta.SizeBytes)

	if in.Kind == KindDocument {
		if in.ReadErr == "" {
			fmt.Fprintf(&sb, ", Page Count: %d pages", in.PageCount)
		} else {
			fmt.Fprintf(&sb, ", Read Error: %s", in.ReadErr)
		}
	}

	if in.Summary != "" {
		fmt.Fprintf(&sb, "\n\nGemini Summary:\n%s", in.Summary)
	}
	if in.Transcript != "" {
		fmt.Fprintf(&sb, "\n\nTranscript:\n%s", in.Transcript)
	}

	return Formatted{Processed: in, Result: sb.String()}
}
