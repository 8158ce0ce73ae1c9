package service

import (
	"fmt"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf/v2"
	"golang.org/x/net/html"
)

// PDFGenService renders a contributor draft (sanitized HTML from the editor)
// into the PDF that gets stored as the final chapter document.
type PDFGenService struct{}

func NewPDFGenService() *PDFGenService {
	return &PDFGenService{}
}

func (s *PDFGenService) RenderDraft(title, htmlContent string, w io.Writer) error {
	paragraphs, err := extractParagraphs(htmlContent)
	if err != nil {
		return fmt.Errorf("parse draft html: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, false)
	pdf.AddPage()

	if strings.TrimSpace(title) != "" {
		pdf.SetFont("Helvetica", "B", 16)
		pdf.MultiCell(0, 8, title, "", "L", false)
		pdf.Ln(4)
	}

	pdf.SetFont("Helvetica", "", 12)
	for _, p := range paragraphs {
		pdf.MultiCell(0, 6, p, "", "L", false)
		pdf.Ln(2)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}

// extractParagraphs flattens block elements of the editor HTML into plain
// text lines, in document order.
func extractParagraphs(htmlContent string) ([]string, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return nil, err
	}

	var paragraphs []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "p" || n.Data == "div" || n.Data == "li" ||
			n.Data == "h1" || n.Data == "h2" || n.Data == "h3") {
			text := strings.TrimSpace(nodeText(n))
			if text != "" {
				paragraphs = append(paragraphs, text)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if len(paragraphs) == 0 {
		if text := strings.TrimSpace(nodeText(doc)); text != "" {
			paragraphs = append(paragraphs, text)
		}
	}
	return paragraphs, nil
}

func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(nodeText(c))
		sb.WriteString(" ")
	}
	return strings.Join(strings.Fields(sb.String()), " ")
}
