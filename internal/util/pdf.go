package util

import (
	"fmt"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// ReadPDF returns the page count and concatenated text of a PDF. A page whose
// text cannot be extracted contributes an empty string; only a file that
// cannot be opened as a PDF at all is an error.
func ReadPDF(path string) (int, string, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return 0, "", fmt.Errorf("open pdf: %w", err)
	}
	defer doc.Close()

	pages := doc.NumPage()
	parts := make([]string, 0, pages)
	for n := 0; n < pages; n++ {
		text, err := doc.Text(n)
		if err != nil {
			text = ""
		}
		parts = append(parts, text)
	}

	return pages, strings.Join(parts, "\n"), nil
}
