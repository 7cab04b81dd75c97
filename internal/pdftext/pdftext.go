// Package pdftext extracts the plain text of PDF files page by page.
package pdftext

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Error reports a PDF that could not be opened or read.
type Error struct {
	Path    string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("pdf error for %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("pdf error for %s: %s", e.Path, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// ExtractPages returns the text of every page, in page order. Pages without a text
// layer or that fail to decode yield an empty string so indexes stay aligned.
func ExtractPages(path string) (pages []string, err error) {
	// The decoder panics on some malformed streams.
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = &Error{Path: path, Message: fmt.Sprintf("decoder panic: %v", r)}
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, &Error{Path: path, Message: "failed to open", Cause: err}
	}
	defer func() { _ = f.Close() }()

	total := r.NumPage()
	pages = make([]string, 0, total)
	fonts := make(map[string]*pdf.Font)
	for i := 1; i <= total; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		for _, name := range page.Fonts() {
			if _, ok := fonts[name]; !ok {
				font := page.Font(name)
				fonts[name] = &font
			}
		}
		text, err := page.GetPlainText(fonts)
		if err != nil {
			pages = append(pages, "")
			continue
		}
		pages = append(pages, strings.TrimSpace(text))
	}
	return pages, nil
}

// ExtractText returns the text of all pages joined by newlines. Empty pages are skipped.
func ExtractText(path string) (string, error) {
	pages, err := ExtractPages(path)
	if err != nil {
		return "", err
	}
	kept := make([]string, 0, len(pages))
	for _, p := range pages {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "\n"), nil
}
