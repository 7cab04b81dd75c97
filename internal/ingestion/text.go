// Package ingestion loads RFP and company documents from disk into raw text.
package ingestion

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/jonathan/rfp-proposal/internal/pdftext"
	"github.com/jonathan/rfp-proposal/internal/types"
)

var (
	innerSpaceRE = regexp.MustCompile(`\s+`)
	blankRunRE   = regexp.MustCompile(`\n\n\n+`)
)

// EmptyDocumentError reports a source that yielded no text at all. It fails the whole
// pipeline unit.
type EmptyDocumentError struct {
	Source string
}

func (e *EmptyDocumentError) Error() string {
	return fmt.Sprintf("no text could be extracted from %s", e.Source)
}

// LoadDocument reads a PDF or a plain text file. PDFs are read page by page; text files
// are cleaned with CleanText.
func LoadDocument(path string) (*types.RawDocument, error) {
	var text string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		pdfText, err := pdftext.ExtractText(path)
		if err != nil {
			return nil, err
		}
		text = CleanText(pdfText)
	default:
		content, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("file not found: %w", err)
			}
			return nil, fmt.Errorf("failed to read file: %w", err)
		}
		text = CleanText(string(content))
	}

	if strings.TrimSpace(text) == "" {
		return nil, &EmptyDocumentError{Source: path}
	}
	return &types.RawDocument{
		Source:    path,
		Text:      text,
		FetchedAt: time.Now().UTC(),
	}, nil
}

// CleanText cleans and normalizes text content while preserving structure
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = strings.ReplaceAll(content, "\f", "\n")

	lines := strings.Split(content, "\n")
	cleanedLines := make([]string, 0, len(lines))
	for _, line := range lines {
		cleanedLines = append(cleanedLines, cleanLine(line))
	}

	result := strings.Join(cleanedLines, "\n")
	result = blankRunRE.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

// cleanLine cleans a single line while preserving structure
func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t")
	if strings.TrimSpace(line) == "" {
		return ""
	}

	trimmed := strings.TrimLeft(line, " \t")
	if strings.HasPrefix(trimmed, "#") {
		return trimmed
	}

	// Bullets keep their indentation
	if isBulletLine(trimmed) {
		indent := len(line) - len(trimmed)
		return strings.Repeat(" ", indent) + trimmed
	}

	leadingSpace := len(line) - len(trimmed)
	content := innerSpaceRE.ReplaceAllString(strings.TrimSpace(line), " ")
	return strings.Repeat(" ", leadingSpace) + content
}

// isBulletLine checks if a line is a bullet list item
func isBulletLine(trimmed string) bool {
	return strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") ||
		strings.HasPrefix(trimmed, "• ") || strings.HasPrefix(trimmed, "· ")
}
