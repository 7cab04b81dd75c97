package proposal

import (
	"fmt"
	"os"
	"strings"

	"github.com/gingfrederik/docx"

	"github.com/jonathan/rfp-proposal/internal/types"
)

const docxRule = "--------------------------------------------------"

// WriteMarkdown writes the assembled Markdown document.
func WriteMarkdown(path string, p *types.Proposal) error {
	if err := os.WriteFile(path, []byte(p.Markdown), 0644); err != nil {
		return fmt.Errorf("failed to write proposal markdown: %w", err)
	}
	return nil
}

// WriteDOCX renders the proposal as a Word document: the bilingual title, then each
// section heading followed by its paragraphs. Markdown markers are dropped from the text.
func WriteDOCX(path string, p *types.Proposal) error {
	f := docx.NewFile()

	f.AddParagraph().AddText(Title).Size(24)
	f.AddParagraph().AddText(EnglishTitle).Size(18)
	f.AddParagraph()

	for i, sec := range p.Sections {
		if i > 0 {
			f.AddParagraph().AddText(docxRule).Color("808080")
		}
		f.AddParagraph().AddText(sec.Name).Size(16)
		for _, para := range Paragraphs(sec.Body) {
			f.AddParagraph().AddText(para)
		}
	}

	if err := f.Save(path); err != nil {
		return fmt.Errorf("failed to write proposal docx: %w", err)
	}
	return nil
}

// Paragraphs splits a section body into plain-text lines for the document, dropping
// blank lines and leading Markdown heading, emphasis and table markers.
func Paragraphs(body string) []string {
	var out []string
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "#> ")
		line = strings.ReplaceAll(line, "**", "")
		line = strings.TrimSpace(line)
		if line == "" || strings.Trim(line, "|-: ") == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}
