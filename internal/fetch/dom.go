// Package fetch - dom.go provides goquery helpers shared by the contact and section extractors.
package fetch

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

var (
	horizontalSpaceRE = regexp.MustCompile(`[ \t]+`)
	blankRunRE        = regexp.MustCompile(`\n{2,}`)
)

// invisibleTags never contribute rendered text.
var invisibleTags = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"svg":      true,
	"canvas":   true,
	"iframe":   true,
	"template": true,
}

// ParseHTML parses markup into a goquery document.
func ParseHTML(markup string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return doc, nil
}

// NodeText joins the trimmed, non-empty text nodes under sel with sep.
// Script, style and other invisible elements are skipped.
func NodeText(sel *goquery.Selection, sep string) string {
	var parts []string
	for _, n := range sel.Nodes {
		collectText(n, &parts)
	}
	return strings.Join(parts, sep)
}

func collectText(n *html.Node, parts *[]string) {
	switch n.Type {
	case html.TextNode:
		if s := strings.TrimSpace(n.Data); s != "" {
			*parts = append(*parts, s)
		}
		return
	case html.CommentNode:
		return
	case html.ElementNode:
		if invisibleTags[n.Data] {
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, parts)
	}
}

// VisibleText returns the rendered text of a page, one text node per line.
func VisibleText(doc *goquery.Document) string {
	root := doc.Find("body")
	if root.Length() == 0 {
		root = doc.Selection
	}
	text := NodeText(root, "\n")
	text = horizontalSpaceRE.ReplaceAllString(text, " ")
	text = blankRunRE.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// AttrValues returns every attribute value on every element in the document.
func AttrValues(doc *goquery.Document) []string {
	var values []string
	doc.Find("*").Each(func(_ int, s *goquery.Selection) {
		for _, n := range s.Nodes {
			for _, a := range n.Attr {
				if a.Val != "" {
					values = append(values, a.Val)
				}
			}
		}
	})
	return values
}

// ClosestContainer returns the nearest ancestor of sel whose tag is one of tags,
// falling back to the direct parent.
func ClosestContainer(sel *goquery.Selection, tags string) *goquery.Selection {
	if c := sel.ParentsFiltered(tags).First(); c.Length() > 0 {
		return c
	}
	return sel.Parent()
}
