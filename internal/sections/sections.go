// Package sections locates narrative regions of company pages: branches, partners,
// "why us" bullets, prior projects and consultations.
//
// Every extractor runs in two phases. Phase A matches heading text against a bilingual
// keyword set and harvests items from the nearest container. Phase B, used only when
// Phase A finds nothing, falls back to class/id selectors or a line scan.
package sections

import (
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/jonathan/rfp-proposal/internal/contacts"
	"github.com/jonathan/rfp-proposal/internal/fetch"
	"github.com/jonathan/rfp-proposal/internal/textnorm"
)

// Per-section candidate caps.
const (
	MaxBranches      = 10
	MaxConsultations = 5
	MaxPartners      = 40
	MaxProjects      = 20
	MaxWhyUs         = 15
)

// Result holds every section extracted from one or more pages.
type Result struct {
	Branches      []string
	Consultations []string
	Partners      []string
	LogoURLs      []string
	Projects      []string
	WhyUs         []string
}

// FromHTML parses markup and runs every extractor over it.
func FromHTML(markup, baseURL string) (*Result, error) {
	doc, err := fetch.ParseHTML(markup)
	if err != nil {
		return nil, err
	}
	return Extract(doc, baseURL), nil
}

// Extract runs every extractor over an already parsed page.
func Extract(doc *goquery.Document, baseURL string) *Result {
	partners := Partners(doc, baseURL)
	return &Result{
		Branches:      Branches(doc),
		Consultations: Consultations(doc),
		Partners:      partners.Names,
		LogoURLs:      partners.LogoURLs,
		Projects:      Projects(doc),
		WhyUs:         WhyUs(doc),
	}
}

// Union appends other's items that r does not already hold, keeping first-seen order.
// Caps are re-applied to the merged lists.
func (r *Result) Union(other *Result) *Result {
	if other == nil {
		return r
	}
	return &Result{
		Branches:      unionCapped(r.Branches, other.Branches, MaxBranches),
		Consultations: unionCapped(r.Consultations, other.Consultations, MaxConsultations),
		Partners:      unionCapped(r.Partners, other.Partners, MaxPartners),
		LogoURLs:      unionCapped(r.LogoURLs, other.LogoURLs, 0),
		Projects:      unionCapped(r.Projects, other.Projects, MaxProjects),
		WhyUs:         unionCapped(r.WhyUs, other.WhyUs, MaxWhyUs),
	}
}

func unionCapped(a, b []string, limit int) []string {
	seen := make(map[string]bool, len(a)+len(b))
	var out []string
	for _, list := range [][]string{a, b} {
		for _, v := range list {
			k := textnorm.DedupeKey(v)
			if seen[k] {
				continue
			}
			seen[k] = true
			out = append(out, v)
			if limit > 0 && len(out) >= limit {
				return out
			}
		}
	}
	return out
}

// collector applies the candidate filter shared by all sections: a length band in runes,
// no contact data, an optional section predicate, dedupe by folded key and a cap.
type collector struct {
	minLen int
	maxLen int
	limit  int
	accept func(string) bool
	clean  func(string) string
	seen   map[string]bool
	items  []string
}

func newCollector(minLen, maxLen, limit int) *collector {
	return &collector{
		minLen: minLen,
		maxLen: maxLen,
		limit:  limit,
		clean:  cleanText,
		seen:   map[string]bool{},
	}
}

func (c *collector) full() bool {
	return c.limit > 0 && len(c.items) >= c.limit
}

func (c *collector) consider(text string) {
	if c.full() {
		return
	}
	text = c.clean(text)
	if text == "" {
		return
	}
	n := utf8.RuneCountInString(text)
	if n < c.minLen || n > c.maxLen {
		return
	}
	if contacts.ContainsContact(text) {
		return
	}
	if c.accept != nil && !c.accept(text) {
		return
	}
	k := textnorm.DedupeKey(text)
	if k == "" || c.seen[k] {
		return
	}
	c.seen[k] = true
	c.items = append(c.items, text)
}

func cleanText(s string) string {
	return textnorm.CollapseSpaces(textnorm.StripInvisible(s))
}

// headingContainers returns the nearest container of every heading in headingSel whose text
// matches. Containers are deduplicated by node identity.
func headingContainers(doc *goquery.Document, headingSel, containerSel string, match func(string) bool) []*goquery.Selection {
	var out []*goquery.Selection
	seen := map[*html.Node]bool{}
	doc.Find(headingSel).Each(func(_ int, h *goquery.Selection) {
		if !match(fetch.NodeText(h, " ")) {
			return
		}
		c := fetch.ClosestContainer(h, containerSel)
		if c.Length() == 0 || seen[c.Get(0)] {
			return
		}
		seen[c.Get(0)] = true
		out = append(out, c)
	})
	return out
}

// selectorContainers returns the distinct elements matched by sel.
func selectorContainers(doc *goquery.Document, sel string) []*goquery.Selection {
	var out []*goquery.Selection
	doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
		out = append(out, s)
	})
	return out
}

// textOf is the single-space joined visible text of sel.
func textOf(sel *goquery.Selection) string {
	return fetch.NodeText(sel, " ")
}
