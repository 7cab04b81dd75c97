package sections

import (
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/rfp-proposal/internal/types"
)

var (
	latinNameRE   = regexp.MustCompile(`^[A-Za-z0-9 ,.&()'\-/|]+$`)
	latinLetterRE = regexp.MustCompile(`[A-Za-z]`)
)

var nameMetaKeys = []string{"og:site_name", "og:title", "twitter:title"}

// DetectEnglishName picks the longest Latin-only candidate from page titles, site-name
// meta tags and top-level headings across all pages. Ties keep the first candidate seen.
func DetectEnglishName(docs ...*goquery.Document) string {
	var candidates []string
	for _, doc := range docs {
		if doc == nil {
			continue
		}
		candidates = append(candidates, doc.Find("title").First().Text())
		for _, key := range nameMetaKeys {
			sel := doc.Find(`meta[property="` + key + `"]`)
			if sel.Length() == 0 {
				sel = doc.Find(`meta[name="` + key + `"]`)
			}
			candidates = append(candidates, sel.First().AttrOr("content", ""))
		}
		doc.Find("h1, h2").Each(func(_ int, h *goquery.Selection) {
			candidates = append(candidates, textOf(h))
		})
	}

	var hits []string
	for _, c := range candidates {
		c = cleanText(c)
		if latinNameRE.MatchString(c) && latinLetterRE.MatchString(c) {
			hits = append(hits, c)
		}
	}
	if len(hits) == 0 {
		return types.NotAvailable
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return len(hits[i]) > len(hits[j])
	})
	return strings.TrimSpace(hits[0])
}
