// Package contacts harvests phones, emails and social profile links from company pages.
//
// Each page is scanned through several channels (link schemes, visible text, attribute
// values, entity-decoded markup) because sites hide contact data in different places.
// Only values that pass strict normalization reach the returned bundle.
package contacts

import (
	"html"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/rfp-proposal/internal/fetch"
	"github.com/jonathan/rfp-proposal/internal/textnorm"
	"github.com/jonathan/rfp-proposal/internal/types"
)

// Harvest extracts the contact bundle from one page of markup. Unparseable markup is
// still scanned as raw text.
func Harvest(rawHTML string) *types.ContactBundle {
	raw := textnorm.StripInvisible(html.UnescapeString(rawHTML))

	h := &harvester{
		phones: map[string]bool{},
		emails: map[string]bool{},
	}

	doc, err := fetch.ParseHTML(rawHTML)
	if err == nil {
		h.linkSchemes(doc)
		h.visibleText(doc)
		h.attributes(doc)
		h.elementorLists(doc)
	}
	h.rawMarkup(raw)

	return &types.ContactBundle{
		Phones:  sortedKeys(h.phones),
		Emails:  sortedKeys(h.emails),
		Socials: dedupeSocials(h.socials),
	}
}

// HarvestText extracts the contact bundle from plain text such as a PDF page.
func HarvestText(text string) *types.ContactBundle {
	h := &harvester{
		phones: map[string]bool{},
		emails: map[string]bool{},
	}
	h.rawMarkup(textnorm.StripInvisible(text))
	return &types.ContactBundle{
		Phones:  sortedKeys(h.phones),
		Emails:  sortedKeys(h.emails),
		Socials: dedupeSocials(h.socials),
	}
}

// Merge unions per-page bundles. The result does not depend on argument order.
func Merge(bundles ...*types.ContactBundle) *types.ContactBundle {
	out := &types.ContactBundle{}
	for _, b := range bundles {
		out = out.Union(b)
	}
	out.Socials = dedupeSocials(out.Socials)
	return out
}

type harvester struct {
	phones  map[string]bool
	emails  map[string]bool
	socials []string
}

func (h *harvester) addPhone(raw string) {
	if p, ok := NormalizePhone(raw); ok {
		h.phones[p] = true
	}
}

func (h *harvester) addEmails(list []string) {
	for _, e := range list {
		h.emails[e] = true
	}
}

func (h *harvester) linkSchemes(doc *goquery.Document) {
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href := strings.TrimSpace(a.AttrOr("href", ""))
		lower := strings.ToLower(href)

		switch {
		case strings.HasPrefix(lower, "tel:"):
			h.addPhone(href[len("tel:"):])
		case strings.HasPrefix(lower, mailtoScheme):
			if e, ok := emailFromMailto(href); ok {
				h.emails[e] = true
			}
		case strings.Contains(lower, "wa.me/") || strings.Contains(lower, "api.whatsapp.com/send"):
			if n := phoneFromWhatsApp(href); n != "" {
				h.addPhone(n)
			}
		default:
			h.socials = append(h.socials, findSocials(href)...)
		}
	})
}

// blockSelector lists elements that break text flow.
const blockSelector = "p, li, td, th, dd, dt, h1, h2, h3, h4, h5, h6, address, div, section, header, footer, article, ul, ol, table"

func (h *harvester) visibleText(doc *goquery.Document) {
	spaced := textnorm.StripInvisible(fetch.NodeText(doc.Selection, " "))

	for _, p := range findPhones(spaced) {
		h.addPhone(p)
	}
	spacedEmails := emailsFromText(spaced)
	h.addEmails(spacedEmails)
	h.socials = append(h.socials, findSocials(spaced)...)

	// Inline-split addresses are joined without separators, one innermost block at a time.
	doc.Find(blockSelector).Each(func(_ int, block *goquery.Selection) {
		if block.Find(blockSelector).Length() > 0 {
			return
		}
		joined := textnorm.StripInvisible(fetch.NodeText(block, ""))
		for _, e := range emailsFromText(joined) {
			if !extendsKnown(e, spacedEmails) {
				h.emails[e] = true
			}
		}
	})
}

// extendsKnown reports whether e is a known address with trailing text glued on.
func extendsKnown(e string, known []string) bool {
	for _, k := range known {
		if e != k && strings.HasPrefix(e, k) {
			return true
		}
	}
	return false
}

func (h *harvester) attributes(doc *goquery.Document) {
	for _, v := range fetch.AttrValues(doc) {
		v = textnorm.StripInvisible(html.UnescapeString(v))
		for _, p := range findPhones(v) {
			h.addPhone(p)
		}
		if strings.Contains(v, "@") {
			h.addEmails(emailsFromText(v))
		}
	}
}

func (h *harvester) elementorLists(doc *goquery.Document) {
	doc.Find("span.elementor-icon-list-text").Each(func(_ int, s *goquery.Selection) {
		txt := fetch.NodeText(s, " ")
		if txt == "" {
			return
		}
		if e, ok := acceptEmail(NormalizeEmailCandidate(txt)); ok {
			h.emails[e] = true
		}
		h.addPhone(txt)
	})
}

func (h *harvester) rawMarkup(raw string) {
	for _, p := range findPhones(raw) {
		h.addPhone(p)
	}
	h.addEmails(emailsFromText(raw))
	h.socials = append(h.socials, findSocials(raw)...)
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// ContainsContact reports whether text carries a URL, an email address or a phone number.
func ContainsContact(text string) bool {
	return textnorm.ContainsURL(text) || emailRE.MatchString(text) || len(findPhones(text)) > 0
}
