package profile

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/jonathan/rfp-proposal/internal/sections"
	"github.com/jonathan/rfp-proposal/internal/textnorm"
	"github.com/jonathan/rfp-proposal/internal/types"
)

// Scraped holds the lists found mechanically on the company's pages.
type Scraped struct {
	Branches      []string
	Partners      []string
	WhyUs         []string
	Projects      []string
	Consultations []string
	Contacts      *types.ContactBundle
}

// ScrapedFromSections adapts a section extraction result.
func ScrapedFromSections(r *sections.Result, contacts *types.ContactBundle) *Scraped {
	s := &Scraped{Contacts: contacts}
	if r != nil {
		s.Branches = r.Branches
		s.Partners = r.Partners
		s.WhyUs = r.WhyUs
		s.Projects = r.Projects
		s.Consultations = r.Consultations
	}
	return s
}

var strictPolicy = bluemonday.StrictPolicy()

// Merge folds the scraped lists into a coerced profile and strips links from every
// field outside the contact sub-object. The input profile is not modified.
func Merge(p *types.CompanyProfile, scraped *Scraped) *types.CompanyProfile {
	out := *p
	if scraped == nil {
		scraped = &Scraped{}
	}

	out.Branches = sections.DedupeBranchEntries(unionByKey(p.Branches, scraped.Branches))
	out.Partners = sentinelIfEmpty(unionByKey(p.Partners, scraped.Partners))
	out.WhyUs = sentinelIfEmpty(unionByKey(p.WhyUs, scraped.WhyUs))
	out.Projects = sentinelIfEmpty(unionByKey(p.Projects, scraped.Projects))
	out.Consultations = mergeConsultations(p.Consultations, scraped.Consultations)

	if scraped.Contacts != nil {
		out.Contact = types.ContactBundle{
			Phones:  sentinelIfEmpty(compact(scraped.Contacts.Phones)),
			Emails:  sentinelIfEmpty(compact(scraped.Contacts.Emails)),
			Socials: sentinelIfEmpty(compact(scraped.Contacts.Socials)),
		}
	}

	return StripLinks(&out)
}

// StripLinks removes URLs, email addresses, handles and markup from every field except
// the contact sub-object. Fields left empty become the sentinel.
func StripLinks(p *types.CompanyProfile) *types.CompanyProfile {
	out := *p
	for _, key := range types.StringFieldKeys() {
		field := out.StringField(key)
		*field = orSentinel(cleanFreeText(*field))
	}
	for _, key := range types.ListFieldKeys() {
		field := out.ListField(key)
		cleaned := make([]string, 0, len(*field))
		for _, item := range *field {
			cleaned = append(cleaned, cleanFreeText(item))
		}
		*field = sentinelIfEmpty(compact(cleaned))
	}
	return &out
}

// cleanFreeText drops markup and links. Paragraph breaks are kept.
func cleanFreeText(s string) string {
	if s == types.NotAvailable {
		return s
	}
	s = html.UnescapeString(strictPolicy.Sanitize(s))
	return strings.TrimSpace(textnorm.CleanLinks(textnorm.StripInvisible(s)))
}

func orSentinel(s string) string {
	if strings.TrimSpace(s) == "" {
		return types.NotAvailable
	}
	return s
}

// unionByKey appends scraped items absent from existing, comparing folded keys.
// Sentinels and blanks are dropped from both sides.
func unionByKey(existing, scraped []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, list := range [][]string{existing, scraped} {
		for _, item := range compact(list) {
			k := textnorm.DedupeKey(item)
			if k == "" || seen[k] {
				continue
			}
			seen[k] = true
			out = append(out, item)
		}
	}
	return out
}

// mergeConsultations joins the drafted text and the scraped snippets into one
// paragraph-separated string.
func mergeConsultations(existing string, scraped []string) string {
	if len(scraped) == 0 {
		return existing
	}
	candidates := make([]string, 0, len(scraped)+1)
	if existing != types.NotAvailable {
		candidates = append(candidates, existing)
	}
	candidates = append(candidates, scraped...)

	seen := map[string]bool{}
	var kept []string
	for _, c := range candidates {
		c = strings.TrimSpace(textnorm.CleanLinks(textnorm.StripInvisible(c)))
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		kept = append(kept, c)
	}
	if len(kept) == 0 {
		return types.NotAvailable
	}
	return strings.Join(kept, "\n\n")
}
