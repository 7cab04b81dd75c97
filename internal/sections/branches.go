package sections

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/rfp-proposal/internal/fetch"
	"github.com/jonathan/rfp-proposal/internal/textnorm"
	"github.com/jonathan/rfp-proposal/internal/types"
)

var branchHintsAR = []string{
	"فروع", "فرع", "فروعنا", "فرعنا", "مواقعنا", "موقعنا", "العنوان", "عنوان",
	"الموقع", "المقر", "مقرنا", "مكاتبنا", "المكاتب",
}

var branchHintsEN = []string{
	"branch", "branches", "location", "locations", "address", "addresses",
	"office", "offices", "headquarter", "headquarters", "hq",
}

// locationHintsAR is the Arabic gazetteer of Saudi regions and cities.
var locationHintsAR = []string{
	"المملكة العربية السعودية", "المملكة", "السعودية", "السعوديه", "الرياض", "جدة",
	"جده", "الدمام", "الخبر", "مكة", "مكه", "المدينة", "المدينة المنورة", "بريدة",
	"القصيم", "حائل", "تبوك", "نجران", "جازان", "ينبع", "الطائف", "الجبيل",
	"الاحساء", "الأحساء", "أبها", "ابها", "خميس مشيط", "عرعر", "سكاكا", "الباحة",
}

var locationHintsEN = []string{
	"kingdom of saudi arabia", "saudi arabia", "ksa", "riyadh", "jeddah", "dammam",
	"khobar", "al khobar", "mecca", "makkah", "madinah", "medina", "yanbu", "jazan",
	"abha", "najran", "tabuk", "hail", "taif", "jubail", "ahsa", "buraidah", "qassim",
	"sakaka", "arar", "khamis mushait", "khamis mushayt", "al baha",
}

const branchSelectors = `address, [class*='address'], [class*='Address'], [id*='address'], [id*='Address'], ` +
	`[class*='location'], [class*='Location'], [id*='location'], [id*='Location'], ` +
	`[class*='branch'], [class*='Branch'], [id*='branch'], [id*='Branch'], ` +
	`[class*='office'], [class*='Office'], [id*='office'], [id*='Office'], ` +
	`[class*='map'], [class*='Map'], [id*='map'], [id*='Map'], ` +
	`[class*='contact-info'], [class*='Contact-info'], [class*='contactinfo']`

var branchLabelPrefixes = []string{"العنوان", "عنوان", "الموقع", "location", "address"}

const branchTrimSet = " -–—•|،؛"

var branchKeyRE = regexp.MustCompile(`[\s\-–—,،]+`)

func containsAny(text string, arabic, latin []string) bool {
	for _, tok := range arabic {
		if strings.Contains(text, tok) {
			return true
		}
	}
	lower := strings.ToLower(text)
	for _, tok := range latin {
		if strings.Contains(lower, tok) {
			return true
		}
	}
	return false
}

func hasBranchHint(text string) bool {
	return containsAny(text, branchHintsAR, branchHintsEN)
}

func hasLocationHint(text string) bool {
	return containsAny(text, locationHintsAR, locationHintsEN)
}

// normalizeBranchText collapses whitespace, removes links and drops a leading
// "العنوان:" / "Address:" style label.
func normalizeBranchText(text string) string {
	s := textnorm.StripInvisible(text)
	if s == "" {
		return ""
	}
	s = textnorm.CollapseSpaces(textnorm.CleanLinks(s))
	s = strings.Trim(s, branchTrimSet)
	lower := strings.ToLower(s)
	for _, prefix := range branchLabelPrefixes {
		if strings.HasPrefix(lower, prefix) {
			s = strings.TrimLeft(s[len(prefix):], " :：-–—•|،؛")
			break
		}
	}
	return strings.Trim(s, branchTrimSet)
}

// Branches returns address and location snippets. Every snippet names a known
// Saudi city or region.
func Branches(doc *goquery.Document) []string {
	c := newCollector(3, 120, MaxBranches)
	c.clean = normalizeBranchText
	c.accept = func(s string) bool {
		return strings.Count(s, " ") <= 20 && hasLocationHint(s)
	}

	harvest := func(containers []*goquery.Selection) {
		for _, sec := range containers {
			before := len(c.items)
			sec.Find("li, p, span, div, address").Each(func(_ int, n *goquery.Selection) {
				c.consider(textOf(n))
			})
			if len(c.items) == before {
				c.consider(textOf(sec))
			}
			if c.full() {
				return
			}
		}
	}

	harvest(headingContainers(doc, "h1, h2, h3, h4, h5, strong, b", "section, div, ul, ol", hasBranchHint))
	if len(c.items) == 0 {
		harvest(selectorContainers(doc, branchSelectors))
	}
	if len(c.items) == 0 {
		for _, line := range strings.Split(fetch.NodeText(doc.Selection, "\n"), "\n") {
			c.consider(line)
		}
	}
	return c.items
}

// DedupeBranchEntries keeps at most one Arabic entry and one non-Arabic entry, in that
// order. It returns the sentinel list when nothing usable remains.
func DedupeBranchEntries(values []string) []string {
	var arabic, latin string
	seen := map[string]bool{}

	for _, v := range values {
		s := strings.Trim(textnorm.CollapseSpaces(textnorm.CleanLinks(textnorm.StripInvisible(v))), branchTrimSet)
		if s == "" || s == types.NotAvailable {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(branchKeyRE.ReplaceAllString(s, " ")))
		if seen[key] {
			continue
		}
		seen[key] = true
		if textnorm.ContainsArabic(s) {
			if arabic == "" {
				arabic = s
			}
		} else if latin == "" {
			latin = s
		}
	}

	var out []string
	if arabic != "" {
		out = append(out, arabic)
	}
	if latin != "" {
		out = append(out, latin)
	}
	if len(out) == 0 {
		return []string{types.NotAvailable}
	}
	return out
}
