package sections

import (
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/rfp-proposal/internal/textnorm"
)

var (
	partnerHeadingRE = regexp.MustCompile(`(?i)(شركاء\s*النجاح|شركاؤنا|عملاؤنا|العملاء)`)
	logoFileRE       = regexp.MustCompile(`(?i)/([^/]+?)\.(?:png|jpe?g|svg|webp)`)
	separatorRunRE   = regexp.MustCompile(`[-_]+`)
	digitRunRE       = regexp.MustCompile(`[0-9]+`)
)

const partnerSliderSelectors = ".swiper, .swiper-container, .carousel, .slider, .clients, .partners"

var logoNameAttrs = []string{"alt", "title", "aria-label", "data-alt", "data-title", "data-name"}

// PartnerCandidates holds partner names found in markup plus the logo images that may
// carry more names.
type PartnerCandidates struct {
	Names    []string
	LogoURLs []string
}

// Partners returns success-partner and client names from logo walls, sliders and captions.
// Logo URLs are resolved against baseURL.
func Partners(doc *goquery.Document, baseURL string) *PartnerCandidates {
	c := newCollector(2, 120, MaxPartners)
	c.accept = func(s string) bool {
		return isNameLike(s) && !(partnerHeadingRE.MatchString(s) && utf8.RuneCountInString(s) <= 25)
	}

	containers := headingContainers(doc, "h1, h2, h3, h4, h5", "section, div", partnerHeadingRE.MatchString)
	if len(containers) == 0 {
		containers = selectorContainers(doc, partnerSliderSelectors)
	}

	base, _ := url.Parse(baseURL)
	var logos []string
	seenLogo := map[string]bool{}

	for _, sec := range containers {
		sec.Find("img").Each(func(_ int, img *goquery.Selection) {
			for _, attr := range logoNameAttrs {
				c.consider(img.AttrOr(attr, ""))
			}
			src := firstNonEmpty(img.AttrOr("data-src", ""), img.AttrOr("data-lazy", ""), img.AttrOr("src", ""))
			if src == "" {
				return
			}
			c.consider(nameFromLogoSrc(src))
			if abs := resolveURL(base, src); abs != "" && !seenLogo[abs] {
				seenLogo[abs] = true
				logos = append(logos, abs)
			}
		})
		sec.Find("a").Each(func(_ int, a *goquery.Selection) {
			c.consider(textOf(a))
		})
		sec.Find("figcaption, p, span, div").Each(func(_ int, n *goquery.Selection) {
			c.consider(textOf(n))
		})
	}

	return &PartnerCandidates{Names: c.items, LogoURLs: logos}
}

// isNameLike accepts Arabic text or text with a run of three Latin letters.
func isNameLike(s string) bool {
	return textnorm.ContainsArabic(s) || textnorm.HasLatinWord(s)
}

// nameFromLogoSrc guesses a company name from a logo file name ("acme-group_2.png").
func nameFromLogoSrc(src string) string {
	m := logoFileRE.FindStringSubmatch(src)
	if m == nil {
		return ""
	}
	name, err := url.PathUnescape(m[1])
	if err != nil {
		name = m[1]
	}
	name = separatorRunRE.ReplaceAllString(name, " ")
	name = digitRunRE.ReplaceAllString(name, "")
	return strings.TrimSpace(name)
}

func resolveURL(base *url.URL, ref string) string {
	u, err := url.Parse(strings.TrimSpace(ref))
	if err != nil {
		return ""
	}
	if base != nil {
		u = base.ResolveReference(u)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	return u.String()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
