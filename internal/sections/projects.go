package sections

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/rfp-proposal/internal/textnorm"
)

var projectHeadingRE = regexp.MustCompile(`(?i)(مشاريع|أعمال|المشاريع|الأعمال|projects|portfolio)`)

// Projects returns the names of prior projects listed under a projects or portfolio heading.
// Only Arabic entries are kept.
func Projects(doc *goquery.Document) []string {
	c := newCollector(5, 150, MaxProjects)
	c.accept = func(s string) bool {
		if !textnorm.ContainsArabic(s) {
			return false
		}
		// the section heading itself ("مشاريعنا", "أعمالنا السابقة")
		return !(projectHeadingRE.MatchString(s) && utf8.RuneCountInString(s) <= 25)
	}

	containers := headingContainers(doc, "h1, h2, h3, h4, h5", "section, div, article", projectHeadingRE.MatchString)
	if len(containers) == 0 {
		doc.Find("[class], [id]").Each(func(_ int, el *goquery.Selection) {
			descriptor := strings.ToLower(el.AttrOr("class", "") + " " + el.AttrOr("id", ""))
			if strings.Contains(descriptor, "project") || strings.Contains(descriptor, "portfolio") {
				containers = append(containers, el)
			}
		})
	}

	for _, sec := range containers {
		sec.Find("h3, h4, h5, p, li, figcaption").EachWithBreak(func(_ int, n *goquery.Selection) bool {
			c.consider(textOf(n))
			return !c.full()
		})
		if c.full() {
			break
		}
	}
	return c.items
}
