package sections

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/rfp-proposal/internal/textnorm"
)

var consultationHeadingRE = regexp.MustCompile(`(?i)(الاستشارات|استشارات|consultations?|consulting|advisory)`)

var consultationDescriptors = []string{"consult", "advisory", "استشار"}

// Consultations returns short descriptions of the advisory services a company offers.
func Consultations(doc *goquery.Document) []string {
	c := newCollector(20, 280, MaxConsultations)
	c.clean = func(s string) string {
		return cleanText(textnorm.CleanLinks(textnorm.StripInvisible(s)))
	}

	containers := headingContainers(doc, "h1, h2, h3, h4, h5, strong, b", "section, div, article", consultationHeadingRE.MatchString)
	if len(containers) == 0 {
		doc.Find("[class], [id]").Each(func(_ int, el *goquery.Selection) {
			descriptor := strings.ToLower(el.AttrOr("class", "") + " " + el.AttrOr("id", ""))
			for _, hint := range consultationDescriptors {
				if strings.Contains(descriptor, hint) {
					containers = append(containers, el)
					return
				}
			}
		})
	}

	for _, sec := range containers {
		before := len(c.items)
		sec.Find("p, div, span, li").EachWithBreak(func(_ int, n *goquery.Selection) bool {
			c.consider(textOf(n))
			return !c.full()
		})
		if len(c.items) == before {
			c.consider(textOf(sec))
		}
		if c.full() {
			break
		}
	}
	return c.items
}
