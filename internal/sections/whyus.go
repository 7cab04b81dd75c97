package sections

import (
	"regexp"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/jonathan/rfp-proposal/internal/textnorm"
)

var whyUsHeadingRE = regexp.MustCompile(`(?i)^\s*(?:لماذا\s*نحن|لماذا\s*تختارنا|why\s+(?:choose\s+)?us)\s*[؟?]?\s*$`)

const (
	whyUsFallbackSelectors = ".why-us, .features, .advantages, .elementor-section"
	whyUsCardSelectors     = ".elementor-widget-icon-box, .elementor-icon-box-wrapper, .elementor-column, .elementor-widget"
	whyUsMaxTitleLen       = 30
)

// WhyUs returns "title: description" bullets from a "why us" section. It prefers
// Elementor icon boxes, then short headings followed by a paragraph, then list items.
func WhyUs(doc *goquery.Document) []string {
	container := whyUsContainer(doc)

	c := newCollector(3, 400, MaxWhyUs)
	c.accept = textnorm.ContainsArabic

	container.Find(whyUsCardSelectors).Each(func(_ int, card *goquery.Selection) {
		t := card.Find(".elementor-icon-box-title").First()
		d := card.Find(".elementor-icon-box-description").First()
		if t.Length() == 0 || d.Length() == 0 {
			return
		}
		title, desc := cleanText(textOf(t)), cleanText(textOf(d))
		if textnorm.ContainsArabic(title) && textnorm.ContainsArabic(desc) {
			c.consider(title + ": " + desc)
		}
	})

	if len(c.items) == 0 {
		container.Find("h3, h4, strong, b, span").Each(func(_ int, n *goquery.Selection) {
			title := cleanText(textOf(n))
			if title == "" || !textnorm.ContainsArabic(title) || len([]rune(title)) > whyUsMaxTitleLen {
				return
			}
			p := followingElement(n.Get(0), "p")
			if p == nil {
				return
			}
			desc := cleanText(textOf(goquery.NewDocumentFromNode(p).Selection))
			if textnorm.ContainsArabic(desc) {
				c.consider(title + ": " + desc)
			}
		})
	}

	if len(c.items) == 0 {
		container.Find("li").Each(func(_ int, li *goquery.Selection) {
			c.consider(textOf(li))
		})
	}
	return c.items
}

func whyUsContainer(doc *goquery.Document) *goquery.Selection {
	var container *goquery.Selection
	doc.Find("h1, h2, h3, h4, div, span").EachWithBreak(func(_ int, h *goquery.Selection) bool {
		if whyUsHeadingRE.MatchString(textOf(h)) {
			container = h.ParentsFiltered("section, div, article").First()
			if container.Length() == 0 {
				container = h.Parent()
			}
			return false
		}
		return true
	})
	if container != nil {
		return container
	}
	if hits := doc.Find(whyUsFallbackSelectors); hits.Length() > 0 {
		return hits.First()
	}
	return doc.Selection
}

// followingElement returns the first element named tag after n in document order,
// including n's descendants.
func followingElement(n *html.Node, tag string) *html.Node {
	for cur := nextInOrder(n); cur != nil; cur = nextInOrder(cur) {
		if cur.Type == html.ElementNode && cur.Data == tag {
			return cur
		}
	}
	return nil
}

// nextInOrder steps a depth-first walk.
func nextInOrder(n *html.Node) *html.Node {
	if n.FirstChild != nil {
		return n.FirstChild
	}
	for cur := n; cur != nil; cur = cur.Parent {
		if cur.NextSibling != nil {
			return cur.NextSibling
		}
	}
	return nil
}
