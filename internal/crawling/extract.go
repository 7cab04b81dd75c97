package crawling

import (
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/rfp-proposal/internal/fetch"
)

// skippedExtensions marks links to files rather than pages.
var skippedExtensions = map[string]bool{
	".pdf": true, ".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".svg": true,
	".webp": true, ".zip": true, ".doc": true, ".docx": true, ".xls": true, ".xlsx": true,
	".mp4": true, ".css": true, ".js": true, ".xml": true,
}

// ExtractLinks extracts all same-domain page links from HTML content
func ExtractLinks(htmlContent string, baseURL string) ([]string, error) {
	// Parse base URL to get domain
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, &LinkExtractionError{
			Message: "failed to parse base URL",
			Cause:   err,
		}
	}

	if base.Scheme == "" || base.Host == "" {
		return nil, &LinkExtractionError{
			Message: fmt.Sprintf("invalid base URL: %s (must have scheme and host)", baseURL),
		}
	}

	doc, err := fetch.ParseHTML(htmlContent)
	if err != nil {
		return nil, &LinkExtractionError{
			Message: "failed to parse HTML",
			Cause:   err,
		}
	}

	linkSet := make(map[string]bool)
	links := make([]string, 0)

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href := strings.TrimSpace(s.AttrOr("href", ""))
		if href == "" || strings.HasPrefix(href, "#") {
			return
		}

		linkURL, err := url.Parse(href)
		if err != nil {
			return
		}

		absoluteURL := base.ResolveReference(linkURL)
		if absoluteURL.Scheme != "http" && absoluteURL.Scheme != "https" {
			return // mailto:, tel:, javascript:
		}
		if !sameHost(absoluteURL.Host, base.Host) {
			return
		}
		if skippedExtensions[strings.ToLower(path.Ext(absoluteURL.Path))] {
			return
		}

		absoluteURL.Fragment = ""
		urlString := strings.TrimSuffix(absoluteURL.String(), "/")

		if !linkSet[urlString] {
			linkSet[urlString] = true
			links = append(links, urlString)
		}
	})

	return links, nil
}

// sameHost compares hosts ignoring case and a leading "www.".
func sameHost(a, b string) bool {
	norm := func(h string) string {
		return strings.TrimPrefix(strings.ToLower(h), "www.")
	}
	return norm(a) == norm(b)
}
