package crawling

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/rfp-proposal/internal/fetch"
)

// pageKeywords rank URL paths by how likely they hold company facts.
var pageKeywords = []string{
	"about", "من-نحن", "نبذة", "services", "الخدمات",
	"contact", "تواصل", "vision", "الرؤية", "mission", "الرسالة",
	"why-us", "لماذا", "projects", "مشاريع", "portfolio", "أعمال",
}

// PageScore counts the ranking keywords found in the URL's decoded path.
func PageScore(rawURL string) int {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return 0
	}
	p := strings.ToLower(parsed.Path)
	if decoded, err := url.PathUnescape(p); err == nil {
		p = decoded
	}
	hits := 0
	for _, kw := range pageKeywords {
		if strings.Contains(p, kw) {
			hits++
		}
	}
	return hits
}

// PickPages dedupes urls and returns at most maxPages of them. Arabic pages (those
// outside an /en/ path) come first, ranked by PageScore with ties kept in input order;
// English pages follow in input order.
func PickPages(urls []string, maxPages int) []string {
	seen := make(map[string]bool, len(urls))
	var arabic, rest []string
	for _, u := range urls {
		if u == "" || seen[u] {
			continue
		}
		seen[u] = true
		if strings.Contains(strings.ToLower(u), "/en/") {
			rest = append(rest, u)
		} else {
			arabic = append(arabic, u)
		}
	}

	sort.SliceStable(arabic, func(i, j int) bool {
		return PageScore(arabic[i]) > PageScore(arabic[j])
	})

	selected := append(arabic, rest...)
	if maxPages > 0 && len(selected) > maxPages {
		selected = selected[:maxPages]
	}
	return selected
}

// DiscoverPages selects up to maxPages URLs for a site. The sitemap is preferred; without
// one, links on the homepage are ranked instead and the homepage itself leads the list.
func DiscoverPages(ctx context.Context, rootURL string, maxPages int, opts *fetch.Options, logger *zap.Logger) ([]string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	root, err := url.Parse(rootURL)
	if err != nil || root.Scheme == "" || root.Host == "" {
		return nil, &CrawlError{Message: fmt.Sprintf("invalid root URL: %s", rootURL), Cause: err}
	}

	urls, err := LoadSitemapURLs(ctx, rootURL, opts, logger)
	if err == nil {
		return PickPages(urls, maxPages), nil
	}
	logger.Warn("sitemap unavailable, falling back to homepage links", zap.Error(err))

	home, err := fetch.URL(ctx, rootURL, opts)
	if err != nil {
		return nil, &CrawlError{Message: "failed to fetch homepage", Cause: err}
	}
	links, err := ExtractLinks(home.HTML, rootURL)
	if err != nil {
		return nil, err
	}

	homeKey := strings.TrimSuffix(rootURL, "/")
	candidates := make([]string, 0, len(links))
	for _, l := range links {
		if l != homeKey {
			candidates = append(candidates, l)
		}
	}
	limit := maxPages - 1
	if limit < 0 {
		limit = 0
	}
	picked := []string{rootURL}
	if limit > 0 {
		picked = append(picked, PickPages(candidates, limit)...)
	}
	return picked, nil
}
