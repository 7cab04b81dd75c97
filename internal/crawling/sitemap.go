package crawling

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/rfp-proposal/internal/fetch"
)

// sitemapCandidates are tried in order, relative to the site root.
var sitemapCandidates = []string{
	"sitemap.xml",
	"/sitemap.xml",
	"wp-sitemap.xml",
	"/wp-sitemap.xml",
	"wp-sitemap-posts-page-1.xml",
	"en/wp-sitemap-posts-page-1.xml",
	"sitemap_index.xml",
	"page-sitemap.xml",
}

// maxChildSitemaps bounds how many sitemaps of an index are followed.
const maxChildSitemaps = 10

type urlSet struct {
	URLs []struct {
		Loc string `xml:"loc"`
	} `xml:"url"`
}

type sitemapIndex struct {
	Sitemaps []struct {
		Loc string `xml:"loc"`
	} `xml:"sitemap"`
}

// ParseSitemap returns the page locations of a urlset document and the child sitemap
// locations of a sitemap index. Either list may be empty.
func ParseSitemap(data []byte) (pages, children []string, err error) {
	var set urlSet
	if err := xml.Unmarshal(data, &set); err == nil && len(set.URLs) > 0 {
		for _, u := range set.URLs {
			if loc := strings.TrimSpace(u.Loc); loc != "" {
				pages = append(pages, loc)
			}
		}
		return pages, nil, nil
	}

	var index sitemapIndex
	if err := xml.Unmarshal(data, &index); err != nil {
		return nil, nil, fmt.Errorf("failed to parse sitemap: %w", err)
	}
	for _, s := range index.Sitemaps {
		if loc := strings.TrimSpace(s.Loc); loc != "" {
			children = append(children, loc)
		}
	}
	return nil, children, nil
}

// LoadSitemapURLs returns the same-host page URLs of the first sitemap candidate that
// yields any. Sitemap indexes are followed one level deep.
func LoadSitemapURLs(ctx context.Context, rootURL string, opts *fetch.Options, logger *zap.Logger) ([]string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	root, err := url.Parse(rootURL)
	if err != nil || root.Scheme == "" || root.Host == "" {
		return nil, &CrawlError{Message: fmt.Sprintf("invalid root URL: %s", rootURL), Cause: err}
	}
	if !strings.HasSuffix(root.Path, "/") {
		root.Path += "/"
	}

	var tried []string
	var lastErr error
	for _, candidate := range sitemapCandidates {
		ref, _ := url.Parse(candidate)
		smURL := root.ResolveReference(ref).String()
		if contains(tried, smURL) {
			continue
		}
		tried = append(tried, smURL)

		pages, err := loadSitemap(ctx, smURL, opts, 0)
		if err != nil {
			lastErr = err
			logger.Debug("sitemap candidate failed", zap.String("url", smURL), zap.Error(err))
			continue
		}
		pages = filterSameHost(pages, root.Host)
		if len(pages) > 0 {
			logger.Info("sitemap loaded", zap.String("url", smURL), zap.Int("pages", len(pages)))
			return pages, nil
		}
	}

	return nil, &SitemapError{Root: rootURL, Tried: tried, Cause: lastErr}
}

func loadSitemap(ctx context.Context, smURL string, opts *fetch.Options, depth int) ([]string, error) {
	res, err := fetch.URL(ctx, smURL, opts)
	if err != nil {
		return nil, err
	}
	pages, children, err := ParseSitemap([]byte(res.HTML))
	if err != nil {
		return nil, err
	}
	if depth > 0 {
		return pages, nil
	}
	if len(children) > maxChildSitemaps {
		children = children[:maxChildSitemaps]
	}
	for _, child := range children {
		childPages, err := loadSitemap(ctx, child, opts, depth+1)
		if err != nil {
			continue
		}
		pages = append(pages, childPages...)
	}
	return pages, nil
}

func filterSameHost(urls []string, host string) []string {
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		parsed, err := url.Parse(u)
		if err != nil {
			continue
		}
		if sameHost(parsed.Host, host) {
			out = append(out, u)
		}
	}
	return out
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
