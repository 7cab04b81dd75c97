// Package crawling discovers the pages of a company website worth extracting from.
package crawling

import "fmt"

// CrawlError represents a general crawling failure
type CrawlError struct {
	Message string
	Cause   error
}

func (e *CrawlError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("crawl error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("crawl error: %s", e.Message)
}

func (e *CrawlError) Unwrap() error {
	return e.Cause
}

// LinkExtractionError represents a failure in extracting links from HTML
type LinkExtractionError struct {
	Message string
	Cause   error
}

func (e *LinkExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("link extraction error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("link extraction error: %s", e.Message)
}

func (e *LinkExtractionError) Unwrap() error {
	return e.Cause
}

// SitemapError reports that no sitemap candidate yielded same-host URLs.
type SitemapError struct {
	Root  string
	Tried []string
	Cause error
}

func (e *SitemapError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("no sitemap found for %s (tried %d locations): %v", e.Root, len(e.Tried), e.Cause)
	}
	return fmt.Sprintf("no sitemap found for %s (tried %d locations)", e.Root, len(e.Tried))
}

func (e *SitemapError) Unwrap() error {
	return e.Cause
}
