//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// Source represents a single fetched page or file with metadata
type Source struct {
	URL       string `json:"url"`
	Timestamp string `json:"timestamp"` // RFC3339 format
	Hash      string `json:"hash"`      // SHA256 hex digest
}

// RawDocument is one fetched page or extracted PDF. It is discarded after extraction.
type RawDocument struct {
	Source    string    `json:"source"`
	Text      string    `json:"text"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Page is a fetched website page with its raw markup.
type Page struct {
	URL       string
	HTML      string
	FetchedAt time.Time
	Rendered  bool // true when the markup came from the headless browser
}
