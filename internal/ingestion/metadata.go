package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/jonathan/rfp-proposal/internal/textnorm"
	"github.com/jonathan/rfp-proposal/internal/types"
)

// Metadata describes an ingested document
type Metadata struct {
	Source    string `json:"source"`
	Timestamp string `json:"timestamp"` // RFC3339 format
	Hash      string `json:"hash"`      // SHA256 hex digest
	Chars     int    `json:"chars"`
	Arabic    bool   `json:"arabic"`
}

// NewMetadata creates a new Metadata instance with current timestamp
func NewMetadata(content string, source string) *Metadata {
	return &Metadata{
		Source:    source,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Hash:      computeHash(content),
		Chars:     utf8.RuneCountInString(content),
		Arabic:    textnorm.ContainsArabic(content),
	}
}

// MetadataFor describes a loaded document.
func MetadataFor(doc *types.RawDocument) *Metadata {
	m := NewMetadata(doc.Text, doc.Source)
	m.Timestamp = doc.FetchedAt.UTC().Format(time.RFC3339)
	return m
}

// computeHash computes SHA256 hash of content and returns hex string
func computeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}

// ToJSON marshals Metadata to pretty-printed JSON
func (m *Metadata) ToJSON() ([]byte, error) {
	jsonBytes, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata to JSON: %w", err)
	}
	return jsonBytes, nil
}
