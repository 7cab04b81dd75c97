// Package summarize splits RFP text into overlapping chunks and summarizes them in parallel.
package summarize

import (
	"regexp"
	"strings"
	"unicode"
)

// Chunking defaults, in runes.
const (
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 100
)

var pageNumberRE = regexp.MustCompile(`(?im)^[ \t]*(?:page[ \t]+\d+(?:[ \t]+of[ \t]+\d+)?|صفحة[ \t]+\d+(?:[ \t]+من[ \t]+\d+)?)[ \t]*$`)

// Chunk splits text into pieces of at most size runes, each starting overlap runes before
// the previous one ended. Cuts prefer a line break, then sentence punctuation, then a
// space in the second half of the window. Page-number lines are dropped first.
func Chunk(text string, size, overlap int) []string {
	if size <= 0 {
		size = DefaultChunkSize
	}
	if overlap < 0 || overlap >= size {
		overlap = 0
	}

	runes := []rune(strings.TrimSpace(pageNumberRE.ReplaceAllString(text, "")))
	var chunks []string
	for start := 0; start < len(runes); {
		end := start + size
		if end >= len(runes) {
			end = len(runes)
		} else {
			end = cutPoint(runes, start, end)
		}

		if piece := strings.TrimSpace(string(runes[start:end])); piece != "" {
			chunks = append(chunks, piece)
		}
		if end >= len(runes) {
			break
		}

		next := end - overlap
		for next > start && next < end && !unicode.IsSpace(runes[next-1]) {
			next++
		}
		if next <= start {
			next = end
		}
		start = next
	}
	return chunks
}

// cutPoint returns the exclusive end of the chunk starting at start, searching back from
// end no further than the window midpoint.
func cutPoint(runes []rune, start, end int) int {
	floor := start + (end-start)/2
	for _, accept := range []func(rune) bool{
		func(r rune) bool { return r == '\n' },
		func(r rune) bool { return r == '.' || r == '؟' || r == '?' || r == '!' || r == '،' },
		unicode.IsSpace,
	} {
		for i := end - 1; i >= floor; i-- {
			if accept(runes[i]) {
				return i + 1
			}
		}
	}
	return end
}
