package textnorm

import (
	"regexp"
	"strings"
	"unicode"
)

// InvisibleClass is the regexp character-class body for zero-width characters, bidi
// controls, the word joiner, BOM and NBSP.
const InvisibleClass = `\x{200B}-\x{200F}\x{202A}-\x{202E}\x{2060}\x{2066}-\x{2069}\x{FEFF}\x{00A0}`

var (
	arabicRE     = regexp.MustCompile(`[\x{0600}-\x{06FF}]`)
	bidiRE       = regexp.MustCompile(`[` + InvisibleClass + `]`)
	linkURLRE    = regexp.MustCompile(`(?i)https?://\S+|www\.\S+`)
	linkEmailRE  = regexp.MustCompile(`(?i)[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}`)
	handleRE     = regexp.MustCompile(`@[A-Za-z0-9_]{2,}`)
	blankLinesRE = regexp.MustCompile(`\n{3,}`)
	latinRunRE   = regexp.MustCompile(`[A-Za-z]{3,}`)
)

// StripInvisible removes zero-width characters, bidi marks and non-breaking spaces.
func StripInvisible(s string) string {
	return bidiRE.ReplaceAllString(s, "")
}

// ContainsArabic reports whether s contains any Arabic-script rune.
func ContainsArabic(s string) bool {
	return arabicRE.MatchString(s)
}

// HasLatinWord reports whether s contains a run of at least three Latin letters.
func HasLatinWord(s string) bool {
	return latinRunRE.MatchString(s)
}

// ContainsURL reports whether s contains an http(s) or www URL.
func ContainsURL(s string) bool {
	return linkURLRE.MatchString(s)
}

// KeepArabic keeps only the lines of text that contain Arabic script.
func KeepArabic(text string) string {
	lines := strings.Split(text, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if ContainsArabic(line) {
			kept = append(kept, line)
		}
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

// CleanLinks removes URLs, email addresses and social handles from s.
func CleanLinks(s string) string {
	s = linkURLRE.ReplaceAllString(s, "")
	s = linkEmailRE.ReplaceAllString(s, "")
	s = handleRE.ReplaceAllString(s, "")
	return blankLinesRE.ReplaceAllString(strings.TrimSpace(s), "\n\n")
}

// CollapseSpaces replaces whitespace runs with a single space and trims.
func CollapseSpaces(s string) string {
	return strings.TrimSpace(whitespaceRE.ReplaceAllString(s, " "))
}

// Truncate cuts s to at most limit runes.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit])
}

// DedupeKey folds s for duplicate detection: whitespace and punctuation are dropped and
// letters are lowercased. Arabic has no case, so only Latin text is affected by folding.
func DedupeKey(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || unicode.IsPunct(r) || unicode.IsSymbol(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, StripInvisible(s))
}
