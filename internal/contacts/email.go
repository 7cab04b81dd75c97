package contacts

import (
	"html"
	"net/url"
	"regexp"
	"strings"

	"github.com/jonathan/rfp-proposal/internal/textnorm"
)

// invisibleClass covers the invisible characters sites inject around "@".
const invisibleClass = textnorm.InvisibleClass

var (
	emailRE       = regexp.MustCompile(`(?i)[A-Z0-9._%+\-]+@[A-Z0-9.\-]+\.[A-Z]{2,}`)
	emailStrictRE = regexp.MustCompile(`(?i)^[A-Z0-9._%+\-]+@[A-Z0-9.\-]+\.[A-Z]{2,}$`)
	// emailFuzzyRE tolerates invisible characters anywhere and whitespace only around "@".
	emailFuzzyRE = regexp.MustCompile(`(?i)[A-Z0-9._%+\-` + invisibleClass + `]{1,64}` +
		`[\s` + invisibleClass + `]*@[\s` + invisibleClass + `]*` +
		`[A-Z0-9.\-` + invisibleClass + `٫·•]{1,255}`)
	spaceRE = regexp.MustCompile(`\s+`)
)

const mailtoScheme = "mailto:"

var decimalSeparators = strings.NewReplacer("٫", ".", "·", ".", "•", ".")

// NormalizeEmailCandidate decodes entities, strips invisible characters and whitespace,
// and maps Arabic decimal separators and middle dots to ".". It does not validate.
func NormalizeEmailCandidate(s string) string {
	s = textnorm.StripInvisible(html.UnescapeString(s))
	s = spaceRE.ReplaceAllString(s, "")
	s = decimalSeparators.Replace(s)
	return strings.Trim(s, ".")
}

// assetSuffixes are file extensions that make retina image names ("logo@2x.png") look
// like addresses.
var assetSuffixes = []string{".png", ".jpg", ".jpeg", ".gif", ".svg", ".webp", ".css", ".js"}

// acceptEmail returns the lowercased address when s fully matches the strict grammar.
func acceptEmail(s string) (string, bool) {
	if !emailStrictRE.MatchString(s) {
		return "", false
	}
	lower := strings.ToLower(s)
	for _, suffix := range assetSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return "", false
		}
	}
	return lower, true
}

// emailsFromText runs the strict and fuzzy grammars over a text blob.
func emailsFromText(text string) []string {
	var out []string
	for _, m := range emailRE.FindAllString(text, -1) {
		if e, ok := acceptEmail(m); ok {
			out = append(out, e)
		}
	}
	for _, m := range emailFuzzyRE.FindAllString(text, -1) {
		if e, ok := acceptEmail(NormalizeEmailCandidate(m)); ok {
			out = append(out, e)
		}
	}
	return out
}

// emailFromMailto extracts the address of a mailto: href.
func emailFromMailto(href string) (string, bool) {
	addr := strings.TrimSpace(href)
	if len(addr) >= len(mailtoScheme) && strings.EqualFold(addr[:len(mailtoScheme)], mailtoScheme) {
		addr = addr[len(mailtoScheme):]
	}
	if i := strings.IndexByte(addr, '?'); i >= 0 {
		addr = addr[:i]
	}
	if unescaped, err := url.PathUnescape(addr); err == nil {
		addr = unescaped
	}
	return acceptEmail(NormalizeEmailCandidate(addr))
}
