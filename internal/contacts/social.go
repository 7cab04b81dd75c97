package contacts

import (
	"regexp"
	"sort"
	"strings"
)

var socialRE = regexp.MustCompile(`(?i)(?:https?://|//)?(?:www\.)?` +
	`(?:instagram\.com|twitter\.com|x\.com|linkedin\.com|facebook\.com|snapchat\.com|tiktok\.com|youtube\.com)` +
	`/[^\s"'<>)]{1,200}`)

// NormalizeSocialURL returns u with an https scheme.
func NormalizeSocialURL(u string) string {
	u = strings.TrimSpace(u)
	lower := strings.ToLower(u)
	switch {
	case strings.HasPrefix(u, "//"):
		return "https:" + u
	case strings.HasPrefix(lower, "https://"):
		return u
	case strings.HasPrefix(lower, "http://"):
		return "https://" + u[len("http://"):]
	default:
		return "https://" + strings.TrimLeft(u, "/")
	}
}

// socialKey identifies a profile URL regardless of scheme, "www." and trailing slash.
func socialKey(u string) string {
	k := strings.ToLower(u)
	k = strings.TrimPrefix(k, "https://")
	k = strings.TrimPrefix(k, "http://")
	k = strings.TrimPrefix(k, "//")
	k = strings.TrimPrefix(k, "www.")
	return strings.TrimRight(k, "/")
}

// findSocials returns every normalized social profile URL in text. Matches glued to a
// longer host name (dropbox.com, fedex.com) are rejected.
func findSocials(text string) []string {
	var out []string
	for _, loc := range socialRE.FindAllStringIndex(text, -1) {
		if loc[0] > 0 && isHostByte(text[loc[0]-1]) {
			continue
		}
		out = append(out, NormalizeSocialURL(text[loc[0]:loc[1]]))
	}
	return out
}

func isHostByte(c byte) bool {
	return c == '.' || c == '-' || c == '_' ||
		(c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// dedupeSocials keeps the first URL per profile key and sorts the result.
func dedupeSocials(urls []string) []string {
	urls = append([]string(nil), urls...)
	sort.Strings(urls)
	seen := make(map[string]bool, len(urls))
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		k := socialKey(u)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, u)
	}
	return out
}
