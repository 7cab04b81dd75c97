package contacts

import (
	"regexp"
	"strings"
)

var (
	// phoneRE matches Saudi mobiles with optional separators between digit groups.
	phoneRE       = regexp.MustCompile(`(?:(?:\+|00)?966|0)[\s\-]*5(?:[\s\-]*[0-9]){8}`)
	saudiMobileRE = regexp.MustCompile(`^\+9665[0-9]{8}$`)
	whatsappRE    = regexp.MustCompile(`(?:\+?966|0)?5[0-9]{8}`)
)

// arabicDigits maps Arabic-Indic and Extended Arabic-Indic digits to ASCII.
var arabicDigits = strings.NewReplacer(
	"٠", "0", "١", "1", "٢", "2", "٣", "3", "٤", "4",
	"٥", "5", "٦", "6", "٧", "7", "٨", "8", "٩", "9",
	"۰", "0", "۱", "1", "۲", "2", "۳", "3", "۴", "4",
	"۵", "5", "۶", "6", "۷", "7", "۸", "8", "۹", "9",
)

// NormalizePhone converts a raw phone string to +9665XXXXXXXX form.
// It reports false when the result is not a Saudi mobile number.
func NormalizePhone(raw string) (string, bool) {
	raw = arabicDigits.Replace(raw)

	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '+' {
			b.WriteRune(r)
		}
	}
	s := b.String()
	if s == "" {
		return "", false
	}
	// A plus sign is only meaningful as the first character.
	s = s[:1] + strings.ReplaceAll(s[1:], "+", "")

	switch {
	case strings.HasPrefix(s, "+"):
	case strings.HasPrefix(s, "00"):
		s = "+" + s[2:]
	case strings.HasPrefix(s, "966"):
		s = "+" + s
	case strings.HasPrefix(s, "0"):
		s = "+966" + s[1:]
	case len(s) == 9 && s[0] == '5':
		s = "+966" + s
	}

	digits := len(s) - 1
	if digits < 10 || digits > 13 {
		return "", false
	}
	if !saudiMobileRE.MatchString(s) {
		return "", false
	}
	return s, true
}

// findPhones returns every phone-shaped substring of text.
func findPhones(text string) []string {
	return phoneRE.FindAllString(arabicDigits.Replace(text), -1)
}

// phoneFromWhatsApp extracts the number from a wa.me or api.whatsapp.com link.
func phoneFromWhatsApp(href string) string {
	return whatsappRE.FindString(href)
}
