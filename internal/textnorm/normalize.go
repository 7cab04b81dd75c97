// Package textnorm cleans raw extracted RFP and website text into a canonical string form.
package textnorm

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// maxPasses bounds the fixed-point loop in Normalize.
const maxPasses = 8

var (
	newlineRE       = regexp.MustCompile(`\r\n|\r|\n`)
	urlRE           = regexp.MustCompile(`(?i)(?:https?://|ftp://|www\.)\S+`)
	controlRE       = regexp.MustCompile(`[\x{0000}-\x{001F}\x{007F}-\x{00A0}]+`)
	tokenRE         = regexp.MustCompile(`\S+`)
	digitRE         = regexp.MustCompile(`[0-9]`)
	plainNumberRE   = regexp.MustCompile(`^[+\-]?[0-9]+(?:[.,:/\-][0-9]+)*$`)
	digitRunRE      = regexp.MustCompile(`[(\[]?[0-9]+[.)\]:\-]*`)
	repeatedPunctRE = regexp.MustCompile(`،{2,}|\.{2,}`)
	bulletRE        = regexp.MustCompile(`[\x{F0B7}\x{F0D8}\x{2022}\x{25CF}\x{25CB}\x{25A0}]`)
	invisibleRE     = regexp.MustCompile(`[` + InvisibleClass + `]`)
	whitespaceRE    = regexp.MustCompile(`\s+`)
)

// DefaultPreservePatterns returns the token patterns that survive digit-noise collapsing.
// Percentages in either digit order ("50%", "%50", "12.5٪") are kept.
func DefaultPreservePatterns() []*regexp.Regexp {
	return []*regexp.Regexp{
		regexp.MustCompile(`^[(\[]?[0-9]+(?:[.,٫][0-9]+)?[%٪][)\].,،]?$`),
		regexp.MustCompile(`^[(\[]?[%٪][0-9]+(?:[.,٫][0-9]+)?[)\].,،]?$`),
	}
}

// Options configures a Normalizer.
type Options struct {
	// Preserve lists whole-token patterns exempt from digit-noise collapsing.
	// Nil means DefaultPreservePatterns.
	Preserve []*regexp.Regexp
}

// Normalizer applies the ordered cleanup sequence. It is safe for concurrent use.
type Normalizer struct {
	preserve []*regexp.Regexp
}

// NewNormalizer creates a Normalizer from opts. A nil opts uses the defaults.
func NewNormalizer(opts *Options) *Normalizer {
	n := &Normalizer{preserve: DefaultPreservePatterns()}
	if opts != nil && opts.Preserve != nil {
		n.preserve = opts.Preserve
	}
	return n
}

var defaultNormalizer = NewNormalizer(nil)

// Normalize cleans text with the default preserve patterns.
func Normalize(text string) string {
	return defaultNormalizer.Normalize(text)
}

// Normalize runs the cleanup sequence until the output stops changing, so that
// Normalize(Normalize(x)) == Normalize(x). It never fails; invalid UTF-8 is
// replaced during NFKC composition.
func (n *Normalizer) Normalize(text string) string {
	cur := text
	for i := 0; i < maxPasses; i++ {
		next := n.pass(cur)
		if next == cur {
			return next
		}
		cur = next
	}
	return cur
}

// pass applies one round of the order-sensitive cleanup rules.
func (n *Normalizer) pass(text string) string {
	text = newlineRE.ReplaceAllString(text, " ")
	// URLs go before any character shrinking so no partial URL survives.
	text = urlRE.ReplaceAllString(text, " ")
	text = controlRE.ReplaceAllString(text, " ")
	text = n.collapseDigitNoise(text)
	text = repeatedPunctRE.ReplaceAllStringFunc(text, func(run string) string {
		r := []rune(run)
		return string(r[0])
	})
	text = strings.ReplaceAll(text, " ,", "،")
	text = bulletRE.ReplaceAllString(text, " ")
	text = norm.NFKC.String(text)
	text = invisibleRE.ReplaceAllString(text, " ")
	text = whitespaceRE.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// collapseDigitNoise removes digit runs glued to letters or symbols, which are
// usually stray numbering or footnote markers. Plain numbers and preserved
// tokens are left alone. Model numbers such as "ISO9001" lose their digits.
func (n *Normalizer) collapseDigitNoise(text string) string {
	return tokenRE.ReplaceAllStringFunc(text, func(tok string) string {
		if !digitRE.MatchString(tok) || plainNumberRE.MatchString(tok) {
			return tok
		}
		for _, p := range n.preserve {
			if p.MatchString(tok) {
				return tok
			}
		}
		return digitRunRE.ReplaceAllString(tok, "")
	})
}
