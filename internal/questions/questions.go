// Package questions turns uncovered requirements into formal clarification questions.
package questions

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/rfp-proposal/internal/llm"
	"github.com/jonathan/rfp-proposal/internal/prompts"
)

// NoGaps is the single question returned when there is nothing to clarify.
const NoGaps = "لا توجد فجوات واضحة تستدعي استفسارات إضافية."

// enumerationChars are stripped from the start of each returned line.
const enumerationChars = "0123456789٠١٢٣٤٥٦٧٨٩).:-–•*· \t"

var tagRE = regexp.MustCompile(`^\s*\[(\d+)\]\s*`)

// Synthesize asks the service for one question per requirement. A response whose line
// count differs from the requirement count is kept and logged.
func Synthesize(ctx context.Context, client llm.Client, requirements []string, logger *zap.Logger) ([]string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(requirements) == 0 {
		return []string{NoGaps}, nil
	}

	resp, err := client.GenerateContent(ctx, BuildPrompt(requirements), llm.TierLite)
	if err != nil {
		return nil, fmt.Errorf("failed to synthesize questions: %w", err)
	}

	questions := ParseLines(resp, len(requirements))
	if len(questions) != len(requirements) {
		logger.Warn("question count does not match requirement count",
			zap.Int("requirements", len(requirements)),
			zap.Int("questions", len(questions)))
	}
	return questions, nil
}

// BuildPrompt lists the requirements as "[n] requirement" lines.
func BuildPrompt(requirements []string) string {
	var sb strings.Builder
	for i, r := range requirements {
		_, _ = fmt.Fprintf(&sb, "[%d] %s\n", i+1, strings.TrimSpace(r))
	}
	return prompts.Format(prompts.MustGet("questions.json", "synthesize-questions"), map[string]string{
		"Requirements": strings.TrimRight(sb.String(), "\n"),
		"Count":        strconv.Itoa(len(requirements)),
	})
}

type taggedLine struct {
	tag  int
	text string
}

// ParseLines splits a response into questions. "[n]" tags and enumeration markers are
// stripped. When every line carries a distinct tag in 1..n the lines are ordered by tag;
// otherwise response order is kept.
func ParseLines(raw string, n int) []string {
	var lines []taggedLine
	allTagged := true
	seen := map[int]bool{}

	for _, line := range strings.Split(raw, "\n") {
		tag := 0
		if m := tagRE.FindStringSubmatch(line); m != nil {
			tag, _ = strconv.Atoi(m[1])
			line = line[len(m[0]):]
		}
		text := strings.TrimSpace(strings.TrimLeft(line, enumerationChars))
		if text == "" {
			continue
		}
		if tag < 1 || tag > n || seen[tag] {
			allTagged = false
		}
		seen[tag] = true
		lines = append(lines, taggedLine{tag: tag, text: text})
	}

	if allTagged {
		sort.SliceStable(lines, func(i, j int) bool { return lines[i].tag < lines[j].tag })
	}

	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.text
	}
	return out
}
