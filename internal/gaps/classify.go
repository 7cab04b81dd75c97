// Package gaps compares RFP requirements with a company's stated capabilities.
package gaps

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/jonathan/rfp-proposal/internal/llm"
	"github.com/jonathan/rfp-proposal/internal/prompts"
	"github.com/jonathan/rfp-proposal/internal/types"
)

// ErrMalformedResponse is the error marker carried by the placeholder item returned when
// the classification response cannot be parsed.
const ErrMalformedResponse = "malformed_response"

type statusMarker struct {
	status  types.CoverageStatus
	labels  []string
	english *regexp.Regexp
}

// statusMarkers is checked in order. Every negative label contains its positive
// counterpart, so the negative markers come first.
var statusMarkers = []statusMarker{
	{
		status:  types.StatusNotCovered,
		labels:  []string{"غير مغطى ❌", "غير مغطى"},
		english: regexp.MustCompile(`\b(?:not|un)[\s_-]*covered\b`),
	},
	{
		status:  types.StatusUnclear,
		labels:  []string{"غير واضح ⚠", "غير واضح", "مغطى جزئي"},
		english: regexp.MustCompile(`\bunclear\b|\bpartial(?:ly)?[\s_-]*covered\b`),
	},
	{
		status:  types.StatusCovered,
		labels:  []string{"مغطى ✅", "مغطى"},
		english: regexp.MustCompile(`\bcovered\b`),
	},
}

// StatusFromLabel maps a decorated status label to a coverage status. Arabic markers match
// as substrings; English markers match as whole words, with "_", "-" or spaces between
// words. A label with no known marker yields types.StatusUnrecognized.
func StatusFromLabel(label string) types.CoverageStatus {
	lower := strings.ToLower(label)
	for _, m := range statusMarkers {
		for _, l := range m.labels {
			if strings.Contains(lower, l) {
				return m.status
			}
		}
		if m.english.MatchString(lower) {
			return m.status
		}
	}
	return types.StatusUnrecognized
}

type rawItem struct {
	Requirement string `json:"requirement"`
	Status      string `json:"status"`
	Evidence    string `json:"evidence"`
}

// Classify asks the service to judge each criterion against the capability text and
// returns at most one item per criterion, in criteria order. An unparseable response
// yields a single placeholder item carrying the raw output; a failed call is returned.
func Classify(ctx context.Context, client llm.Client, criteria []types.Criterion, capabilityText string) ([]types.GapItem, error) {
	if len(criteria) == 0 {
		return nil, nil
	}

	resp, err := client.GenerateJSON(ctx, BuildPrompt(criteria, capabilityText), llm.TierStandard)
	if err != nil {
		return nil, fmt.Errorf("failed to classify requirements: %w", err)
	}

	var raw []rawItem
	if err := json.Unmarshal([]byte(llm.CleanJSONBlock(resp)), &raw); err != nil {
		return []types.GapItem{{RawOutput: resp, Error: ErrMalformedResponse}}, nil
	}
	if len(raw) > len(criteria) {
		raw = raw[:len(criteria)]
	}

	items := make([]types.GapItem, 0, len(raw))
	for i, r := range raw {
		requirement := strings.TrimSpace(r.Requirement)
		if requirement == "" {
			requirement = criteria[i].Name
		}
		items = append(items, types.GapItem{
			Requirement: requirement,
			Status:      StatusFromLabel(r.Status),
			StatusLabel: strings.TrimSpace(r.Status),
			Evidence:    strings.TrimSpace(r.Evidence),
		})
	}
	return items, nil
}

// BuildPrompt renders the classification prompt. It depends only on its inputs.
func BuildPrompt(criteria []types.Criterion, capabilityText string) string {
	return prompts.Format(prompts.MustGet("gaps.json", "classify-gaps"), map[string]string{
		"Requirements": RequirementsText(criteria),
		"Capabilities": capabilityText,
	})
}

// RequirementsText renders criteria as "- name: description" lines.
func RequirementsText(criteria []types.Criterion) string {
	var sb strings.Builder
	for _, c := range criteria {
		sb.WriteString("- ")
		sb.WriteString(c.Name)
		if d := strings.TrimSpace(c.Description); d != "" {
			sb.WriteString(": ")
			sb.WriteString(d)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// CapabilityText renders the parts of a company profile that describe what it can do.
// Fields holding the sentinel are left out.
func CapabilityText(p *types.CompanyProfile) string {
	lines := []struct {
		label string
		value string
	}{
		{"اسم الشركة", p.CompanyName},
		{"نبذة", p.About},
		{"الخدمات", joinList(p.Services)},
		{"المجالات", joinList(p.Industries)},
		{"التراخيص", joinList(p.Licenses)},
		{"سنوات الخبرة", p.Experience},
		{"الخبرات", p.ExtensiveExpertise},
		{"الأعمال السابقة", joinList(p.Projects)},
		{"الاستشارات", p.Consultations},
	}

	var sb strings.Builder
	for _, l := range lines {
		v := strings.TrimSpace(l.value)
		if v == "" || v == types.NotAvailable {
			continue
		}
		sb.WriteString(l.label)
		sb.WriteString(": ")
		sb.WriteString(v)
		sb.WriteString("\n")
	}
	return sb.String()
}

func joinList(values []string) string {
	if types.IsNotAvailable(values) {
		return ""
	}
	return strings.Join(values, ", ")
}
