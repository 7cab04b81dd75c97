package proposal

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/rfp-proposal/internal/llm"
	"github.com/jonathan/rfp-proposal/internal/types"
)

func sampleInput() *Input {
	return &Input{
		Criteria: &types.CriteriaSet{
			Summary:  "صيانة وتشغيل مباني الجهة لمدة ثلاث سنوات.",
			Criteria: []types.Criterion{{Name: "الخبرة", Category: types.CategoryTechnical}},
		},
		Profile: &types.CompanyProfile{CompanyName: "شركة الإتقان", EnglishName: "Itqan"},
		Gaps: &types.GapReport{
			CoveredRequirements:    []types.GapItem{{Requirement: "أ"}, {Requirement: "ب"}},
			NotCoveredRequirements: []types.GapItem{{Requirement: "ج"}},
		},
		History: &types.ChatHistory{TotalQuestions: 4},
	}
}

// sectionName recovers the section a writer prompt is for.
func sectionName(prompt string) string {
	start := strings.Index(prompt, "\"") + 1
	end := strings.Index(prompt[start:], "\"")
	return prompt[start : start+end]
}

func TestFixedSections(t *testing.T) {
	sections := FixedSections()
	require.Len(t, sections, 16)
	assert.Equal(t, "مقدمة ومعلومات عن المشروع", sections[0].Name)
	assert.Equal(t, "الخاتمة", sections[15].Name)

	seen := map[string]bool{}
	for _, s := range sections {
		assert.NotEmpty(t, s.Description, s.Name)
		assert.False(t, seen[s.Name], "duplicate section %s", s.Name)
		seen[s.Name] = true
	}
	for _, name := range []string{SectionCompanyOverview, SectionGovProjects, SectionStaffing, SectionPricing, SectionOperationalNeed} {
		assert.True(t, seen[name], name)
	}
}

func TestGenerate_KeepsOutlineOrder(t *testing.T) {
	var mu sync.Mutex
	prompts := map[string]string{}
	client := &MockLLMClient{
		GenerateContentFunc: func(_ context.Context, p string, tier llm.ModelTier) (string, error) {
			assert.Equal(t, llm.TierAdvanced, tier)
			name := sectionName(p)
			mu.Lock()
			prompts[name] = p
			mu.Unlock()
			if name == "مقدمة ومعلومات عن المشروع" {
				time.Sleep(20 * time.Millisecond)
			}
			return "  نص " + name + "  ", nil
		},
	}

	got, err := NewGenerator(client, &Options{Workers: 4}).Generate(context.Background(), sampleInput())
	require.NoError(t, err)

	outline := FixedSections()
	require.Len(t, got.Sections, len(outline))
	for i, sec := range outline {
		assert.Equal(t, sec.Name, got.Sections[i].Name)
		assert.Equal(t, "نص "+sec.Name, got.Sections[i].Body)
	}
	assert.True(t, strings.HasPrefix(got.Markdown, "# العرض الفني\n# Technical Proposal\n\n### مقدمة ومعلومات عن المشروع\n\n"))
	assert.Equal(t, len(outline)-1, strings.Count(got.Markdown, "\n\n---\n\n"))

	intro := prompts["مقدمة ومعلومات عن المشروع"]
	assert.Contains(t, intro, "صيانة وتشغيل مباني الجهة")
	assert.Contains(t, intro, "شركة الإتقان")
	assert.Contains(t, intro, "مغطى: 2, غير مغطى: 1")
	assert.Contains(t, intro, "إجمالي الأسئلة المجاب عليها: 4")
	assert.Contains(t, intro, "- —")
	assert.Contains(t, prompts[SectionPricing], "BoQ")
	assert.Contains(t, prompts[SectionStaffing], "استخدم company_info فقط")
}

func TestGenerate_SectionFailureFailsProposal(t *testing.T) {
	client := &MockLLMClient{
		GenerateContentFunc: func(_ context.Context, p string, _ llm.ModelTier) (string, error) {
			if sectionName(p) == "الخاتمة" {
				return "", &llm.CallError{Model: "mock", Message: "quota"}
			}
			return "نص", nil
		},
	}

	_, err := NewGenerator(client, nil).Generate(context.Background(), sampleInput())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "الخاتمة")
}

func TestGenerate_RequiresInputs(t *testing.T) {
	_, err := NewGenerator(&MockLLMClient{}, nil).Generate(context.Background(), &Input{})
	assert.Error(t, err)
}

func TestExtraRules(t *testing.T) {
	assert.Equal(t, "—", ExtraRules("الخاتمة"))
	assert.Contains(t, ExtraRules(SectionGovProjects), "company_info")
	assert.Contains(t, ExtraRules(SectionOperationalNeed), "إيجار مقر")
}

func TestRFPSummary(t *testing.T) {
	set := &types.CriteriaSet{Summary: "ملخص المعايير"}
	assert.Equal(t, "ملخص المعايير\n\nملخص الكراسة", RFPSummary(set, "ملخص الكراسة"))
	assert.Equal(t, "ملخص الكراسة", RFPSummary(&types.CriteriaSet{}, " ملخص الكراسة "))

	var criteria []types.Criterion
	for i := 0; i < 12; i++ {
		criteria = append(criteria, types.Criterion{Name: "م", Description: "و"})
	}
	fallback := RFPSummary(&types.CriteriaSet{Criteria: criteria}, "")
	assert.True(t, strings.HasPrefix(fallback, "RFP Criteria:\n- م: و"))
	assert.Equal(t, 10, strings.Count(fallback, "- م: و"))
}

func TestSummaries_NilInputs(t *testing.T) {
	assert.Empty(t, GapSummary(nil))
	assert.Empty(t, AnswersSummary(nil))
}

func TestAssemble(t *testing.T) {
	md := Assemble([]types.ProposalSection{{Name: "أ", Body: "نص أ"}, {Name: "ب", Body: "نص ب"}})
	assert.Equal(t, "# العرض الفني\n# Technical Proposal\n\n### أ\n\nنص أ\n\n---\n\n### ب\n\nنص ب\n", md)
}
