package gaps

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/rfp-proposal/internal/llm"
	"github.com/jonathan/rfp-proposal/internal/types"
)

func respond(body string) *MockLLMClient {
	return &MockLLMClient{
		GenerateJSONFunc: func(context.Context, string, llm.ModelTier) (string, error) {
			return body, nil
		},
	}
}

func TestStatusFromLabel(t *testing.T) {
	tests := []struct {
		label string
		want  types.CoverageStatus
	}{
		{"مغطى ✅", types.StatusCovered},
		{"غير مغطى ❌", types.StatusNotCovered},
		{"غير واضح ⚠️", types.StatusUnclear},
		{"covered", types.StatusCovered},
		{"NOT_COVERED", types.StatusNotCovered},
		{"Unclear", types.StatusUnclear},
		{"الحالة: مغطى ✅ بالكامل", types.StatusCovered},
		{"Not Covered", types.StatusNotCovered},
		{"not covered ❌", types.StatusNotCovered},
		{"not-covered", types.StatusNotCovered},
		{"uncovered", types.StatusNotCovered},
		{"Partially covered", types.StatusUnclear},
		{"Covered ✅", types.StatusCovered},
		{"discovered", types.StatusUnrecognized},
		{"جزئي", types.StatusUnrecognized},
		{"", types.StatusUnrecognized},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFromLabel(tt.label))
		})
	}
}

func TestClassify_MaintenanceRequirementCovered(t *testing.T) {
	profile := &types.CompanyProfile{
		CompanyName: "شركة الإتقان",
		About:       "نقدم خدمات الصيانة الدورية للمنشآت الحكومية والخاصة.",
		Services:    []string{"التشغيل", "النظافة"},
		Licenses:    []string{types.NotAvailable},
	}
	capability := CapabilityText(profile)
	criteria := []types.Criterion{{Name: "الصيانة الدورية للمعدات", Category: types.CategoryTechnical}}

	var prompt string
	client := &MockLLMClient{
		GenerateJSONFunc: func(_ context.Context, p string, _ llm.ModelTier) (string, error) {
			prompt = p
			return "```json\n" + `[{"requirement": "الصيانة الدورية للمعدات", "status": "مغطى ✅", "evidence": "نقدم خدمات الصيانة الدورية"}]` + "\n```", nil
		},
	}

	items, err := Classify(context.Background(), client, criteria, capability)
	require.NoError(t, err)
	require.Len(t, items, 1)

	assert.Equal(t, types.StatusCovered, items[0].Status)
	assert.Equal(t, "مغطى ✅", items[0].StatusLabel)
	require.NotEmpty(t, items[0].Evidence)
	assert.Contains(t, capability, items[0].Evidence)
	assert.Contains(t, prompt, "- الصيانة الدورية للمعدات\n")
	assert.Contains(t, prompt, "نقدم خدمات الصيانة الدورية")
	assert.NotContains(t, capability, types.NotAvailable)
}

func TestClassify_MalformedResponseYieldsPlaceholder(t *testing.T) {
	raw := "عذراً، لا يمكنني إتمام المقارنة."
	items, err := Classify(context.Background(), respond(raw),
		[]types.Criterion{{Name: "أ"}, {Name: "ب"}}, "قدرات")
	require.NoError(t, err)
	require.Len(t, items, 1)

	assert.Equal(t, raw, items[0].RawOutput)
	assert.Equal(t, ErrMalformedResponse, items[0].Error)
	assert.Equal(t, types.StatusUnrecognized, items[0].Status)
}

func TestClassify_NeverInventsItems(t *testing.T) {
	criteria := []types.Criterion{{Name: "أ"}, {Name: "ب"}}
	var sb strings.Builder
	sb.WriteString("[")
	for i := 0; i < 5; i++ {
		if i > 0 {
			sb.WriteString(",")
		}
		_, _ = fmt.Fprintf(&sb, `{"requirement": "req %d", "status": "covered", "evidence": ""}`, i)
	}
	sb.WriteString("]")

	items, err := Classify(context.Background(), respond(sb.String()), criteria, "")
	require.NoError(t, err)
	assert.Len(t, items, len(criteria))
}

func TestClassify_FillsMissingRequirementFromCriterion(t *testing.T) {
	items, err := Classify(context.Background(),
		respond(`[{"status": "غير مغطى ❌"}]`),
		[]types.Criterion{{Name: "شهادة الأيزو"}}, "")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "شهادة الأيزو", items[0].Requirement)
	assert.Equal(t, types.StatusNotCovered, items[0].Status)
}

func TestClassify_NoCriteriaSkipsCall(t *testing.T) {
	client := &MockLLMClient{
		GenerateJSONFunc: func(context.Context, string, llm.ModelTier) (string, error) {
			t.Fatal("service must not be called")
			return "", nil
		},
	}
	items, err := Classify(context.Background(), client, nil, "قدرات")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestClassify_CallFailure(t *testing.T) {
	callErr := &llm.CallError{Model: "mock", Message: "timeout"}
	client := &MockLLMClient{
		GenerateJSONFunc: func(context.Context, string, llm.ModelTier) (string, error) {
			return "", callErr
		},
	}
	_, err := Classify(context.Background(), client, []types.Criterion{{Name: "أ"}}, "")
	assert.ErrorIs(t, err, callErr)
}

func TestBuildPrompt_Deterministic(t *testing.T) {
	criteria := []types.Criterion{
		{Name: "الخبرة", Description: "خمس سنوات"},
		{Name: "السعر"},
	}
	first := BuildPrompt(criteria, "قدرات الشركة")
	assert.Equal(t, first, BuildPrompt(criteria, "قدرات الشركة"))
	assert.Contains(t, first, "- الخبرة: خمس سنوات\n- السعر\n")
}
