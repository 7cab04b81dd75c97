package gaps

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/jonathan/rfp-proposal/internal/types"
)

func TestBuildReport_Buckets(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	items := []types.GapItem{
		{Requirement: "أ", Status: types.StatusCovered},
		{Requirement: "ب", Status: types.StatusNotCovered},
		{Requirement: "ج", Status: types.StatusUnclear},
		{Requirement: "د", Status: types.StatusNotCovered},
		{Requirement: "هـ", StatusLabel: "جزئي"},
	}

	report := BuildReport(items, zap.New(core))

	assert.Equal(t, types.GapSummary{
		TotalRequirements: 5,
		Covered:           1,
		NotCovered:        2,
		Unclear:           1,
		Unrecognized:      1,
	}, report.Summary)
	assert.Equal(t, []string{"ب", "د", "ج"}, report.MissingRequirements())
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "جزئي", logs.All()[0].ContextMap()["status_label"])
}

func TestBuildReport_BucketCountsNeverExceedTotal(t *testing.T) {
	report := BuildReport([]types.GapItem{{RawOutput: "x", Error: ErrMalformedResponse}}, nil)

	s := report.Summary
	assert.Equal(t, 1, s.TotalRequirements)
	assert.LessOrEqual(t, s.Covered+s.NotCovered+s.Unclear, s.TotalRequirements)
	assert.NotNil(t, report.CoveredRequirements)
	assert.NotNil(t, report.ClarificationQuestions)
}

func TestCapabilityText_SkipsSentinel(t *testing.T) {
	text := CapabilityText(&types.CompanyProfile{
		CompanyName: "شركة",
		About:       types.NotAvailable,
		Services:    []string{"صيانة", "تشغيل"},
		Projects:    []string{types.NotAvailable},
	})
	assert.Equal(t, "اسم الشركة: شركة\nالخدمات: صيانة, تشغيل\n", text)
}
