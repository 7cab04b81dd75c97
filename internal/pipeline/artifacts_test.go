package pipeline

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/rfp-proposal/internal/schemas"
	"github.com/jonathan/rfp-proposal/internal/types"
	artifactschemas "github.com/jonathan/rfp-proposal/schemas"
)

func weighted(name, category string, w float64) types.Criterion {
	return types.Criterion{Name: name, Category: category, Weight: &w}
}

func TestWriteArtifact_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "criteria_with_weights.json")
	set := &types.CriteriaSet{
		Summary:  "توريد أجهزة",
		Criteria: []types.Criterion{weighted("السعر", types.CategoryFinancial, 0.3)},
	}

	require.NoError(t, WriteArtifact(path, SchemaFor(path), set))

	got, err := LoadCriteria(path)
	require.NoError(t, err)
	assert.Equal(t, set.Summary, got.Summary)
	require.Len(t, got.Criteria, 1)
	assert.Equal(t, 0.3, *got.Criteria[0].Weight)
}

func TestWriteArtifact_RejectsSchemaViolation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "criteria_with_weights.json")
	set := &types.CriteriaSet{
		Criteria: []types.Criterion{weighted("السعر", "pricing", 0.3)},
	}

	err := WriteArtifact(path, SchemaFor(path), set)
	require.Error(t, err)
	var verr *schemas.ValidationError
	assert.True(t, errors.As(err, &verr))
	assert.NoFileExists(t, path)
}

func TestWriteArtifact_NoSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "free.json")
	require.NoError(t, WriteArtifact(path, "", map[string]int{"a": 1}))

	got, err := ReadArtifact[map[string]int](path)
	require.NoError(t, err)
	assert.Equal(t, 1, (*got)["a"])
}

func TestReadArtifact_Errors(t *testing.T) {
	dir := t.TempDir()
	_, err := LoadGapReport(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "chat_history.json")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0644))
	_, err = LoadChatHistory(bad)
	assert.Error(t, err)
}

func TestSchemaFor(t *testing.T) {
	assert.Equal(t, artifactschemas.GapAnalysis, SchemaFor("/out/unit/gap_analysis.json"))
	assert.Equal(t, artifactschemas.RFPSummary, SchemaFor("rfp_summary.json"))
	assert.Empty(t, SchemaFor("proposal.md"))
}
