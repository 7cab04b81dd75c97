package db

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArtifactStepConstants(t *testing.T) {
	steps := []string{
		StepCriteria,
		StepRFPSummary,
		StepCompanyProfile,
		StepGapAnalysis,
		StepChatHistory,
		StepProposal,
	}

	seen := map[string]bool{}
	for _, step := range steps {
		assert.NotEmpty(t, step)
		assert.False(t, seen[step], "duplicate step %q", step)
		seen[step] = true
	}
}

func TestNullIfEmpty(t *testing.T) {
	assert.Nil(t, nullIfEmpty(""))
	got := nullIfEmpty("x")
	require.NotNil(t, got)
	assert.Equal(t, "x", *got)
}

func TestBuildRunQuery(t *testing.T) {
	tests := []struct {
		name     string
		filters  RunFilters
		contains []string
		args     []any
	}{
		{
			name:     "no filters",
			filters:  RunFilters{Limit: 10},
			contains: []string{"LIMIT $1"},
			args:     []any{10},
		},
		{
			name:     "unit and status",
			filters:  RunFilters{Unit: "maintenance", Status: RunStatusCompleted, Limit: 5},
			contains: []string{"unit ILIKE $1", "status = $2", "LIMIT $3"},
			args:     []any{"%maintenance%", RunStatusCompleted, 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args := buildRunQuery(tt.filters)
			for _, want := range tt.contains {
				assert.Contains(t, query, want)
			}
			assert.Equal(t, tt.args, args)
		})
	}
}

func TestDecodeArtifact(t *testing.T) {
	type payload struct {
		Summary string `json:"summary"`
	}

	got, err := decodeArtifact[payload](StepCriteria, []byte(`{"summary":"ملخص"}`))
	require.NoError(t, err)
	assert.Equal(t, "ملخص", got.Summary)

	_, err = decodeArtifact[payload](StepCriteria, []byte(`{`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), StepCriteria)
}

func TestValidStepStatus(t *testing.T) {
	assert.True(t, ValidStepStatus(StepStatusCompleted))
	assert.True(t, ValidStepStatus(StepStatusFailed))
	assert.False(t, ValidStepStatus("blocked"))
}

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := fs.ReadDir(migrations, "migrations")
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	for _, e := range entries {
		body, err := fs.ReadFile(migrations, "migrations/"+e.Name())
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(body), "-- +goose Up"), e.Name())
		assert.Contains(t, string(body), "-- +goose Down", e.Name())
	}
}
