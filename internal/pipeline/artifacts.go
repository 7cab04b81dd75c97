package pipeline

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"

	"github.com/jonathan/rfp-proposal/internal/schemas"
	"github.com/jonathan/rfp-proposal/internal/types"
	artifactschemas "github.com/jonathan/rfp-proposal/schemas"
)

// WriteArtifact validates v against its artifact schema, when one is given, and writes it
// as indented JSON. Parent directories are created.
func WriteArtifact(path, schemaName string, v any) error {
	if schemaName != "" {
		if err := schemas.ValidateValue(schemaName, v); err != nil {
			return eris.Wrapf(err, "artifact %s violates %s", filepath.Base(path), schemaName)
		}
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return eris.Wrapf(err, "encode %s", filepath.Base(path))
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return eris.Wrapf(err, "create directory for %s", path)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return eris.Wrapf(err, "write %s", path)
	}
	return nil
}

// ReadArtifact decodes a JSON artifact file into a new T.
func ReadArtifact[T any](path string) (*T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "read %s", path)
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, eris.Wrapf(err, "decode %s", path)
	}
	return &v, nil
}

// LoadCriteria reads a criteria_with_weights.json artifact.
func LoadCriteria(path string) (*types.CriteriaSet, error) {
	return ReadArtifact[types.CriteriaSet](path)
}

// LoadProfile reads a company_profile.json artifact.
func LoadProfile(path string) (*types.CompanyProfile, error) {
	return ReadArtifact[types.CompanyProfile](path)
}

// LoadGapReport reads a gap_analysis.json artifact.
func LoadGapReport(path string) (*types.GapReport, error) {
	return ReadArtifact[types.GapReport](path)
}

// LoadChatHistory reads a chat_history.json artifact.
func LoadChatHistory(path string) (*types.ChatHistory, error) {
	return ReadArtifact[types.ChatHistory](path)
}

// LoadRFPSummary reads an rfp_summary.json artifact.
func LoadRFPSummary(path string) (*types.RFPSummary, error) {
	return ReadArtifact[types.RFPSummary](path)
}

// schemaFor maps artifact file names to their embedded schema.
var schemaFor = map[string]string{
	"criteria_with_weights.json": artifactschemas.CriteriaWithWeights,
	"company_profile.json":       artifactschemas.CompanyProfile,
	"gap_analysis.json":          artifactschemas.GapAnalysis,
	"chat_history.json":          artifactschemas.ChatHistory,
	"rfp_summary.json":           artifactschemas.RFPSummary,
}

// SchemaFor returns the embedded schema name for an artifact file, or "" when the file has
// no schema.
func SchemaFor(path string) string {
	return schemaFor[filepath.Base(path)]
}
