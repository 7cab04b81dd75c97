// Package schemas embeds the JSON Schemas of the pipeline's on-disk artifacts.
package schemas

import "embed"

// Artifact schema file names.
const (
	CriteriaWithWeights = "criteria_with_weights.schema.json"
	CompanyProfile      = "company_profile.schema.json"
	GapAnalysis         = "gap_analysis.schema.json"
	ChatHistory         = "chat_history.schema.json"
	RFPSummary          = "rfp_summary.schema.json"
)

//go:embed *.schema.json
var Files embed.FS

// Names returns every embedded schema file name.
func Names() []string {
	return []string{CriteriaWithWeights, CompanyProfile, GapAnalysis, ChatHistory, RFPSummary}
}
