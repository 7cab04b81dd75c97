//nolint:revive // types is a standard Go package name pattern
package types

// CoverageStatus is the tri-state judgment for one requirement.
type CoverageStatus string

// Coverage states. StatusUnrecognized marks an item whose label matched no known marker.
const (
	StatusCovered      CoverageStatus = "covered"
	StatusNotCovered   CoverageStatus = "not_covered"
	StatusUnclear      CoverageStatus = "unclear"
	StatusUnrecognized CoverageStatus = ""
)

// GapItem is the coverage judgment for a single requirement.
type GapItem struct {
	Requirement string         `json:"requirement"`
	Status      CoverageStatus `json:"status"`
	StatusLabel string         `json:"status_label,omitempty"`
	Evidence    string         `json:"evidence"`
	RawOutput   string         `json:"raw_output,omitempty"`
	Error       string         `json:"error,omitempty"`
}

// GapSummary aggregates bucket counts for a gap report.
type GapSummary struct {
	TotalRequirements int `json:"total_requirements"`
	Covered           int `json:"covered"`
	NotCovered        int `json:"not_covered"`
	Unclear           int `json:"unclear"`
	Unrecognized      int `json:"unrecognized"`
}

// GapReport is the gap-analysis artifact.
type GapReport struct {
	Summary                GapSummary `json:"summary"`
	CoveredRequirements    []GapItem  `json:"covered_requirements"`
	NotCoveredRequirements []GapItem  `json:"not_covered_requirements"`
	UnclearRequirements    []GapItem  `json:"unclear_requirements"`
	ClarificationQuestions []string   `json:"clarification_questions"`
}

// MissingRequirements returns the requirement texts that need clarification,
// not-covered items first, then unclear items.
func (r *GapReport) MissingRequirements() []string {
	out := make([]string, 0, len(r.NotCoveredRequirements)+len(r.UnclearRequirements))
	for _, item := range r.NotCoveredRequirements {
		out = append(out, item.Requirement)
	}
	for _, item := range r.UnclearRequirements {
		out = append(out, item.Requirement)
	}
	return out
}
