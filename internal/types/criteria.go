//nolint:revive // types is a standard Go package name pattern
package types

// Criterion categories.
const (
	CategoryFinancial = "financial"
	CategoryTechnical = "technical"
	CategoryQuality   = "quality"
	CategoryTimeline  = "timeline"
	CategoryOther     = "other"
)

// Categories returns the valid criterion categories in report order.
func Categories() []string {
	return []string{CategoryFinancial, CategoryTechnical, CategoryQuality, CategoryTimeline, CategoryOther}
}

// Criterion is one evaluation criterion extracted from an RFP.
// Weight is nil until the weighting engine runs.
type Criterion struct {
	Name        string   `json:"name" validate:"required"`
	Category    string   `json:"category" validate:"required,oneof=financial technical quality timeline other"`
	Description string   `json:"description"`
	Weight      *float64 `json:"weight"`
}

// CriteriaSet is the criteria artifact: an RFP summary plus its criteria.
type CriteriaSet struct {
	Summary  string      `json:"summary"`
	Criteria []Criterion `json:"criteria" validate:"dive"`
}
