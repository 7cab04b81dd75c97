package gaps

import (
	"go.uber.org/zap"

	"github.com/jonathan/rfp-proposal/internal/types"
)

// BuildReport buckets classified items by status. Items with an unrecognized status are
// kept out of every bucket and only counted; each one is logged.
func BuildReport(items []types.GapItem, logger *zap.Logger) *types.GapReport {
	if logger == nil {
		logger = zap.NewNop()
	}

	report := &types.GapReport{
		CoveredRequirements:    []types.GapItem{},
		NotCoveredRequirements: []types.GapItem{},
		UnclearRequirements:    []types.GapItem{},
		ClarificationQuestions: []string{},
	}
	report.Summary.TotalRequirements = len(items)

	for _, item := range items {
		switch item.Status {
		case types.StatusCovered:
			report.CoveredRequirements = append(report.CoveredRequirements, item)
		case types.StatusNotCovered:
			report.NotCoveredRequirements = append(report.NotCoveredRequirements, item)
		case types.StatusUnclear:
			report.UnclearRequirements = append(report.UnclearRequirements, item)
		default:
			report.Summary.Unrecognized++
			logger.Warn("gap item has unrecognized status",
				zap.String("requirement", item.Requirement),
				zap.String("status_label", item.StatusLabel),
				zap.String("error", item.Error))
		}
	}

	report.Summary.Covered = len(report.CoveredRequirements)
	report.Summary.NotCovered = len(report.NotCoveredRequirements)
	report.Summary.Unclear = len(report.UnclearRequirements)
	return report
}
