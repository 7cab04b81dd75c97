// Package criteria extracts evaluation criteria from RFP text and weights them by category budget.
package criteria

import (
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/rfp-proposal/internal/types"
)

// weightScale is the number of weight units per 1.0; weights are multiples of 1e-4.
const weightScale = 10000

// driftTolerance bounds the relative error allowed between a category sum and its budget.
const driftTolerance = 1e-6

// Budgets maps each category to its share of the total weight.
type Budgets map[string]float64

// DefaultBudgets returns the standard split: technical 35%, financial 30%, quality 20%,
// timeline 10%, other 5%.
func DefaultBudgets() Budgets {
	return Budgets{
		types.CategoryTechnical: 0.35,
		types.CategoryFinancial: 0.30,
		types.CategoryQuality:   0.20,
		types.CategoryTimeline:  0.10,
		types.CategoryOther:     0.05,
	}
}

// BudgetError reports an unusable budget table.
type BudgetError struct {
	Message string
}

func (e *BudgetError) Error() string {
	return fmt.Sprintf("invalid category budgets: %s", e.Message)
}

// Validate checks that every budget names a known category, is non-negative and that the
// budgets sum to 1.0.
func (b Budgets) Validate() error {
	known := map[string]bool{}
	for _, c := range types.Categories() {
		known[c] = true
	}
	var sum float64
	for cat, v := range b {
		if !known[cat] {
			return &BudgetError{Message: fmt.Sprintf("unknown category %q", cat)}
		}
		if v < 0 || math.IsNaN(v) {
			return &BudgetError{Message: fmt.Sprintf("category %q has negative budget %v", cat, v)}
		}
		sum += v
	}
	if math.Abs(sum-1.0) > driftTolerance {
		return &BudgetError{Message: fmt.Sprintf("budgets sum to %.6f, want 1.0", sum)}
	}
	return nil
}

// NormalizeCategory lowercases a category and maps anything outside the known set to "other".
func NormalizeCategory(category string) string {
	c := strings.ToLower(strings.TrimSpace(category))
	for _, known := range types.Categories() {
		if c == known {
			return c
		}
	}
	return types.CategoryOther
}

// Weight returns a copy of criteria with every weight set from its category budget.
// A budget is split evenly across the category's members in 1e-4 units; the leftover
// units go one each to the earliest members, so each category sums exactly to its budget.
// Categories with no members leave their budget unused. A nil budgets table means
// DefaultBudgets.
func Weight(criteria []types.Criterion, budgets Budgets) []types.Criterion {
	if budgets == nil {
		budgets = DefaultBudgets()
	}

	out := make([]types.Criterion, len(criteria))
	copy(out, criteria)

	members := map[string][]int{}
	for i := range out {
		out[i].Category = NormalizeCategory(out[i].Category)
		members[out[i].Category] = append(members[out[i].Category], i)
	}

	for cat, idx := range members {
		units := int(math.Round(budgets[cat] * weightScale))
		base := units / len(idx)
		remainder := units - base*len(idx)
		for j, i := range idx {
			u := base
			if j < remainder {
				u++
			}
			w := float64(u) / weightScale
			out[i].Weight = &w
		}
	}
	return out
}

// WeightDrift describes a category (or the total, Category "total") whose weights do not
// sum to the expected budget.
type WeightDrift struct {
	Category string
	Expected float64
	Actual   float64
}

func (d WeightDrift) Error() string {
	return fmt.Sprintf("weight drift in %s: expected %.4f, got %.4f", d.Category, d.Expected, d.Actual)
}

// CheckWeights compares weighted criteria against their budgets. Every drift found is
// logged at warn level and returned; drift never fails a run.
func CheckWeights(criteria []types.Criterion, budgets Budgets, logger *zap.Logger) []WeightDrift {
	if budgets == nil {
		budgets = DefaultBudgets()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	sums := map[string]float64{}
	var total float64
	for _, c := range criteria {
		var w float64
		if c.Weight != nil {
			w = *c.Weight
		}
		cat := NormalizeCategory(c.Category)
		sums[cat] += w
		total += w
	}

	var drifts []WeightDrift
	var used float64
	for _, cat := range types.Categories() {
		actual, ok := sums[cat]
		if !ok {
			continue
		}
		expected := budgets[cat]
		used += expected
		if !withinTolerance(actual, expected) {
			drifts = append(drifts, WeightDrift{Category: cat, Expected: expected, Actual: actual})
		}
	}
	if !withinTolerance(total, used) {
		drifts = append(drifts, WeightDrift{Category: "total", Expected: used, Actual: total})
	}

	for _, d := range drifts {
		logger.Warn("criteria weights drifted from budget",
			zap.String("category", d.Category),
			zap.Float64("expected", d.Expected),
			zap.Float64("actual", d.Actual))
	}
	return drifts
}

func withinTolerance(actual, expected float64) bool {
	diff := math.Abs(actual - expected)
	if expected == 0 {
		return diff <= driftTolerance
	}
	return diff <= driftTolerance*expected
}

// CategoryTotals returns the summed weight per category.
func CategoryTotals(criteria []types.Criterion) map[string]float64 {
	totals := map[string]float64{}
	for _, c := range criteria {
		if c.Weight != nil {
			totals[NormalizeCategory(c.Category)] += *c.Weight
		}
	}
	return totals
}
