// Package steps defines the pipeline stages, the artifact each one writes and the stages
// it depends on.
package steps

import (
	"fmt"
	"sort"
)

// Stage names. They double as run step names in the artifact store.
const (
	ExtractCriteria     = "extract_criteria"
	SummarizeRFP        = "summarize_rfp"
	ExtractCompany      = "extract_company"
	AnalyzeGaps         = "analyze_gaps"
	SynthesizeQuestions = "synthesize_questions"
	RecordAnswers       = "record_answers"
	GenerateProposal    = "generate_proposal"
)

// Stage categories
const (
	CategoryRFP      = "rfp"
	CategoryCompany  = "company"
	CategoryAnalysis = "analysis"
	CategoryProposal = "proposal"
)

// StepDefinition defines metadata for a pipeline stage
type StepDefinition struct {
	Name         string
	Category     string
	Artifact     string
	Dependencies []string
	Optional     []string
}

// StepRegistry holds all stage definitions
var StepRegistry = map[string]StepDefinition{
	ExtractCriteria: {
		Name:     ExtractCriteria,
		Category: CategoryRFP,
		Artifact: "criteria_with_weights.json",
	},
	SummarizeRFP: {
		Name:     SummarizeRFP,
		Category: CategoryRFP,
		Artifact: "rfp_summary.json",
	},
	ExtractCompany: {
		Name:     ExtractCompany,
		Category: CategoryCompany,
		Artifact: "company_profile.json",
	},
	AnalyzeGaps: {
		Name:         AnalyzeGaps,
		Category:     CategoryAnalysis,
		Artifact:     "gap_analysis.json",
		Dependencies: []string{ExtractCriteria, ExtractCompany},
	},
	SynthesizeQuestions: {
		Name:         SynthesizeQuestions,
		Category:     CategoryAnalysis,
		Artifact:     "gap_analysis.json",
		Dependencies: []string{AnalyzeGaps},
	},
	RecordAnswers: {
		Name:         RecordAnswers,
		Category:     CategoryAnalysis,
		Artifact:     "chat_history.json",
		Dependencies: []string{SynthesizeQuestions},
	},
	GenerateProposal: {
		Name:         GenerateProposal,
		Category:     CategoryProposal,
		Artifact:     "proposal.md",
		Dependencies: []string{ExtractCriteria, ExtractCompany, AnalyzeGaps},
		Optional:     []string{SummarizeRFP, RecordAnswers},
	},
}

// DependencyError represents a dependency validation error
type DependencyError struct {
	Step                string
	MissingDependencies []string
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("step %s: missing dependencies: %v", e.Step, e.MissingDependencies)
}

// ValidateDependencies checks that every required dependency of a stage has completed
func ValidateDependencies(stepName string, completed map[string]bool) error {
	def, ok := StepRegistry[stepName]
	if !ok {
		return fmt.Errorf("unknown step: %s", stepName)
	}

	var missing []string
	for _, dep := range def.Dependencies {
		if !completed[dep] {
			missing = append(missing, dep)
		}
	}

	if len(missing) > 0 {
		return &DependencyError{
			Step:                stepName,
			MissingDependencies: missing,
		}
	}
	return nil
}

// GetAvailableSteps returns the stages that have not completed and whose dependencies have,
// sorted by name
func GetAvailableSteps(completed map[string]bool) []string {
	var available []string
	for stepName := range StepRegistry {
		if completed[stepName] {
			continue
		}
		if err := ValidateDependencies(stepName, completed); err != nil {
			continue
		}
		available = append(available, stepName)
	}
	sort.Strings(available)
	return available
}

// ArtifactFor returns the artifact file name written by a stage, or "" for unknown stages
func ArtifactFor(stepName string) string {
	return StepRegistry[stepName].Artifact
}
