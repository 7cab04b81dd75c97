package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/rfp-proposal/internal/gaps"
	"github.com/jonathan/rfp-proposal/internal/observability"
	"github.com/jonathan/rfp-proposal/internal/pipeline"
	"github.com/jonathan/rfp-proposal/internal/pipeline/steps"
	"github.com/jonathan/rfp-proposal/internal/questions"
)

var analyzeGapsCmd = &cobra.Command{
	Use:   "analyze-gaps",
	Short: "Score company coverage of the RFP criteria",
	Long: "Classifies every criterion as covered, not covered or unclear against the company profile, " +
		"then writes clarification questions for the uncovered ones.",
	RunE: runAnalyzeGaps,
}

var (
	analyzeGapsCriteria  string
	analyzeGapsProfile   string
	analyzeGapsOutputDir string
)

func init() {
	analyzeGapsCmd.Flags().StringVarP(&analyzeGapsCriteria, "criteria", "c", "", "Path to criteria_with_weights.json (required)")
	analyzeGapsCmd.Flags().StringVarP(&analyzeGapsProfile, "profile", "p", "", "Path to company_profile.json (required)")
	analyzeGapsCmd.Flags().StringVarP(&analyzeGapsOutputDir, "out", "o", "", "Output directory (required)")

	for _, name := range []string{"criteria", "profile", "out"} {
		if err := analyzeGapsCmd.MarkFlagRequired(name); err != nil {
			panic(fmt.Sprintf("failed to mark %s flag as required: %v", name, err))
		}
	}

	rootCmd.AddCommand(analyzeGapsCmd)
}

func runAnalyzeGaps(cmd *cobra.Command, _ []string) error {
	set, err := pipeline.LoadCriteria(analyzeGapsCriteria)
	if err != nil {
		return fmt.Errorf("failed to load criteria: %w", err)
	}
	p, err := pipeline.LoadProfile(analyzeGapsProfile)
	if err != nil {
		return fmt.Errorf("failed to load company profile: %w", err)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	client, err := newClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	items, err := gaps.Classify(ctx, client, set.Criteria, gaps.CapabilityText(p))
	if err != nil {
		return err
	}
	report := gaps.BuildReport(items, logger)

	if missing := report.MissingRequirements(); len(missing) > 0 {
		qs, err := questions.Synthesize(ctx, client, missing, logger)
		if err != nil {
			return err
		}
		report.ClarificationQuestions = qs
	}

	outPath := filepath.Join(analyzeGapsOutputDir, steps.ArtifactFor(steps.AnalyzeGaps))
	if err := pipeline.WriteArtifact(outPath, pipeline.SchemaFor(outPath), report); err != nil {
		return fmt.Errorf("failed to write gap analysis: %w", err)
	}
	if cfg.Verbose {
		printer := observability.NewPrinter(os.Stdout)
		printer.PrintGapReport(report)
		printer.PrintQuestions(report.ClarificationQuestions)
	}

	s := report.Summary
	_, _ = fmt.Fprintf(os.Stdout, "Requirements: %d (covered %d, not covered %d, unclear %d)\n",
		s.TotalRequirements, s.Covered, s.NotCovered, s.Unclear)
	_, _ = fmt.Fprintf(os.Stdout, "Clarification questions: %d\n", len(report.ClarificationQuestions))
	_, _ = fmt.Fprintf(os.Stdout, "Gap analysis: %s\n", outPath)
	return nil
}
