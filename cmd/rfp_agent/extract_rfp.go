package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/rfp-proposal/internal/criteria"
	"github.com/jonathan/rfp-proposal/internal/ingestion"
	"github.com/jonathan/rfp-proposal/internal/observability"
	"github.com/jonathan/rfp-proposal/internal/pipeline"
	"github.com/jonathan/rfp-proposal/internal/pipeline/steps"
	"github.com/jonathan/rfp-proposal/internal/summarize"
)

var extractRFPCmd = &cobra.Command{
	Use:   "extract-rfp",
	Short: "Extract weighted evaluation criteria from an RFP",
	Long: "Reads an RFP (PDF or text), extracts its evaluation criteria, and assigns weights from the " +
		"category budgets. With --summarize the RFP is also chunked and summarized.",
	RunE: runExtractRFP,
}

var (
	extractRFPInput     string
	extractRFPOutputDir string
	extractRFPSummarize bool
)

func init() {
	extractRFPCmd.Flags().StringVarP(&extractRFPInput, "rfp", "r", "", "Path to the RFP document, .pdf or .txt (required)")
	extractRFPCmd.Flags().StringVarP(&extractRFPOutputDir, "out", "o", "", "Output directory (required)")
	extractRFPCmd.Flags().BoolVar(&extractRFPSummarize, "summarize", false, "Also write rfp_summary.json")

	if err := extractRFPCmd.MarkFlagRequired("rfp"); err != nil {
		panic(fmt.Sprintf("failed to mark rfp flag as required: %v", err))
	}
	if err := extractRFPCmd.MarkFlagRequired("out"); err != nil {
		panic(fmt.Sprintf("failed to mark out flag as required: %v", err))
	}

	rootCmd.AddCommand(extractRFPCmd)
}

func runExtractRFP(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	doc, err := ingestion.LoadDocument(extractRFPInput)
	if err != nil {
		return fmt.Errorf("failed to load RFP: %w", err)
	}

	ctx := context.Background()
	client, err := newClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	set, err := criteria.Extract(ctx, client, doc.Text)
	if err != nil {
		return err
	}
	set.Criteria = criteria.Weight(set.Criteria, cfg.Budgets)
	drift := criteria.CheckWeights(set.Criteria, cfg.Budgets, logger)

	criteriaPath := filepath.Join(extractRFPOutputDir, steps.ArtifactFor(steps.ExtractCriteria))
	if err := pipeline.WriteArtifact(criteriaPath, pipeline.SchemaFor(criteriaPath), set); err != nil {
		return fmt.Errorf("failed to write criteria: %w", err)
	}
	if cfg.Verbose {
		observability.NewPrinter(os.Stdout).PrintCriteria(set)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Extracted %d criteria\n", len(set.Criteria))
	for _, d := range drift {
		_, _ = fmt.Fprintf(os.Stdout, "Warning: %v\n", d)
	}
	_, _ = fmt.Fprintf(os.Stdout, "Criteria: %s\n", criteriaPath)

	if !extractRFPSummarize {
		return nil
	}

	s := summarize.New(client, &summarize.Options{Workers: cfg.Summarize.Workers, Logger: logger})
	summary, err := s.SummarizeDocument(ctx, doc.Source, doc.Text)
	if err != nil {
		return fmt.Errorf("failed to summarize RFP: %w", err)
	}
	summaryPath := filepath.Join(extractRFPOutputDir, steps.ArtifactFor(steps.SummarizeRFP))
	if err := pipeline.WriteArtifact(summaryPath, pipeline.SchemaFor(summaryPath), summary); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	_, _ = fmt.Fprintf(os.Stdout, "Summary: %s (%d chunks)\n", summaryPath, len(summary.Chunks))
	return nil
}
