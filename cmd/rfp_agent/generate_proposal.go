package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/rfp-proposal/internal/observability"
	"github.com/jonathan/rfp-proposal/internal/pipeline"
	"github.com/jonathan/rfp-proposal/internal/pipeline/steps"
	"github.com/jonathan/rfp-proposal/internal/proposal"
)

var generateProposalCmd = &cobra.Command{
	Use:   "generate-proposal",
	Short: "Draft the technical proposal",
	Long: "Writes every section of the technical proposal in parallel from the criteria, company " +
		"profile, gap analysis and clarification answers, and saves it as Markdown and DOCX.",
	RunE: runGenerateProposal,
}

var (
	generateProposalCriteria  string
	generateProposalProfile   string
	generateProposalGaps      string
	generateProposalHistory   string
	generateProposalSummary   string
	generateProposalOutputDir string
)

func init() {
	generateProposalCmd.Flags().StringVarP(&generateProposalCriteria, "criteria", "c", "", "Path to criteria_with_weights.json (required)")
	generateProposalCmd.Flags().StringVarP(&generateProposalProfile, "profile", "p", "", "Path to company_profile.json (required)")
	generateProposalCmd.Flags().StringVarP(&generateProposalGaps, "gaps", "g", "", "Path to gap_analysis.json (required)")
	generateProposalCmd.Flags().StringVar(&generateProposalHistory, "history", "", "Path to chat_history.json (optional)")
	generateProposalCmd.Flags().StringVar(&generateProposalSummary, "summary", "", "Path to rfp_summary.json (optional)")
	generateProposalCmd.Flags().StringVarP(&generateProposalOutputDir, "out", "o", "", "Output directory (required)")

	for _, name := range []string{"criteria", "profile", "gaps", "out"} {
		if err := generateProposalCmd.MarkFlagRequired(name); err != nil {
			panic(fmt.Sprintf("failed to mark %s flag as required: %v", name, err))
		}
	}

	rootCmd.AddCommand(generateProposalCmd)
}

func loadProposalInput() (*proposal.Input, error) {
	set, err := pipeline.LoadCriteria(generateProposalCriteria)
	if err != nil {
		return nil, fmt.Errorf("failed to load criteria: %w", err)
	}
	p, err := pipeline.LoadProfile(generateProposalProfile)
	if err != nil {
		return nil, fmt.Errorf("failed to load company profile: %w", err)
	}
	report, err := pipeline.LoadGapReport(generateProposalGaps)
	if err != nil {
		return nil, fmt.Errorf("failed to load gap analysis: %w", err)
	}
	in := &proposal.Input{Criteria: set, Profile: p, Gaps: report}

	if generateProposalHistory != "" {
		h, err := pipeline.LoadChatHistory(generateProposalHistory)
		if err != nil {
			return nil, fmt.Errorf("failed to load chat history: %w", err)
		}
		in.History = h
	}
	if generateProposalSummary != "" {
		s, err := pipeline.LoadRFPSummary(generateProposalSummary)
		if err != nil {
			return nil, fmt.Errorf("failed to load RFP summary: %w", err)
		}
		in.Summary = s.Combined
	}
	return in, nil
}

func runGenerateProposal(cmd *cobra.Command, _ []string) error {
	in, err := loadProposalInput()
	if err != nil {
		return err
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

	gen := proposal.NewGenerator(client, &proposal.Options{Workers: cfg.Proposal.Workers, Logger: logger})
	p, err := gen.Generate(ctx, in)
	if err != nil {
		return fmt.Errorf("failed to generate proposal: %w", err)
	}

	mdPath := filepath.Join(generateProposalOutputDir, steps.ArtifactFor(steps.GenerateProposal))
	if err := os.MkdirAll(generateProposalOutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", generateProposalOutputDir, err)
	}
	if err := proposal.WriteMarkdown(mdPath, p); err != nil {
		return err
	}
	docxPath := strings.TrimSuffix(mdPath, filepath.Ext(mdPath)) + ".docx"
	if err := proposal.WriteDOCX(docxPath, p); err != nil {
		return err
	}
	if cfg.Verbose {
		observability.NewPrinter(os.Stdout).PrintProposal(p)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Wrote %d sections\n", len(p.Sections))
	_, _ = fmt.Fprintf(os.Stdout, "Markdown: %s\n", mdPath)
	_, _ = fmt.Fprintf(os.Stdout, "DOCX: %s\n", docxPath)
	return nil
}
