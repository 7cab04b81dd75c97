package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonathan/rfp-proposal/internal/pipeline"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Run the pipeline for every RFP in a directory",
	Long: "Builds the company profile once, then runs every .pdf and .txt RFP in --rfp-dir through the " +
		"pipeline, writing one output subdirectory per RFP. A failing RFP is reported and skipped.",
	RunE: runBatch,
}

var (
	batchRFPDir       string
	batchCompanyURL   string
	batchCompanyPDF   string
	batchAnswers      string
	batchOutputDir    string
	batchDatabaseURL  string
	batchMaxPages     int
	batchOCR          bool
	batchJSRender     bool
	batchSummarize    bool
	batchSkipProposal bool
)

func init() {
	batchCmd.Flags().StringVarP(&batchRFPDir, "rfp-dir", "d", "", "Directory of RFP documents (required)")
	addCompanyFlags(batchCmd, &batchCompanyURL, &batchCompanyPDF, &batchMaxPages, &batchOCR, &batchJSRender)
	addRunFlags(batchCmd, &batchAnswers, &batchOutputDir, &batchDatabaseURL, &batchSummarize, &batchSkipProposal)

	if err := batchCmd.MarkFlagRequired("rfp-dir"); err != nil {
		panic(fmt.Sprintf("failed to mark rfp-dir flag as required: %v", err))
	}

	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts, cleanup, err := pipelineOptions(ctx, cmd, batchCompanyURL, batchCompanyPDF)
	if err != nil {
		return err
	}
	defer cleanup()

	opts.AnswersPath = batchAnswers
	opts.OutDir = batchOutputDir
	opts.Summarize = batchSummarize
	opts.SkipProposal = batchSkipProposal

	res, err := pipeline.RunBatch(ctx, batchRFPDir, opts)
	if res != nil {
		_, _ = fmt.Fprintf(os.Stdout, "\nBatch finished: %d succeeded, %d failed\n", len(res.Succeeded), len(res.Failed))
		for _, f := range res.Failed {
			_, _ = fmt.Fprintf(os.Stdout, "  - %s: failed at %s: %v\n", f.Unit, f.Stage, f.Cause)
		}
	}
	return err
}
