package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/rfp-proposal/internal/clarify"
	"github.com/jonathan/rfp-proposal/internal/pipeline"
	"github.com/jonathan/rfp-proposal/internal/pipeline/steps"
)

var recordAnswersCmd = &cobra.Command{
	Use:   "record-answers",
	Short: "Pair clarification questions with their answers",
	Long: "Reads the clarification questions from gap_analysis.json and the answers file (YAML or JSON), " +
		"and writes chat_history.json. Questions without an answer are kept with an empty answer.",
	RunE: runRecordAnswers,
}

var (
	recordAnswersGaps      string
	recordAnswersAnswers   string
	recordAnswersOutputDir string
)

func init() {
	recordAnswersCmd.Flags().StringVarP(&recordAnswersGaps, "gaps", "g", "", "Path to gap_analysis.json (required)")
	recordAnswersCmd.Flags().StringVarP(&recordAnswersAnswers, "answers", "a", "", "Path to the answers file, .yaml or .json (optional)")
	recordAnswersCmd.Flags().StringVarP(&recordAnswersOutputDir, "out", "o", "", "Output directory (required)")

	if err := recordAnswersCmd.MarkFlagRequired("gaps"); err != nil {
		panic(fmt.Sprintf("failed to mark gaps flag as required: %v", err))
	}
	if err := recordAnswersCmd.MarkFlagRequired("out"); err != nil {
		panic(fmt.Sprintf("failed to mark out flag as required: %v", err))
	}

	rootCmd.AddCommand(recordAnswersCmd)
}

func runRecordAnswers(_ *cobra.Command, _ []string) error {
	report, err := pipeline.LoadGapReport(recordAnswersGaps)
	if err != nil {
		return fmt.Errorf("failed to load gap analysis: %w", err)
	}

	var answers []string
	var additional string
	if recordAnswersAnswers != "" {
		f, err := clarify.LoadAnswers(recordAnswersAnswers)
		if err != nil {
			return err
		}
		answers, additional = f.Answers, f.AdditionalInfo
	}

	history := clarify.BuildHistory(report.ClarificationQuestions, answers, additional, time.Now())

	outPath := filepath.Join(recordAnswersOutputDir, steps.ArtifactFor(steps.RecordAnswers))
	if err := pipeline.WriteArtifact(outPath, pipeline.SchemaFor(outPath), history); err != nil {
		return fmt.Errorf("failed to write chat history: %w", err)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Answered %d of %d questions\n", clarify.Answered(history), history.TotalQuestions)
	_, _ = fmt.Fprintf(os.Stdout, "Chat history: %s\n", outPath)
	return nil
}
