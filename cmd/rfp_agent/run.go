package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonathan/rfp-proposal/internal/criteria"
	"github.com/jonathan/rfp-proposal/internal/pipeline"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Run the full RFP pipeline end-to-end",
	Long: `Orchestrates the whole flow for one RFP: criteria extraction and weighting, company profile, gap analysis -> clarification questions -> answers -> technical proposal.

Configuration can be loaded from a file using --config. Command-line arguments override config file values.`,
	RunE: runPipelineCmd,
}

var (
	runRFP          string
	runCompanyURL   string
	runCompanyPDF   string
	runAnswers      string
	runOutputDir    string
	runDatabaseURL  string
	runMaxPages     int
	runOCR          bool
	runJSRender     bool
	runSummarize    bool
	runSkipProposal bool
)

func init() {
	runCommand.Flags().StringVarP(&runRFP, "rfp", "r", "", "Path to the RFP document, .pdf or .txt (required)")
	addCompanyFlags(runCommand, &runCompanyURL, &runCompanyPDF, &runMaxPages, &runOCR, &runJSRender)
	addRunFlags(runCommand, &runAnswers, &runOutputDir, &runDatabaseURL, &runSummarize, &runSkipProposal)

	if err := runCommand.MarkFlagRequired("rfp"); err != nil {
		panic(fmt.Sprintf("failed to mark rfp flag as required: %v", err))
	}

	rootCmd.AddCommand(runCommand)
}

// addCompanyFlags registers the company source and crawl flags shared by run and batch.
func addCompanyFlags(cmd *cobra.Command, url, pdf *string, maxPages *int, ocr, jsRender *bool) {
	cmd.Flags().StringVarP(url, "url", "u", "", "Company homepage URL (mutually exclusive with --pdf)")
	cmd.Flags().StringVar(pdf, "pdf", "", "Company profile PDF (mutually exclusive with --url)")
	cmd.Flags().IntVar(maxPages, "max-pages", 0, "Maximum pages to crawl (defaults to config crawl.max_pages)")
	cmd.Flags().BoolVar(ocr, "ocr", false, "Read partner names from logo images when none are found in text")
	cmd.Flags().BoolVar(jsRender, "js-render", false, "Render script-built pages in headless Chrome")
}

// addRunFlags registers the output and persistence flags shared by run and batch.
func addRunFlags(cmd *cobra.Command, answers, out, dbURL *string, summarize, skipProposal *bool) {
	cmd.Flags().StringVarP(answers, "answers", "a", "", "Answers file for the clarification questions, .yaml or .json (optional)")
	cmd.Flags().StringVarP(out, "out", "o", "output", "Output directory")
	cmd.Flags().StringVar(dbURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	cmd.Flags().BoolVar(summarize, "summarize", true, "Summarize the RFP to enrich the proposal")
	cmd.Flags().BoolVar(skipProposal, "skip-proposal", false, "Stop after recording the clarification answers")
}

// pipelineOptions builds the options shared by run and batch. The returned cleanup closes
// the client and the database.
func pipelineOptions(ctx context.Context, cmd *cobra.Command, url, pdf string) (pipeline.Options, func(), error) {
	var opts pipeline.Options
	if err := checkCompanySource(url, pdf); err != nil {
		return opts, nil, err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return opts, nil, err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return opts, nil, err
	}
	client, err := newClient(ctx, cfg)
	if err != nil {
		return opts, nil, err
	}

	cleanup := func() {
		_ = client.Close()
		_ = logger.Sync()
	}

	opts = pipeline.Options{
		CompanyURL:       url,
		CompanyPDF:       pdf,
		Budgets:          criteria.Budgets(cfg.Budgets),
		Website:          websiteOptions(cfg, client, logger),
		SummarizeWorkers: cfg.Summarize.Workers,
		ProposalWorkers:  cfg.Proposal.Workers,
		Client:           client,
		Logger:           logger,
		Out:              os.Stdout,
		Verbose:          cfg.Verbose,
	}

	database, err := openStore(ctx, cfg)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Warning: %v; artifacts will only be written to disk\n", err)
	} else if database != nil {
		opts.Store = database
		cleanup = func() {
			database.Close()
			_ = client.Close()
			_ = logger.Sync()
		}
	}
	return opts, cleanup, nil
}

func runPipelineCmd(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts, cleanup, err := pipelineOptions(ctx, cmd, runCompanyURL, runCompanyPDF)
	if err != nil {
		return err
	}
	defer cleanup()

	opts.RFPPath = runRFP
	opts.AnswersPath = runAnswers
	opts.OutDir = runOutputDir
	opts.Summarize = runSummarize
	opts.SkipProposal = runSkipProposal

	res, err := pipeline.Run(ctx, opts)
	if err != nil {
		return err
	}
	if opts.Store != nil {
		_, _ = fmt.Fprintf(os.Stdout, "Run ID: %s\n", res.RunID)
	}
	return nil
}
