package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/rfp-proposal/internal/observability"
	"github.com/jonathan/rfp-proposal/internal/pipeline"
	"github.com/jonathan/rfp-proposal/internal/pipeline/steps"
	"github.com/jonathan/rfp-proposal/internal/profile"
)

var extractCompanyCmd = &cobra.Command{
	Use:   "extract-company",
	Short: "Build a company profile from a website or PDF brochure",
	Long: "Crawls a company website (sitemap first, then homepage links) or reads a company profile " +
		"PDF, and writes the normalized Arabic company profile.",
	RunE: runExtractCompany,
}

var (
	extractCompanyURL       string
	extractCompanyPDF       string
	extractCompanyMaxPages  int
	extractCompanyOCR       bool
	extractCompanyJSRender  bool
	extractCompanyOutputDir string
)

func init() {
	extractCompanyCmd.Flags().StringVarP(&extractCompanyURL, "url", "u", "", "Company homepage URL (mutually exclusive with --pdf)")
	extractCompanyCmd.Flags().StringVar(&extractCompanyPDF, "pdf", "", "Company profile PDF (mutually exclusive with --url)")
	extractCompanyCmd.Flags().IntVar(&extractCompanyMaxPages, "max-pages", profile.DefaultMaxPages, fmt.Sprintf("Maximum pages to crawl (max: %d)", profile.HardMaxPages))
	extractCompanyCmd.Flags().BoolVar(&extractCompanyOCR, "ocr", false, "Read partner names from logo images when none are found in text")
	extractCompanyCmd.Flags().BoolVar(&extractCompanyJSRender, "js-render", false, "Render script-built pages in headless Chrome")
	extractCompanyCmd.Flags().StringVarP(&extractCompanyOutputDir, "out", "o", "", "Output directory (required)")

	if err := extractCompanyCmd.MarkFlagRequired("out"); err != nil {
		panic(fmt.Sprintf("failed to mark out flag as required: %v", err))
	}

	rootCmd.AddCommand(extractCompanyCmd)
}

func runExtractCompany(cmd *cobra.Command, _ []string) error {
	if err := checkCompanySource(extractCompanyURL, extractCompanyPDF); err != nil {
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

	p, err := buildProfile(ctx, cfg, client, logger, extractCompanyURL, extractCompanyPDF)
	if err != nil {
		return err
	}

	outPath := filepath.Join(extractCompanyOutputDir, steps.ArtifactFor(steps.ExtractCompany))
	if err := pipeline.WriteArtifact(outPath, pipeline.SchemaFor(outPath), p); err != nil {
		return fmt.Errorf("failed to write company profile: %w", err)
	}
	if cfg.Verbose {
		observability.NewPrinter(os.Stdout).PrintCompanyProfile(p)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Company: %s\n", p.CompanyName)
	_, _ = fmt.Fprintf(os.Stdout, "Sources: %d\n", len(p.Sources))
	_, _ = fmt.Fprintf(os.Stdout, "Profile: %s\n", outPath)
	return nil
}
