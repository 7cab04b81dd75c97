package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/jonathan/rfp-proposal/internal/config"
	"github.com/jonathan/rfp-proposal/internal/db"
	"github.com/jonathan/rfp-proposal/internal/fetch"
	"github.com/jonathan/rfp-proposal/internal/llm"
	"github.com/jonathan/rfp-proposal/internal/logging"
	"github.com/jonathan/rfp-proposal/internal/profile"
	"github.com/jonathan/rfp-proposal/internal/types"
)

var errNoAPIKey = errors.New("GEMINI_API_KEY environment variable or --api-key flag is required")

// loadConfig merges the config file and environment with the flags explicitly set on cmd.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	applyFlagOverrides(cfg, cmd.Flags())
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Verbose && configPath != "" {
		_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", configPath)
	}
	return cfg, nil
}

// applyFlagOverrides copies only the flags that were explicitly set.
func applyFlagOverrides(cfg *config.Config, flags *pflag.FlagSet) {
	if flags.Changed("api-key") {
		cfg.APIKey, _ = flags.GetString("api-key")
	}
	if flags.Changed("verbose") {
		cfg.Verbose, _ = flags.GetBool("verbose")
	}
	if flags.Changed("db-url") {
		cfg.DatabaseURL, _ = flags.GetString("db-url")
	}
	if flags.Changed("max-pages") {
		cfg.Crawl.MaxPages, _ = flags.GetInt("max-pages")
	}
	if flags.Changed("ocr") {
		cfg.Crawl.OCR, _ = flags.GetBool("ocr")
	}
	if flags.Changed("js-render") {
		cfg.Crawl.JSRender, _ = flags.GetBool("js-render")
	}
}

func newClient(ctx context.Context, cfg *config.Config) (*llm.GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, errNoAPIKey
	}
	client, err := llm.NewClient(ctx, cfg.LLMConfig(), cfg.APIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return client, nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	logger, err := logging.New(cfg.Verbose)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return logger, nil
}

// websiteOptions builds crawl options from cfg. The client doubles as the logo reader.
func websiteOptions(cfg *config.Config, client *llm.GeminiClient, logger *zap.Logger) *profile.WebsiteOptions {
	fetchCfg := cfg.FetcherConfig(logger)
	opts := &profile.WebsiteOptions{
		MaxPages:  cfg.Crawl.MaxPages,
		OCR:       cfg.Crawl.OCR,
		JSRender:  cfg.Crawl.JSRender,
		Fetcher:   fetch.NewFetcher(fetchCfg),
		FetchOpts: fetchCfg.Options,
		Logger:    logger,
	}
	if cfg.Crawl.JSRender {
		opts.Renderer = &fetch.ChromeRenderer{Timeout: cfg.Crawl.Timeout, Logger: logger}
	}
	if client != nil {
		opts.ImageReader = client
	}
	return opts
}

// checkCompanySource requires exactly one of url and pdf.
func checkCompanySource(url, pdf string) error {
	if url == "" && pdf == "" {
		return fmt.Errorf("either --url or --pdf must be provided")
	}
	if url != "" && pdf != "" {
		return fmt.Errorf("--url and --pdf are mutually exclusive; provide only one")
	}
	return nil
}

// buildProfile extracts the company profile from a website or a PDF brochure.
func buildProfile(ctx context.Context, cfg *config.Config, client *llm.GeminiClient, logger *zap.Logger, url, pdf string) (*types.CompanyProfile, error) {
	if url != "" {
		p, err := profile.FromWebsite(ctx, client, url, websiteOptions(cfg, client, logger))
		if err != nil {
			return nil, fmt.Errorf("failed to build company profile from %s: %w", url, err)
		}
		return p, nil
	}
	p, err := profile.FromPDF(ctx, client, pdf, &profile.PDFOptions{Logger: logger})
	if err != nil {
		return nil, fmt.Errorf("failed to build company profile from %s: %w", pdf, err)
	}
	return p, nil
}

// openStore connects to the artifact store when a database URL is configured. A nil DB
// with a nil error means persistence is disabled.
func openStore(ctx context.Context, cfg *config.Config) (*db.DB, error) {
	if cfg.DatabaseURL == "" {
		return nil, nil
	}
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.Migrate(ctx); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return database, nil
}
