// Package config provides configuration loading and validation for the CLI.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/jonathan/rfp-proposal/internal/criteria"
	"github.com/jonathan/rfp-proposal/internal/fetch"
	"github.com/jonathan/rfp-proposal/internal/llm"
	"github.com/jonathan/rfp-proposal/internal/profile"
	"github.com/jonathan/rfp-proposal/internal/proposal"
	"github.com/jonathan/rfp-proposal/internal/summarize"
)

// EnvPrefix prefixes every environment override, e.g. RFP_CRAWL_MAX_PAGES.
const EnvPrefix = "RFP"

// Config represents the CLI configuration. Values come from defaults, an optional config
// file and RFP_* environment variables, in increasing precedence. CLI flags override all.
type Config struct {
	APIKey      string `mapstructure:"api_key"`
	DatabaseURL string `mapstructure:"database_url"`
	Verbose     bool   `mapstructure:"verbose"`

	Models    ModelsConfig       `mapstructure:"models"`
	Crawl     CrawlConfig        `mapstructure:"crawl"`
	Summarize WorkerConfig       `mapstructure:"summarize"`
	Proposal  WorkerConfig       `mapstructure:"proposal"`
	Budgets   map[string]float64 `mapstructure:"budgets"`
}

// ModelsConfig names the model used for each tier.
type ModelsConfig struct {
	Lite     string `mapstructure:"lite" validate:"required"`
	Standard string `mapstructure:"standard" validate:"required"`
	Advanced string `mapstructure:"advanced" validate:"required"`
}

// CrawlConfig controls company website extraction.
type CrawlConfig struct {
	MaxPages  int           `mapstructure:"max_pages" validate:"gte=1,lte=50"`
	Workers   int           `mapstructure:"workers" validate:"gte=1,lte=32"`
	RateLimit float64       `mapstructure:"rate_limit" validate:"gt=0"`
	Burst     int           `mapstructure:"burst" validate:"gte=1"`
	Timeout   time.Duration `mapstructure:"timeout" validate:"gt=0"`
	OCR       bool          `mapstructure:"ocr"`
	JSRender  bool          `mapstructure:"js_render"`
}

// WorkerConfig sizes a parallel stage.
type WorkerConfig struct {
	Workers int `mapstructure:"workers" validate:"gte=1,lte=32"`
}

// Load reads configuration. An empty path searches for rfp_agent.{yaml,json,toml} in the
// working directory and ./config, and a missing file is not an error there. An explicit
// path must exist.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("rfp_agent")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("api_key", EnvPrefix+"_API_KEY", "GEMINI_API_KEY")
	_ = v.BindEnv("database_url", EnvPrefix+"_DATABASE_URL", "DATABASE_URL")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}

func setDefaults(v *viper.Viper) {
	models := llm.DefaultGeminiConfig().Models
	v.SetDefault("models.lite", models[llm.TierLite])
	v.SetDefault("models.standard", models[llm.TierStandard])
	v.SetDefault("models.advanced", models[llm.TierAdvanced])

	v.SetDefault("crawl.max_pages", profile.DefaultMaxPages)
	v.SetDefault("crawl.workers", fetch.DefaultWorkers)
	v.SetDefault("crawl.rate_limit", fetch.DefaultRateLimit)
	v.SetDefault("crawl.burst", fetch.DefaultBurst)
	v.SetDefault("crawl.timeout", fetch.DefaultTimeout)
	v.SetDefault("crawl.ocr", false)
	v.SetDefault("crawl.js_render", false)

	v.SetDefault("summarize.workers", summarize.DefaultWorkers)
	v.SetDefault("proposal.workers", proposal.DefaultWorkers)

	budgets := map[string]any{}
	for cat, b := range criteria.DefaultBudgets() {
		budgets[cat] = b
	}
	v.SetDefault("budgets", budgets)
}

var validate = validator.New()

// Validate checks field ranges and that the category budgets sum to 1.0.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if err := criteria.Budgets(c.Budgets).Validate(); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}

// LLMConfig returns the model configuration for the text-understanding client.
func (c *Config) LLMConfig() *llm.Config {
	return llm.DefaultGeminiConfig().
		WithModel(llm.TierLite, c.Models.Lite).
		WithModel(llm.TierStandard, c.Models.Standard).
		WithModel(llm.TierAdvanced, c.Models.Advanced)
}

// FetcherConfig returns the page pool configuration.
func (c *Config) FetcherConfig(logger *zap.Logger) *fetch.FetcherConfig {
	opts := fetch.DefaultOptions()
	opts.Timeout = c.Crawl.Timeout
	return &fetch.FetcherConfig{
		Workers:   c.Crawl.Workers,
		RateLimit: c.Crawl.RateLimit,
		Burst:     c.Crawl.Burst,
		Options:   opts,
		Logger:    logger,
	}
}
