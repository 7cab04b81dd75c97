package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/rfp-proposal/internal/llm"
	"github.com/jonathan/rfp-proposal/internal/types"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("DATABASE_URL", "")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 25, cfg.Crawl.MaxPages)
	assert.Equal(t, 6, cfg.Crawl.Workers)
	assert.Equal(t, 2.0, cfg.Crawl.RateLimit)
	assert.Equal(t, 4, cfg.Crawl.Burst)
	assert.Equal(t, 30*time.Second, cfg.Crawl.Timeout)
	assert.False(t, cfg.Crawl.OCR)
	assert.False(t, cfg.Crawl.JSRender)
	assert.Equal(t, 6, cfg.Summarize.Workers)
	assert.Equal(t, 6, cfg.Proposal.Workers)
	assert.InDelta(t, 0.40, cfg.Budgets[types.CategoryTechnical], 1e-9)
	assert.Equal(t, "gemini-2.5-flash", cfg.Models.Standard)
}

func TestLoad_YAMLFile(t *testing.T) {
	content := `
api_key: file-key
crawl:
  max_pages: 10
  js_render: true
  timeout: 45s
budgets:
  financial: 0.5
  technical: 0.5
  quality: 0
  timeline: 0
  other: 0
`
	path := filepath.Join(t.TempDir(), "rfp_agent.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	t.Setenv("GEMINI_API_KEY", "")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "file-key", cfg.APIKey)
	assert.Equal(t, 10, cfg.Crawl.MaxPages)
	assert.True(t, cfg.Crawl.JSRender)
	assert.Equal(t, 45*time.Second, cfg.Crawl.Timeout)
	assert.InDelta(t, 0.5, cfg.Budgets[types.CategoryFinancial], 1e-9)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("RFP_CRAWL_MAX_PAGES", "12")
	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("DATABASE_URL", "postgres://localhost/rfp")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 12, cfg.Crawl.MaxPages)
	assert.Equal(t, "env-key", cfg.APIKey)
	assert.Equal(t, "postgres://localhost/rfp", cfg.DatabaseURL)
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rfp_agent.json")
	require.NoError(t, os.WriteFile(path, []byte("{ invalid json }"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "max pages above hard cap", mutate: func(c *Config) { c.Crawl.MaxPages = 51 }, wantErr: "MaxPages"},
		{name: "zero workers", mutate: func(c *Config) { c.Summarize.Workers = 0 }, wantErr: "Workers"},
		{name: "missing model", mutate: func(c *Config) { c.Models.Advanced = "" }, wantErr: "Advanced"},
		{
			name:    "budgets do not sum to one",
			mutate:  func(c *Config) { c.Budgets[types.CategoryFinancial] = 0.9 },
			wantErr: "invalid category budgets",
		},
		{
			name:    "unknown budget category",
			mutate:  func(c *Config) { c.Budgets["pricing"] = 0 },
			wantErr: "unknown category",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLLMConfig(t *testing.T) {
	cfg := Default()
	cfg.Models.Advanced = "custom-pro"

	lc := cfg.LLMConfig()
	assert.Equal(t, "custom-pro", lc.GetModel(llm.TierAdvanced))
	assert.Equal(t, cfg.Models.Lite, lc.GetModel(llm.TierLite))
}

func TestFetcherConfig(t *testing.T) {
	cfg := Default()
	cfg.Crawl.Timeout = 5 * time.Second

	fc := cfg.FetcherConfig(nil)
	assert.Equal(t, cfg.Crawl.Workers, fc.Workers)
	assert.Equal(t, 5*time.Second, fc.Options.Timeout)
	assert.Equal(t, "ar,en;q=0.8", fc.Options.Headers["Accept-Language"])
}
