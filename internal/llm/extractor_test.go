package llm

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/rfp-proposal/internal/types"
)

func TestBuildExtractionPrompt_Layout(t *testing.T) {
	schema := ExtractionSchema{
		Description: "Extract things.",
		Fields: []SchemaField{
			{Name: "a", Type: `""`, Required: true, Description: "first"},
			{Name: "b", Type: "[]"},
		},
		Instructions: []string{"JSON only."},
		InputLabel:   "Text:",
	}

	prompt := BuildExtractionPrompt(schema, "hello")

	assert.True(t, strings.HasPrefix(prompt, "Extract things.\n\n{\n"))
	assert.Contains(t, prompt, `  "a": "", // required; first`)
	assert.Contains(t, prompt, `  "b": []`+"\n}")
	assert.Contains(t, prompt, "- JSON only.\n")
	assert.Less(t, strings.Index(prompt, "Text:"), strings.Index(prompt, "hello"))
}

func TestBuildExtractionPrompt_DefaultLabel(t *testing.T) {
	prompt := BuildExtractionPrompt(ExtractionSchema{Description: "x"}, "body")
	assert.Contains(t, prompt, "Input text:\n")
}

func TestCompanyProfileSchema_PrefillsEnglishName(t *testing.T) {
	schema := CompanyProfileSchema("Acme Trading")
	prompt := BuildExtractionPrompt(schema, "نص")

	assert.Contains(t, prompt, `"الاسم_بالإنجليزية": "Acme Trading"`)
	assert.Contains(t, prompt, `"الخدمات": []`)
	assert.Contains(t, prompt, `"التواصل": {"الهواتف": [], "الإيميلات": [], "وسائل_التواصل": []}`)
	assert.Contains(t, prompt, types.NotAvailable)
}

func TestCompanyProfileSchema_CoversEveryField(t *testing.T) {
	schema := CompanyProfileSchema("")
	names := make([]string, 0, len(schema.Fields))
	for _, f := range schema.Fields {
		names = append(names, f.Name)
	}
	for _, key := range append(types.StringFieldKeys(), types.ListFieldKeys()...) {
		assert.Contains(t, names, key)
	}
	assert.Contains(t, names, types.KeyContact)
}

func TestCriteriaSchema_ListsCategories(t *testing.T) {
	prompt := BuildExtractionPrompt(CriteriaSchema(), "كراسة")
	for _, c := range types.Categories() {
		assert.Contains(t, prompt, c)
	}
}

func TestNewClient_RequiresKey(t *testing.T) {
	_, err := NewClient(context.Background(), DefaultConfig(), "")
	require.ErrorIs(t, err, ErrNoAPIKey)
}

func TestNewClient_UnknownProvider(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = "openai"
	_, err := NewClient(context.Background(), cfg, "key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported")
}

func TestSplitLines(t *testing.T) {
	assert.Equal(t, []string{"Acme", "أكمي"}, splitLines("  Acme \n\n أكمي\r\n"))
	assert.Empty(t, splitLines(" \n "))
}
