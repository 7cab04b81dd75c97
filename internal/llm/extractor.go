// Package llm - extractor.go provides schema-driven prompts for structured extraction.
package llm

import (
	"fmt"
	"strings"

	"github.com/jonathan/rfp-proposal/internal/prompts"
	"github.com/jonathan/rfp-proposal/internal/types"
)

// ExtractionSchema defines the structure for LLM-based content extraction.
// It provides a reusable way to define what information to extract from text.
type ExtractionSchema struct {
	Name         string        // Schema name (e.g., "RFPCriteria", "CompanyProfile")
	Description  string        // Preamble describing the extraction task
	Fields       []SchemaField // Expected output fields
	Instructions []string      // Rules appended after the output skeleton
	InputLabel   string        // Heading placed before the input text
}

// SchemaField defines a single field in the extraction output.
type SchemaField struct {
	Name        string // JSON field name
	Type        string // Type hint rendered into the skeleton, e.g. `""`, `[]`
	Description string // Description for the LLM
	Required    bool   // Whether this field is required
}

// BuildExtractionPrompt constructs the LLM prompt from schema and input text.
func BuildExtractionPrompt(schema ExtractionSchema, inputText string) string {
	var sb strings.Builder

	sb.WriteString(strings.TrimSpace(schema.Description))
	sb.WriteString("\n\n{\n")
	for i, field := range schema.Fields {
		typeHint := field.Type
		if typeHint == "" {
			typeHint = `""`
		}
		sb.WriteString(fmt.Sprintf("  %q: %s", field.Name, typeHint))
		if i < len(schema.Fields)-1 {
			sb.WriteString(",")
		}
		var notes []string
		if field.Required {
			notes = append(notes, "required")
		}
		if field.Description != "" {
			notes = append(notes, field.Description)
		}
		if len(notes) > 0 {
			sb.WriteString(" // " + strings.Join(notes, "; "))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n\n")

	for _, rule := range schema.Instructions {
		sb.WriteString("- ")
		sb.WriteString(rule)
		sb.WriteString("\n")
	}
	if len(schema.Instructions) > 0 {
		sb.WriteString("\n")
	}

	label := schema.InputLabel
	if label == "" {
		label = "Input text:"
	}
	sb.WriteString(label)
	sb.WriteString("\n-----------------------------\n")
	sb.WriteString(inputText)
	sb.WriteString("\n-----------------------------\n")

	return sb.String()
}

// --- Predefined Schemas ---

// CriteriaSchema returns the extraction schema for RFP evaluation criteria.
func CriteriaSchema() ExtractionSchema {
	return ExtractionSchema{
		Name:        "RFPCriteria",
		Description: prompts.MustGet("rfp.json", "extract-criteria"),
		Fields: []SchemaField{
			{
				Name:        "summary",
				Type:        `""`,
				Description: "ملخص لجميع معايير الكراسة",
				Required:    true,
			},
			{
				Name:        "criteria",
				Type:        `[{"name": "", "category": "financial|technical|quality|timeline|other", "description": "", "weight": null}]`,
				Description: "جميع المعايير؛ الوزن فقط إذا ذُكر صراحة في الكراسة",
				Required:    true,
			},
		},
		Instructions: []string{
			"أعد كائن JSON فقط دون أي شرح أو تنسيق Markdown.",
			"استخدم قيمة category من القائمة المحددة فقط.",
			"اكتب الأسماء والأوصاف باللغة العربية.",
		},
		InputLabel: "النص:",
	}
}

// CompanyProfileSchema returns the extraction schema for the company profile. The English
// name detected from page metadata is pre-filled so the model keeps it.
func CompanyProfileSchema(englishName string) ExtractionSchema {
	fields := make([]SchemaField, 0, len(types.StringFieldKeys())+len(types.ListFieldKeys())+1)
	for _, key := range types.StringFieldKeys() {
		f := SchemaField{Name: key, Type: `""`}
		if key == types.KeyEnglishName && englishName != "" {
			f.Type = fmt.Sprintf("%q", englishName)
		}
		fields = append(fields, f)
	}
	for _, key := range types.ListFieldKeys() {
		fields = append(fields, SchemaField{Name: key, Type: "[]"})
	}
	fields = append(fields, SchemaField{
		Name: types.KeyContact,
		Type: fmt.Sprintf(`{%q: [], %q: [], %q: []}`, types.KeyContactPhones, types.KeyContactEmails, types.KeyContactSocials),
	})

	return ExtractionSchema{
		Name:        "CompanyProfile",
		Description: prompts.MustGet("company.json", "extract-profile"),
		Fields:      fields,
		Instructions: []string{
			fmt.Sprintf("إذا لم توجد معلومة اكتب %q.", types.NotAvailable),
			"أعد كائن JSON فقط.",
		},
		InputLabel: "النص العربي:",
	}
}
