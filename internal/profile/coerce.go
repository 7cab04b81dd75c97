// Package profile builds the coerced company profile from a website or a PDF.
//
// Both producers converge on the same steps: the external service drafts a record,
// Coerce enforces the fixed schema and Merge folds in what was scraped mechanically.
package profile

import (
	"encoding/json"
	"strings"

	"github.com/jonathan/rfp-proposal/internal/llm"
	"github.com/jonathan/rfp-proposal/internal/types"
)

// Coerce enforces the fixed profile schema on an externally produced record. Missing
// fields, wrong container types and empty values all become the sentinel. It never fails.
func Coerce(raw map[string]any) *types.CompanyProfile {
	p := &types.CompanyProfile{}

	for _, key := range types.StringFieldKeys() {
		*p.StringField(key) = coerceString(raw[key])
	}
	for _, key := range types.ListFieldKeys() {
		*p.ListField(key) = coerceList(raw[key])
	}

	contact, _ := raw[types.KeyContact].(map[string]any)
	p.Contact = types.ContactBundle{
		Phones:  coerceList(contact[types.KeyContactPhones]),
		Emails:  coerceList(contact[types.KeyContactEmails]),
		Socials: coerceList(contact[types.KeyContactSocials]),
	}
	return p
}

// ParseDraft decodes the service response into a loose record. Malformed output yields
// an empty record and the decode error, so callers can log it and still coerce.
func ParseDraft(responseText string) (map[string]any, error) {
	var raw map[string]any
	if err := json.Unmarshal([]byte(llm.CleanJSONBlock(responseText)), &raw); err != nil {
		return map[string]any{}, err
	}
	if raw == nil {
		raw = map[string]any{}
	}
	return raw, nil
}

func coerceString(v any) string {
	s, ok := v.(string)
	if !ok {
		return types.NotAvailable
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return types.NotAvailable
	}
	return s
}

func coerceList(v any) []string {
	var items []string
	switch list := v.(type) {
	case []any:
		for _, item := range list {
			if s, ok := item.(string); ok {
				items = append(items, s)
			}
		}
	case []string:
		items = list
	default:
		return []string{types.NotAvailable}
	}
	return sentinelIfEmpty(compact(items))
}

// compact trims items and drops blanks and sentinels.
func compact(items []string) []string {
	out := make([]string, 0, len(items))
	for _, s := range items {
		s = strings.TrimSpace(s)
		if s == "" || s == types.NotAvailable {
			continue
		}
		out = append(out, s)
	}
	return out
}

func sentinelIfEmpty(items []string) []string {
	if len(items) == 0 {
		return []string{types.NotAvailable}
	}
	return items
}
