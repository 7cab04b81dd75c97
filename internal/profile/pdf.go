package profile

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/rfp-proposal/internal/contacts"
	"github.com/jonathan/rfp-proposal/internal/ingestion"
	"github.com/jonathan/rfp-proposal/internal/llm"
	"github.com/jonathan/rfp-proposal/internal/textnorm"
	"github.com/jonathan/rfp-proposal/internal/types"
)

// PDFOptions configures FromPDF.
type PDFOptions struct {
	MaxTextRunes int
	Logger       *zap.Logger
}

// FromPDF reads a company profile brochure and returns its coerced profile. Contacts are
// harvested from the raw text; section lists come only from the service draft.
func FromPDF(ctx context.Context, client llm.Client, path string, opts *PDFOptions) (*types.CompanyProfile, error) {
	if opts == nil {
		opts = &PDFOptions{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	limit := opts.MaxTextRunes
	if limit <= 0 {
		limit = DefaultMaxTextRunes
	}

	doc, err := ingestion.LoadDocument(path)
	if err != nil {
		return nil, err
	}
	logger.Info("company document loaded", zap.String("path", path), zap.Int("chars", len(doc.Text)))

	text := textnorm.Truncate(textnorm.CleanLinks(doc.Text), limit)
	draft, err := Draft(ctx, client, "", text, logger)
	if err != nil {
		return nil, err
	}

	p := Merge(Coerce(draft), &Scraped{Contacts: contacts.HarvestText(doc.Text)})
	p.Sources = []types.Source{{
		URL:       doc.Source,
		Timestamp: doc.FetchedAt.UTC().Format(time.RFC3339),
		Hash:      computeHash(doc.Text),
	}}
	return p, nil
}
