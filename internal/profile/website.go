package profile

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/jonathan/rfp-proposal/internal/contacts"
	"github.com/jonathan/rfp-proposal/internal/crawling"
	"github.com/jonathan/rfp-proposal/internal/fetch"
	"github.com/jonathan/rfp-proposal/internal/ingestion"
	"github.com/jonathan/rfp-proposal/internal/llm"
	"github.com/jonathan/rfp-proposal/internal/sections"
	"github.com/jonathan/rfp-proposal/internal/textnorm"
	"github.com/jonathan/rfp-proposal/internal/types"
)

// Page caps for website extraction.
const (
	DefaultMaxPages = 25
	HardMaxPages    = 50
	// DefaultMaxTextRunes bounds the Arabic text sent to the service.
	DefaultMaxTextRunes = 18000
	// maxRenderedContactPages bounds the JS-render retry.
	maxRenderedContactPages = 3
)

var contactPathHints = []string{"contact", "تواصل", "اتصل"}

// WebsiteOptions configures FromWebsite. Feature toggles are explicit fields so runs
// are reproducible.
type WebsiteOptions struct {
	MaxPages     int
	MaxTextRunes int
	// OCR enables logo text recognition when no partner names were found in text.
	OCR bool
	// JSRender enables the headless browser retry for contact pages and script-built sites.
	JSRender    bool
	Fetcher     *fetch.Fetcher
	FetchOpts   *fetch.Options
	Renderer    fetch.Renderer
	ImageReader sections.ImageReader
	Logger      *zap.Logger
}

// DefaultWebsiteOptions returns the defaults: 25 pages, OCR and JS rendering off.
func DefaultWebsiteOptions() *WebsiteOptions {
	return &WebsiteOptions{
		MaxPages:     DefaultMaxPages,
		MaxTextRunes: DefaultMaxTextRunes,
	}
}

// FromWebsite crawls a company website and returns its coerced profile.
// Pages that fail to load are skipped. A site with no readable page at all fails with
// *ingestion.EmptyDocumentError.
func FromWebsite(ctx context.Context, client llm.Client, rootURL string, opts *WebsiteOptions) (*types.CompanyProfile, error) {
	opts = withWebsiteDefaults(opts)
	logger := opts.Logger

	urls, err := crawling.DiscoverPages(ctx, rootURL, opts.MaxPages, opts.FetchOpts, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("pages selected", zap.String("root", rootURL), zap.Int("count", len(urls)))

	results, err := opts.Fetcher.FetchAll(ctx, urls)
	if err != nil {
		return nil, err
	}

	h := newSiteHarvest(logger)
	for _, res := range results {
		if res == nil {
			continue
		}
		h.addPage(res.URL, res.HTML)
		if opts.JSRender && opts.Renderer != nil && needsRender(res) {
			h.addRendered(ctx, opts.Renderer, res.URL, true)
		}
	}
	if len(h.texts) == 0 {
		return nil, &ingestion.EmptyDocumentError{Source: rootURL}
	}

	if opts.JSRender && opts.Renderer != nil && len(h.bundle().Emails) == 0 {
		for _, u := range h.contactPages(maxRenderedContactPages) {
			h.addRendered(ctx, opts.Renderer, u, false)
		}
	}

	scrapedSections := h.sections
	if opts.OCR && len(scrapedSections.Partners) == 0 && opts.ImageReader != nil {
		scrapedSections.Partners = sections.ReadLogos(ctx, opts.ImageReader, scrapedSections.LogoURLs,
			&sections.LogoOptions{Fetch: opts.FetchOpts, Logger: logger})
		logger.Info("partner logos read", zap.Int("names", len(scrapedSections.Partners)))
	}

	english := sections.DetectEnglishName(h.docs...)
	merged := textnorm.KeepArabic(textnorm.CleanLinks(strings.Join(h.texts, "\n\n")))
	merged = textnorm.Truncate(merged, opts.MaxTextRunes)

	draft, err := Draft(ctx, client, english, merged, logger)
	if err != nil {
		return nil, err
	}

	p := Coerce(draft)
	if p.EnglishName == types.NotAvailable && english != types.NotAvailable {
		p.EnglishName = english
	}
	p = Merge(p, ScrapedFromSections(scrapedSections, h.bundle()))
	p.Sources = h.sources
	return p, nil
}

// Draft asks the service for a profile record. A malformed response is logged and
// replaced by an empty record; a failed call is returned.
func Draft(ctx context.Context, client llm.Client, englishName, arabicText string, logger *zap.Logger) (map[string]any, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	prompt := llm.BuildExtractionPrompt(llm.CompanyProfileSchema(englishName), arabicText)
	resp, err := client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, fmt.Errorf("failed to draft company profile: %w", err)
	}
	draft, err := ParseDraft(resp)
	if err != nil {
		logger.Warn("malformed profile draft, coercing empty record",
			zap.Error(err), zap.Int("response_len", len(resp)))
	}
	return draft, nil
}

func withWebsiteDefaults(opts *WebsiteOptions) *WebsiteOptions {
	if opts == nil {
		opts = DefaultWebsiteOptions()
	}
	o := *opts
	if o.MaxPages <= 0 {
		o.MaxPages = DefaultMaxPages
	}
	if o.MaxPages > HardMaxPages {
		o.MaxPages = HardMaxPages
	}
	if o.MaxTextRunes <= 0 {
		o.MaxTextRunes = DefaultMaxTextRunes
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.Fetcher == nil {
		cfg := fetch.DefaultFetcherConfig()
		if o.FetchOpts != nil {
			cfg.Options = o.FetchOpts
		}
		cfg.Logger = o.Logger
		o.Fetcher = fetch.NewFetcher(cfg)
	}
	if o.JSRender && o.Renderer == nil {
		o.Renderer = &fetch.ChromeRenderer{Logger: o.Logger}
	}
	return &o
}

// needsRender reports whether a page was built by scripts and came back nearly empty.
func needsRender(res *fetch.Result) bool {
	if res.Rendered {
		return false
	}
	platform := fetch.DetectPlatform(res.HTML)
	if !fetch.NeedsRendering(platform) {
		return false
	}
	text, err := fetch.ExtractMainText(res.HTML, fetch.PlatformContentSelectors(platform), fetch.PlatformNoiseSelectors(platform)...)
	return err != nil || fetch.ShouldUseBrowser(text)
}

// siteHarvest accumulates per-page results. Every merge is a union, so page order
// does not change the outcome.
type siteHarvest struct {
	logger   *zap.Logger
	texts    []string
	docs     []*goquery.Document
	bundles  []*types.ContactBundle
	sections *sections.Result
	sources  []types.Source
	urls     []string
}

func newSiteHarvest(logger *zap.Logger) *siteHarvest {
	return &siteHarvest{logger: logger, sections: &sections.Result{}}
}

func (h *siteHarvest) addPage(pageURL, markup string) {
	doc, err := fetch.ParseHTML(markup)
	if err != nil {
		h.logger.Warn("page skipped: unparseable markup", zap.String("url", pageURL), zap.Error(err))
		return
	}
	h.docs = append(h.docs, doc)
	h.texts = append(h.texts, fetch.VisibleText(doc))
	h.bundles = append(h.bundles, contacts.Harvest(markup))
	h.sections = h.sections.Union(sections.Extract(doc, pageURL))
	h.urls = append(h.urls, pageURL)
	h.sources = append(h.sources, types.Source{
		URL:       pageURL,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Hash:      computeHash(markup),
	})
}

// addRendered re-reads a page through the browser. The rendered text is kept only for
// pages whose static markup was empty.
func (h *siteHarvest) addRendered(ctx context.Context, r fetch.Renderer, pageURL string, withText bool) {
	markup, err := r.Render(ctx, pageURL)
	if err != nil {
		h.logger.Warn("render failed", zap.String("url", pageURL), zap.Error(err))
		return
	}
	doc, err := fetch.ParseHTML(markup)
	if err != nil {
		return
	}
	if withText {
		h.texts = append(h.texts, fetch.VisibleText(doc))
	}
	h.docs = append(h.docs, doc)
	h.bundles = append(h.bundles, contacts.Harvest(markup))
	h.sections = h.sections.Union(sections.Extract(doc, pageURL))
}

func (h *siteHarvest) bundle() *types.ContactBundle {
	return contacts.Merge(h.bundles...)
}

// contactPages returns up to limit fetched pages whose path looks like a contact page.
func (h *siteHarvest) contactPages(limit int) []string {
	var out []string
	for _, u := range h.urls {
		parsed, err := url.Parse(u)
		if err != nil {
			continue
		}
		path := strings.ToLower(parsed.Path)
		if unescaped, err := url.PathUnescape(path); err == nil {
			path = unescaped
		}
		for _, hint := range contactPathHints {
			if strings.Contains(path, hint) {
				out = append(out, u)
				break
			}
		}
		if len(out) >= limit {
			break
		}
	}
	return out
}

func computeHash(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}
