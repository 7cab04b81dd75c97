package proposal

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/rfp-proposal/internal/llm"
	"github.com/jonathan/rfp-proposal/internal/prompts"
	"github.com/jonathan/rfp-proposal/internal/types"
)

// Document layout.
const (
	Title            = "العرض الفني"
	EnglishTitle     = "Technical Proposal"
	sectionSeparator = "\n\n---\n\n"
	noExtraRules     = "—"
	maxFallbackLines = 10
	writerTemp       = float32(0.3)
	DefaultWorkers   = 6
)

// Input holds everything the section writers draw on. Only Criteria and Profile are
// required.
type Input struct {
	Criteria *types.CriteriaSet
	// Summary is the combined chunk summary of the RFP, when one was produced.
	Summary string
	Profile *types.CompanyProfile
	Gaps    *types.GapReport
	History *types.ChatHistory
}

// Options configures a Generator.
type Options struct {
	Workers int
	Logger  *zap.Logger
}

// Generator drafts proposal sections through the text-understanding service.
type Generator struct {
	client  llm.Client
	workers int
	logger  *zap.Logger
}

// NewGenerator creates a Generator. A nil opts uses six workers and no logging.
func NewGenerator(client llm.Client, opts *Options) *Generator {
	if opts == nil {
		opts = &Options{}
	}
	g := &Generator{client: client, workers: opts.Workers, logger: opts.Logger}
	if g.workers <= 0 {
		g.workers = DefaultWorkers
	}
	if g.logger == nil {
		g.logger = zap.NewNop()
	}
	return g
}

// sectionContext is the shared part of every section prompt.
type sectionContext struct {
	rfpSummary  string
	companyInfo string
	gapSummary  string
	answers     string
}

// Generate writes every fixed section concurrently and assembles them in outline order.
// Any failed section fails the proposal.
func (g *Generator) Generate(ctx context.Context, in *Input) (*types.Proposal, error) {
	if in == nil || in.Criteria == nil || in.Profile == nil {
		return nil, eris.New("proposal: criteria and company profile are required")
	}

	companyInfo, err := json.MarshalIndent(in.Profile, "", "  ")
	if err != nil {
		return nil, eris.Wrap(err, "proposal: encode company profile")
	}
	shared := &sectionContext{
		rfpSummary:  RFPSummary(in.Criteria, in.Summary),
		companyInfo: string(companyInfo),
		gapSummary:  GapSummary(in.Gaps),
		answers:     AnswersSummary(in.History),
	}

	outline := FixedSections()
	written := make([]types.ProposalSection, len(outline))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(g.workers)
	for i, sec := range outline {
		eg.Go(func() error {
			body, err := g.client.GenerateContent(llm.WithTemperature(egCtx, writerTemp),
				BuildSectionPrompt(sec, shared), llm.TierAdvanced)
			if err != nil {
				return eris.Wrapf(err, "proposal: write section %q", sec.Name)
			}
			written[i] = types.ProposalSection{Name: sec.Name, Body: strings.TrimSpace(body)}
			g.logger.Debug("section written", zap.String("section", sec.Name), zap.Int("chars", len(body)))
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return &types.Proposal{
		Title:    Title,
		Sections: written,
		Markdown: Assemble(written),
	}, nil
}

// BuildSectionPrompt renders the writer prompt for one section.
func BuildSectionPrompt(sec Section, c *sectionContext) string {
	return prompts.Format(prompts.MustGet("proposal.json", "write-section"), map[string]string{
		"SectionName":        sec.Name,
		"RFPSummary":         c.rfpSummary,
		"CompanyInfo":        c.companyInfo,
		"GapSummary":         c.gapSummary,
		"Answers":            c.answers,
		"SectionDescription": sec.Description,
		"ExtraRules":         ExtraRules(sec.Name),
	})
}

// ExtraRules returns the additional rules for sensitive sections, or "—" when none apply.
func ExtraRules(sectionName string) string {
	var rules []string
	switch sectionName {
	case SectionCompanyOverview, SectionGovProjects, SectionStaffing:
		rules = append(rules, prompts.MustGet("proposal.json", "rule-company-only"))
	case SectionPricing:
		rules = append(rules, prompts.MustGet("proposal.json", "rule-pricing"))
	case SectionOperationalNeed:
		rules = append(rules, prompts.MustGet("proposal.json", "rule-operational"))
	}
	if len(rules) == 0 {
		return noExtraRules
	}
	return strings.Join(rules, "\n- ")
}

// RFPSummary returns the criteria summary followed by the chunk summary. When both are
// empty it lists the first ten criteria instead.
func RFPSummary(criteria *types.CriteriaSet, chunkSummary string) string {
	var parts []string
	for _, s := range []string{criteria.Summary, chunkSummary} {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	if len(parts) > 0 {
		return strings.Join(parts, "\n\n")
	}

	lines := make([]string, 0, maxFallbackLines)
	for i, c := range criteria.Criteria {
		if i == maxFallbackLines {
			break
		}
		lines = append(lines, fmt.Sprintf("- %s: %s", c.Name, c.Description))
	}
	return "RFP Criteria:\n" + strings.Join(lines, "\n")
}

// GapSummary renders the covered and not-covered counts of a gap report.
func GapSummary(r *types.GapReport) string {
	if r == nil {
		return ""
	}
	return fmt.Sprintf("مغطى: %d, غير مغطى: %d", len(r.CoveredRequirements), len(r.NotCoveredRequirements))
}

// AnswersSummary renders the number of clarification questions in a chat history.
func AnswersSummary(h *types.ChatHistory) string {
	if h == nil {
		return ""
	}
	return fmt.Sprintf("إجمالي الأسئلة المجاب عليها: %d", h.TotalQuestions)
}

// Assemble renders written sections as one Markdown document under the bilingual header.
func Assemble(sections []types.ProposalSection) string {
	parts := make([]string, len(sections))
	for i, s := range sections {
		parts[i] = fmt.Sprintf("### %s\n\n%s", s.Name, s.Body)
	}
	return fmt.Sprintf("# %s\n# %s\n\n%s\n", Title, EnglishTitle, strings.Join(parts, sectionSeparator))
}
