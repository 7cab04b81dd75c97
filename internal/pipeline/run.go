// Package pipeline orchestrates one RFP through extraction, gap analysis, clarification and
// proposal writing, and drives batches of RFPs.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/rfp-proposal/internal/clarify"
	"github.com/jonathan/rfp-proposal/internal/criteria"
	"github.com/jonathan/rfp-proposal/internal/db"
	"github.com/jonathan/rfp-proposal/internal/gaps"
	"github.com/jonathan/rfp-proposal/internal/ingestion"
	"github.com/jonathan/rfp-proposal/internal/llm"
	"github.com/jonathan/rfp-proposal/internal/observability"
	"github.com/jonathan/rfp-proposal/internal/pipeline/steps"
	"github.com/jonathan/rfp-proposal/internal/profile"
	"github.com/jonathan/rfp-proposal/internal/proposal"
	"github.com/jonathan/rfp-proposal/internal/questions"
	"github.com/jonathan/rfp-proposal/internal/summarize"
	"github.com/jonathan/rfp-proposal/internal/types"
)

// Store persists runs and their artifacts. *db.DB implements it.
type Store interface {
	CreateRun(ctx context.Context, unit, rfpSource, companySource string) (uuid.UUID, error)
	CompleteRun(ctx context.Context, runID uuid.UUID, status string) error
	SaveArtifact(ctx context.Context, runID uuid.UUID, step, category string, content any) error
	SaveTextArtifact(ctx context.Context, runID uuid.UUID, step, category, text string) error
	StartStep(ctx context.Context, runID uuid.UUID, step string) error
	FinishStep(ctx context.Context, runID uuid.UUID, step string, duration time.Duration, stepErr error) error
}

// Options configures Run.
type Options struct {
	// RFPPath is the RFP document, PDF or text.
	RFPPath string
	// CompanyURL or CompanyPDF is the company source. Profile, when set, is used as is and
	// neither source is read.
	CompanyURL string
	CompanyPDF string
	Profile    *types.CompanyProfile
	// AnswersPath optionally holds answers to the clarification questions (YAML or JSON).
	AnswersPath string
	OutDir      string

	Summarize    bool
	SkipProposal bool

	Budgets          criteria.Budgets
	Website          *profile.WebsiteOptions
	SummarizeWorkers int
	ProposalWorkers  int

	Client llm.Client
	Store  Store
	Logger *zap.Logger
	// Out receives step progress. Defaults to os.Stdout.
	Out     io.Writer
	Verbose bool
}

// Result holds everything one run produced.
type Result struct {
	Unit     string
	RunID    uuid.UUID
	Criteria *types.CriteriaSet
	Summary  *types.RFPSummary
	Profile  *types.CompanyProfile
	Gaps     *types.GapReport
	History  *types.ChatHistory
	Proposal *types.Proposal
	Drift    []criteria.WeightDrift
}

type runner struct {
	opts    Options
	unit    string
	out     io.Writer
	printer *observability.Printer
	logger  *zap.Logger
	runID   uuid.UUID

	mu        sync.Mutex
	completed map[string]bool
}

const totalSteps = 6

// stepLabels numbers the stages in progress output. The summary is an optional sub-step
// of the RFP branch.
var stepLabels = map[string]string{
	steps.ExtractCriteria:     "1",
	steps.SummarizeRFP:        "1b",
	steps.ExtractCompany:      "2",
	steps.AnalyzeGaps:         "3",
	steps.SynthesizeQuestions: "4",
	steps.RecordAnswers:       "5",
	steps.GenerateProposal:    "6",
}

// lockedWriter serializes progress output from the concurrent branches.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

// UnitName derives the unit name of an RFP from its file name.
func UnitName(rfpPath string) string {
	return strings.TrimSuffix(filepath.Base(rfpPath), filepath.Ext(rfpPath))
}

// Run executes the pipeline for one RFP. Artifacts are written to opts.OutDir and, when a
// Store is configured, persisted under a new run id. Any stage failure is returned as a
// *UnitError.
func Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.Client == nil {
		return nil, eris.New("pipeline: text-understanding client is required")
	}
	if opts.RFPPath == "" {
		return nil, eris.New("pipeline: RFP path is required")
	}
	if opts.Profile == nil && opts.CompanyURL == "" && opts.CompanyPDF == "" {
		return nil, eris.New("pipeline: a company URL, PDF or profile is required")
	}
	if opts.Budgets == nil {
		opts.Budgets = criteria.DefaultBudgets()
	}
	if opts.OutDir == "" {
		opts.OutDir = "."
	}

	r := newRunner(opts, UnitName(opts.RFPPath))

	res, err := r.run(ctx)
	if r.opts.Store != nil && r.runID != uuid.Nil {
		status := db.RunStatusCompleted
		if err != nil {
			status = db.RunStatusFailed
		}
		if cerr := r.opts.Store.CompleteRun(ctx, r.runID, status); cerr != nil {
			r.logger.Warn("failed to complete run record", zap.Error(cerr))
		}
	}
	return res, err
}

func newRunner(opts Options, unit string) *runner {
	r := &runner{
		opts:      opts,
		unit:      unit,
		out:       opts.Out,
		logger:    opts.Logger,
		completed: map[string]bool{},
	}
	if r.out == nil {
		r.out = os.Stdout
	}
	r.out = &lockedWriter{w: r.out}
	if r.logger == nil {
		r.logger = zap.NewNop()
	}
	r.logger = r.logger.With(zap.String("unit", unit))
	r.printer = observability.NewPrinter(r.out)
	return r
}

func (r *runner) run(ctx context.Context) (*Result, error) {
	res := &Result{Unit: r.unit}

	if r.opts.Store != nil {
		id, err := r.opts.Store.CreateRun(ctx, r.unit, r.opts.RFPPath, r.companySource())
		if err != nil {
			r.logger.Warn("failed to create run record, continuing without persistence", zap.Error(err))
			r.opts.Store = nil
		} else {
			r.runID = id
			res.RunID = id
			if r.opts.Verbose {
				r.printf("[VERBOSE] Created database run: %s\n", id)
			}
		}
	}

	r.printf("\nStarting RFP and company branches for %s...\n\n", r.unit)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return r.rfpBranch(gCtx, res)
	})
	g.Go(func() error {
		return r.companyBranch(gCtx, res)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := r.stage(ctx, steps.AnalyzeGaps, "Analyzing coverage gaps", func(ctx context.Context) error {
		items, err := gaps.Classify(ctx, r.opts.Client, res.Criteria.Criteria, gaps.CapabilityText(res.Profile))
		if err != nil {
			return err
		}
		res.Gaps = gaps.BuildReport(items, r.logger)
		return nil
	}); err != nil {
		return nil, err
	}

	if err := r.stage(ctx, steps.SynthesizeQuestions, "Writing clarification questions", func(ctx context.Context) error {
		missing := res.Gaps.MissingRequirements()
		if len(missing) == 0 {
			return r.save(ctx, steps.SynthesizeQuestions, db.StepGapAnalysis, db.CategoryAnalysis, res.Gaps)
		}
		qs, err := questions.Synthesize(ctx, r.opts.Client, missing, r.logger)
		if err != nil {
			return err
		}
		res.Gaps.ClarificationQuestions = qs
		if r.opts.Verbose {
			r.printer.PrintGapReport(res.Gaps)
			r.printer.PrintQuestions(qs)
		}
		return r.save(ctx, steps.SynthesizeQuestions, db.StepGapAnalysis, db.CategoryAnalysis, res.Gaps)
	}); err != nil {
		return nil, err
	}

	if err := r.stage(ctx, steps.RecordAnswers, "Recording clarification answers", func(ctx context.Context) error {
		var answers []string
		var additional string
		if r.opts.AnswersPath != "" {
			f, err := clarify.LoadAnswers(r.opts.AnswersPath)
			if err != nil {
				return err
			}
			answers, additional = f.Answers, f.AdditionalInfo
		}
		res.History = clarify.BuildHistory(res.Gaps.ClarificationQuestions, answers, additional, time.Now())
		return r.save(ctx, steps.RecordAnswers, db.StepChatHistory, db.CategoryAnalysis, res.History)
	}); err != nil {
		return nil, err
	}

	if r.opts.SkipProposal {
		r.printf("\nPipeline completed for %s (proposal skipped). Artifacts in %s\n", r.unit, r.opts.OutDir)
		return res, nil
	}

	if err := r.stage(ctx, steps.GenerateProposal, "Writing the technical proposal", func(ctx context.Context) error {
		in := &proposal.Input{
			Criteria: res.Criteria,
			Profile:  res.Profile,
			Gaps:     res.Gaps,
			History:  res.History,
		}
		if res.Summary != nil {
			in.Summary = res.Summary.Combined
		}
		gen := proposal.NewGenerator(r.opts.Client, &proposal.Options{Workers: r.opts.ProposalWorkers, Logger: r.logger})
		p, err := gen.Generate(ctx, in)
		if err != nil {
			return err
		}
		res.Proposal = p
		if r.opts.Verbose {
			r.printer.PrintProposal(p)
		}

		mdPath := filepath.Join(r.opts.OutDir, steps.ArtifactFor(steps.GenerateProposal))
		if err := proposal.WriteMarkdown(mdPath, p); err != nil {
			return err
		}
		docxPath := strings.TrimSuffix(mdPath, filepath.Ext(mdPath)) + ".docx"
		if err := proposal.WriteDOCX(docxPath, p); err != nil {
			return err
		}
		r.persistText(ctx, db.StepProposal, db.CategoryProposal, p.Markdown)
		return nil
	}); err != nil {
		return nil, err
	}

	r.printf("\nPipeline completed for %s. Artifacts in %s\n", r.unit, r.opts.OutDir)
	return res, nil
}

// rfpBranch extracts and weights the criteria and, when enabled, summarizes the RFP.
func (r *runner) rfpBranch(ctx context.Context, res *Result) error {
	var doc *types.RawDocument
	if err := r.stage(ctx, steps.ExtractCriteria, "Extracting evaluation criteria", func(ctx context.Context) error {
		var err error
		doc, err = ingestion.LoadDocument(r.opts.RFPPath)
		if err != nil {
			return err
		}
		set, err := criteria.Extract(ctx, r.opts.Client, doc.Text)
		if err != nil {
			return err
		}
		set.Criteria = criteria.Weight(set.Criteria, r.opts.Budgets)
		res.Drift = criteria.CheckWeights(set.Criteria, r.opts.Budgets, r.logger)
		res.Criteria = set
		if r.opts.Verbose {
			r.printer.PrintCriteria(set)
		}
		return r.save(ctx, steps.ExtractCriteria, db.StepCriteria, db.CategoryRFP, set)
	}); err != nil {
		return err
	}

	if !r.opts.Summarize {
		return nil
	}
	// Summary failure is logged and not fatal.
	err := r.stage(ctx, steps.SummarizeRFP, "Summarizing the RFP", func(ctx context.Context) error {
		s := summarize.New(r.opts.Client, &summarize.Options{Workers: r.opts.SummarizeWorkers, Logger: r.logger})
		summary, err := s.SummarizeDocument(ctx, doc.Source, doc.Text)
		if err != nil {
			return err
		}
		res.Summary = summary
		return r.save(ctx, steps.SummarizeRFP, db.StepRFPSummary, db.CategoryRFP, summary)
	})
	if err != nil && ctx.Err() == nil {
		r.logger.Warn("RFP summary unavailable", zap.Error(err))
		return nil
	}
	return err
}

// companyBranch builds the company profile from the configured source.
func (r *runner) companyBranch(ctx context.Context, res *Result) error {
	return r.stage(ctx, steps.ExtractCompany, "Building the company profile", func(ctx context.Context) error {
		var (
			p   *types.CompanyProfile
			err error
		)
		switch {
		case r.opts.Profile != nil:
			p = r.opts.Profile
		case r.opts.CompanyURL != "":
			wopts := *withLogger(r.opts.Website, r.logger)
			p, err = profile.FromWebsite(ctx, r.opts.Client, r.opts.CompanyURL, &wopts)
		default:
			p, err = profile.FromPDF(ctx, r.opts.Client, r.opts.CompanyPDF, &profile.PDFOptions{Logger: r.logger})
		}
		if err != nil {
			return err
		}
		res.Profile = p
		if r.opts.Verbose {
			r.printer.PrintCompanyProfile(p)
		}
		return r.save(ctx, steps.ExtractCompany, db.StepCompanyProfile, db.CategoryCompany, p)
	})
}

func withLogger(opts *profile.WebsiteOptions, logger *zap.Logger) *profile.WebsiteOptions {
	out := profile.DefaultWebsiteOptions()
	if opts != nil {
		*out = *opts
	}
	if out.Logger == nil {
		out.Logger = logger
	}
	return out
}

// stage runs fn as a named pipeline stage after checking its dependencies, recording the
// outcome in the store. Failures are returned as *UnitError.
func (r *runner) stage(ctx context.Context, name, title string, fn func(context.Context) error) error {
	if err := steps.ValidateDependencies(name, r.snapshot()); err != nil {
		return &UnitError{Unit: r.unit, Stage: name, Cause: err}
	}

	r.printf("Step %s/%d: %s...\n", stepLabels[name], totalSteps, title)
	start := time.Now()
	if r.opts.Store != nil {
		if err := r.opts.Store.StartStep(ctx, r.runID, name); err != nil {
			r.logger.Warn("failed to record step start", zap.String("step", name), zap.Error(err))
		}
	}

	err := fn(ctx)

	if r.opts.Store != nil {
		if ferr := r.opts.Store.FinishStep(ctx, r.runID, name, time.Since(start), err); ferr != nil {
			r.logger.Warn("failed to record step outcome", zap.String("step", name), zap.Error(ferr))
		}
	}
	if err != nil {
		return &UnitError{Unit: r.unit, Stage: name, Cause: eris.Wrapf(err, "stage %s", name)}
	}
	r.markDone(name)
	r.logger.Debug("stage completed", zap.String("step", name), zap.Duration("took", time.Since(start)))
	return nil
}

// save writes a stage artifact to the output directory and, when configured, the store.
func (r *runner) save(ctx context.Context, stage, dbStep, category string, v any) error {
	path := filepath.Join(r.opts.OutDir, steps.ArtifactFor(stage))
	if err := WriteArtifact(path, SchemaFor(path), v); err != nil {
		return err
	}
	if r.opts.Store != nil {
		if err := r.opts.Store.SaveArtifact(ctx, r.runID, dbStep, category, v); err != nil {
			r.logger.Warn("failed to persist artifact", zap.String("step", dbStep), zap.Error(err))
		}
	}
	return nil
}

func (r *runner) persistText(ctx context.Context, dbStep, category, text string) {
	if r.opts.Store == nil {
		return
	}
	if err := r.opts.Store.SaveTextArtifact(ctx, r.runID, dbStep, category, text); err != nil {
		r.logger.Warn("failed to persist artifact", zap.String("step", dbStep), zap.Error(err))
	}
}

func (r *runner) snapshot() map[string]bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]bool, len(r.completed))
	for k, v := range r.completed {
		out[k] = v
	}
	return out
}

func (r *runner) markDone(name string) {
	r.mu.Lock()
	r.completed[name] = true
	r.mu.Unlock()
}

func (r *runner) companySource() string {
	switch {
	case r.opts.CompanyURL != "":
		return r.opts.CompanyURL
	case r.opts.CompanyPDF != "":
		return r.opts.CompanyPDF
	}
	return ""
}

//nolint:errcheck // progress output; errors are not recoverable
func (r *runner) printf(format string, args ...any) {
	fmt.Fprintf(r.out, format, args...)
}
