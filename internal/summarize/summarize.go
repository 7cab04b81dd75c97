package summarize

import (
	"context"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/rfp-proposal/internal/llm"
	"github.com/jonathan/rfp-proposal/internal/prompts"
	"github.com/jonathan/rfp-proposal/internal/textnorm"
	"github.com/jonathan/rfp-proposal/internal/types"
)

// Summary bounds.
const (
	MinSentences     = 8
	MaxSentences     = 10
	MaxInputRunes    = 15000
	DefaultWorkers   = 6
	summaryLabel     = "الملخص:"
	firstTemperature = float32(0.2)
	retryTemperature = float32(0.1)
)

// Options configures a Summarizer.
type Options struct {
	Workers int
	Logger  *zap.Logger
}

// Summarizer produces Arabic chunk summaries focused on scope, work programme, location
// and bill of quantities.
type Summarizer struct {
	client  llm.Client
	workers int
	logger  *zap.Logger
}

// New creates a Summarizer. A nil opts uses six workers and no logging.
func New(client llm.Client, opts *Options) *Summarizer {
	if opts == nil {
		opts = &Options{}
	}
	s := &Summarizer{client: client, workers: opts.Workers, logger: opts.Logger}
	if s.workers <= 0 {
		s.workers = DefaultWorkers
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	return s
}

// Summarize summarizes one chunk. A summary shorter than MinSentences is requested once
// more with an explicit reminder at a lower temperature. Blank input yields "".
func (s *Summarizer) Summarize(ctx context.Context, chunk string) (string, error) {
	if strings.TrimSpace(chunk) == "" {
		return "", nil
	}

	vars := map[string]string{
		"MinSentences": strconv.Itoa(MinSentences),
		"MaxSentences": strconv.Itoa(MaxSentences),
		"Text":         textnorm.Truncate(chunk, MaxInputRunes),
	}
	prompt := prompts.Format(prompts.MustGet("rfp.json", "summarize-chunk"), vars)

	summary, err := s.client.GenerateContent(llm.WithTemperature(ctx, firstTemperature), prompt, llm.TierLite)
	if err != nil {
		return "", eris.Wrap(err, "summarize chunk")
	}

	if n := CountSentences(summary); n < MinSentences {
		s.logger.Debug("summary too short, asking again", zap.Int("sentences", n))
		retry := prompt + "\n\n" + prompts.Format(prompts.MustGet("rfp.json", "summarize-retry"), vars)
		summary, err = s.client.GenerateContent(llm.WithTemperature(ctx, retryTemperature), retry, llm.TierLite)
		if err != nil {
			return "", eris.Wrap(err, "summarize chunk: retry")
		}
	}

	summary = strings.TrimSpace(summary)
	if _, after, found := strings.Cut(summary, summaryLabel); found {
		summary = strings.TrimSpace(after)
	}
	return summary, nil
}

// SummarizeAll summarizes chunks through a bounded pool. Results keep input order. A
// chunk whose call fails is logged and left with an empty summary; the call fails only
// when every chunk failed or ctx is done.
func (s *Summarizer) SummarizeAll(ctx context.Context, chunks []string) ([]types.ChunkSummary, error) {
	results := make([]types.ChunkSummary, len(chunks))
	failed := make([]bool, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, chunk := range chunks {
		g.Go(func() error {
			summary, err := s.Summarize(gctx, chunk)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				s.logger.Warn("chunk summary failed", zap.Int("index", i), zap.Error(err))
				failed[i] = true
			}
			results[i] = types.ChunkSummary{Index: i, Chunk: chunk, Summary: summary}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, eris.Wrap(err, "summarize chunks")
	}

	if len(chunks) > 0 {
		allFailed := true
		for _, f := range failed {
			allFailed = allFailed && f
		}
		if allFailed {
			return nil, eris.New("summarize chunks: every chunk failed")
		}
	}
	return results, nil
}

// SummarizeDocument chunks text with the defaults, summarizes every chunk and combines
// the results.
func (s *Summarizer) SummarizeDocument(ctx context.Context, source, text string) (*types.RFPSummary, error) {
	chunks := Chunk(text, DefaultChunkSize, DefaultChunkOverlap)
	s.logger.Info("summarizing RFP", zap.String("source", source), zap.Int("chunks", len(chunks)))

	summaries, err := s.SummarizeAll(ctx, chunks)
	if err != nil {
		return nil, err
	}
	return &types.RFPSummary{
		Source:   source,
		Chunks:   summaries,
		Combined: Combine(summaries),
	}, nil
}

// Combine joins the non-empty summaries with blank lines, in order.
func Combine(summaries []types.ChunkSummary) string {
	parts := make([]string, 0, len(summaries))
	for _, s := range summaries {
		if t := strings.TrimSpace(s.Summary); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, "\n\n")
}

// CountSentences counts the non-blank segments between full stops and question marks.
func CountSentences(text string) int {
	n := 0
	for _, s := range strings.Split(strings.ReplaceAll(text, "؟", "."), ".") {
		if strings.TrimSpace(s) != "" {
			n++
		}
	}
	return n
}
