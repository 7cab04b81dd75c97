// Package fetch - fetcher.go provides a bounded, rate-limited page pool.
package fetch

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Pool defaults.
const (
	DefaultWorkers   = 6
	DefaultRateLimit = 2.0
	DefaultBurst     = 4
)

// FetcherConfig configures a Fetcher.
type FetcherConfig struct {
	Workers   int
	RateLimit float64
	Burst     int
	Options   *Options
	Logger    *zap.Logger
}

// DefaultFetcherConfig returns the pool defaults.
func DefaultFetcherConfig() *FetcherConfig {
	return &FetcherConfig{
		Workers:   DefaultWorkers,
		RateLimit: DefaultRateLimit,
		Burst:     DefaultBurst,
		Options:   DefaultOptions(),
	}
}

// Fetcher downloads pages through a fixed-size worker pool sharing one rate limiter.
type Fetcher struct {
	workers int
	limiter *rate.Limiter
	opts    *Options
	logger  *zap.Logger
	fetch   func(ctx context.Context, url string, opts *Options) (*Result, error)
}

// NewFetcher creates a Fetcher. Zero config values fall back to the defaults.
func NewFetcher(cfg *FetcherConfig) *Fetcher {
	if cfg == nil {
		cfg = DefaultFetcherConfig()
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	limit := cfg.RateLimit
	if limit <= 0 {
		limit = DefaultRateLimit
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = DefaultBurst
	}
	opts := cfg.Options
	if opts == nil {
		opts = DefaultOptions()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{
		workers: workers,
		limiter: rate.NewLimiter(rate.Limit(limit), burst),
		opts:    opts,
		logger:  logger,
		fetch:   URL,
	}
}

// Fetch retrieves one page after waiting on the shared limiter.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*Result, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, &Error{URL: url, Message: "rate limiter wait aborted", Cause: err}
	}
	start := time.Now()
	res, err := f.fetch(ctx, url, f.opts)
	if err != nil {
		return nil, err
	}
	f.logger.Debug("page fetched",
		zap.String("url", url),
		zap.Int("bytes", len(res.HTML)),
		zap.Duration("elapsed", time.Since(start)))
	return res, nil
}

// FetchAll retrieves every URL through the pool. The returned slice is indexed like urls;
// entries for pages that failed are nil. Failures are logged and never abort the batch.
// Only context cancellation is returned as an error.
func (f *Fetcher) FetchAll(ctx context.Context, urls []string) ([]*Result, error) {
	results := make([]*Result, len(urls))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.workers)

	for i, u := range urls {
		g.Go(func() error {
			res, err := f.Fetch(gctx, u)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				f.logger.Warn("page skipped", zap.String("url", u), zap.Error(err))
				return nil
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
