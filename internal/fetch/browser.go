// Package fetch - browser.go provides headless browser rendering for JS-built sites.
package fetch

import (
	"context"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// MinContentLength is the minimum extracted text length to consider HTTP fetch successful.
// If content is shorter, we should fall back to browser rendering.
const MinContentLength = 500

// DefaultRenderTimeout bounds a single browser render.
const DefaultRenderTimeout = 30 * time.Second

// ShouldUseBrowser returns true if the extracted text is too short,
// indicating the page is likely a JavaScript-rendered SPA.
func ShouldUseBrowser(extractedText string) bool {
	return len(strings.TrimSpace(extractedText)) < MinContentLength
}

// Renderer renders a URL to its post-JavaScript HTML.
type Renderer interface {
	Render(ctx context.Context, url string) (string, error)
}

// ChromeRenderer renders pages with a local headless Chrome.
type ChromeRenderer struct {
	Timeout time.Duration
	Logger  *zap.Logger
}

// Render implements Renderer.
func (r *ChromeRenderer) Render(ctx context.Context, url string) (string, error) {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultRenderTimeout
	}
	logger := r.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return WithBrowser(ctx, url, timeout, logger)
}

// WithBrowser renders a page in a headless browser and returns the rendered HTML.
// Contact widgets and footers on many builder sites only appear after scripts run.
// Requires Chrome/Chromium to be installed on the system.
func WithBrowser(ctx context.Context, url string, timeout time.Duration, logger *zap.Logger) (string, error) {
	logger.Debug("starting headless browser", zap.String("url", url))

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.Flag("lang", "ar"),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var html string

	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		// Let lazy footers and icon lists render
		chromedp.Sleep(2*time.Second),
		chromedp.ActionFunc(func(ctx context.Context) error {
			_ = chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight)`, nil).Do(ctx)
			return nil
		}),
		chromedp.Sleep(1*time.Second),
		chromedp.OuterHTML("html", &html),
	)

	if err != nil {
		return "", &Error{URL: url, Message: "browser rendering failed", Cause: err}
	}

	logger.Debug("rendered HTML", zap.String("url", url), zap.Int("bytes", len(html)))

	return html, nil
}
