package sections

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/rfp-proposal/internal/fetch"
)

// MaxLogoImages bounds the number of logos sent for text recognition per company.
const MaxLogoImages = 15

// ImageReader returns the text printed on an image, one line per entry.
type ImageReader interface {
	ReadImageText(ctx context.Context, image []byte, mimeType string) ([]string, error)
}

// LogoOptions configures ReadLogos.
type LogoOptions struct {
	Fetch  *fetch.Options
	Logger *zap.Logger
}

// ReadLogos downloads up to MaxLogoImages logos and returns the partner names read from
// them. Lines must be 2–80 runes long and contain Arabic or a three-letter Latin word.
// Failed downloads and recognition errors skip the image.
func ReadLogos(ctx context.Context, reader ImageReader, logoURLs []string, opts *LogoOptions) []string {
	if reader == nil || len(logoURLs) == 0 {
		return nil
	}
	if opts == nil {
		opts = &LogoOptions{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(logoURLs) > MaxLogoImages {
		logoURLs = logoURLs[:MaxLogoImages]
	}

	c := newCollector(2, 80, MaxPartners)
	c.accept = isNameLike

	for _, u := range logoURLs {
		if ctx.Err() != nil {
			break
		}
		res, err := fetch.URL(ctx, u, opts.Fetch)
		if err != nil {
			logger.Debug("logo download failed", zap.String("url", u), zap.Error(err))
			continue
		}
		data := []byte(res.HTML)
		lines, err := reader.ReadImageText(ctx, data, imageMIMEType(res.ContentType, data))
		if err != nil {
			logger.Debug("logo text recognition failed", zap.String("url", u), zap.Error(err))
			continue
		}
		for _, line := range lines {
			c.consider(line)
		}
	}
	return c.items
}

// imageMIMEType prefers the declared content type and sniffs the bytes otherwise.
func imageMIMEType(declared string, data []byte) string {
	declared = strings.TrimSpace(strings.SplitN(declared, ";", 2)[0])
	if strings.HasPrefix(declared, "image/") {
		return declared
	}
	sniffed := http.DetectContentType(data)
	if strings.HasPrefix(sniffed, "image/") {
		return sniffed
	}
	if strings.Contains(strings.ToLower(string(data[:min(len(data), 256)])), "<svg") {
		return "image/svg+xml"
	}
	return "image/png"
}
