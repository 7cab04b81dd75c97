// Package fetch - platform.go detects the site builder behind a company page.
package fetch

import (
	"strings"
)

// Platform represents a known site builder.
type Platform string

const (
	// PlatformElementor is WordPress with the Elementor page builder
	PlatformElementor Platform = "elementor"
	// PlatformWordPress is plain WordPress
	PlatformWordPress Platform = "wordpress"
	// PlatformWix is the Wix builder
	PlatformWix Platform = "wix"
	// PlatformSalla is the Salla storefront platform
	PlatformSalla Platform = "salla"
	// PlatformZid is the Zid storefront platform
	PlatformZid Platform = "zid"
	// PlatformUnknown is an unrecognized platform
	PlatformUnknown Platform = "unknown"
)

// DetectPlatform identifies the site builder from page markup.
func DetectPlatform(html string) Platform {
	lower := strings.ToLower(html)

	switch {
	case strings.Contains(lower, "elementor"):
		return PlatformElementor
	case strings.Contains(lower, "wp-content") || strings.Contains(lower, `content="wordpress`):
		return PlatformWordPress
	case strings.Contains(lower, "wixstatic.com") || strings.Contains(lower, `content="wix.com`):
		return PlatformWix
	case strings.Contains(lower, "salla.sa") || strings.Contains(lower, "cdn.salla"):
		return PlatformSalla
	case strings.Contains(lower, "zid.store") || strings.Contains(lower, "zidcdn"):
		return PlatformZid
	}
	return PlatformUnknown
}

// NeedsRendering reports whether pages from the platform only expose their content after
// JavaScript runs.
func NeedsRendering(platform Platform) bool {
	switch platform {
	case PlatformWix, PlatformSalla, PlatformZid:
		return true
	}
	return false
}

// PlatformContentSelectors returns content selectors optimized for a specific platform.
func PlatformContentSelectors(platform Platform) []string {
	switch platform {
	case PlatformElementor:
		return []string{
			".elementor",
			"#content",
			"body",
		}
	case PlatformWordPress:
		return []string{
			".entry-content",
			"#content",
			"main",
			"body",
		}
	case PlatformWix:
		return []string{
			"#SITE_CONTAINER",
			"main",
			"body",
		}
	default:
		return CompanyPageSelectors()
	}
}

// PlatformNoiseSelectors returns elements to remove before extracting page text.
func PlatformNoiseSelectors(platform Platform) []string {
	switch platform {
	case PlatformElementor, PlatformWordPress:
		return []string{
			"#wpadminbar",
			".screen-reader-text",
			".skip-link",
		}
	case PlatformWix:
		return []string{
			"#WIX_ADS",
		}
	default:
		return nil
	}
}
