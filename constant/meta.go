// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

const (
	// Tvgrab is the canonical application identifier used for filesystem paths and CLI branding.
	Tvgrab = "tvgrab"

	// Version is the current application semantic version string.
	Version = "0.1.0"

	// UserAgent is the client identity presented to the catalog endpoints.
	// The TV-device string keeps the UTS API from serving the mobile web variant.
	UserAgent = "AppleTV6,2/11.1"
)

// Catalog endpoints.
const (
	// CatalogHost is the only host accepted in content page URLs.
	CatalogHost = "tv.apple.com"

	// CatalogBase is the scheme+host prefix for storefront landing pages.
	CatalogBase = "https://tv.apple.com"

	// APIBase is the undocumented UTS catalog API root.
	APIBase = "https://tv.apple.com/api/uts/v3"
)

// Baseline storefront context used whenever a page does not declare its own.
const (
	DefaultStorefront   = "us"
	DefaultStorefrontID = 143441
	DefaultLocale       = "en-US"
)
