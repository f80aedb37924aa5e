// Package inline provides the implementation for the application's non-interactive, programmable execution mode.
package inline

import (
	"io"

	"github.com/samber/mo"
	"github.com/tvgrab-cli/tvgrab/catalog"
	"github.com/tvgrab-cli/tvgrab/manifest"
	"github.com/tvgrab-cli/tvgrab/storefront"
)

type Options struct {
	Out io.Writer

	// URL is the content page URL to resolve.
	URL string
	// DefaultOnly selects the default playable instead of the trailer shelf.
	DefaultOnly bool
	// Trailer narrows the shelf to one entry (t0, t1, ...); empty or "all"
	// keeps every resolved playable.
	Trailer string
	// Probe pings the content page before resolving, informational only.
	Probe bool
	// Json switches the output writer to the JSON document.
	Json bool

	// Expression is an explicit stream selection like "v0+a1+s0".
	// Profile is a named quality profile; Expression wins when both are set.
	Expression mo.Option[string]
	Profile    mo.Option[string]

	AudioQuality string
	AudioLang    string
	SubLangs     []string

	// Parser is the manifest collaborator. Without one the run stops after
	// metadata resolution and emits no track listing.
	Parser manifest.Parser

	// Acquirer and Fetcher default to the production ones when nil.
	Acquirer *storefront.Acquirer
	Fetcher  *catalog.Fetcher
}
