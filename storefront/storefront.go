// Package storefront acquires and caches the per-storefront API access context.
//
// The catalog API expects a bearer credential (the "developer token") that the
// upstream only publishes inside its web landing pages, moving it between
// releases. Acquisition therefore runs an ordered chain of extraction
// strategies over the page and records which one succeeded.
package storefront

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/spf13/viper"
	"github.com/tvgrab-cli/tvgrab/constant"
	"github.com/tvgrab-cli/tvgrab/internal/jsontree"
	"github.com/tvgrab-cli/tvgrab/key"
	"github.com/tvgrab-cli/tvgrab/log"
	"github.com/tvgrab-cli/tvgrab/network"
)

// AccessContext is the immutable-after-construction API context for one
// storefront: bearer token, numeric catalog id, locale, and the storefront
// code it was fetched for. Strategy names which heuristic produced the token.
type AccessContext struct {
	Token    string
	SF       int
	Locale   string
	Code     string
	Strategy string
}

// Acquirer fetches and caches one AccessContext at a time, keyed by storefront
// code. A ContentRef resolving to a different storefront forces re-acquisition.
type Acquirer struct {
	base  string
	cache *AccessContext
}

// New returns an Acquirer targeting the production catalog host.
func New() *Acquirer {
	return &Acquirer{base: constant.CatalogBase}
}

// Context returns a valid AccessContext for the given storefront code,
// reusing the cached one when the code matches.
func (a *Acquirer) Context(code string) (*AccessContext, error) {
	code = Normalize(code)

	if a.cache != nil && a.cache.Code == code {
		return a.cache, nil
	}

	ctx, err := a.acquire(code)
	if err != nil {
		return nil, err
	}

	a.cache = ctx
	return ctx, nil
}

// Normalize lowercases a storefront code and substitutes the configured
// default for an empty one.
func Normalize(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		code = viper.GetString(key.StorefrontDefault)
	}
	if code == "" {
		code = constant.DefaultStorefront
	}
	return code
}

// localePattern accepts xx-YY-shaped language tags, including three-letter
// primary subtags and script subtags like cmn-Hans.
var localePattern = regexp.MustCompile(`^[a-zA-Z]{2,3}(-[a-zA-Z]{2,4})+$`)

// sfKeys are the key spellings probed when deriving the numeric storefront id
// from page JSON.
var sfKeys = map[string]struct{}{
	"storefrontid":  {},
	"storefront":    {},
	"storefront-id": {},
	"sf":            {},
}

// plausible numeric storefront id range; anything outside is a false positive
// from an unrelated numeric field.
const (
	sfMin = 100000
	sfMax = 999999
)

func (a *Acquirer) acquire(code string) (*AccessContext, error) {
	url := fmt.Sprintf("%s/%s", a.base, code)
	log.Infof("fetching access token from landing page (storefront=%s)", code)

	resp, err := network.Page(url)
	if err != nil {
		return nil, err
	}
	if resp.Status != http.StatusOK {
		return nil, &network.StatusError{URL: url, Status: resp.Status, Excerpt: resp.Excerpt(120)}
	}

	p, err := parsePage(string(resp.Body))
	if err != nil {
		return nil, fmt.Errorf("parse landing page: %w", err)
	}

	token, name, ok := runStrategies(p)
	if !ok {
		serverData := "NOT found"
		if p.serverData != nil {
			serverData = "found"
		}
		return nil, &network.ShapeError{
			URL: url,
			Reason: fmt.Sprintf(
				"developer token not found, all %d extraction strategies failed (page length=%d chars, serialized-server-data=%s)",
				len(strategies), len(p.html), serverData),
		}
	}
	log.Infof("developer token extracted via strategy: %s", name)

	ctx := &AccessContext{
		Token:    token,
		SF:       deriveSF(p, code),
		Locale:   deriveLocale(p),
		Code:     code,
		Strategy: name,
	}

	log.Infof("storefront context: storefront=%s sf=%d locale=%s", ctx.Code, ctx.SF, ctx.Locale)
	return ctx, nil
}

// runStrategies evaluates the extraction chain in order, short-circuiting on
// the first candidate that validates as a JWT.
func runStrategies(p *page) (token, name string, ok bool) {
	for _, s := range strategies {
		candidate, found := s.extract(p)
		if !found || !ValidJWT(candidate) {
			continue
		}
		return candidate, s.name, true
	}
	return "", "", false
}

// deriveSF resolves the numeric storefront id: page JSON first, then the
// configured fallback table. Best effort, never fatal.
func deriveSF(p *page, code string) int {
	if p.serverData != nil {
		v, ok := jsontree.FindFirst(p.serverData, func(k string, value any) bool {
			if _, probe := sfKeys[strings.ToLower(k)]; !probe {
				return false
			}
			n, isInt := jsontree.AsInt(value)
			return isInt && n >= sfMin && n <= sfMax
		})
		if ok {
			n, _ := jsontree.AsInt(v)
			return n
		}
	}

	return FallbackID(code)
}

// deriveLocale resolves the locale: the page's declared language attribute
// first, then a deep JSON scan, then the configured default.
func deriveLocale(p *page) string {
	if localePattern.MatchString(p.lang) {
		return p.lang
	}

	if p.serverData != nil {
		if v, ok := jsontree.FindString(p.serverData, func(k, value string) bool {
			return strings.ToLower(k) == "locale" && strings.Contains(value, "-") && len(value) >= 4
		}); ok {
			return v
		}
	}

	if def := viper.GetString(key.LocaleDefault); def != "" {
		return def
	}
	return constant.DefaultLocale
}

// FallbackID maps a storefront code onto its numeric catalog id via the
// configured table. The table is a best-effort guess for a handful of codes;
// everything else gets the baseline storefront's id.
func FallbackID(code string) int {
	ids := viper.GetStringMap(key.StorefrontIDs)

	if v, ok := ids[code]; ok {
		if n, isInt := jsontree.AsInt(v); isInt {
			return n
		}
	}
	if v, ok := ids[constant.DefaultStorefront]; ok {
		if n, isInt := jsontree.AsInt(v); isInt {
			return n
		}
	}
	return constant.DefaultStorefrontID
}
