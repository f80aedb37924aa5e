// Package catalog resolves content page URLs and fetches authenticated
// content metadata from the undocumented UTS catalog API.
package catalog

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/tvgrab-cli/tvgrab/constant"
	"github.com/tvgrab-cli/tvgrab/storefront"
)

// Kind classifies a content page.
type Kind string

const (
	KindMovie Kind = "movie"
	KindShow  Kind = "show"
	KindClip  Kind = "clip"
)

// Collection returns the API collection segment for the kind.
func (k Kind) Collection() string {
	return string(k) + "s"
}

// pageKinds lists every path segment recognized as a content kind.
// episode and season pages are rewritten to show during parsing.
var pageKinds = map[string]struct{}{
	"movie": {}, "show": {}, "clip": {}, "episode": {}, "season": {},
}

// ContentRef is the parsed, immutable reference extracted from a content page
// URL. TargetID/TargetType carry the clip-to-movie linkage and are only
// meaningful for clip pages.
type ContentRef struct {
	Storefront string
	Kind       Kind
	ID         string
	TargetID   string
	TargetType string
}

// ValidationError reports an input the resolver refuses to work with.
// It is always fatal to the current operation and never retried.
type ValidationError struct {
	Input  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid input %q: %s", e.Input, e.Reason)
}

// ParseRef validates and splits a content page URL into a ContentRef.
// The expected shape is https://tv.apple.com/{storefront}/{kind}/{slug}/{id};
// the storefront segment may be omitted, in which case the configured default
// applies. No network call is made.
func ParseRef(raw string) (*ContentRef, error) {
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, &ValidationError{Input: raw, Reason: "unparsable URL"}
	}

	if u.Hostname() != constant.CatalogHost {
		return nil, &ValidationError{Input: raw, Reason: fmt.Sprintf("host must be %s", constant.CatalogHost)}
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 2 || parts[0] == "" {
		return nil, &ValidationError{Input: raw, Reason: "unable to parse kind/id from URL path"}
	}

	// The storefront segment is optional; a leading known kind means it was omitted.
	var code, kind string
	if _, isKind := pageKinds[strings.ToLower(parts[0])]; isKind {
		code = ""
		kind = strings.ToLower(parts[0])
	} else {
		code = parts[0]
		if len(parts) < 3 {
			return nil, &ValidationError{Input: raw, Reason: "unable to parse kind/id from URL path"}
		}
		kind = strings.ToLower(parts[1])
	}

	if _, known := pageKinds[kind]; !known {
		return nil, &ValidationError{Input: raw, Reason: fmt.Sprintf("unknown content kind %q", kind)}
	}

	id := parts[len(parts)-1]
	q := u.Query()

	// Episode and season pages are addressed through their parent show.
	if kind == "episode" || kind == "season" {
		kind = string(KindShow)
		id = q.Get("showId")
		if id == "" {
			return nil, &ValidationError{Input: raw, Reason: "unable to parse showId from URL"}
		}
	}

	if id == "" {
		return nil, &ValidationError{Input: raw, Reason: "unable to parse kind/id from URL path"}
	}

	return &ContentRef{
		Storefront: storefront.Normalize(code),
		Kind:       Kind(kind),
		ID:         id,
		TargetID:   q.Get("targetId"),
		TargetType: q.Get("targetType"),
	}, nil
}
