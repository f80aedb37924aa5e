package catalog

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/tvgrab-cli/tvgrab/constant"
	"github.com/tvgrab-cli/tvgrab/internal/jsontree"
	"github.com/tvgrab-cli/tvgrab/log"
	"github.com/tvgrab-cli/tvgrab/network"
	"github.com/tvgrab-cli/tvgrab/storefront"
)

// Opaque tracking parameters the catalog API refuses requests without.
const (
	utscf = "OjAAAAAAAAA~"
	utsk  = "6e3013c6d6fae3c2::::::235656c069bb0efb"
	utsv  = "68"
)

const (
	coverWidth  = 3840
	coverHeight = 2160

	excerptLen = 200
)

// Fetcher queries the catalog API for playable metadata. The base URL is
// overridable for tests only.
type Fetcher struct {
	api string
}

// NewFetcher returns a Fetcher targeting the production catalog API.
func NewFetcher() *Fetcher {
	return &Fetcher{api: constant.APIBase}
}

// Resolve fetches playable metadata for the reference. Clip references yield
// exactly one item; movie and show references yield the trailer shelf, or the
// default playable when defaultOnly is set or no shelf exists.
func (f *Fetcher) Resolve(ctx *storefront.AccessContext, ref *ContentRef, defaultOnly bool) ([]ContentMetadata, error) {
	if ref.Kind == KindClip {
		m, err := f.Clip(ctx, ref)
		if err != nil {
			return nil, err
		}
		return []ContentMetadata{*m}, nil
	}

	doc, err := f.fetchJSON(ctx, ref.Kind.Collection(), ref.ID, nil)
	if err != nil {
		return nil, err
	}

	if defaultOnly {
		m, err := f.defaultItem(ref, doc)
		if err != nil {
			return nil, err
		}
		return []ContentMetadata{*m}, nil
	}

	items := f.trailers(doc)
	if len(items) > 0 {
		return items, nil
	}

	log.Warn("no trailer shelf on the content page, falling back to the default playable")
	m, err := f.defaultItem(ref, doc)
	if err != nil {
		return nil, err
	}
	return []ContentMetadata{*m}, nil
}

// Clip fetches a single clip, trying the clips collection first and the
// playables collection when the former rejects the id.
func (f *Fetcher) Clip(ctx *storefront.AccessContext, ref *ContentRef) (*ContentMetadata, error) {
	doc, err := f.fetchJSON(ctx, "clips", ref.ID, nil)
	if err != nil {
		log.Warnf("clips endpoint failed, retrying via playables: %v", err)
		doc, err = f.fetchJSON(ctx, "playables", ref.ID, nil)
		if err != nil {
			return nil, fmt.Errorf("clip %s unavailable on both endpoints: %w", ref.ID, err)
		}
	}

	return f.clipItem(ctx, ref, doc)
}

// baseParams assembles the query parameters every catalog request carries.
func baseParams(ctx *storefront.AccessContext) url.Values {
	return url.Values{
		"caller": {"web"},
		"locale": {ctx.Locale},
		"pfm":    {"appletv"},
		"sf":     {strconv.Itoa(ctx.SF)},
		"utscf":  {utscf},
		"utsk":   {utsk},
		"v":      {utsv},
	}
}

// fetchJSON performs one authenticated catalog API request and decodes the
// response document.
func (f *Fetcher) fetchJSON(ctx *storefront.AccessContext, collection, id string, extra url.Values) (any, error) {
	params := baseParams(ctx)
	for k, vs := range extra {
		params[k] = vs
	}

	reqURL := fmt.Sprintf("%s/%s/%s?%s", f.api, collection, url.PathEscape(id), params.Encode())

	resp, err := network.Get(reqURL, map[string]string{
		"User-Agent":    constant.UserAgent,
		"Authorization": "Bearer " + ctx.Token,
		"Origin":        constant.CatalogBase,
		"Referer":       constant.CatalogBase + "/",
	})
	if err != nil {
		return nil, err
	}

	if resp.Status != http.StatusOK {
		return nil, &network.StatusError{URL: reqURL, Status: resp.Status, Excerpt: resp.Excerpt(excerptLen)}
	}

	var doc any
	if err := json.Unmarshal(resp.Body, &doc); err != nil {
		return nil, &network.ShapeError{URL: reqURL, Reason: "response is not JSON", Excerpt: resp.Excerpt(excerptLen)}
	}
	return doc, nil
}

// hlsURL extracts the stream URL: the historical structural path first, then a
// deep search for any hlsUrl key.
func hlsURL(doc any, structural ...string) (string, bool) {
	if v, ok := jsontree.GetString(doc, structural...); ok {
		return v, true
	}
	return jsontree.FindString(doc, func(key, value string) bool {
		return key == "hlsUrl" && strings.HasPrefix(value, "http")
	})
}

// defaultItem builds metadata from the content page's background video, the
// playable shown before any shelf is opened.
func (f *Fetcher) defaultItem(ref *ContentRef, doc any) (*ContentMetadata, error) {
	content, ok := jsontree.GetMap(doc, "data", "content")
	if !ok {
		return nil, &network.ShapeError{
			URL:    string(ref.Kind) + "/" + ref.ID,
			Reason: "content document missing data.content",
		}
	}

	stream, ok := hlsURL(doc, "data", "content", "backgroundVideo", "assets", "hlsUrl")
	if !ok {
		return nil, &network.ShapeError{
			URL:    string(ref.Kind) + "/" + ref.ID,
			Reason: "no hlsUrl anywhere in the content document",
		}
	}

	title, _ := jsontree.GetString(content, "title")
	date, _ := jsontree.Get(content, "releaseDate")
	desc, _ := jsontree.GetString(content, "description")
	genres, _ := jsontree.Get(content, "genres")

	var cover string
	if img, ok := jsontree.Get(content, "images", "contentImage"); ok {
		cover = coverURL(img, coverWidth, coverHeight)
	}

	return &ContentMetadata{
		Title:       title,
		VideoTitle:  title,
		Cover:       cover,
		ReleaseDate: fixDate(date),
		Description: desc,
		Genres:      genreNames(genres),
		HLSURL:      stream,
	}, nil
}

// trailers enumerates the Trailers shelf on a content page. An absent shelf or
// an unexpected shelf shape yields an empty slice, never an error.
func (f *Fetcher) trailers(doc any) []ContentMetadata {
	content, _ := jsontree.GetMap(doc, "data", "content")
	title, _ := jsontree.GetString(content, "title")
	date, _ := jsontree.Get(content, "releaseDate")
	desc, _ := jsontree.GetString(content, "description")
	genres, _ := jsontree.Get(content, "genres")
	names := genreNames(genres)

	shelves, ok := jsontree.GetSlice(doc, "data", "canvas", "shelves")
	if !ok {
		return nil
	}

	var items []ContentMetadata
	for _, shelf := range shelves {
		shelfTitle, _ := jsontree.GetString(shelf, "title")
		if !strings.EqualFold(shelfTitle, "Trailers") {
			continue
		}

		shelfItems, _ := jsontree.GetSlice(shelf, "items")
		for _, item := range shelfItems {
			playables, _ := jsontree.GetSlice(item, "playables")
			if len(playables) == 0 {
				continue
			}
			p := playables[0]

			stream, ok := hlsURL(p, "assets", "hlsUrl")
			if !ok {
				log.Warn("skipping a trailer shelf item without an hlsUrl")
				continue
			}

			videoTitle, _ := jsontree.GetString(item, "title")
			if videoTitle == "" {
				videoTitle, _ = jsontree.GetString(p, "title")
			}

			var cover string
			if img, ok := jsontree.Get(p, "canonicalMetadata", "images", "contentImage"); ok {
				cover = coverURL(img, coverWidth, coverHeight)
			}

			items = append(items, ContentMetadata{
				Title:       title,
				VideoTitle:  videoTitle,
				Cover:       cover,
				ReleaseDate: fixDate(date),
				Description: desc,
				Genres:      names,
				HLSURL:      stream,
			})
		}
	}

	return items
}

// clipItem builds metadata from a clip document, enriching it with the linked
// movie's catalog entry when the reference carries one. Enrichment failures
// are logged and absorbed.
func (f *Fetcher) clipItem(ctx *storefront.AccessContext, ref *ContentRef, doc any) (*ContentMetadata, error) {
	playable, ok := jsontree.GetMap(doc, "data", "playable")
	if !ok {
		if arr, found := jsontree.GetSlice(doc, "data", "playables"); found && len(arr) > 0 {
			playable, ok = arr[0].(map[string]any)
		}
	}
	if !ok {
		playable, _ = jsontree.GetMap(doc, "data", "content")
	}

	stream, ok := hlsURL(doc, "data", "playable", "assets", "hlsUrl")
	if !ok {
		return nil, &network.ShapeError{
			URL:    "clips/" + ref.ID,
			Reason: "no hlsUrl anywhere in the clip document",
		}
	}

	videoTitle, _ := jsontree.GetString(playable, "title")
	m := &ContentMetadata{
		Title:       videoTitle,
		VideoTitle:  videoTitle,
		ReleaseDate: unknownDate,
		HLSURL:      stream,
	}
	if img, ok := jsontree.Get(playable, "canonicalMetadata", "images", "contentImage"); ok {
		m.Cover = coverURL(img, coverWidth, coverHeight)
	}

	if strings.EqualFold(ref.TargetType, "movie") && ref.TargetID != "" {
		f.enrichFromMovie(ctx, ref.TargetID, m)
	}

	return m, nil
}

// enrichFromMovie overlays parent-movie fields onto clip metadata, best effort.
func (f *Fetcher) enrichFromMovie(ctx *storefront.AccessContext, movieID string, m *ContentMetadata) {
	doc, err := f.fetchJSON(ctx, "movies", movieID, nil)
	if err != nil {
		log.Warnf("linked movie %s lookup failed, keeping bare clip metadata: %v", movieID, err)
		return
	}

	content, ok := jsontree.GetMap(doc, "data", "content")
	if !ok {
		log.Warnf("linked movie %s document missing data.content, keeping bare clip metadata", movieID)
		return
	}

	if title, ok := jsontree.GetString(content, "title"); ok {
		m.Title = title
	}
	if date, ok := jsontree.Get(content, "releaseDate"); ok {
		m.ReleaseDate = fixDate(date)
	}
	if desc, ok := jsontree.GetString(content, "description"); ok {
		m.Description = desc
	}
	if genres, ok := jsontree.Get(content, "genres"); ok {
		m.Genres = genreNames(genres)
	}
	if img, ok := jsontree.Get(content, "images", "contentImage"); ok {
		if cover := coverURL(img, coverWidth, coverHeight); cover != "" {
			m.Cover = cover
		}
	}
}

// Probe checks that the content page itself answers, purely informational.
// Failures are logged and never interrupt resolution.
func Probe(ref *ContentRef) {
	pageURL := fmt.Sprintf("%s/%s/%s/x/%s", constant.CatalogBase, ref.Storefront, ref.Kind, ref.ID)
	resp, err := network.Page(pageURL)
	switch {
	case err != nil:
		log.Warnf("content page probe failed: %v", err)
	case resp.Status != http.StatusOK:
		log.Warnf("content page answered %d, continuing anyway", resp.Status)
	}
}
