package catalog

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tvgrab-cli/tvgrab/internal/jsontree"
	"github.com/tvgrab-cli/tvgrab/util"
)

// unknownDate is the sentinel for an absent or malformed release date.
const unknownDate = "0000-00-00"

// ContentMetadata is one playable trailer or clip with the catalog fields the
// rest of the pipeline needs. Title is the parent content title, VideoTitle
// names the individual clip.
type ContentMetadata struct {
	Title       string   `json:"title"`
	VideoTitle  string   `json:"videoTitle"`
	Cover       string   `json:"cover,omitempty"`
	ReleaseDate string   `json:"releaseDate"`
	Description string   `json:"description,omitempty"`
	Genres      []string `json:"genres,omitempty"`
	HLSURL      string   `json:"hlsUrl"`
}

// Filename derives the sanitized output file name for the clip.
func (m *ContentMetadata) Filename() string {
	year := "0000"
	if len(m.ReleaseDate) >= 4 {
		year = m.ReleaseDate[:4]
	}

	name := fmt.Sprintf("%s - %s (%s) Trailer [WEB-DL] [ATVP].mp4", m.Title, m.VideoTitle, year)
	return util.SanitizeFilename(name)
}

// fixDate converts an epoch-milliseconds value into YYYY-MM-DD, returning the
// unknown sentinel for anything it cannot interpret.
func fixDate(v any) string {
	ms, ok := jsontree.AsInt(v)
	if !ok || ms <= 0 {
		return unknownDate
	}
	return time.UnixMilli(int64(ms)).UTC().Format("2006-01-02")
}

// coverURL expands the templated artwork URL at the given dimensions. The
// catalog hands out URLs with literal {w}, {h} and {f} placeholders.
func coverURL(img any, width, height int) string {
	raw, ok := jsontree.GetString(img, "url")
	if !ok {
		return ""
	}

	wv, _ := jsontree.Get(img, "width")
	hv, _ := jsontree.Get(img, "height")
	w, wok := jsontree.AsInt(wv)
	h, hok := jsontree.AsInt(hv)
	if wok && hok && w > 0 && h > 0 {
		// Keep the source aspect ratio, capped at the requested width.
		if w < width {
			width, height = w, h
		} else {
			height = int(float64(width) * float64(h) / float64(w))
		}
	}

	r := strings.NewReplacer(
		"{w}", strconv.Itoa(width),
		"{h}", strconv.Itoa(height),
		"{f}", "jpg",
	)
	return r.Replace(raw)
}

// genreNames flattens the catalog's genre objects into their display names.
func genreNames(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}

	var names []string
	for _, item := range items {
		if name, ok := jsontree.GetString(item, "name"); ok && name != "" {
			names = append(names, name)
		}
	}
	return names
}
