// Package inline provides the implementation for the application's non-interactive, programmable execution mode.
package inline

import (
	"encoding/json"
	"io"

	"github.com/tvgrab-cli/tvgrab/catalog"
	"github.com/tvgrab-cli/tvgrab/storefront"
)

// Selection is the document form of a stream selection.
type Selection struct {
	// Expression is the identifier expression equivalent to this selection.
	Expression string   `json:"expression"`
	Video      string   `json:"video"`
	Audio      []string `json:"audio,omitempty"`
	Subtitles  []string `json:"subtitles,omitempty"`
}

// Item is one resolved playable.
type Item struct {
	Metadata *catalog.ContentMetadata `json:"metadata"`
	Filename string                   `json:"filename"`
	// Tracks is the rendered track listing, present when a manifest parser ran.
	Tracks    []string   `json:"tracks,omitempty"`
	Selection *Selection `json:"selection,omitempty"`
}

// Output is the top-level JSON document of a run.
type Output struct {
	Storefront string  `json:"storefront"`
	SF         int     `json:"sf"`
	Locale     string  `json:"locale"`
	Kind       string  `json:"kind"`
	ID         string  `json:"id"`
	Strategy   string  `json:"tokenStrategy"`
	Result     []*Item `json:"result"`
}

func writeJson(out io.Writer, ref *catalog.ContentRef, access *storefront.AccessContext, items []*Item) error {
	if items == nil {
		items = []*Item{}
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(&Output{
		Storefront: access.Code,
		SF:         access.SF,
		Locale:     access.Locale,
		Kind:       string(ref.Kind),
		ID:         ref.ID,
		Strategy:   access.Strategy,
		Result:     items,
	})
}
