// Package manifest defines the boundary to the HLS manifest parser. Parsing
// the playlist format itself is delegated to an external collaborator; this
// package only fixes the contract the pipeline depends on.
package manifest

import (
	"context"

	"github.com/tvgrab-cli/tvgrab/track"
)

// Parser turns a master playlist URL into the raw streams it advertises.
// Implementations fetch and parse the playlist; they do not index or filter.
// The returned tracks have no identifiers assigned yet.
type Parser interface {
	Parse(ctx context.Context, masterURL string) ([]*track.Track, error)
}
