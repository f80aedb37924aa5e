// Package mux defines the boundaries to the external media toolchain. The
// binaries behind them (segment downloaders, MP4Box, ffmpeg) live outside
// this codebase; the pipeline only ever talks to these interfaces.
package mux

import (
	"context"

	"github.com/tvgrab-cli/tvgrab/format"
	"github.com/tvgrab-cli/tvgrab/track"
)

// Downloader fetches a selected stream's segments into a local file and
// returns its path.
type Downloader interface {
	Download(ctx context.Context, t *track.Track, dir string) (string, error)
}

// Muxer combines downloaded elementary streams into the final container.
type Muxer interface {
	Mux(ctx context.Context, sel *format.Selection, inputs []string, out string) error
}

// SubtitleConverter rewrites a downloaded subtitle stream into the target
// subtitle format.
type SubtitleConverter interface {
	Convert(ctx context.Context, in, out string) error
}

// Tagger embeds catalog metadata and artwork into the muxed file.
type Tagger interface {
	Tag(ctx context.Context, file, title, cover string) error
}

// Bootstrap verifies that the external tool binaries are present and runnable.
type Bootstrap interface {
	Check(ctx context.Context) error
}
