package format

import "github.com/tvgrab-cli/tvgrab/track"

// Band is a named resolution class, bounded on the video width in pixels.
// Encoders pad or crop heights, so widths are the stable discriminator.
type Band struct {
	Name     string
	MinWidth int
	MaxWidth int // 0 means unbounded
}

var (
	BandUHD = Band{Name: "UHD", MinWidth: 3500}
	BandFHD = Band{Name: "FHD", MinWidth: 1700, MaxWidth: 2199}
	BandHD  = Band{Name: "HD", MinWidth: 1100, MaxWidth: 1699}
	BandSD  = Band{Name: "SD", MinWidth: 700, MaxWidth: 1099}
)

// Contains reports whether the track's width falls inside the band.
func (b Band) Contains(t *track.Track) bool {
	if t.Width < b.MinWidth {
		return false
	}
	return b.MaxWidth == 0 || t.Width <= b.MaxWidth
}
