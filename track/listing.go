package track

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// Listing holds the indexed streams of one master playlist. Within each family
// the order is the display and identifier order produced by Index; it is
// deterministic for a fixed playlist.
type Listing struct {
	Video    []*Track
	Audio    []*Track
	Subtitle []*Track

	byFID map[string]*Track
}

// boolOrder sorts false before true.
func boolOrder(a, b bool) int {
	switch {
	case a == b:
		return 0
	case b:
		return -1
	default:
		return 1
	}
}

// Index sorts the streams into their canonical order and assigns each a
// family-scoped identifier: v0, v1, ... a0, a1, ... s0, s1, ...
// Sorting is stable, so ties keep their playlist order and re-indexing the
// same playlist reproduces the same identifiers.
func Index(tracks []*Track) *Listing {
	l := &Listing{byFID: make(map[string]*Track, len(tracks))}

	for _, t := range tracks {
		switch t.Type {
		case TypeVideo:
			l.Video = append(l.Video, t)
		case TypeAudio:
			l.Audio = append(l.Audio, t)
		case TypeSubtitle:
			l.Subtitle = append(l.Subtitle, t)
		}
	}

	// Video: best first, by pixel area then bandwidth.
	slices.SortStableFunc(l.Video, func(a, b *Track) int {
		if c := b.Area() - a.Area(); c != 0 {
			return c
		}
		return b.Bandwidth - a.Bandwidth
	})

	// Audio: original language first, descriptive audio last, then language
	// and channel count. Full-key ties keep their playlist order.
	slices.SortStableFunc(l.Audio, func(a, b *Track) int {
		if a.Original != b.Original {
			return boolOrder(b.Original, a.Original)
		}
		if a.AD != b.AD {
			return boolOrder(a.AD, b.AD)
		}
		if c := strings.Compare(a.Language, b.Language); c != 0 {
			return c
		}
		return strings.Compare(a.Channels, b.Channels)
	})

	// Subtitles: by language, plain variants first, forced last.
	slices.SortStableFunc(l.Subtitle, func(a, b *Track) int {
		if c := strings.Compare(a.Language, b.Language); c != 0 {
			return c
		}
		if a.Forced != b.Forced {
			return boolOrder(a.Forced, b.Forced)
		}
		return boolOrder(a.SDH, b.SDH)
	})

	for _, family := range [][]*Track{l.Video, l.Audio, l.Subtitle} {
		for i, t := range family {
			t.FID = fmt.Sprintf("%s%d", t.Type.Prefix(), i)
			l.byFID[t.FID] = t
		}
	}

	return l
}

// Get resolves an identifier to its track.
func (l *Listing) Get(fid string) (*Track, bool) {
	t, ok := l.byFID[strings.ToLower(strings.TrimSpace(fid))]
	return t, ok
}

// Len is the total stream count across families.
func (l *Listing) Len() int {
	return len(l.Video) + len(l.Audio) + len(l.Subtitle)
}

// Lines renders the whole listing for terminal display, one track per line,
// grouped by family.
func (l *Listing) Lines() []string {
	lines := make([]string, 0, l.Len())
	for _, family := range [][]*Track{l.Video, l.Audio, l.Subtitle} {
		for _, t := range family {
			lines = append(lines, t.String())
		}
	}
	return lines
}
