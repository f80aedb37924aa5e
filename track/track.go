// Package track models the streams advertised by a master playlist and
// assigns them the stable identifiers the selection engine operates on.
package track

import (
	"fmt"
	"strings"
)

// Type discriminates the three stream families.
type Type string

const (
	TypeVideo    Type = "video"
	TypeAudio    Type = "audio"
	TypeSubtitle Type = "subtitle"
)

// Prefix returns the identifier prefix for the type: v, a or s.
func (t Type) Prefix() string {
	return string(t[:1])
}

// Audio codec labels as the selection engine matches them.
const (
	CodecAAC   = "AAC"
	CodecHEAAC = "HE-AAC"
	CodecAtmos = "ATMOS"
	CodecDD51  = "DD5.1"
)

// DynamicRange classifies video tracks for profile matching.
type DynamicRange string

const (
	RangeSDR  DynamicRange = "SDR"
	RangeHDR  DynamicRange = "HDR"
	RangeDoVi DynamicRange = "DoVi"
)

// Track is one stream from a master playlist. FID is assigned by Index and is
// stable for a fixed playlist.
type Track struct {
	Type      Type
	FID       string
	URI       string
	Codec     string
	Bandwidth int
	Width     int
	Height    int
	FPS       float64
	Range     DynamicRange
	Language  string
	Name      string
	Channels  string
	Original  bool
	AD        bool
	Forced    bool
	SDH       bool
}

// Area is the pixel area used to order and band video tracks.
func (t *Track) Area() int {
	return t.Width * t.Height
}

// Resolution formats the video dimensions.
func (t *Track) Resolution() string {
	return fmt.Sprintf("%dx%d", t.Width, t.Height)
}

// String renders the track the way listings print it.
func (t *Track) String() string {
	switch t.Type {
	case TypeVideo:
		return fmt.Sprintf("%s: %s %s %s %.3ffps %.2fMb/s",
			t.FID, t.Resolution(), t.Codec, t.Range, t.FPS, float64(t.Bandwidth)/1e6)
	case TypeAudio:
		var flags []string
		if t.Original {
			flags = append(flags, "original")
		}
		if t.AD {
			flags = append(flags, "AD")
		}
		suffix := ""
		if len(flags) > 0 {
			suffix = " [" + strings.Join(flags, ",") + "]"
		}
		return fmt.Sprintf("%s: %s %s %sch%s", t.FID, t.Language, t.Codec, t.Channels, suffix)
	default:
		var flags []string
		if t.Forced {
			flags = append(flags, "forced")
		}
		if t.SDH {
			flags = append(flags, "SDH")
		}
		suffix := ""
		if len(flags) > 0 {
			suffix = " [" + strings.Join(flags, ",") + "]"
		}
		return fmt.Sprintf("%s: %s%s", t.FID, t.Language, suffix)
	}
}
