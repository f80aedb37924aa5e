package format

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/tvgrab-cli/tvgrab/track"
)

// rung is one step of a profile's video preference order.
type rung struct {
	band Band
	rng  track.DynamicRange
}

// sdrCascade is the universal safety net appended to every profile: a plain
// SDR pick, best band first.
var sdrCascade = []rung{
	{BandFHD, track.RangeSDR},
	{BandHD, track.RangeSDR},
	{BandSD, track.RangeSDR},
}

// Profile names a quality target. Video is the primary (band, range) rung;
// anything past it degrades straight into the SDR net. AudioCodec is the
// preferred codec for the audio ladder, empty meaning best available.
type Profile struct {
	Name       string
	Video      []rung
	AudioCodec string
}

var profiles = []Profile{
	{
		Name:       "4K_DOVI_ATMOS",
		Video:      []rung{{BandUHD, track.RangeDoVi}},
		AudioCodec: track.CodecAtmos,
	},
	{
		Name:  "4K_DOVI",
		Video: []rung{{BandUHD, track.RangeDoVi}},
	},
	{
		Name:       "4K_HDR_DD51",
		Video:      []rung{{BandUHD, track.RangeHDR}},
		AudioCodec: track.CodecDD51,
	},
	{
		Name:  "4K_HDR",
		Video: []rung{{BandUHD, track.RangeHDR}},
	},
	{
		Name:       "1080_SDR_AAC",
		Video:      nil, // safety net only: FHD SDR downward
		AudioCodec: track.CodecAAC,
	},
	{
		Name:  "1080_SDR",
		Video: nil,
	},
}

// DefaultProfile is applied when neither a profile nor an expression is given.
const DefaultProfile = "1080_SDR_AAC"

// ProfileNames lists the registered profiles in declaration order.
func ProfileNames() []string {
	names := make([]string, len(profiles))
	for i, p := range profiles {
		names[i] = p.Name
	}
	return names
}

// LookupProfile resolves a profile by case-insensitive name. Unknown names
// fail with near-miss suggestions.
func LookupProfile(name string) (Profile, error) {
	for _, p := range profiles {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}

	reason := "unknown profile"
	if matches := fuzzy.RankFindNormalizedFold(name, ProfileNames()); len(matches) > 0 {
		sort.Sort(matches)
		reason = fmt.Sprintf("unknown profile, did you mean %s", matches[0].Target)
	}
	return Profile{}, &ValidationError{Input: name, Reason: reason}
}

// cascade returns the profile's full video preference order including the
// safety net.
func (p Profile) cascade() []rung {
	return append(append([]rung(nil), p.Video...), sdrCascade...)
}
