package format

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/tvgrab-cli/tvgrab/log"
	"github.com/tvgrab-cli/tvgrab/track"
)

// None disables a selection axis when passed as audio quality or a language.
const None = "none"

// Selection is the final pick handed to the download stage. Audio may be
// empty when no acceptable audio stream exists or audio was disabled; the
// result is then video-only.
type Selection struct {
	Video     *track.Track
	Audio     []*track.Track
	Subtitles []*track.Track
}

// Options steer profile-driven selection. Zero values mean profile defaults:
// original-language audio, no subtitles.
type Options struct {
	Profile      string
	AudioQuality string // codec label, or "none"
	AudioLang    string // language tag, empty means the original language
	SubLangs     []string
}

// Select applies a named profile to the listing.
func Select(l *track.Listing, opts Options) (*Selection, error) {
	name := opts.Profile
	if name == "" {
		name = DefaultProfile
	}
	p, err := LookupProfile(name)
	if err != nil {
		return nil, err
	}

	video, err := pickVideo(l, p)
	if err != nil {
		return nil, err
	}

	codec := p.AudioCodec
	if opts.AudioQuality != "" {
		codec = normalizeCodec(opts.AudioQuality)
	}

	lang := opts.AudioLang
	if strings.EqualFold(lang, "original") {
		lang = ""
	}

	sel := &Selection{
		Video:     video,
		Subtitles: pickSubtitles(l, opts.SubLangs),
	}
	if audio := pickAudio(l, codec, lang); audio != nil {
		sel.Audio = append(sel.Audio, audio)
	}
	return sel, nil
}

// pickVideo walks the profile's cascade and returns the best track of the
// first rung that matches anything. Best means largest area, then highest
// bandwidth; the listing is already in that order.
func pickVideo(l *track.Listing, p Profile) (*track.Track, error) {
	if len(l.Video) == 0 {
		return nil, &NotFoundError{Want: "any video stream"}
	}

	for i, r := range p.cascade() {
		for _, t := range l.Video {
			if t.Range == r.rng && r.band.Contains(t) {
				if i > 0 {
					log.Warnf("profile %s degraded to %s %s", p.Name, r.band.Name, r.rng)
				}
				return t, nil
			}
		}
	}

	return nil, &NotFoundError{Want: fmt.Sprintf("video for profile %s", p.Name)}
}

// normalizeCodec maps user spellings onto the canonical codec labels.
func normalizeCodec(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "atmos", "ec3-atmos":
		return track.CodecAtmos
	case "dd51", "dd5.1", "ac3":
		return track.CodecDD51
	case "aac":
		return track.CodecAAC
	case "heaac", "he-aac":
		return track.CodecHEAAC
	case None:
		return None
	default:
		return strings.ToUpper(s)
	}
}

// audioMatches reports whether the track fits one ladder rung. An empty lang
// means the original-language track; otherwise the language tag must match
// exactly.
func audioMatches(t *track.Track, codec, lang string) bool {
	if t.AD {
		return false
	}
	if codec != "" && !strings.EqualFold(t.Codec, codec) {
		return false
	}
	if lang == "" {
		return t.Original
	}
	return strings.EqualFold(t.Language, lang)
}

// pickAudio descends the audio fallback ladder: the requested codec in the
// requested language, then the original-language AAC and HE-AAC, then any
// AAC or HE-AAC at all. Descriptive audio never matches. A fully empty
// ladder is a warning, not an error; the selection proceeds video-only.
func pickAudio(l *track.Listing, codec, lang string) *track.Track {
	if codec == None {
		return nil
	}

	best := func(match func(t *track.Track) bool) *track.Track {
		var found *track.Track
		for _, t := range l.Audio {
			if !match(t) {
				continue
			}
			if found == nil || t.Bandwidth > found.Bandwidth {
				found = t
			}
		}
		return found
	}

	rungs := []func(t *track.Track) bool{
		func(t *track.Track) bool { return audioMatches(t, codec, lang) },
		func(t *track.Track) bool { return audioMatches(t, track.CodecAAC, "") },
		func(t *track.Track) bool { return audioMatches(t, track.CodecHEAAC, "") },
		func(t *track.Track) bool { return !t.AD && strings.EqualFold(t.Codec, track.CodecAAC) },
		func(t *track.Track) bool { return !t.AD && strings.EqualFold(t.Codec, track.CodecHEAAC) },
	}

	for i, match := range rungs {
		if t := best(match); t != nil {
			if i > 0 {
				log.Warnf("requested audio unavailable, using %s", t)
			}
			return t
		}
	}

	log.Warn("no acceptable audio stream, continuing video-only")
	return nil
}

// subRank orders subtitle variants for selection: non-SDH over SDH, then
// non-forced over forced. Lower is better.
func subRank(t *track.Track) int {
	rank := 0
	if t.SDH {
		rank += 2
	}
	if t.Forced {
		rank += 1
	}
	return rank
}

// pickSubtitles selects one subtitle per requested language: exact language
// match only (a bare code does not cover its regional variants), preferring
// non-SDH over SDH, then non-forced over forced. Unavailable languages are
// warnings.
func pickSubtitles(l *track.Listing, langs []string) []*track.Track {
	var picked []*track.Track
	for _, lang := range langs {
		lang = strings.TrimSpace(lang)
		if lang == "" || strings.EqualFold(lang, None) {
			continue
		}

		matches := lo.Filter(l.Subtitle, func(t *track.Track, _ int) bool {
			return strings.EqualFold(t.Language, lang)
		})
		if len(matches) == 0 {
			log.Warnf("no subtitle stream for language %q", lang)
			continue
		}

		picked = append(picked, lo.MinBy(matches, func(a, b *track.Track) bool {
			return subRank(a) < subRank(b)
		}))
	}
	return picked
}
