package format

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/tvgrab-cli/tvgrab/track"
)

func fullListing() *track.Listing {
	return track.Index([]*track.Track{
		{Type: track.TypeVideo, Codec: "hvc1", Width: 3840, Height: 2160, Bandwidth: 22_000_000, Range: track.RangeDoVi},
		{Type: track.TypeVideo, Codec: "hvc1", Width: 3840, Height: 2160, Bandwidth: 18_000_000, Range: track.RangeHDR},
		{Type: track.TypeVideo, Codec: "hvc1", Width: 1920, Height: 1080, Bandwidth: 10_000_000, Range: track.RangeSDR},
		{Type: track.TypeVideo, Codec: "hvc1", Width: 1920, Height: 1080, Bandwidth: 6_000_000, Range: track.RangeSDR},
		{Type: track.TypeVideo, Codec: "avc1", Width: 1280, Height: 720, Bandwidth: 3_000_000, Range: track.RangeSDR},
		{Type: track.TypeVideo, Codec: "avc1", Width: 960, Height: 540, Bandwidth: 1_500_000, Range: track.RangeSDR},

		{Type: track.TypeAudio, Codec: track.CodecAtmos, Language: "en", Channels: "16", Original: true, Bandwidth: 768_000},
		{Type: track.TypeAudio, Codec: track.CodecDD51, Language: "en", Channels: "6", Original: true, Bandwidth: 448_000},
		{Type: track.TypeAudio, Codec: track.CodecAAC, Language: "en", Channels: "2", Original: true, Bandwidth: 160_000},
		{Type: track.TypeAudio, Codec: track.CodecAAC, Language: "fr", Channels: "2", Bandwidth: 160_000},
		{Type: track.TypeAudio, Codec: track.CodecAAC, Language: "en", Channels: "2", AD: true, Bandwidth: 160_000},

		{Type: track.TypeSubtitle, Language: "en"},
		{Type: track.TypeSubtitle, Language: "en", SDH: true},
		{Type: track.TypeSubtitle, Language: "fr", Forced: true},
	})
}

func TestSelectProfiles(t *testing.T) {
	Convey("Select", t, func() {
		l := fullListing()

		Convey("4K_DOVI_ATMOS picks the top rung when available", func() {
			sel, err := Select(l, Options{Profile: "4K_DOVI_ATMOS"})
			So(err, ShouldBeNil)
			So(sel.Video.Range, ShouldEqual, track.RangeDoVi)
			So(sel.Video.Width, ShouldEqual, 3840)
			So(sel.Audio, ShouldHaveLength, 1)
			So(sel.Audio[0].Codec, ShouldEqual, track.CodecAtmos)
		})

		Convey("Profile names are case-insensitive", func() {
			sel, err := Select(l, Options{Profile: "4k_dovi_atmos"})
			So(err, ShouldBeNil)
			So(sel.Video.Range, ShouldEqual, track.RangeDoVi)
		})

		Convey("1080_SDR_AAC picks the best FHD SDR stream", func() {
			sel, err := Select(l, Options{Profile: "1080_SDR_AAC"})
			So(err, ShouldBeNil)
			So(sel.Video.Width, ShouldEqual, 1920)
			So(sel.Video.Bandwidth, ShouldEqual, 10_000_000)
			So(sel.Audio[0].Codec, ShouldEqual, track.CodecAAC)
			So(sel.Audio[0].Original, ShouldBeTrue)
		})

		Convey("The empty profile falls back to the default", func() {
			sel, err := Select(l, Options{})
			So(err, ShouldBeNil)
			So(sel.Video.Range, ShouldEqual, track.RangeSDR)
			So(sel.Audio[0].Codec, ShouldEqual, track.CodecAAC)
		})

		Convey("A 4K profile degrades past its rung into the SDR net", func() {
			sdrOnly := track.Index([]*track.Track{
				{Type: track.TypeVideo, Width: 1920, Height: 1080, Bandwidth: 8_000_000, Range: track.RangeSDR},
				{Type: track.TypeVideo, Width: 1280, Height: 720, Bandwidth: 3_000_000, Range: track.RangeSDR},
			})
			sel, err := Select(sdrOnly, Options{Profile: "4K_DOVI"})
			So(err, ShouldBeNil)
			So(sel.Video.Width, ShouldEqual, 1920)
			So(sel.Video.Range, ShouldEqual, track.RangeSDR)
		})

		Convey("A DoVi profile never substitutes 4K HDR", func() {
			mixed := track.Index([]*track.Track{
				{Type: track.TypeVideo, Width: 3840, Height: 2160, Bandwidth: 18_000_000, Range: track.RangeHDR},
				{Type: track.TypeVideo, Width: 1920, Height: 1080, Bandwidth: 8_000_000, Range: track.RangeSDR},
			})
			sel, err := Select(mixed, Options{Profile: "4K_DOVI"})
			So(err, ShouldBeNil)
			So(sel.Video.Width, ShouldEqual, 1920)
			So(sel.Video.Range, ShouldEqual, track.RangeSDR)
		})

		Convey("Removing the FHD candidate cascades to the HD band", func() {
			mixed := track.Index([]*track.Track{
				{Type: track.TypeVideo, Width: 3840, Height: 2160, Bandwidth: 18_000_000, Range: track.RangeHDR},
				{Type: track.TypeVideo, Width: 1280, Height: 720, Bandwidth: 3_000_000, Range: track.RangeSDR},
				{Type: track.TypeVideo, Width: 854, Height: 480, Bandwidth: 1_200_000, Range: track.RangeSDR},
			})
			sel, err := Select(mixed, Options{Profile: "1080_SDR"})
			So(err, ShouldBeNil)
			So(sel.Video.Width, ShouldEqual, 1280)
		})

		Convey("HD and SD rungs catch what FHD cannot", func() {
			small := track.Index([]*track.Track{
				{Type: track.TypeVideo, Width: 960, Height: 540, Bandwidth: 1_500_000, Range: track.RangeSDR},
			})
			sel, err := Select(small, Options{Profile: "1080_SDR"})
			So(err, ShouldBeNil)
			So(sel.Video.Width, ShouldEqual, 960)
		})

		Convey("An empty listing is a not-found error", func() {
			_, err := Select(track.Index(nil), Options{Profile: "1080_SDR"})
			So(err, ShouldNotBeNil)

			var nf *NotFoundError
			So(err, ShouldHaveSameTypeAs, nf)
		})

		Convey("Unknown profiles fail with a suggestion", func() {
			_, err := Select(l, Options{Profile: "4K_DOV_ATMOS"})
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "did you mean")
		})
	})
}

func TestAudioLadder(t *testing.T) {
	Convey("pickAudio", t, func() {
		l := fullListing()

		Convey("Exact codec in the original language wins", func() {
			a := pickAudio(l, track.CodecDD51, "")
			So(a, ShouldNotBeNil)
			So(a.Codec, ShouldEqual, track.CodecDD51)
		})

		Convey("A requested language overrides the original", func() {
			a := pickAudio(l, track.CodecAAC, "fr")
			So(a, ShouldNotBeNil)
			So(a.Language, ShouldEqual, "fr")
		})

		Convey("An empty codec+language rung falls back to the original language", func() {
			l2 := track.Index([]*track.Track{
				{Type: track.TypeAudio, Codec: track.CodecAAC, Language: "en", Channels: "2", Original: true, Bandwidth: 256_000},
				{Type: track.TypeAudio, Codec: track.CodecAAC, Language: "fr", Channels: "2", Bandwidth: 128_000},
			})
			a := pickAudio(l2, track.CodecDD51, "fr")
			So(a, ShouldNotBeNil)
			So(a.Language, ShouldEqual, "en")
			So(a.Original, ShouldBeTrue)
		})

		Convey("An unavailable codec falls back to AAC", func() {
			noAtmos := track.Index([]*track.Track{
				{Type: track.TypeAudio, Codec: track.CodecAAC, Language: "en", Channels: "2", Original: true, Bandwidth: 160_000},
				{Type: track.TypeAudio, Codec: track.CodecHEAAC, Language: "en", Channels: "2", Original: true, Bandwidth: 64_000},
			})
			a := pickAudio(noAtmos, track.CodecAtmos, "")
			So(a, ShouldNotBeNil)
			So(a.Codec, ShouldEqual, track.CodecAAC)
		})

		Convey("Descriptive audio never matches, even as the last resort", func() {
			adOnly := track.Index([]*track.Track{
				{Type: track.TypeAudio, Codec: track.CodecAAC, Language: "en", Channels: "2", AD: true},
			})
			So(pickAudio(adOnly, track.CodecAAC, ""), ShouldBeNil)
		})

		Convey("none disables audio entirely", func() {
			So(pickAudio(l, None, ""), ShouldBeNil)
		})

		Convey("Higher bitrate wins within a rung", func() {
			two := track.Index([]*track.Track{
				{Type: track.TypeAudio, Codec: track.CodecAAC, Language: "en", Channels: "2", Original: true, Bandwidth: 160_000},
				{Type: track.TypeAudio, Codec: track.CodecAAC, Language: "en", Channels: "6", Original: true, Bandwidth: 320_000},
			})
			a := pickAudio(two, track.CodecAAC, "")
			So(a.Bandwidth, ShouldEqual, 320_000)
		})
	})
}

func TestPickSubtitles(t *testing.T) {
	Convey("pickSubtitles", t, func() {
		l := fullListing()

		Convey("Prefers the plain variant for a language", func() {
			subs := pickSubtitles(l, []string{"en"})
			So(subs, ShouldHaveLength, 1)
			So(subs[0].SDH, ShouldBeFalse)
			So(subs[0].Forced, ShouldBeFalse)
		})

		Convey("Non-SDH beats SDH before the forced flag is considered", func() {
			variants := track.Index([]*track.Track{
				{Type: track.TypeSubtitle, Language: "en", Forced: true},
				{Type: track.TypeSubtitle, Language: "en", SDH: true},
			})
			subs := pickSubtitles(variants, []string{"en"})
			So(subs, ShouldHaveLength, 1)
			So(subs[0].Forced, ShouldBeTrue)
			So(subs[0].SDH, ShouldBeFalse)
		})

		Convey("Takes what exists when only variants remain", func() {
			subs := pickSubtitles(l, []string{"fr"})
			So(subs, ShouldHaveLength, 1)
			So(subs[0].Forced, ShouldBeTrue)
		})

		Convey("Missing languages are skipped, not fatal", func() {
			subs := pickSubtitles(l, []string{"ja", "en"})
			So(subs, ShouldHaveLength, 1)
			So(subs[0].Language, ShouldEqual, "en")
		})

		Convey("A bare code does not cover its regional variants", func() {
			regional := track.Index([]*track.Track{
				{Type: track.TypeSubtitle, Language: "en-US"},
			})
			So(pickSubtitles(regional, []string{"en"}), ShouldBeEmpty)
		})

		Convey("none and empty entries are ignored", func() {
			So(pickSubtitles(l, []string{"none", ""}), ShouldBeEmpty)
		})
	})
}

func TestParseExpression(t *testing.T) {
	Convey("ParseExpression", t, func() {
		l := fullListing()

		Convey("Resolves a full expression", func() {
			sel, err := ParseExpression("v0+a0+s0", l)
			So(err, ShouldBeNil)
			So(sel.Video.FID, ShouldEqual, "v0")
			So(sel.Audio[0].FID, ShouldEqual, "a0")
			So(sel.Subtitles, ShouldHaveLength, 1)
		})

		Convey("Video-only expressions are valid", func() {
			sel, err := ParseExpression("v2", l)
			So(err, ShouldBeNil)
			So(sel.Audio, ShouldBeEmpty)
			So(sel.Subtitles, ShouldBeEmpty)
		})

		Convey("Multiple audio streams are allowed", func() {
			sel, err := ParseExpression("v0+a0+a1", l)
			So(err, ShouldBeNil)
			So(sel.Audio, ShouldHaveLength, 2)
			So(sel.Audio[0].FID, ShouldEqual, "a0")
			So(sel.Audio[1].FID, ShouldEqual, "a1")
		})

		Convey("Multiple subtitles are allowed", func() {
			sel, err := ParseExpression("v0+s0+s2", l)
			So(err, ShouldBeNil)
			So(sel.Subtitles, ShouldHaveLength, 2)
		})

		Convey("Tolerates case and spacing", func() {
			sel, err := ParseExpression(" V0 + A1 ", l)
			So(err, ShouldBeNil)
			So(sel.Audio[0].FID, ShouldEqual, "a1")
		})

		Convey("Rejects malformed tokens by name", func() {
			_, err := ParseExpression("v0+track3", l)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, `"track3"`)

			_, err = ParseExpression("v0+a0+x1", l)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, `"x1"`)
		})

		Convey("Rejects identifiers the playlist does not have", func() {
			_, err := ParseExpression("v99", l)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, `"v99"`)
		})

		Convey("Requires exactly one video stream", func() {
			_, err := ParseExpression("a0+s0", l)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "exactly one video")

			_, err = ParseExpression("v0+v1", l)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "more than one video")
		})

		Convey("Repeated audio identifiers resolve without error", func() {
			sel, err := ParseExpression("v0+a1+a0+s0", l)
			So(err, ShouldBeNil)
			So(sel.Audio, ShouldHaveLength, 2)
			So(sel.Audio[0].FID, ShouldEqual, "a1")
		})
	})
}
