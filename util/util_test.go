package util

import (
	"regexp"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSanitizeFilename(t *testing.T) {
	Convey("SanitizeFilename", t, func() {
		Convey("Should drop disallowed chars", func() {
			So(SanitizeFilename(`Tron: Legacy?`), ShouldEqual, "Tron Legacy")
		})
		Convey("Should collapse fullwidth punctuation via NFKC first", func() {
			// Fullwidth colon normalizes to ASCII ':' and is then removed.
			So(SanitizeFilename("Title：Sub"), ShouldEqual, "TitleSub")
		})
		Convey("Should strip control characters", func() {
			So(SanitizeFilename("a\tb\rc\nd"), ShouldEqual, "abcd")
		})
		Convey("Should trim trailing dots and spaces", func() {
			So(SanitizeFilename("name.. "), ShouldEqual, "name")
		})
	})
}

func TestQuantify(t *testing.T) {
	Convey("Quantify", t, func() {
		So(Quantify(1, "track", "tracks"), ShouldEqual, "1 track")
		So(Quantify(3, "track", "tracks"), ShouldEqual, "3 tracks")
	})
}

func TestCapitalize(t *testing.T) {
	Convey("Capitalize", t, func() {
		So(Capitalize("movie"), ShouldEqual, "Movie")
		So(Capitalize(""), ShouldEqual, "")
	})
}

func TestReGroups(t *testing.T) {
	Convey("ReGroups", t, func() {
		re := regexp.MustCompile(`(?P<kind>\w+)/(?P<id>umc\.\S+)`)
		groups := ReGroups(re, "movie/umc.cmc.abc123")
		So(groups["kind"], ShouldEqual, "movie")
		So(groups["id"], ShouldEqual, "umc.cmc.abc123")
	})
}

func TestExcerpt(t *testing.T) {
	Convey("Excerpt", t, func() {
		So(Excerpt("line one\nline   two", 100), ShouldEqual, "line one line two")
		So(Excerpt("abcdef", 3), ShouldEqual, "abc")
	})
}

func TestMaxMin(t *testing.T) {
	Convey("Max/Min", t, func() {
		So(Max(1, 5, 2), ShouldEqual, 5)
		So(Min(1, 5, 2), ShouldEqual, 1)
	})
}
