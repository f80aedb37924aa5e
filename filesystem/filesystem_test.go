package filesystem

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestBackendSwap(t *testing.T) {
	Convey("Filesystem backend", t, func() {
		SetMemMapFs()
		defer SetOsFs()

		Convey("In-memory writes stay in memory", func() {
			So(API().WriteFile("/probe.txt", []byte("x"), 0644), ShouldBeNil)

			exists, err := API().Exists("/probe.txt")
			So(err, ShouldBeNil)
			So(exists, ShouldBeTrue)
		})

		Convey("SetMemMapFs resets state", func() {
			SetMemMapFs()
			exists, err := API().Exists("/probe.txt")
			So(err, ShouldBeNil)
			So(exists, ShouldBeFalse)
		})
	})
}
