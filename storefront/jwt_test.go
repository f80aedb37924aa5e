package storefront

import (
	"encoding/base64"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

// makeToken assembles a JWT-shaped string from a raw header document, padding
// the claims and signature segments so the broad page-scan pattern matches.
func makeToken(header string) string {
	h := base64.RawURLEncoding.EncodeToString([]byte(header))
	claims := base64.RawURLEncoding.EncodeToString([]byte(`{"iss":"catalog","exp":9999999999,"iat":1111111111}`))
	sig := strings.Repeat("Sig_natureBlock", 4)
	return h + "." + claims + "." + sig
}

func TestValidJWT(t *testing.T) {
	Convey("ValidJWT", t, func() {
		Convey("Accepts a token whose header decodes to JSON with alg", func() {
			So(ValidJWT(makeToken(`{"alg":"ES256","kid":"WebPlayerKey"}`)), ShouldBeTrue)
		})

		Convey("Rejects a header without alg", func() {
			So(ValidJWT(makeToken(`{"kid":"WebPlayerKey"}`)), ShouldBeFalse)
		})

		Convey("Rejects a header that is not JSON", func() {
			So(ValidJWT(makeToken("not json at all")), ShouldBeFalse)
		})

		Convey("Rejects the wrong number of segments", func() {
			So(ValidJWT("eyJhbGciOiJFUzI1NiJ9.payload"), ShouldBeFalse)
			So(ValidJWT("a.b.c.d"), ShouldBeFalse)
			So(ValidJWT(""), ShouldBeFalse)
		})

		Convey("Rejects segments that are not base64url", func() {
			So(ValidJWT("!!!.???.###"), ShouldBeFalse)
		})
	})
}
