package storefront

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/tvgrab-cli/tvgrab/config"
	"github.com/tvgrab-cli/tvgrab/key"
)

func setupViper() {
	viper.Set(key.NetworkTimeout, 5)
	viper.Set(key.NetworkInsecureRetry, false)
	viper.Set(key.StorefrontDefault, "us")
	viper.Set(key.LocaleDefault, "en-US")
	viper.Set(key.StorefrontIDs, map[string]any{
		"us": 143441,
		"be": 143446,
	})
}

func serverDataPage(token string) string {
	return fmt.Sprintf(`<html lang="en-US"><head>
		<script type="application/json" id="serialized-server-data">
		[{"data":{"configureParams":{"developerToken":%q},"storefrontId":143446,"locale":"fr-BE"}}]
		</script></head><body></body></html>`, token)
}

func TestRunStrategies(t *testing.T) {
	Convey("Strategy chain", t, func() {
		token := makeToken(`{"alg":"ES256","kid":"WebPlayerKey"}`)

		Convey("Strategy 1: historical JSON path wins first", func() {
			p, err := parsePage(serverDataPage(token))
			So(err, ShouldBeNil)

			got, name, ok := runStrategies(p)
			So(ok, ShouldBeTrue)
			So(got, ShouldEqual, token)
			So(name, ShouldEqual, "original-json-path")
		})

		Convey("Strategy 2: deep search finds a relocated key", func() {
			html := fmt.Sprintf(`<html><script type="application/json" id="serialized-server-data">
				[{"data":{"shelves":[{"config":{"developerToken":%q}}]}}]
			</script></html>`, token)
			p, err := parsePage(html)
			So(err, ShouldBeNil)

			got, name, ok := runStrategies(p)
			So(ok, ShouldBeTrue)
			So(got, ShouldEqual, token)
			So(name, ShouldEqual, "deep-json-search")
		})

		Convey("Strategy 3: meta tag content", func() {
			html := fmt.Sprintf(`<html><head><meta name="player" content="token=%s"></head></html>`, token)
			p, err := parsePage(html)
			So(err, ShouldBeNil)

			_, name, ok := runStrategies(p)
			So(ok, ShouldBeTrue)
			So(name, ShouldEqual, "meta-tags")
		})

		Convey("Strategy 4: script assignment", func() {
			html := fmt.Sprintf(`<html><script>window.cfg={devToken:"%s"};</script></html>`, token)
			p, err := parsePage(html)
			So(err, ShouldBeNil)

			got, name, ok := runStrategies(p)
			So(ok, ShouldBeTrue)
			So(got, ShouldEqual, token)
			So(name, ShouldEqual, "script-tags")
		})

		Convey("Strategy 5: devToken URL parameter", func() {
			html := fmt.Sprintf(`<html><body><a href="/fetch-proxy?devToken=%s&x=1">play</a></body></html>`, token)
			p, err := parsePage(html)
			So(err, ShouldBeNil)

			got, name, ok := runStrategies(p)
			So(ok, ShouldBeTrue)
			So(got, ShouldEqual, token)
			So(name, ShouldEqual, "url-param-devtoken")
		})

		Convey("Strategy 6: broad page scan", func() {
			html := fmt.Sprintf(`<html><body>noise %s noise</body></html>`, token)
			p, err := parsePage(html)
			So(err, ShouldBeNil)

			got, name, ok := runStrategies(p)
			So(ok, ShouldBeTrue)
			So(got, ShouldEqual, token)
			So(name, ShouldEqual, "broad-jwt-search")
		})

		Convey("Invalid candidates are skipped, not accepted", func() {
			bogus := makeToken(`{"kid":"NoAlgHere"}`)
			p, err := parsePage(fmt.Sprintf(`<html><body>%s</body></html>`, bogus))
			So(err, ShouldBeNil)

			_, _, ok := runStrategies(p)
			So(ok, ShouldBeFalse)
		})
	})
}

func TestDeriveContext(t *testing.T) {
	Convey("Context derivation", t, func() {
		setupViper()
		token := makeToken(`{"alg":"ES256","kid":"WebPlayerKey"}`)

		Convey("Numeric storefront id comes from page JSON when plausible", func() {
			p, err := parsePage(serverDataPage(token))
			So(err, ShouldBeNil)
			So(deriveSF(p, "be"), ShouldEqual, 143446)
		})

		Convey("Out-of-range ids fall back to the table", func() {
			html := fmt.Sprintf(`<html><script type="application/json" id="serialized-server-data">
				[{"data":{"sf":42,"developerToken":%q}}]
			</script></html>`, token)
			p, err := parsePage(html)
			So(err, ShouldBeNil)
			So(deriveSF(p, "be"), ShouldEqual, 143446)
			So(deriveSF(p, "xx"), ShouldEqual, 143441)
		})

		Convey("Locale prefers the declared language attribute", func() {
			p, err := parsePage(`<html lang="fr-BE"><body></body></html>`)
			So(err, ShouldBeNil)
			So(deriveLocale(p), ShouldEqual, "fr-BE")
		})

		Convey("Locale falls back to a deep JSON scan, then the default", func() {
			p, err := parsePage(serverDataPage(token))
			So(err, ShouldBeNil)
			// lang="en-US" on the fixture page already matches; strip it.
			p.lang = ""
			So(deriveLocale(p), ShouldEqual, "fr-BE")

			p2, err := parsePage(`<html><body></body></html>`)
			So(err, ShouldBeNil)
			So(deriveLocale(p2), ShouldEqual, "en-US")
		})
	})
}

func TestFallbackTable(t *testing.T) {
	Convey("FallbackID", t, func() {
		// The registered default, exactly as config.Setup hands it to viper.
		viper.Set(key.StorefrontIDs, config.Default[key.StorefrontIDs].Value)

		Convey("The registered table survives viper's string-map cast", func() {
			So(FallbackID("fr"), ShouldEqual, 143442)
			So(FallbackID("gb"), ShouldEqual, 143444)
		})

		Convey("Unknown codes take the baseline entry", func() {
			So(FallbackID("zz"), ShouldEqual, 143441)
		})
	})
}

func TestAcquirer(t *testing.T) {
	Convey("Acquirer", t, func() {
		setupViper()
		token := makeToken(`{"alg":"ES256","kid":"WebPlayerKey"}`)

		var hits int
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits++
			_, _ = w.Write([]byte(serverDataPage(token)))
		}))
		defer srv.Close()

		a := &Acquirer{base: srv.URL}

		Convey("Acquires a full context", func() {
			ctx, err := a.Context("be")
			So(err, ShouldBeNil)
			So(ctx.Token, ShouldEqual, token)
			So(ctx.SF, ShouldEqual, 143446)
			So(ctx.Locale, ShouldEqual, "en-US")
			So(ctx.Code, ShouldEqual, "be")
			So(ctx.Strategy, ShouldEqual, "original-json-path")
		})

		Convey("Caches per storefront and re-acquires on change", func() {
			_, err := a.Context("be")
			So(err, ShouldBeNil)
			_, err = a.Context("be")
			So(err, ShouldBeNil)
			So(hits, ShouldEqual, 1)

			_, err = a.Context("us")
			So(err, ShouldBeNil)
			So(hits, ShouldEqual, 2)
		})

		Convey("Empty code normalizes to the configured default", func() {
			ctx, err := a.Context("")
			So(err, ShouldBeNil)
			So(ctx.Code, ShouldEqual, "us")
		})

		Convey("A token-free page is a fatal shape error", func() {
			empty := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("<html><body>nothing here</body></html>"))
			}))
			defer empty.Close()

			_, err := (&Acquirer{base: empty.URL}).Context("us")
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "extraction strategies failed")
		})
	})
}
