package storefront

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/tvgrab-cli/tvgrab/internal/jsontree"
	"github.com/tvgrab-cli/tvgrab/util"
)

// strategy is one independent heuristic for locating the developer token on a
// landing page. Strategies are evaluated in order and the first valid
// candidate wins; the name is recorded on the AccessContext for diagnostics.
type strategy struct {
	name    string
	extract func(p *page) (string, bool)
}

// strategies is the ordered fallback chain. The upstream relocates or removes
// the embedded JSON blob without notice, so the chain moves from the exact
// historical location to progressively broader page scans.
var strategies = []strategy{
	{"original-json-path", fromServerDataPath},
	{"deep-json-search", fromServerDataDeep},
	{"meta-tags", fromMetaTags},
	{"script-tags", fromScriptTags},
	{"url-param-devtoken", fromURLParam},
	{"broad-jwt-search", fromBroadScan},
}

// tokenShaped applies the cheap pre-filter used before full JWT validation.
func tokenShaped(s string) bool {
	return strings.HasPrefix(s, "eyJ") && len(s) > 100
}

// fromServerDataPath reads the token at its historical location inside the
// serialized-server-data blob: [0].data.configureParams.developerToken.
func fromServerDataPath(p *page) (string, bool) {
	arr, ok := p.serverData.([]any)
	if !ok || len(arr) == 0 {
		return "", false
	}

	token, ok := jsontree.GetString(arr[0], "data", "configureParams", "developerToken")
	if !ok || !tokenShaped(token) {
		return "", false
	}
	return token, true
}

// fromServerDataDeep searches the entire serialized-server-data tree for any
// key named developerToken carrying a token-shaped string.
func fromServerDataDeep(p *page) (string, bool) {
	if p.serverData == nil {
		return "", false
	}
	return jsontree.FindString(p.serverData, func(key, value string) bool {
		return key == "developerToken" && tokenShaped(value)
	})
}

// fromMetaTags scans meta tag contents for an embedded JWT.
func fromMetaTags(p *page) (token string, found bool) {
	p.doc.Find("meta").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		content := s.AttrOr("content", "")
		if len(content) < 50 || !strings.Contains(content, "eyJ") {
			return true
		}
		if m := jwtPattern.FindString(content); m != "" && ValidJWT(m) {
			token, found = m, true
			return false
		}
		return true
	})
	return token, found
}

// assignPattern matches developerToken/devToken assignments in inline scripts,
// in both JS and JSON spellings.
var assignPattern = regexp.MustCompile(
	`(?:developerToken|devToken|"developerToken"|"devToken")[\s:="']+(eyJ[A-Za-z0-9_-]{20,}\.[A-Za-z0-9_-]{20,}\.[A-Za-z0-9_-]{20,})`)

// fromScriptTags scans script bodies for a token assignment.
func fromScriptTags(p *page) (token string, found bool) {
	p.doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := s.Text()
		if text == "" || !strings.Contains(text, "eyJ") {
			return true
		}
		if m := assignPattern.FindStringSubmatch(text); m != nil && ValidJWT(m[1]) {
			token, found = m[1], true
			return false
		}
		return true
	})
	return token, found
}

// urlParamPattern matches the fetch-proxy style devToken query parameter.
var urlParamPattern = regexp.MustCompile(
	`devToken=(?P<token>eyJ[A-Za-z0-9_-]{20,}\.[A-Za-z0-9_-]{20,}\.[A-Za-z0-9_-]{20,})`)

// fromURLParam scans the whole page for a devToken URL parameter.
func fromURLParam(p *page) (string, bool) {
	token := util.ReGroups(urlParamPattern, p.html)["token"]
	if token == "" || !ValidJWT(token) {
		return "", false
	}
	return token, true
}

// fromBroadScan is the last resort: any JWT-shaped triple anywhere on the
// page, accepted only if its header decodes.
func fromBroadScan(p *page) (string, bool) {
	m := jwtPattern.FindString(p.html)
	if m == "" || !ValidJWT(m) {
		return "", false
	}
	return m, true
}
