package storefront

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/tvgrab-cli/tvgrab/log"
)

// page is the parsed view of a storefront landing page shared by every
// extraction strategy. ServerData is nil when the embedded JSON blob is
// missing or unparsable; strategies that depend on it skip themselves.
type page struct {
	html       string
	doc        *goquery.Document
	serverData any
	lang       string
}

// parsePage builds the strategy input from raw landing-page HTML.
func parsePage(html string) (*page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	p := &page{
		html: html,
		doc:  doc,
		lang: strings.TrimSpace(doc.Find("html").AttrOr("lang", "")),
	}

	raw := doc.Find(`script[type="application/json"]#serialized-server-data`).First().Text()
	if raw == "" {
		log.Warn("serialized-server-data script tag not found on page, relying on alternative token extraction")
		return p, nil
	}

	if err := json.Unmarshal([]byte(raw), &p.serverData); err != nil {
		log.Warn("serialized-server-data found but JSON parse failed")
	}

	return p, nil
}
