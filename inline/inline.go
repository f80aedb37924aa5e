package inline

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/tvgrab-cli/tvgrab/catalog"
	"github.com/tvgrab-cli/tvgrab/format"
	"github.com/tvgrab-cli/tvgrab/log"
	"github.com/tvgrab-cli/tvgrab/storefront"
	"github.com/tvgrab-cli/tvgrab/track"
	"github.com/tvgrab-cli/tvgrab/util"
)

// Run executes the whole resolution pipeline: URL to reference, reference to
// access context, context to metadata, and, when a manifest parser is wired,
// metadata to an indexed listing with a concrete stream selection.
func Run(options *Options) error {
	if options.Out == nil {
		options.Out = os.Stdout
	}
	if options.Acquirer == nil {
		options.Acquirer = storefront.New()
	}
	if options.Fetcher == nil {
		options.Fetcher = catalog.NewFetcher()
	}

	// Step 1: parse and validate the content page URL. Pure, no network.
	ref, err := catalog.ParseRef(options.URL)
	if err != nil {
		return err
	}

	if options.Probe {
		catalog.Probe(ref)
	}

	// Step 2: acquire the storefront access context.
	access, err := options.Acquirer.Context(ref.Storefront)
	if err != nil {
		return err
	}

	// Step 3: resolve playable metadata.
	items, err := options.Fetcher.Resolve(access, ref, options.DefaultOnly)
	if err != nil {
		return err
	}
	log.Infof("resolved %s for %s/%s", util.Quantify(len(items), "playable", "playables"), ref.Kind, ref.ID)

	items, err = pickTrailers(items, options.Trailer)
	if err != nil {
		return err
	}

	// Step 4: per playable, parse and index the manifest, then select.
	results := make([]*Item, 0, len(items))
	for i := range items {
		m := &items[i]
		item := &Item{Metadata: m, Filename: m.Filename()}

		if options.Parser != nil {
			listing, err := indexManifest(options, m.HLSURL)
			if err != nil {
				return err
			}

			sel, err := selectTracks(options, listing)
			if err != nil {
				return err
			}

			item.Tracks = listing.Lines()
			item.Selection = describeSelection(sel)
		}

		results = append(results, item)
	}

	// Step 5: dispatch to the configured output writer.
	if options.Json {
		return writeJson(options.Out, ref, access, results)
	}

	for _, item := range results {
		fmt.Fprintln(options.Out, item.Filename)
		if item.Selection != nil {
			fmt.Fprintln(options.Out, item.Selection.Expression)
		}
	}
	return nil
}

var trailerPattern = regexp.MustCompile(`^t\d+$`)

// pickTrailers narrows the resolved playables to one selector. Empty and
// "all" keep everything; "tN" keeps the N-th shelf entry.
func pickTrailers(items []catalog.ContentMetadata, selector string) ([]catalog.ContentMetadata, error) {
	selector = strings.ToLower(strings.TrimSpace(selector))
	if selector == "" || selector == "all" {
		return items, nil
	}
	if !trailerPattern.MatchString(selector) {
		return nil, &format.ValidationError{Input: selector, Reason: "expected a trailer identifier like t0, or all"}
	}

	n, err := strconv.Atoi(selector[1:])
	if err != nil || n >= len(items) {
		return nil, &format.ValidationError{
			Input:  selector,
			Reason: fmt.Sprintf("only %d trailer(s) resolved", len(items)),
		}
	}
	return items[n : n+1], nil
}

func indexManifest(options *Options, hlsURL string) (*track.Listing, error) {
	raw, err := options.Parser.Parse(context.Background(), hlsURL)
	if err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", hlsURL, err)
	}
	return track.Index(raw), nil
}

func selectTracks(options *Options, listing *track.Listing) (*format.Selection, error) {
	if expr, ok := options.Expression.Get(); ok {
		return format.ParseExpression(expr, listing)
	}

	return format.Select(listing, format.Options{
		Profile:      options.Profile.OrElse(""),
		AudioQuality: options.AudioQuality,
		AudioLang:    options.AudioLang,
		SubLangs:     options.SubLangs,
	})
}

// describeSelection flattens a selection into its document form, including
// the effective expression equivalent to what was picked.
func describeSelection(sel *format.Selection) *Selection {
	doc := &Selection{Video: sel.Video.String()}

	parts := []string{sel.Video.FID}
	for _, a := range sel.Audio {
		doc.Audio = append(doc.Audio, a.String())
		parts = append(parts, a.FID)
	}
	for _, s := range sel.Subtitles {
		doc.Subtitles = append(doc.Subtitles, s.String())
		parts = append(parts, s.FID)
	}

	doc.Expression = strings.Join(parts, "+")
	return doc
}
