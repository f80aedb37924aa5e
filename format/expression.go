package format

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/tvgrab-cli/tvgrab/track"
)

// fidPattern matches one stream identifier token.
var fidPattern = regexp.MustCompile(`^[vas]\d+$`)

// ParseExpression resolves an explicit identifier expression like "v0+a1+s2"
// against the listing. The expression must name exactly one video stream; any
// number of audio and subtitle streams may follow. No fallback applies: what
// the expression names is what gets selected.
func ParseExpression(expr string, l *track.Listing) (*Selection, error) {
	sel := &Selection{}

	for _, tok := range strings.Split(expr, "+") {
		tok = strings.ToLower(strings.TrimSpace(tok))
		if tok == "" {
			continue
		}
		if !fidPattern.MatchString(tok) {
			return nil, &ValidationError{Input: expr, Reason: fmt.Sprintf("bad token %q, expected v<n>, a<n> or s<n>", tok)}
		}

		t, ok := l.Get(tok)
		if !ok {
			return nil, &ValidationError{Input: expr, Reason: fmt.Sprintf("no stream with id %q in this playlist", tok)}
		}

		switch t.Type {
		case track.TypeVideo:
			if sel.Video != nil {
				return nil, &ValidationError{Input: expr, Reason: "more than one video stream named"}
			}
			sel.Video = t
		case track.TypeAudio:
			sel.Audio = append(sel.Audio, t)
		case track.TypeSubtitle:
			sel.Subtitles = append(sel.Subtitles, t)
		}
	}

	if sel.Video == nil {
		return nil, &ValidationError{Input: expr, Reason: "expression must name exactly one video stream"}
	}
	return sel, nil
}
