// Package util provides a collection of domain-agnostic utility functions and cross-platform helpers.
package util

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"unicode"

	"github.com/tvgrab-cli/tvgrab/filesystem"
	"golang.org/x/exp/constraints"
	"golang.org/x/term"
	"golang.org/x/text/unicode/norm"
)

// disallowedRunes lists characters that must not appear in filenames for
// cross-platform artifact compatibility (Windows plus CI artifact stores).
var disallowedRunes = map[rune]struct{}{
	'\\': {}, '/': {}, 0: {},
	'"': {}, ':': {}, '<': {}, '>': {}, '|': {}, '*': {}, '?': {},
	'\r': {}, '\n': {},
}

// SanitizeFilename normalizes a string into a safe, cross-platform filesystem-compliant filename.
// NFKC normalization runs first so fullwidth punctuation variants collapse into
// their ASCII forms before the disallowed set is applied.
func SanitizeFilename(filename string) string {
	normalized := norm.NFKC.String(filename)

	var b strings.Builder
	for _, r := range normalized {
		if _, bad := disallowedRunes[r]; bad {
			continue
		}
		if unicode.IsControl(r) {
			continue
		}
		b.WriteRune(r)
	}

	// Windows rejects trailing dots and spaces.
	out := strings.TrimRight(b.String(), ". ")
	return strings.TrimSpace(out)
}

// Quantify returns a pluralized string representation of a count and its associated labels.
func Quantify(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}

// Capitalize transforms the first rune of a string to its uppercase equivalent.
func Capitalize(s string) string {
	if len(s) == 0 {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// TerminalSize retrieves the current character dimensions of the terminal window.
func TerminalSize() (width, height int, err error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// ReGroups extracts and maps named capture groups from a regular expression match.
func ReGroups(pattern *regexp.Regexp, str string) map[string]string {
	groups := make(map[string]string)
	match := pattern.FindStringSubmatch(str)
	if match == nil {
		return groups
	}

	for i, name := range pattern.SubexpNames() {
		if i > 0 && i < len(match) && name != "" {
			groups[name] = match[i]
		}
	}
	return groups
}

// PrintErasable prints an ephemeral message to the terminal and returns a closure to clear it.
// The message is clamped to the terminal width: a wrapped line cannot be
// erased with a carriage return.
func PrintErasable(msg string) (eraser func()) {
	if width, _, err := TerminalSize(); err == nil && width > 0 {
		if r := []rune(msg); len(r) > width {
			msg = string(r[:width])
		}
	}
	fmt.Fprintf(os.Stdout, "\r%s", msg)
	return func() {
		fmt.Fprintf(os.Stdout, "\r%s\r", strings.Repeat(" ", len(msg)))
	}
}

// Ignore executes a function and explicitly discards its error return value.
func Ignore(f func() error) {
	_ = f()
}

// Excerpt flattens a payload to a single line and truncates it for diagnostics.
func Excerpt(s string, max int) string {
	flat := strings.Join(strings.Fields(s), " ")
	if len(flat) > max {
		return flat[:max]
	}
	return flat
}

// Delete recursively removes a file or directory using the virtualized filesystem API.
func Delete(path string) error {
	fs := filesystem.API()
	stat, err := fs.Stat(path)
	if err != nil {
		return err
	}

	if stat.IsDir() {
		return fs.RemoveAll(path)
	}
	return fs.Remove(path)
}

// Max returns the maximum value among arguments.
func Max[T constraints.Ordered](items ...T) (max T) {
	if len(items) == 0 {
		return
	}
	max = items[0]
	for _, item := range items[1:] {
		if item > max {
			max = item
		}
	}
	return
}

// Min returns the minimum value among arguments.
func Min[T constraints.Ordered](items ...T) (min T) {
	if len(items) == 0 {
		return
	}
	min = items[0]
	for _, item := range items[1:] {
		if item < min {
			min = item
		}
	}
	return
}
