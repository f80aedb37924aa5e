// Package format chooses concrete streams out of an indexed listing, either
// from an explicit identifier expression or through a named quality profile
// with graceful degradation.
package format

import "fmt"

// ValidationError reports a malformed selection expression or an unknown
// profile name. Always fatal, never degraded.
type ValidationError struct {
	Input  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid selection %q: %s", e.Input, e.Reason)
}

// NotFoundError reports that no stream satisfied a requirement after every
// fallback rung was tried.
type NotFoundError struct {
	Want string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no stream matches %s", e.Want)
}
