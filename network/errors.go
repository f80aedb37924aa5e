package network

import "fmt"

// StatusError reports a non-200 upstream response.
type StatusError struct {
	URL     string
	Status  int
	Excerpt string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s, body[:200]=%q", e.Status, e.URL, e.Excerpt)
}

// ShapeError reports an upstream payload that parsed but lacked an expected
// field, or did not parse at all, after every fallback was exhausted.
type ShapeError struct {
	URL     string
	Reason  string
	Excerpt string
}

func (e *ShapeError) Error() string {
	if e.Excerpt == "" {
		return fmt.Sprintf("unexpected payload shape from %s: %s", e.URL, e.Reason)
	}
	return fmt.Sprintf("unexpected payload shape from %s: %s, body[:200]=%q", e.URL, e.Reason, e.Excerpt)
}
