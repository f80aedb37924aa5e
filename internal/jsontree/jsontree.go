// Package jsontree implements generic traversal helpers for loosely-typed,
// already-decoded JSON values (map[string]any, []any, scalars).
//
// The catalog API and the landing-page payloads move fields around between
// releases, so structural navigation always comes in two layers: an exact path
// lookup (Get) and a recursive first-match search (FindFirst) used as the
// fallback when the expected shape is gone.
package jsontree

import "sort"

// Predicate inspects a (key, value) pair during traversal.
// The key is empty for array elements and the document root.
type Predicate func(key string, value any) bool

// FindFirst walks the value depth-first and returns the first value whose
// (key, value) pair satisfies the predicate. Object keys are visited in sorted
// order so the result is deterministic for a fixed document.
func FindFirst(v any, pred Predicate) (any, bool) {
	return find("", v, pred)
}

func find(key string, v any, pred Predicate) (any, bool) {
	if key != "" && pred(key, v) {
		return v, true
	}

	switch t := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			if r, ok := find(k, t[k], pred); ok {
				return r, true
			}
		}
	case []any:
		for _, item := range t {
			if r, ok := find("", item, pred); ok {
				return r, true
			}
		}
	}

	return nil, false
}

// FindString is FindFirst restricted to non-empty string values.
func FindString(v any, pred func(key, value string) bool) (string, bool) {
	r, ok := FindFirst(v, func(key string, value any) bool {
		s, isStr := value.(string)
		return isStr && s != "" && pred(key, s)
	})
	if !ok {
		return "", false
	}
	return r.(string), true
}

// Get navigates an exact key path through nested objects, returning an absent
// marker instead of panicking when any step is missing or mistyped.
func Get(v any, path ...string) (any, bool) {
	cur := v
	for _, p := range path {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = obj[p]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// GetString is Get restricted to non-empty strings.
func GetString(v any, path ...string) (string, bool) {
	r, ok := Get(v, path...)
	if !ok {
		return "", false
	}
	s, ok := r.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// GetMap is Get restricted to objects.
func GetMap(v any, path ...string) (map[string]any, bool) {
	r, ok := Get(v, path...)
	if !ok {
		return nil, false
	}
	m, ok := r.(map[string]any)
	return m, ok
}

// GetSlice is Get restricted to arrays.
func GetSlice(v any, path ...string) ([]any, bool) {
	r, ok := Get(v, path...)
	if !ok {
		return nil, false
	}
	arr, ok := r.([]any)
	return arr, ok
}

// AsInt coerces a decoded JSON scalar into an int.
// JSON numbers arrive as float64; string digits are accepted too since the
// upstream occasionally serializes ids as strings.
func AsInt(v any) (int, bool) {
	switch t := v.(type) {
	case float64:
		return int(t), true
	case int:
		return t, true
	case string:
		n := 0
		if t == "" {
			return 0, false
		}
		for _, r := range t {
			if r < '0' || r > '9' {
				return 0, false
			}
			n = n*10 + int(r-'0')
		}
		return n, true
	default:
		return 0, false
	}
}
