package storefront

import (
	"encoding/base64"
	"encoding/json"
	"regexp"
	"strings"
)

// jwtPattern matches three base64url segments separated by dots. The length
// floor filters out short lookalikes embedded in minified scripts.
var jwtPattern = regexp.MustCompile(`(eyJ[A-Za-z0-9_-]{20,}\.[A-Za-z0-9_-]{20,}\.[A-Za-z0-9_-]{20,})`)

// ValidJWT reports whether token is shaped like a JSON Web Token: three
// dot-separated base64url segments whose first segment decodes to a JSON
// object containing an "alg" key. Signature and claims are never inspected;
// the caller only needs a bearer credential, not a verified one.
func ValidJWT(token string) bool {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return false
	}

	header, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(parts[0], "="))
	if err != nil {
		return false
	}

	var decoded map[string]any
	if err := json.Unmarshal(header, &decoded); err != nil {
		return false
	}

	_, ok := decoded["alg"]
	return ok
}
