package signature

import (
	"crypto/hmac"
	"strings"
)

// Verify reports whether presented matches the HMAC-SHA256 signature of
// payload keyed by secret.
//
// The presented value is normalized first: an optional case-insensitive
// "sha256=" prefix is stripped and the remaining hex digest is lowercased.
// An empty presented value always fails without any comparison. The digest
// comparison itself is constant-time, so it leaks nothing about how many
// leading bytes matched.
func Verify(secret string, payload []byte, presented string) bool {
	if presented == "" {
		return false
	}

	normalized := strings.ToLower(presented)
	normalized = strings.TrimPrefix(normalized, Prefix)

	expected := digest(payload, secret)

	return hmac.Equal([]byte(expected), []byte(normalized))
}
