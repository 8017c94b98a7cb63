// Package signature provides HMAC-SHA256 webhook signing and verification.
package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Prefix is the optional scheme prefix carried on presented signatures.
// Verification accepts it in any letter case; Sign always emits it.
const Prefix = "sha256="

// Sign computes the HMAC-SHA256 signature of payload keyed by secret.
// Returns a prefixed signature in the format "sha256=<lowercase hex>".
func Sign(payload []byte, secret string) string {
	return Prefix + digest(payload, secret)
}

// digest renders the HMAC-SHA256 of payload as lowercase hexadecimal.
func digest(payload []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}
