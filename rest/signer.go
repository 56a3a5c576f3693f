package rest

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Sign computes the lowercase hex HMAC-SHA256 of canonical keyed by secret.
// An empty secret is never valid for a private endpoint and yields a configuration error.
func Sign(secret, canonical string) (string, error) {
	if secret == "" {
		return "", NewConfigurationError("api_secret_missing", "cannot sign request with an empty API secret")
	}
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(canonical))
	return hex.EncodeToString(h.Sum(nil)), nil
}
