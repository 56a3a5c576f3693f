package rest

import "strings"

// Identity holds the API credentials of one client. It is read-only after construction
// and safe to share between goroutines.
type Identity struct {
	apiKey    string
	apiSecret string
}

// NewIdentity creates an identity from an API key and secret. Both values are required.
// The key is trimmed since it travels in a header; the secret is HMAC key material and is
// kept byte for byte.
func NewIdentity(apiKey, apiSecret string) (*Identity, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, NewConfigurationError("api_key_missing", "API key must not be empty")
	}
	if strings.TrimSpace(apiSecret) == "" {
		return nil, NewConfigurationError("api_secret_missing", "API secret must not be empty")
	}
	return &Identity{apiKey: apiKey, apiSecret: apiSecret}, nil
}

// APIKey returns the public API key.
func (i *Identity) APIKey() string { return i.apiKey }

// Sign signs a canonical string with the identity's secret.
func (i *Identity) Sign(canonical string) (string, error) {
	return Sign(i.apiSecret, canonical)
}

// String redacts both credentials so an Identity can be logged or printed safely.
func (i *Identity) String() string {
	if i == nil {
		return "Identity(<nil>)"
	}
	return "Identity(" + redact(i.apiKey) + ")"
}

func redact(key string) string {
	if len(key) <= 4 {
		return "****"
	}
	return key[:4] + "****"
}
