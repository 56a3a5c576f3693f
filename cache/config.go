package cache

import (
	"time"
)

// Config represents response cache settings
type Config struct {
	// Enabled determines if cacheable public responses are kept at all
	Enabled bool `mapstructure:"enabled"`

	// MaxTTL caps the per-endpoint TTL; zero leaves endpoint TTLs unchanged
	MaxTTL time.Duration `mapstructure:"max_ttl"`

	// MaxCacheSize is the maximum number of responses kept (0 = unlimited)
	MaxCacheSize int `mapstructure:"max_size" validate:"gte=0"`

	// CleanupInterval is the interval at which expired responses are dropped
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// DefaultConfig returns the default cache configuration
func DefaultConfig() Config {
	return Config{
		Enabled:         true,
		MaxTTL:          10 * time.Minute,
		MaxCacheSize:    256, // exchangeInfo bodies are large; few distinct keys exist
		CleanupInterval: time.Minute,
	}
}

// TTL returns the effective lifetime for an endpoint TTL under this config.
func (c Config) TTL(endpointTTL time.Duration) time.Duration {
	if c.MaxTTL > 0 && endpointTTL > c.MaxTTL {
		return c.MaxTTL
	}
	return endpointTTL
}
