package gocommex

import (
	"fmt"

	"github.com/evdnx/gocommex/catalog"
	"github.com/evdnx/gocommex/config"
	"github.com/evdnx/gocommex/internal/logutil"
	"github.com/evdnx/gocommex/rest"
	"github.com/evdnx/gocommex/security"
)

// OptionsFromConfig translates a loaded configuration into client options.
// Secret Manager credentials must already be resolved (config.ConfigManager.ResolveSecrets).
func OptionsFromConfig(cfg *config.Config) ([]Option, error) {
	if cfg == nil {
		return nil, rest.NewConfigurationError("config_missing", "configuration must not be nil")
	}

	logger, err := logutil.New(cfg.LogLevel)
	if err != nil {
		return nil, rest.NewConfigurationError("invalid_log_level", err.Error())
	}

	opts := []Option{
		WithBaseURL(cfg.BaseURL),
		WithTimeout(cfg.HTTP.Timeout),
		WithRecvWindow(cfg.RecvWindow),
		WithLogger(logger),
		WithCache(cfg.Cache),
		withMetricsService(cfg.Metrics.Service),
	}

	identity, err := identityFromConfig(cfg.Credentials)
	if err != nil {
		return nil, err
	}
	if identity != nil {
		opts = append(opts, WithIdentity(identity))
	}
	return opts, nil
}

func identityFromConfig(creds config.CredentialsConfig) (*rest.Identity, error) {
	switch creds.Source {
	case "", config.SourceNone:
		return nil, nil
	case config.SourceInline, config.SourceSecretManager:
		if creds.Source == config.SourceSecretManager && creds.APIKey == "" {
			return nil, rest.NewConfigurationError("secrets_unresolved",
				"secretmanager credentials must be resolved before building a client")
		}
		return rest.NewIdentity(creds.APIKey, creds.APISecret)
	case config.SourceStore:
		store, err := security.OpenCredentialStoreFromEnv(creds.StorePath, creds.StorePassphraseEnv)
		if err != nil {
			return nil, err
		}
		return store.Identity(creds.StoreName)
	default:
		return nil, rest.NewConfigurationError("unknown_credential_source",
			fmt.Sprintf("unknown credential source %q", creds.Source))
	}
}

// NewClientFromConfig creates a client for the configured market. extra options are
// applied after the configured ones.
func NewClientFromConfig(cfg *config.Config, extra ...Option) (*Client, error) {
	opts, err := OptionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	market, ok := catalog.MarketByName(catalog.MarketName(cfg.Market))
	if !ok {
		return nil, rest.NewConfigurationError("unknown_market", fmt.Sprintf("unknown market %q", cfg.Market))
	}
	return NewClient(market, append(opts, extra...)...)
}

// NewSpotClientFromConfig creates a spot client regardless of cfg.Market.
func NewSpotClientFromConfig(cfg *config.Config, extra ...Option) (*SpotClient, error) {
	opts, err := OptionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	return NewSpotClient(append(opts, extra...)...)
}

// NewFuturesClientFromConfig creates a futures client regardless of cfg.Market.
func NewFuturesClientFromConfig(cfg *config.Config, extra ...Option) (*FuturesClient, error) {
	opts, err := OptionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	return NewFuturesClient(append(opts, extra...)...)
}
