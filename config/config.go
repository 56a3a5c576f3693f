// Package config loads client settings from YAML files and COMMEX_* environment variables.
package config

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	secretmanagerpb "cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/fsnotify/fsnotify"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/evdnx/gocommex/cache"
	"github.com/evdnx/gocommex/internal/logutil"
	"github.com/evdnx/golog"
)

const (
	// EnvPrefix prefixes environment overrides, e.g. COMMEX_CREDENTIALS_APIKEY.
	EnvPrefix = "COMMEX"

	configComponent = "config_manager"
)

// Credential sources.
const (
	SourceNone          = "none"
	SourceInline        = "inline"
	SourceSecretManager = "secretmanager"
	SourceStore         = "store"
)

// ConfigManager handles configuration loading, validation, and hot reloading
type ConfigManager struct {
	viper       *viper.Viper
	config      *Config
	configLock  sync.RWMutex
	validate    *validator.Validate
	watchConfig bool
	onChange    []func(config *Config)
	logger      *golog.Logger
}

// Config represents the client configuration with validation
type Config struct {
	LogLevel    string            `mapstructure:"logLevel" validate:"required,oneof=debug info warn warning error"`
	BaseURL     string            `mapstructure:"baseURL" validate:"required,url"`
	Market      string            `mapstructure:"market" validate:"required,oneof=spot futures"`
	HTTP        HTTPConfig        `mapstructure:"http"`
	RecvWindow  time.Duration     `mapstructure:"recvWindow" validate:"gte=0,lte=60s"`
	Credentials CredentialsConfig `mapstructure:"credentials"`
	Cache       cache.Config      `mapstructure:"cache"`
	Metrics     MetricsConfig     `mapstructure:"metrics"`
}

// HTTPConfig holds transport settings
type HTTPConfig struct {
	Timeout time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

// CredentialsConfig selects where API credentials come from
type CredentialsConfig struct {
	Source    string `mapstructure:"source" validate:"required,oneof=none inline secretmanager store"`
	APIKey    string `mapstructure:"apiKey" validate:"required_if=Source inline"`
	APISecret string `mapstructure:"apiSecret" validate:"required_if=Source inline"`
	// GCP Secret Manager secret ids, resolved by ResolveSecrets
	ProjectID           string `mapstructure:"projectID" validate:"required_if=Source secretmanager"`
	APIKeySecretPath    string `mapstructure:"apiKeySecretPath" validate:"required_if=Source secretmanager"`
	APISecretSecretPath string `mapstructure:"apiSecretSecretPath" validate:"required_if=Source secretmanager"`
	// Encrypted credential store, see security.CredentialStore
	StorePath          string `mapstructure:"storePath" validate:"required_if=Source store"`
	StoreName          string `mapstructure:"storeName" validate:"required_if=Source store"`
	StorePassphraseEnv string `mapstructure:"storePassphraseEnv" validate:"required_if=Source store"`
}

// MetricsConfig names the service label of HTTP metrics
type MetricsConfig struct {
	Service string `mapstructure:"service"`
}

// NewConfigManager creates a new configuration manager. An empty configPath uses defaults
// and environment variables only; watching requires a file.
func NewConfigManager(configPath string, watchConfig bool) (*ConfigManager, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if configPath != "" {
		absPath, err := filepath.Abs(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to get absolute path: %w", err)
		}

		v.SetConfigFile(absPath)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("failed to load configuration file: %w", err)
		}
	}

	cm := &ConfigManager{
		viper:       v,
		validate:    validator.New(),
		watchConfig: watchConfig && configPath != "",
		onChange:    make([]func(config *Config), 0),
		logger:      logutil.Default(),
	}

	if err := cm.loadConfig(); err != nil {
		return nil, err
	}

	if cm.watchConfig {
		v.OnConfigChange(func(e fsnotify.Event) {
			if err := cm.loadConfig(); err != nil {
				cm.logger.Warn(
					"Error reloading configuration: "+err.Error(),
					golog.String("component", configComponent),
					golog.String("file", e.Name),
				)
				return
			}
			cm.notify()
		})
		v.WatchConfig()
	}

	return cm, nil
}

// setDefaults registers every key so that AutomaticEnv can override it.
func setDefaults(v *viper.Viper) {
	cacheDefaults := cache.DefaultConfig()

	v.SetDefault("logLevel", "info")
	v.SetDefault("baseURL", "https://api.commex.com")
	v.SetDefault("market", "spot")
	v.SetDefault("http.timeout", "10s")
	v.SetDefault("recvWindow", "5s")
	v.SetDefault("credentials.source", SourceNone)
	v.SetDefault("credentials.apiKey", "")
	v.SetDefault("credentials.apiSecret", "")
	v.SetDefault("credentials.projectID", "")
	v.SetDefault("credentials.apiKeySecretPath", "")
	v.SetDefault("credentials.apiSecretSecretPath", "")
	v.SetDefault("credentials.storePath", "")
	v.SetDefault("credentials.storeName", "")
	v.SetDefault("credentials.storePassphraseEnv", "COMMEX_STORE_PASSPHRASE")
	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.max_ttl", cacheDefaults.MaxTTL.String())
	v.SetDefault("cache.max_size", cacheDefaults.MaxCacheSize)
	v.SetDefault("cache.cleanup_interval", cacheDefaults.CleanupInterval.String())
	v.SetDefault("metrics.service", "commex")
}

// loadConfig loads the configuration from Viper into the config struct
func (cm *ConfigManager) loadConfig() error {
	var rawConfig Config

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
		Result:           &rawConfig,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}

	if err := decoder.Decode(cm.viper.AllSettings()); err != nil {
		return fmt.Errorf("failed to decode configuration: %w", err)
	}

	if err := cm.validate.Struct(rawConfig); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	cm.configLock.Lock()
	if cm.config != nil {
		carryResolvedSecrets(&cm.config.Credentials, &rawConfig.Credentials)
	}
	cm.config = &rawConfig
	cm.configLock.Unlock()

	return nil
}

// carryResolvedSecrets keeps credentials fetched from Secret Manager when a reload
// points at the same secrets and the file itself carries no key pair.
func carryResolvedSecrets(prev, next *CredentialsConfig) {
	if prev.Source != SourceSecretManager || next.Source != SourceSecretManager {
		return
	}
	if prev.ProjectID != next.ProjectID ||
		prev.APIKeySecretPath != next.APIKeySecretPath ||
		prev.APISecretSecretPath != next.APISecretSecretPath {
		return
	}
	if next.APIKey == "" && next.APISecret == "" {
		next.APIKey = prev.APIKey
		next.APISecret = prev.APISecret
	}
}

func (cm *ConfigManager) notify() {
	cm.configLock.RLock()
	config := cm.config
	callbacks := append([]func(config *Config){}, cm.onChange...)
	cm.configLock.RUnlock()

	for _, callback := range callbacks {
		callback(config)
	}
}

// GetConfig returns the current configuration
func (cm *ConfigManager) GetConfig() *Config {
	cm.configLock.RLock()
	defer cm.configLock.RUnlock()
	return cm.config
}

// GetViper returns the Viper instance
func (cm *ConfigManager) GetViper() *viper.Viper {
	return cm.viper
}

// Reload re-reads the configuration file and notifies callbacks on success.
func (cm *ConfigManager) Reload() error {
	if cm.viper.ConfigFileUsed() != "" {
		if err := cm.viper.MergeInConfig(); err != nil {
			return fmt.Errorf("failed to reload configuration file: %w", err)
		}
	}
	if err := cm.loadConfig(); err != nil {
		return err
	}
	cm.notify()
	return nil
}

// RegisterOnChangeCallback registers a callback function to be called when the configuration changes
func (cm *ConfigManager) RegisterOnChangeCallback(callback func(config *Config)) {
	cm.configLock.Lock()
	defer cm.configLock.Unlock()
	cm.onChange = append(cm.onChange, callback)
}

// SecretFetcher returns the payload of the latest version of a secret.
type SecretFetcher func(ctx context.Context, projectID, secretID string) (string, error)

// ResolveSecrets fills the API key pair from GCP Secret Manager when the credential
// source is secretmanager. Other sources are left untouched.
func (cm *ConfigManager) ResolveSecrets(ctx context.Context) error {
	if cm.GetConfig().Credentials.Source != SourceSecretManager {
		return nil
	}

	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create secretmanager client: %w", err)
	}
	defer client.Close()

	return cm.ResolveSecretsWith(ctx, func(ctx context.Context, projectID, secretID string) (string, error) {
		return accessSecret(ctx, client, projectID, secretID)
	})
}

// ResolveSecretsWith is ResolveSecrets with a caller-supplied fetcher.
func (cm *ConfigManager) ResolveSecretsWith(ctx context.Context, fetch SecretFetcher) error {
	cm.configLock.Lock()
	defer cm.configLock.Unlock()

	creds := &cm.config.Credentials
	if creds.Source != SourceSecretManager {
		return nil
	}

	apiKey, err := fetch(ctx, creds.ProjectID, creds.APIKeySecretPath)
	if err != nil {
		return fmt.Errorf("failed to access API key secret: %w", err)
	}
	apiSecret, err := fetch(ctx, creds.ProjectID, creds.APISecretSecretPath)
	if err != nil {
		return fmt.Errorf("failed to access API secret: %w", err)
	}
	// Secret payloads are usually uploaded from files and carry a trailing newline.
	creds.APIKey = strings.TrimSpace(apiKey)
	creds.APISecret = strings.TrimRight(apiSecret, "\r\n")
	return nil
}

// accessSecret accesses a secret version from GCP Secret Manager
func accessSecret(ctx context.Context, client *secretmanager.Client, projectID, secretPath string) (string, error) {
	name := fmt.Sprintf("projects/%s/secrets/%s/versions/latest", projectID, secretPath)

	req := &secretmanagerpb.AccessSecretVersionRequest{
		Name: name,
	}
	result, err := client.AccessSecretVersion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("failed to access secret version: %w", err)
	}

	return string(result.Payload.Data), nil
}
