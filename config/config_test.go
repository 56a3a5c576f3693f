package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "commex.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))
	return path
}

func TestDefaults(t *testing.T) {
	cm, err := NewConfigManager("", false)
	require.NoError(t, err)

	cfg := cm.GetConfig()
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "https://api.commex.com", cfg.BaseURL)
	assert.Equal(t, "spot", cfg.Market)
	assert.Equal(t, 10*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, 5*time.Second, cfg.RecvWindow)
	assert.Equal(t, SourceNone, cfg.Credentials.Source)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, "commex", cfg.Metrics.Service)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
logLevel: debug
market: futures
recvWindow: 10s
http:
  timeout: 3s
credentials:
  source: inline
  apiKey: file-key
  apiSecret: file-secret
cache:
  enabled: true
  max_ttl: 1m
`)
	cm, err := NewConfigManager(path, false)
	require.NoError(t, err)

	cfg := cm.GetConfig()
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "futures", cfg.Market)
	assert.Equal(t, 10*time.Second, cfg.RecvWindow)
	assert.Equal(t, 3*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, "file-key", cfg.Credentials.APIKey)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, time.Minute, cfg.Cache.MaxTTL)
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("COMMEX_MARKET", "futures")
	t.Setenv("COMMEX_CREDENTIALS_SOURCE", "inline")
	t.Setenv("COMMEX_CREDENTIALS_APIKEY", "env-key")
	t.Setenv("COMMEX_CREDENTIALS_APISECRET", "env-secret")

	cm, err := NewConfigManager("", false)
	require.NoError(t, err)

	cfg := cm.GetConfig()
	assert.Equal(t, "futures", cfg.Market)
	assert.Equal(t, "env-key", cfg.Credentials.APIKey)
	assert.Equal(t, "env-secret", cfg.Credentials.APISecret)
}

func TestValidationFailures(t *testing.T) {
	cases := map[string]string{
		"unknown market":        "market: options\n",
		"recvWindow too large":  "recvWindow: 61s\n",
		"inline without key":    "credentials:\n  source: inline\n  apiSecret: s\n",
		"store without path":    "credentials:\n  source: store\n  storeName: main\n",
		"secrets without paths": "credentials:\n  source: secretmanager\n  projectID: p\n",
		"unknown key":           "leverage: 10\n",
		"bad timeout":           "http:\n  timeout: 0s\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewConfigManager(writeConfig(t, body), false)
			assert.Error(t, err)
		})
	}
}

func TestResolveSecretsWith(t *testing.T) {
	path := writeConfig(t, `
credentials:
  source: secretmanager
  projectID: my-project
  apiKeySecretPath: commex-key
  apiSecretSecretPath: commex-secret
`)
	cm, err := NewConfigManager(path, false)
	require.NoError(t, err)

	secrets := map[string]string{
		"my-project/commex-key":    "sm-key\n",
		"my-project/commex-secret": "sm-secret",
	}
	err = cm.ResolveSecretsWith(context.Background(), func(_ context.Context, projectID, secretID string) (string, error) {
		v, ok := secrets[projectID+"/"+secretID]
		if !ok {
			return "", errors.New("not found")
		}
		return v, nil
	})
	require.NoError(t, err)

	creds := cm.GetConfig().Credentials
	assert.Equal(t, "sm-key", creds.APIKey)
	assert.Equal(t, "sm-secret", creds.APISecret)
}

func TestResolveSecretsSkipsOtherSources(t *testing.T) {
	cm, err := NewConfigManager("", false)
	require.NoError(t, err)

	called := false
	err = cm.ResolveSecretsWith(context.Background(), func(context.Context, string, string) (string, error) {
		called = true
		return "", nil
	})
	require.NoError(t, err)
	assert.False(t, called)
	require.NoError(t, cm.ResolveSecrets(context.Background()))
}

func TestResolveSecretsPropagatesErrors(t *testing.T) {
	path := writeConfig(t, `
credentials:
  source: secretmanager
  projectID: p
  apiKeySecretPath: k
  apiSecretSecretPath: s
`)
	cm, err := NewConfigManager(path, false)
	require.NoError(t, err)

	err = cm.ResolveSecretsWith(context.Background(), func(context.Context, string, string) (string, error) {
		return "", errors.New("permission denied")
	})
	assert.ErrorContains(t, err, "permission denied")
}

func TestReloadNotifiesCallbacks(t *testing.T) {
	path := writeConfig(t, "logLevel: info\n")
	cm, err := NewConfigManager(path, false)
	require.NoError(t, err)

	var seen []string
	cm.RegisterOnChangeCallback(func(cfg *Config) { seen = append(seen, cfg.LogLevel) })

	require.NoError(t, os.WriteFile(path, []byte("logLevel: error\n"), 0600))
	require.NoError(t, cm.Reload())

	assert.Equal(t, []string{"error"}, seen)
	assert.Equal(t, "error", cm.GetConfig().LogLevel)
}

func TestReloadKeepsResolvedSecrets(t *testing.T) {
	const body = `
logLevel: %s
credentials:
  source: secretmanager
  projectID: my-project
  apiKeySecretPath: commex-key
  apiSecretSecretPath: commex-secret
`
	path := writeConfig(t, fmt.Sprintf(body, "info"))
	cm, err := NewConfigManager(path, false)
	require.NoError(t, err)

	require.NoError(t, cm.ResolveSecretsWith(context.Background(), func(_ context.Context, _, secretID string) (string, error) {
		return secretID + "-value", nil
	}))

	var seen CredentialsConfig
	cm.RegisterOnChangeCallback(func(cfg *Config) { seen = cfg.Credentials })

	require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf(body, "debug")), 0600))
	require.NoError(t, cm.Reload())

	cfg := cm.GetConfig()
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "commex-key-value", cfg.Credentials.APIKey)
	assert.Equal(t, "commex-secret-value", cfg.Credentials.APISecret)
	assert.Equal(t, cfg.Credentials, seen)
}

func TestReloadDropsSecretsWhenSecretPathsChange(t *testing.T) {
	path := writeConfig(t, `
credentials:
  source: secretmanager
  projectID: my-project
  apiKeySecretPath: commex-key
  apiSecretSecretPath: commex-secret
`)
	cm, err := NewConfigManager(path, false)
	require.NoError(t, err)

	require.NoError(t, cm.ResolveSecretsWith(context.Background(), func(context.Context, string, string) (string, error) {
		return "resolved", nil
	}))

	require.NoError(t, os.WriteFile(path, []byte(`
credentials:
  source: secretmanager
  projectID: my-project
  apiKeySecretPath: rotated-key
  apiSecretSecretPath: rotated-secret
`), 0600))
	require.NoError(t, cm.Reload())

	creds := cm.GetConfig().Credentials
	assert.Empty(t, creds.APIKey)
	assert.Empty(t, creds.APISecret)
}

func TestCallbackMayRegisterDuringReload(t *testing.T) {
	path := writeConfig(t, "logLevel: info\n")
	cm, err := NewConfigManager(path, false)
	require.NoError(t, err)

	var late int
	cm.RegisterOnChangeCallback(func(*Config) {
		cm.RegisterOnChangeCallback(func(*Config) { late++ })
		_ = cm.GetConfig()
	})

	done := make(chan error, 1)
	go func() { done <- cm.Reload() }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Reload blocked while a callback registered another callback")
	}
	assert.Zero(t, late)

	require.NoError(t, cm.Reload())
	assert.Equal(t, 1, late)
}
