package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadDefaults(t *testing.T) *Config {
	t.Helper()

	cfg, err := LoadFrom(t.TempDir(), "")
	require.NoError(t, err)

	return cfg
}

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600))
}

func TestLoad_Defaults(t *testing.T) {
	cfg := loadDefaults(t)

	assert.Equal(t, AppConfig{Name: "quoteboard", Version: "dev", Environment: "local"}, cfg.App)
	assert.Equal(t, DefaultServerPort, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadyCacheTTL)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)

	assert.Equal(t, DefaultClientRetryMaxAttempts, cfg.Client.Retry.MaxAttempts)
	assert.Equal(t, 100*time.Millisecond, cfg.Client.Retry.InitialInterval)
	assert.Equal(t, DefaultClientCircuitMaxFailures, cfg.Client.CircuitBreaker.MaxFailures)
	assert.Equal(t, 30*time.Second, cfg.Client.Timeout)

	assert.Equal(t, DefaultRatingThreshold, cfg.Moderation.Threshold)
	assert.True(t, cfg.Moderation.AwaitCounterUpdate)
	assert.Equal(t, 5*time.Second, cfg.Moderation.CounterUpdateTimeout)
	assert.Equal(t, DefaultCountConcurrency, cfg.Moderation.CountConcurrency)

	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "file:quoteboard.db", cfg.Store.DSN)
	assert.Equal(t, "gemini-pro", cfg.Oracle.Model)
	assert.Equal(t, "https://generativelanguage.googleapis.com", cfg.Oracle.BaseURL)
	assert.Empty(t, cfg.Oracle.APIKey)
	assert.InDelta(t, DefaultOracleRequestsPerSecond, cfg.Oracle.RequestsPerSecond, 0)

	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, 24*time.Hour, cfg.Cache.TTL)

	assert.Equal(t, LogFileConfig{
		Path:       "./logs/app.log",
		MaxSizeMB:  DefaultLogFileMaxSizeMB,
		MaxBackups: DefaultLogFileMaxBackups,
		MaxAgeDays: DefaultLogFileMaxAgeDays,
		Compress:   true,
	}, cfg.Log.File)
}

func TestLoad_MissingDirectory(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "absent"), "prod")
	require.NoError(t, err)

	assert.Equal(t, "quoteboard", cfg.App.Name)
}

func TestLoad_FileLayers(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "base.yaml", `
server:
  port: 9000
moderation:
  threshold: 4
store:
  driver: mysql
`)
	writeFile(t, dir, "qa.yaml", `
server:
  port: 9100
`)

	t.Run("base only", func(t *testing.T) {
		cfg, err := LoadFrom(dir, "")
		require.NoError(t, err)

		assert.Equal(t, 9000, cfg.Server.Port)
		assert.Equal(t, 4, cfg.Moderation.Threshold)
		assert.Equal(t, "mysql", cfg.Store.Driver)
	})

	t.Run("profile overrides base", func(t *testing.T) {
		cfg, err := LoadFrom(dir, "qa")
		require.NoError(t, err)

		assert.Equal(t, 9100, cfg.Server.Port)
		assert.Equal(t, 4, cfg.Moderation.Threshold, "keys the profile leaves out come from base")
	})

	t.Run("missing profile file", func(t *testing.T) {
		cfg, err := LoadFrom(dir, "prod")
		require.NoError(t, err)

		assert.Equal(t, 9000, cfg.Server.Port)
	})

	t.Run("env overrides files", func(t *testing.T) {
		t.Setenv("APP_SERVER__PORT", "9200")

		cfg, err := LoadFrom(dir, "qa")
		require.NoError(t, err)

		assert.Equal(t, 9200, cfg.Server.Port)
	})
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "base.yaml", "server: [port")

	_, err := LoadFrom(dir, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base.yaml")
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("APP_SERVER__PORT", "9090")
	t.Setenv("APP_LOG__LEVEL", "warn")
	t.Setenv("APP_MODERATION__AWAIT_COUNTER_UPDATE", "false")
	t.Setenv("APP_CLIENT__RETRY__MAX_ATTEMPTS", "5")
	t.Setenv("APP_CACHE__ENABLED", "true")

	cfg := loadDefaults(t)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.False(t, cfg.Moderation.AwaitCounterUpdate)
	assert.Equal(t, 5, cfg.Client.Retry.MaxAttempts)
	assert.True(t, cfg.Cache.Enabled)
}

func TestLoad_LegacyEnv(t *testing.T) {
	t.Setenv("RATING_THRESHOLD", "4")
	t.Setenv("GEMINI_API_KEY", "legacy-key")
	t.Setenv("FIRESTORE_PROJECT_ID", "quotes-prod")
	t.Setenv("FIRESTORE_KEY_FILE", "/run/secrets/dsn")

	cfg := loadDefaults(t)

	assert.Equal(t, 4, cfg.Moderation.Threshold)
	assert.Equal(t, "legacy-key", cfg.Oracle.APIKey)
	assert.Equal(t, "quotes-prod", cfg.Store.Project)
	assert.Equal(t, "/run/secrets/dsn", cfg.Store.CredentialsFile)
}

func TestLoad_PrefixedEnvBeatsLegacy(t *testing.T) {
	t.Setenv("RATING_THRESHOLD", "4")
	t.Setenv("APP_MODERATION__THRESHOLD", "2")

	assert.Equal(t, 2, loadDefaults(t).Moderation.Threshold)
}

func TestLoad_EmptyLegacyIgnored(t *testing.T) {
	t.Setenv("RATING_THRESHOLD", "")

	assert.Equal(t, DefaultRatingThreshold, loadDefaults(t).Moderation.Threshold)
}

func TestEnvKey(t *testing.T) {
	tests := map[string]string{
		"APP_SERVER__PORT":                "server.port",
		"APP_STORE__CREDENTIALS_FILE":     "store.credentials_file",
		"APP_CLIENT__RETRY__MAX_ATTEMPTS": "client.retry.max_attempts",
		"APP_ORACLE__API_KEY":             "oracle.api_key",
	}

	for in, want := range tests {
		assert.Equal(t, want, envKey(in), in)
	}
}

func TestDefaultsValidateWithKey(t *testing.T) {
	t.Setenv("APP_ORACLE__API_KEY", "k")

	require.NoError(t, loadDefaults(t).Validate())
}
