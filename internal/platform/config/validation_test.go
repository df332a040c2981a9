package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validConfig returns a fully valid configuration for testing.
func validConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:        "test-service",
			Version:     "1.0.0",
			Environment: "local",
		},
		Server: ServerConfig{
			Port:            8080,
			Host:            "0.0.0.0",
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     120 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			MaxRequestSize:  1048576,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Client: ClientConfig{
			Timeout: 30 * time.Second,
			Retry: RetryConfig{
				MaxAttempts:     3,
				InitialInterval: 100 * time.Millisecond,
				MaxInterval:     5 * time.Second,
				Multiplier:      2.0,
				JitterFactor:    0.25,
			},
			CircuitBreaker: CircuitBreakerConfig{
				MaxFailures:   5,
				Timeout:       30 * time.Second,
				HalfOpenLimit: 3,
			},
			Transport: TransportConfig{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		Moderation: ModerationConfig{
			Threshold:            3,
			AwaitCounterUpdate:   true,
			CounterUpdateTimeout: 5 * time.Second,
			CountConcurrency:     8,
		},
		Oracle: OracleConfig{
			BaseURL:           "https://generativelanguage.googleapis.com",
			Name:              "rating-oracle",
			Model:             "gemini-pro",
			APIKey:            "test-key",
			RequestsPerSecond: 5,
			Burst:             5,
		},
		Store: StoreConfig{
			Driver:  "sqlite",
			DSN:     "file::memory:",
			Project: "quoteboard",
		},
	}
}

func TestConfig_Validate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestConfig_Validate_Problems(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   string
	}{
		{"missing app name", func(c *Config) { c.App.Name = "" }, "app.name is required"},
		{
			"unknown environment", func(c *Config) { c.App.Environment = "staging" },
			"app.environment must be one of: local dev qa prod test",
		},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }, "server.port must be at most 65535"},
		{"port too low", func(c *Config) { c.Server.Port = -1 }, "server.port must be at least 1"},
		{"missing host", func(c *Config) { c.Server.Host = "" }, "server.host is required"},
		{
			"short read timeout", func(c *Config) { c.Server.ReadTimeout = time.Millisecond },
			"server.read_timeout must be at least 1s",
		},
		{
			"level is case sensitive", func(c *Config) { c.Log.Level = "INFO" },
			"log.level must be one of: trace debug info warn error",
		},
		{
			"unknown format", func(c *Config) { c.Log.Format = "xml" },
			"log.format must be one of: json text pretty",
		},
		{
			"file logging without path", func(c *Config) { c.Log.File.Enabled = true },
			"log.file.path is required when log.file.enabled is true",
		},
		{
			"oversized log file", func(c *Config) {
				c.Log.File = LogFileConfig{Enabled: true, Path: "/tmp/q.log", MaxSizeMB: 2048}
			},
			"log.file.max_size must be at most 1024",
		},
		{
			"telemetry without endpoint", func(c *Config) {
				c.Telemetry = TelemetryConfig{Enabled: true, ServiceName: "quoteboard"}
			},
			"telemetry.endpoint is required when telemetry.enabled is true",
		},
		{
			"telemetry endpoint not a url", func(c *Config) {
				c.Telemetry = TelemetryConfig{Enabled: true, ServiceName: "quoteboard", Endpoint: "collector"}
			},
			"telemetry.endpoint must be a valid URL",
		},
		{
			"sampling rate above one", func(c *Config) { c.Telemetry.SamplingRate = 1.5 },
			"telemetry.sampling_rate must be at most 1",
		},
		{
			"client timeout minimum", func(c *Config) { c.Client.Timeout = 50 * time.Millisecond },
			"client.timeout must be at least 100ms",
		},
		{
			"too many attempts", func(c *Config) { c.Client.Retry.MaxAttempts = 11 },
			"client.retry.max_attempts must be at most 10",
		},
		{
			"max interval below initial", func(c *Config) { c.Client.Retry.InitialInterval = 10 * time.Second },
			"client.retry.max_interval must not be less than client.retry.initial_interval",
		},
		{
			"flat multiplier", func(c *Config) { c.Client.Retry.Multiplier = 1 },
			"client.retry.multiplier must be at least 1.1",
		},
		{
			"breaker without failures", func(c *Config) { c.Client.CircuitBreaker.MaxFailures = 0 },
			"client.circuit_breaker.max_failures is required",
		},
		{
			"unbounded counting", func(c *Config) { c.Moderation.CountConcurrency = 0 },
			"moderation.count_concurrency is required",
		},
		{"missing api key", func(c *Config) { c.Oracle.APIKey = "" }, "oracle.api_key is required"},
		{
			"oracle base url", func(c *Config) { c.Oracle.BaseURL = "not a url" },
			"oracle.base_url must be a valid URL",
		},
		{
			"unknown driver", func(c *Config) { c.Store.Driver = "firestore" },
			"store.driver must be one of: sqlite mysql mongo",
		},
		{"missing project", func(c *Config) { c.Store.Project = "" }, "store.project is required"},
		{
			"missing dsn", func(c *Config) { c.Store.DSN = "" },
			"store.dsn is required unless store.credentials_file is set",
		},
		{
			"mongo driver with sql dsn", func(c *Config) { c.Store.Driver = "mongo" },
			"store.dsn must be a mongodb:// or mongodb+srv:// URI for the mongo driver",
		},
		{
			"sql driver with mongo uri", func(c *Config) { c.Store.DSN = "mongodb://localhost:27017" },
			"store.dsn is a mongo URI but the driver is sqlite",
		},
		{
			"cache without address", func(c *Config) { c.Cache = CacheConfig{Enabled: true, TTL: time.Hour} },
			"cache.addr is required when cache.enabled is true",
		},
		{
			"cache address without port", func(c *Config) {
				c.Cache = CacheConfig{Enabled: true, Addr: "redis", TTL: time.Hour}
			},
			"cache.addr must be host:port",
		},
		{"cache db out of range", func(c *Config) { c.Cache.DB = 16 }, "cache.db must be at most 15"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.modify(cfg)

			err := cfg.Validate()
			require.Error(t, err)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, []string{tt.want}, verr.Problems)
		})
	}
}

func TestConfig_Validate_Accepts(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"every environment", func(c *Config) { c.App.Environment = "test" }},
		{"disabled file logging needs no path", func(c *Config) { c.Log.File = LogFileConfig{} }},
		{"disabled telemetry needs no endpoint", func(c *Config) { c.Telemetry = TelemetryConfig{} }},
		{"threshold is not range checked", func(c *Config) { c.Moderation.Threshold = 42 }},
		{"zero rate disables pacing", func(c *Config) { c.Oracle.RequestsPerSecond = 0 }},
		{"disabled cache needs nothing", func(c *Config) { c.Cache = CacheConfig{} }},
		{"equal retry intervals", func(c *Config) { c.Client.Retry.InitialInterval = c.Client.Retry.MaxInterval }},
		{
			"credentials file replaces dsn", func(c *Config) {
				c.Store.DSN = ""
				c.Store.CredentialsFile = "/run/secrets/dsn"
			},
		},
		{
			"credentials file defers the driver check", func(c *Config) {
				c.Store.Driver = "mongo"
				c.Store.CredentialsFile = "/run/secrets/dsn"
			},
		},
		{
			"mongo with srv uri", func(c *Config) {
				c.Store.Driver = "mongo"
				c.Store.DSN = "mongodb+srv://cluster.example.net"
			},
		},
		{
			"mysql dsn", func(c *Config) {
				c.Store.Driver = "mysql"
				c.Store.DSN = "app:pw@tcp(db:3306)/quoteboard?parseTime=true"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.modify(cfg)
			assert.NoError(t, cfg.Validate())
		})
	}
}

func TestConfig_Validate_ReportsEveryProblem(t *testing.T) {
	cfg := validConfig()
	cfg.App.Name = ""
	cfg.Server.Port = 0
	cfg.Oracle.APIKey = ""

	err := cfg.Validate()

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.ElementsMatch(t, []string{
		"app.name is required",
		"server.port is required",
		"oracle.api_key is required",
	}, verr.Problems)
	assert.Equal(t,
		"config validation failed:\n  app.name is required\n  server.port is required\n  oracle.api_key is required",
		err.Error())
}

func TestSibling(t *testing.T) {
	tests := []struct {
		key, field, want string
	}{
		{"store.dsn", "CredentialsFile", "store.credentials_file"},
		{"log.file.path", "Enabled", "log.file.enabled"},
		{"client.retry.max_interval", "InitialInterval", "client.retry.initial_interval"},
		{"top", "Other", "other"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, sibling(tt.key, tt.field))
		})
	}
}

func TestKeyPath(t *testing.T) {
	assert.Equal(t, "server.port", keyPath("Config.server.port"))
	assert.Equal(t, "Config", keyPath("Config"))
}
