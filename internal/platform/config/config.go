// Package config provides configuration loading and management using koanf.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Defaults that other packages and tests refer to.
const (
	DefaultServerPort     = 8080
	DefaultMaxRequestSize = 1 << 20

	DefaultClientRetryMaxAttempts     = 3
	DefaultClientRetryMultiplier      = 2.0
	DefaultClientRetryJitterFactor    = 0.25
	DefaultClientCircuitMaxFailures   = 5
	DefaultClientCircuitHalfOpenLimit = 3

	DefaultTransportMaxIdleConns        = 100
	DefaultTransportMaxIdleConnsPerHost = 10
	DefaultTransportIdleConnTimeout     = 90 * time.Second

	// Rolling log file limits, in megabytes, files and days.
	DefaultLogFileMaxSizeMB  = 100
	DefaultLogFileMaxBackups = 3
	DefaultLogFileMaxAgeDays = 28

	// DefaultRatingThreshold is the lowest rating that is published.
	DefaultRatingThreshold  = 3
	DefaultCountConcurrency = 8

	DefaultOracleRequestsPerSecond = 5.0
	DefaultOracleBurst             = 5
)

// envPrefix marks environment variables read into the config. Nested keys
// are separated by a double underscore: APP_MODERATION__THRESHOLD.
const (
	envPrefix    = "APP_"
	envDelimiter = "__"
)

// legacyEnv maps unprefixed variable names used by earlier deployments onto
// config keys. APP_ variables take precedence over these.
var legacyEnv = map[string]string{
	"RATING_THRESHOLD":     "moderation.threshold",
	"GEMINI_API_KEY":       "oracle.api_key",
	"FIRESTORE_PROJECT_ID": "store.project",
	"FIRESTORE_KEY_FILE":   "store.credentials_file",
}

// Config is the root configuration structure.
type Config struct {
	App        AppConfig        `koanf:"app"        validate:"required"`
	Server     ServerConfig     `koanf:"server"     validate:"required"`
	Log        LogConfig        `koanf:"log"        validate:"required"`
	Telemetry  TelemetryConfig  `koanf:"telemetry"`
	Client     ClientConfig     `koanf:"client"     validate:"required"`
	Moderation ModerationConfig `koanf:"moderation"`
	Oracle     OracleConfig     `koanf:"oracle"     validate:"required"`
	Store      StoreConfig      `koanf:"store"      validate:"required"`
	Cache      CacheConfig      `koanf:"cache"`
}

// AppConfig contains application-level settings.
type AppConfig struct {
	Name        string `koanf:"name"        validate:"required"`
	Version     string `koanf:"version"     validate:"required"`
	Environment string `koanf:"environment" validate:"required,oneof=local dev qa prod test"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"             validate:"required,min=1,max=65535"`
	Host            string        `koanf:"host"             validate:"required"`
	ReadTimeout     time.Duration `koanf:"read_timeout"     validate:"required,min=1s"`
	WriteTimeout    time.Duration `koanf:"write_timeout"    validate:"required,min=1s"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"     validate:"required,min=1s"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"required,min=1s"`
	MaxRequestSize  int64         `koanf:"max_request_size" validate:"required,min=1"`

	// ReadyCacheTTL reuses a readiness result so frequent readiness checks do not
	// call the rating oracle each time. Zero checks on every request.
	ReadyCacheTTL time.Duration `koanf:"ready_cache_ttl" validate:"min=0"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string        `koanf:"level"  validate:"required,oneof=trace debug info warn error"`
	Format string        `koanf:"format" validate:"required,oneof=json text pretty"`
	File   LogFileConfig `koanf:"file"`
}

// LogFileConfig contains rolling log file settings.
type LogFileConfig struct {
	Enabled    bool   `koanf:"enabled"`
	Path       string `koanf:"path"       validate:"required_if=Enabled true"`
	MaxSizeMB  int    `koanf:"max_size"   validate:"omitempty,min=1,max=1024"`
	MaxBackups int    `koanf:"max_backups" validate:"omitempty,min=0,max=100"`
	MaxAgeDays int    `koanf:"max_age"    validate:"omitempty,min=0,max=365"`
	Compress   bool   `koanf:"compress"`
}

// TelemetryConfig contains OpenTelemetry settings.
type TelemetryConfig struct {
	Enabled      bool    `koanf:"enabled"`
	Endpoint     string  `koanf:"endpoint"      validate:"required_if=Enabled true,omitempty,url"`
	ServiceName  string  `koanf:"service_name"  validate:"required_if=Enabled true"`
	SamplingRate float64 `koanf:"sampling_rate" validate:"min=0,max=1"`
}

// ClientConfig contains HTTP client settings for downstream services.
type ClientConfig struct {
	Timeout        time.Duration        `koanf:"timeout"         validate:"required,min=100ms"`
	Retry          RetryConfig          `koanf:"retry"           validate:"required"`
	CircuitBreaker CircuitBreakerConfig `koanf:"circuit_breaker" validate:"required"`
	Transport      TransportConfig      `koanf:"transport"       validate:"required"`
}

// RetryConfig contains retry settings for HTTP clients.
type RetryConfig struct {
	MaxAttempts     int           `koanf:"max_attempts"     validate:"required,min=1,max=10"`
	InitialInterval time.Duration `koanf:"initial_interval" validate:"required,min=10ms"`
	MaxInterval     time.Duration `koanf:"max_interval"     validate:"required,min=100ms,gtefield=InitialInterval"`
	Multiplier      float64       `koanf:"multiplier"       validate:"required,min=1.1,max=10"`
	JitterFactor    float64       `koanf:"jitter_factor"    validate:"min=0,max=1"`
}

// CircuitBreakerConfig contains circuit breaker settings for HTTP clients.
type CircuitBreakerConfig struct {
	MaxFailures   int           `koanf:"max_failures"    validate:"required,min=1"`
	Timeout       time.Duration `koanf:"timeout"         validate:"required,min=1s"`
	HalfOpenLimit int           `koanf:"half_open_limit" validate:"required,min=1"`
}

// TransportConfig contains HTTP transport pool settings.
type TransportConfig struct {
	MaxIdleConns        int           `koanf:"max_idle_conns"         validate:"required,min=1"`
	MaxIdleConnsPerHost int           `koanf:"max_idle_conns_per_host" validate:"required,min=1"`
	IdleConnTimeout     time.Duration `koanf:"idle_conn_timeout"      validate:"required,min=1s"`
}

// ModerationConfig controls the publish decision and its side effects.
type ModerationConfig struct {
	// Threshold is not range checked.
	Threshold int `koanf:"threshold"`

	// AwaitCounterUpdate makes comment submission wait for the quote's
	// comment counter increment. When false the increment runs detached,
	// bounded by CounterUpdateTimeout.
	AwaitCounterUpdate   bool          `koanf:"await_counter_update"`
	CounterUpdateTimeout time.Duration `koanf:"counter_update_timeout" validate:"required,min=100ms"`

	CountConcurrency int `koanf:"count_concurrency" validate:"required,min=1,max=128"`
}

// OracleConfig configures the rating oracle.
type OracleConfig struct {
	BaseURL           string  `koanf:"base_url"            validate:"required,url"`
	Name              string  `koanf:"name"                validate:"required"`
	Model             string  `koanf:"model"               validate:"required"`
	APIKey            string  `koanf:"api_key"             validate:"required"`
	RequestsPerSecond float64 `koanf:"requests_per_second" validate:"min=0"`
	Burst             int     `koanf:"burst"               validate:"min=0"`
}

// StoreConfig selects and configures the content store.
type StoreConfig struct {
	Driver string `koanf:"driver"  validate:"required,oneof=sqlite mysql mongo"`
	DSN    string `koanf:"dsn"     validate:"required_without=CredentialsFile"`

	// Project names the database (MySQL schema, Mongo database). For
	// SQLite it is informational.
	Project string `koanf:"project" validate:"required"`

	// CredentialsFile, when set, holds the DSN and overrides DSN.
	CredentialsFile string `koanf:"credentials_file"`
}

// CacheConfig configures the Redis rating cache.
type CacheConfig struct {
	Enabled  bool          `koanf:"enabled"`
	Addr     string        `koanf:"addr"     validate:"required_if=Enabled true,omitempty,hostname_port"`
	Password string        `koanf:"password"`
	DB       int           `koanf:"db"       validate:"min=0,max=15"`
	TTL      time.Duration `koanf:"ttl"      validate:"required_if=Enabled true,omitempty,min=1s"`
}

func defaults() map[string]any {
	return map[string]any{
		"app.name":        "quoteboard",
		"app.version":     "dev",
		"app.environment": "local",

		"server.port":             DefaultServerPort,
		"server.host":             "0.0.0.0",
		"server.read_timeout":     "30s",
		"server.write_timeout":    "30s",
		"server.idle_timeout":     "120s",
		"server.shutdown_timeout": "10s",
		"server.max_request_size": DefaultMaxRequestSize,
		"server.ready_cache_ttl":  "5s",

		"log.level":            "info",
		"log.format":           "json",
		"log.file.enabled":     false,
		"log.file.path":        "./logs/app.log",
		"log.file.max_size":    DefaultLogFileMaxSizeMB,
		"log.file.max_backups": DefaultLogFileMaxBackups,
		"log.file.max_age":     DefaultLogFileMaxAgeDays,
		"log.file.compress":    true,

		"telemetry.enabled":       false,
		"telemetry.endpoint":      "",
		"telemetry.service_name":  "quoteboard",
		"telemetry.sampling_rate": 1.0,

		"client.timeout":                           "30s",
		"client.retry.max_attempts":                DefaultClientRetryMaxAttempts,
		"client.retry.initial_interval":            "100ms",
		"client.retry.max_interval":                "5s",
		"client.retry.multiplier":                  DefaultClientRetryMultiplier,
		"client.retry.jitter_factor":               DefaultClientRetryJitterFactor,
		"client.circuit_breaker.max_failures":      DefaultClientCircuitMaxFailures,
		"client.circuit_breaker.timeout":           "30s",
		"client.circuit_breaker.half_open_limit":   DefaultClientCircuitHalfOpenLimit,
		"client.transport.max_idle_conns":          DefaultTransportMaxIdleConns,
		"client.transport.max_idle_conns_per_host": DefaultTransportMaxIdleConnsPerHost,
		"client.transport.idle_conn_timeout":       "90s",

		"moderation.threshold":              DefaultRatingThreshold,
		"moderation.await_counter_update":   true,
		"moderation.counter_update_timeout": "5s",
		"moderation.count_concurrency":      DefaultCountConcurrency,

		"oracle.base_url":            "https://generativelanguage.googleapis.com",
		"oracle.name":                "rating-oracle",
		"oracle.model":               "gemini-pro",
		"oracle.api_key":             "",
		"oracle.requests_per_second": DefaultOracleRequestsPerSecond,
		"oracle.burst":               DefaultOracleBurst,

		"store.driver":           "sqlite",
		"store.dsn":              "file:quoteboard.db",
		"store.project":          "quoteboard",
		"store.credentials_file": "",

		"cache.enabled":  false,
		"cache.addr":     "localhost:6379",
		"cache.password": "",
		"cache.db":       0,
		"cache.ttl":      "24h",
	}
}

// DefaultDir holds base.yaml and the per-profile files.
const DefaultDir = "configs"

// Load reads configuration from DefaultDir. See LoadFrom.
func Load(profile string) (*Config, error) {
	return LoadFrom(DefaultDir, profile)
}

// LoadFrom layers configuration, each source overriding the ones before it:
// built-in defaults, dir/base.yaml, dir/<profile>.yaml, legacy unprefixed
// variables (RATING_THRESHOLD, GEMINI_API_KEY, ...) and finally APP_
// variables with "__" between nested keys. Missing files are skipped.
func LoadFrom(dir, profile string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	files := []string{filepath.Join(dir, "base.yaml")}
	if profile != "" {
		files = append(files, filepath.Join(dir, profile+".yaml"))
	}

	for _, path := range files {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			continue
		}

		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
	}

	if err := k.Load(confmap.Provider(legacyValues(), "."), nil); err != nil {
		return nil, fmt.Errorf("loading legacy env vars: %w", err)
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return &cfg, nil
}

// envKey converts APP_CLIENT__RETRY__MAX_ATTEMPTS to client.retry.max_attempts.
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), envDelimiter, ".")
}

func legacyValues() map[string]any {
	values := make(map[string]any)

	for name, key := range legacyEnv {
		if v := os.Getenv(name); v != "" {
			values[key] = v
		}
	}

	return values
}
