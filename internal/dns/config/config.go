// Package config loads application settings from environment variables with
// struct-tag defaults and validation.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// AppConfig holds configuration values parsed from environment variables.
type AppConfig struct {
	// Env is the runtime environment, either "dev" or "prod".
	Env string `koanf:"env" validate:"required,oneof=dev prod"`

	// LogLevel controls log verbosity: "debug", "info", "warn", or "error".
	LogLevel string `koanf:"log_level" validate:"required,oneof=debug info warn error"`

	// Port is the network port the DNS server will bind to.
	Port int `koanf:"port" validate:"required,gte=1,lt=65535"`

	// RecordDir is the directory containing record files (YAML, JSON, or TOML).
	RecordDir string `koanf:"record_dir" validate:"required"`

	// DBPath is where the compiled record database is stored.
	DBPath string `koanf:"db_path" validate:"required"`

	// CacheSize is the number of encoded responses kept in the LRU cache.
	CacheSize uint `koanf:"cache_size" validate:"required,gte=1"`

	// DisableCache disables response caching when set to true.
	DisableCache bool `koanf:"disable_cache"`

	// DefaultTTL is the TTL in seconds applied to records without one.
	DefaultTTL uint32 `koanf:"default_ttl" validate:"required,gte=1"`
}

// DEFAULT_APP_CONFIG defines the default application configuration.
var DEFAULT_APP_CONFIG = AppConfig{
	Env:          "prod",
	LogLevel:     "info",
	Port:         53,
	RecordDir:    "/etc/dnswire/records/",
	DBPath:       "/var/lib/dnswire/records.db",
	CacheSize:    1000,
	DisableCache: false,
	DefaultTTL:   300,
}

// envLoader loads environment variables with the prefix "DNS_", lowercasing
// keys and splitting space- or comma-separated values into slices.
// It is a var so tests can substitute their own loader.
var envLoader = func(k *koanf.Koanf) error {
	return k.Load(env.Provider(".", env.Opt{
		Prefix: "DNS_",
		TransformFunc: func(key, value string) (string, any) {
			key = strings.ToLower(strings.TrimPrefix(key, "DNS_"))
			value = strings.TrimSpace(value)

			if value == "" {
				return key, value
			}

			if strings.Contains(value, " ") || strings.Contains(value, ",") {
				parts := strings.FieldsFunc(value, func(r rune) bool {
					return r == ' ' || r == ','
				})
				return key, parts
			}

			return key, value
		},
	}), nil)
}

// defaultLoader loads default values into the Koanf instance via the structs
// provider.
var defaultLoader = func(k *koanf.Koanf) error {
	return k.Load(structs.Provider(DEFAULT_APP_CONFIG, "koanf"), nil)
}

// Load parses environment variables and returns an AppConfig instance.
// It applies default values and runs validation automatically.
func Load() (*AppConfig, error) {
	k := koanf.New(".")

	if err := defaultLoader(k); err != nil {
		return nil, fmt.Errorf("error loading default config: %w", err)
	}

	if err := envLoader(k); err != nil {
		return nil, fmt.Errorf("error loading env: %w", err)
	}

	var cfg AppConfig
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return &cfg, nil
}
