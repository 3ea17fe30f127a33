// Package config loads the server configuration
package config

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/KirkDiggler/skilltree-api/internal/errors"
	"github.com/KirkDiggler/skilltree-api/internal/repositories/slot"
)

// Storage backends for saved slots
const (
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
)

// EnvPrefix is prepended to every environment override, e.g. SKILLTREE_PORT
const EnvPrefix = "SKILLTREE"

// StorageConfig selects where slots are saved
type StorageConfig struct {
	Backend    string `mapstructure:"backend"`
	RedisAddr  string `mapstructure:"redis_addr"`
	SQLitePath string `mapstructure:"sqlite_path"`
}

// TelemetryConfig controls trace export
type TelemetryConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Endpoint string `mapstructure:"endpoint"`
	Insecure bool   `mapstructure:"insecure"`
}

// Config holds all runtime configuration for the server. Values come from
// .skilltree.yaml, SKILLTREE_* env vars and CLI flags.
type Config struct {
	Port int `mapstructure:"port"`
	// CatalogDir overrides the embedded catalog when set
	CatalogDir string          `mapstructure:"catalog_dir"`
	Slot       string          `mapstructure:"slot"`
	LogLevel   string          `mapstructure:"log_level"`
	Storage    StorageConfig   `mapstructure:"storage"`
	Telemetry  TelemetryConfig `mapstructure:"telemetry"`
}

// SetDefaults registers the built-in default for every key
func SetDefaults(v *viper.Viper) {
	v.SetDefault("port", 50051)
	v.SetDefault("catalog_dir", "")
	v.SetDefault("slot", slot.DefaultName)
	v.SetDefault("log_level", "info")
	v.SetDefault("storage.backend", BackendSQLite)
	v.SetDefault("storage.redis_addr", "localhost:6379")
	v.SetDefault("storage.sqlite_path", "skilltree.db")
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.endpoint", "localhost:4318")
	v.SetDefault("telemetry.insecure", true)
}

// New returns a viper instance reading .skilltree.yaml from the working
// directory and SKILLTREE_* variables from the environment. An explicit
// file replaces the search.
func New(file string) *viper.Viper {
	v := viper.New()
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(".skilltree")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)
	return v
}

// Load reads the config file, if any, and returns the validated config. A
// missing file in the search path is not an error.
func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, errors.Wrap(err, "failed to read config")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to decode config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the config is usable
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRange("port", c.Port, 1, 65535, vb)
	errors.ValidateRequired("slot", c.Slot, vb)
	errors.ValidateEnum("storage.backend", c.Storage.Backend, []string{BackendRedis, BackendSQLite}, vb)
	errors.ValidateEnum("log_level", strings.ToLower(c.LogLevel), []string{"debug", "info", "warn", "error"}, vb)

	switch c.Storage.Backend {
	case BackendRedis:
		errors.ValidateRequired("storage.redis_addr", c.Storage.RedisAddr, vb)
	case BackendSQLite:
		errors.ValidateRequired("storage.sqlite_path", c.Storage.SQLitePath, vb)
	}

	if c.Telemetry.Enabled {
		errors.ValidateRequired("telemetry.endpoint", c.Telemetry.Endpoint, vb)
	}

	return vb.Build()
}
