package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// DefaultConfigFile is the config file name looked up when no explicit
// path is given.
const DefaultConfigFile = "auctiond.toml"

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.rpc_listen", "127.0.0.1:5005")
	v.SetDefault("server.grpc_listen", "127.0.0.1:50051")

	v.SetDefault("database.backend", "pebble")
	v.SetDefault("database.path", "data")
	v.SetDefault("database.compression", "lz4")
	v.SetDefault("database.compression_level", 0)

	v.SetDefault("history.enabled", false)
	v.SetDefault("history.backend", "sqlite")
	v.SetDefault("history.dsn", "data/history.db")

	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.size", 256)

	v.SetDefault("pagination.default_limit", 10)
	v.SetDefault("pagination.max_limit", 30)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	v.SetDefault("genesis.admin", "")
	v.SetDefault("genesis.fee_denom", "uusd")
	v.SetDefault("genesis.fee_amount", "1000000")
	v.SetDefault("genesis.min_seconds_until_start", 3600)
	v.SetDefault("genesis.max_auction_duration", 2592000)
	v.SetDefault("genesis.accepted_denoms", []string{})
}

// Load reads the configuration file at path, layering environment
// variables over it. A missing file is an error; use LoadOrDefault when
// running without one is acceptable.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path cannot be empty")
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", path)
	}

	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return finish(v, path)
}

// LoadOrDefault behaves like Load but falls back to pure defaults plus
// environment variables when the file is absent.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFile
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return finish(newViper(), "")
	}
	return Load(path)
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("AUCTIOND")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func finish(v *viper.Viper, path string) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.configPath = path

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// WriteExample writes an example configuration file to path.
func WriteExample(path string) error {
	v := viper.New()
	for key, value := range exampleValues() {
		v.Set(key, value)
	}

	v.SetConfigFile(path)
	if err := v.WriteConfig(); err != nil {
		return fmt.Errorf("failed to write example config: %w", err)
	}
	return nil
}

func exampleValues() map[string]interface{} {
	return map[string]interface{}{
		"server.rpc_listen":  "127.0.0.1:5005",
		"server.grpc_listen": "127.0.0.1:50051",

		"database.backend":     "pebble",
		"database.path":        "/var/lib/auctiond/data",
		"database.compression": "lz4",

		"history.enabled": true,
		"history.backend": "sqlite",
		"history.dsn":     "/var/lib/auctiond/history.db",

		"cache.enabled": true,
		"cache.size":    256,

		"log.level": "info",

		"genesis.admin":                   "addr_admin",
		"genesis.fee_denom":               "uusd",
		"genesis.fee_amount":              "1000000",
		"genesis.min_seconds_until_start": 3600,
		"genesis.max_auction_duration":    2592000,
		"genesis.accepted_denoms":         []string{"uusd", "uatom"},
	}
}
