// Package config loads the auctiond configuration: defaults first, then
// the TOML file, then AUCTIOND_-prefixed environment variables.
package config

import (
	"fmt"
	"path/filepath"

	"github.com/auctionlaunch/auctiond/internal/core/auction"
	"github.com/auctionlaunch/auctiond/internal/core/types"

	sdkmath "cosmossdk.io/math"
)

// Config is the complete auctiond configuration, mirroring auctiond.toml.
type Config struct {
	Server     ServerConfig     `toml:"server" mapstructure:"server"`
	Database   DatabaseConfig   `toml:"database" mapstructure:"database"`
	History    HistoryConfig    `toml:"history" mapstructure:"history"`
	Cache      CacheConfig      `toml:"cache" mapstructure:"cache"`
	Pagination PaginationConfig `toml:"pagination" mapstructure:"pagination"`
	Log        LogConfig        `toml:"log" mapstructure:"log"`
	Genesis    GenesisConfig    `toml:"genesis" mapstructure:"genesis"`

	configPath string `toml:"-" mapstructure:"-"`
}

// ServerConfig holds the listen addresses for the two API surfaces.
type ServerConfig struct {
	RPCListen  string `toml:"rpc_listen" mapstructure:"rpc_listen"`
	GRPCListen string `toml:"grpc_listen" mapstructure:"grpc_listen"`
}

// DatabaseConfig selects the registry's key-value backend.
type DatabaseConfig struct {
	// Backend is one of "pebble", "leveldb" or "memory".
	Backend string `toml:"backend" mapstructure:"backend"`
	Path    string `toml:"path" mapstructure:"path"`
	// Compression is "none" or "lz4".
	Compression      string `toml:"compression" mapstructure:"compression"`
	CompressionLevel int    `toml:"compression_level" mapstructure:"compression_level"`
}

// HistoryConfig configures the optional relational history recorder.
type HistoryConfig struct {
	Enabled bool `toml:"enabled" mapstructure:"enabled"`
	// Backend is "sqlite" or "postgres".
	Backend string `toml:"backend" mapstructure:"backend"`
	DSN     string `toml:"dsn" mapstructure:"dsn"`
}

// CacheConfig configures the in-memory auction cache.
type CacheConfig struct {
	Enabled bool `toml:"enabled" mapstructure:"enabled"`
	Size    int  `toml:"size" mapstructure:"size"`
}

// PaginationConfig bounds the auctions page query.
type PaginationConfig struct {
	DefaultLimit uint32 `toml:"default_limit" mapstructure:"default_limit"`
	MaxLimit     uint32 `toml:"max_limit" mapstructure:"max_limit"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	// Level is a zerolog level name: trace, debug, info, warn, error.
	Level string `toml:"level" mapstructure:"level"`
	// Pretty switches console formatting on instead of JSON lines.
	Pretty bool `toml:"pretty" mapstructure:"pretty"`
}

// GenesisConfig holds the initial global params written on first start.
type GenesisConfig struct {
	Admin                string   `toml:"admin" mapstructure:"admin"`
	FeeDenom             string   `toml:"fee_denom" mapstructure:"fee_denom"`
	FeeAmount            string   `toml:"fee_amount" mapstructure:"fee_amount"`
	MinSecondsUntilStart uint64   `toml:"min_seconds_until_start" mapstructure:"min_seconds_until_start"`
	MaxAuctionDuration   uint64   `toml:"max_auction_duration" mapstructure:"max_auction_duration"`
	AcceptedDenoms       []string `toml:"accepted_denoms" mapstructure:"accepted_denoms"`
}

// Params converts the genesis section into the stored params record.
func (g GenesisConfig) Params() (auction.Params, error) {
	amount, ok := sdkmath.NewIntFromString(g.FeeAmount)
	if !ok {
		return auction.Params{}, fmt.Errorf("invalid genesis fee_amount %q", g.FeeAmount)
	}
	return auction.Params{
		AuctionCreationFee:   types.NewCoin(g.FeeDenom, amount),
		Admin:                g.Admin,
		MinSecondsUntilStart: g.MinSecondsUntilStart,
		MaxAuctionDuration:   g.MaxAuctionDuration,
		AcceptedDenoms:       g.AcceptedDenoms,
	}, nil
}

// ConfigPath returns the path the configuration was loaded from.
func (c *Config) ConfigPath() string {
	return c.configPath
}

// DatabaseDir returns the directory holding the selected backend's files.
func (c *Config) DatabaseDir() string {
	return filepath.Join(c.Database.Path, c.Database.Backend)
}

// Validate checks the configuration before the node starts.
func (c *Config) Validate() error {
	switch c.Database.Backend {
	case "pebble", "leveldb", "memory":
	default:
		return fmt.Errorf("unknown database backend %q", c.Database.Backend)
	}
	if c.Database.Backend != "memory" && c.Database.Path == "" {
		return fmt.Errorf("database path must be set for backend %q", c.Database.Backend)
	}
	switch c.Database.Compression {
	case "none", "lz4":
	default:
		return fmt.Errorf("unknown compression %q", c.Database.Compression)
	}

	if c.History.Enabled {
		switch c.History.Backend {
		case "sqlite", "postgres":
		default:
			return fmt.Errorf("unknown history backend %q", c.History.Backend)
		}
		if c.History.DSN == "" {
			return fmt.Errorf("history dsn must be set when history is enabled")
		}
	}

	if c.Cache.Enabled && c.Cache.Size <= 0 {
		return fmt.Errorf("cache size must be positive, got %d", c.Cache.Size)
	}

	if c.Pagination.DefaultLimit == 0 || c.Pagination.MaxLimit == 0 {
		return fmt.Errorf("pagination limits must be non-zero")
	}
	if c.Pagination.DefaultLimit > c.Pagination.MaxLimit {
		return fmt.Errorf("pagination default_limit %d exceeds max_limit %d",
			c.Pagination.DefaultLimit, c.Pagination.MaxLimit)
	}

	if c.Server.RPCListen == "" && c.Server.GRPCListen == "" {
		return fmt.Errorf("at least one of server.rpc_listen and server.grpc_listen must be set")
	}

	// Full genesis validation happens when the params record is first
	// written; here only the amount syntax is checked.
	if _, err := c.Genesis.Params(); err != nil {
		return err
	}
	return nil
}
