package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "auctiond.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:5005", cfg.Server.RPCListen)
	assert.Equal(t, "pebble", cfg.Database.Backend)
	assert.Equal(t, "lz4", cfg.Database.Compression)
	assert.False(t, cfg.History.Enabled)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 256, cfg.Cache.Size)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, uint64(3600), cfg.Genesis.MinSecondsUntilStart)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
[server]
rpc_listen = "0.0.0.0:8080"

[database]
backend = "leveldb"
path = "/tmp/auctiond"
compression = "none"

[history]
enabled = true
backend = "sqlite"
dsn = "/tmp/history.db"

[genesis]
admin = "addr_admin"
fee_denom = "uusd"
fee_amount = "500000"
min_seconds_until_start = 600
max_auction_duration = 86400
accepted_denoms = ["uusd", "uatom"]
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Server.RPCListen)
	assert.Equal(t, "leveldb", cfg.Database.Backend)
	assert.Equal(t, "none", cfg.Database.Compression)
	assert.True(t, cfg.History.Enabled)
	assert.Equal(t, path, cfg.ConfigPath())

	params, err := cfg.Genesis.Params()
	require.NoError(t, err)
	require.NoError(t, params.Validate())
	assert.Equal(t, "addr_admin", params.Admin)
	assert.Equal(t, int64(500000), params.AuctionCreationFee.Amount.Int64())
	assert.Equal(t, []string{"uusd", "uatom"}, params.AcceptedDenoms)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			"unknown backend",
			func(c *Config) { c.Database.Backend = "rocksdb" },
			"unknown database backend",
		},
		{
			"missing path",
			func(c *Config) { c.Database.Path = "" },
			"database path must be set",
		},
		{
			"unknown compression",
			func(c *Config) { c.Database.Compression = "zstd" },
			"unknown compression",
		},
		{
			"history without dsn",
			func(c *Config) { c.History.Enabled = true; c.History.DSN = "" },
			"history dsn must be set",
		},
		{
			"bad cache size",
			func(c *Config) { c.Cache.Size = 0 },
			"cache size must be positive",
		},
		{
			"no listeners",
			func(c *Config) { c.Server.RPCListen = ""; c.Server.GRPCListen = "" },
			"at least one of",
		},
		{
			"bad fee amount",
			func(c *Config) { c.Genesis.FeeAmount = "not-a-number" },
			"invalid genesis fee_amount",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.toml"))
			require.NoError(t, err)

			tc.mutate(cfg)
			err = cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("AUCTIOND_DATABASE_BACKEND", "memory")

	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Database.Backend)
}

func TestWriteExample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auctiond.toml")
	require.NoError(t, WriteExample(path))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "pebble", cfg.Database.Backend)
	assert.True(t, cfg.History.Enabled)
}
