package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chris/campaign-escrow/pkg/campaign"
	dydbstore "github.com/chris/campaign-escrow/pkg/storage/dynamodb"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, BackendBadger, cfg.StorageBackend)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, campaign.DefaultLimits(), cfg.Limits)
	assert.Equal(t, campaign.DefaultSettlementBatchSize, cfg.SettlementBatchSize)
	assert.Zero(t, cfg.SweepInterval)
}

func TestLoadEnvironment(t *testing.T) {
	t.Setenv("MAX_NAME_LEN", "12")
	t.Setenv("MINIMUM_DEPOSIT", "250")
	t.Setenv("SWEEP_INTERVAL", "30s")
	t.Setenv("ROOT_TOKEN", "s3cret")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, 12, cfg.MaxNameLen)
	assert.Equal(t, int64(250), cfg.MinimumDeposit)
	assert.Equal(t, 1000, cfg.MaxDescLen)
	assert.Equal(t, 30*time.Second, cfg.SweepInterval)
	assert.Equal(t, "s3cret", cfg.RootToken)
}

func TestLoadLimitsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "limits.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_active: 5\nmax_link_len: 64\n"), 0o600))
	t.Setenv("LIMITS_FILE", path)
	t.Setenv("MAX_LINK_LEN", "80")

	cfg, err := Load(filepath.Join(dir, "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.MaxActive)
	// the environment wins over the file
	assert.Equal(t, 80, cfg.MaxLinkLen)
	assert.Equal(t, 50, cfg.MaxNameLen)
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("HTTP_PORT=9191\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("HTTP_PORT") })

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "9191", cfg.HTTPPort)
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name   string
		modify func(*Config)
		ok     bool
	}{
		{name: "defaults", modify: func(*Config) {}, ok: true},
		{name: "zero active cap", modify: func(c *Config) { c.MaxActive = 0 }},
		{name: "negative deposit", modify: func(c *Config) { c.MinimumDeposit = -1 }},
		{name: "zero batch", modify: func(c *Config) { c.SettlementBatchSize = 0 }},
		{name: "batch beyond int32", modify: func(c *Config) { c.SettlementBatchSize = math.MaxInt32 + 1 }},
		{name: "large batch on badger", modify: func(c *Config) { c.SettlementBatchSize = 500 }, ok: true},
		{name: "bad level", modify: func(c *Config) { c.LogLevel = "loud" }},
		{name: "unknown backend", modify: func(c *Config) { c.StorageBackend = "sqlite" }},
		{name: "dynamodb without tables", modify: func(c *Config) { c.StorageBackend = BackendDynamoDB }},
		{name: "dynamodb with tables", modify: withTables, ok: true},
		{
			name: "dynamodb at batch limit",
			modify: func(c *Config) {
				withTables(c)
				c.SettlementBatchSize = dydbstore.MaxSettlementBatchSize
			},
			ok: true,
		},
		{
			name: "dynamodb batch over transaction limit",
			modify: func(c *Config) {
				withTables(c)
				c.SettlementBatchSize = dydbstore.MaxSettlementBatchSize + 1
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.modify(cfg)
			err := cfg.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func withTables(c *Config) {
	c.StorageBackend = BackendDynamoDB
	c.CampaignsTable, c.ContributionsTable, c.MetaTable = "campaigns", "contributions", "meta"
	c.WalletsTable, c.LedgerTable = "wallets", "ledger"
}
