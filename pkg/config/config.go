// Package config loads process configuration from the environment, an
// optional .env file and an optional YAML limits file.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"math"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/chris/campaign-escrow/pkg/campaign"
	dydbstore "github.com/chris/campaign-escrow/pkg/storage/dynamodb"
)

const (
	BackendBadger   = "badger"
	BackendDynamoDB = "dynamodb"
)

// Config holds every setting the binaries read at startup.
type Config struct {
	StorageBackend string `envconfig:"STORAGE_BACKEND"`
	BadgerDir      string `envconfig:"BADGER_DIR"`

	CampaignsTable     string `envconfig:"DYNAMODB_CAMPAIGNS_TABLE_NAME"`
	ContributionsTable string `envconfig:"DYNAMODB_CONTRIBUTIONS_TABLE_NAME"`
	MetaTable          string `envconfig:"DYNAMODB_META_TABLE_NAME"`
	WalletsTable       string `envconfig:"DYNAMODB_WALLETS_TABLE_NAME"`
	LedgerTable        string `envconfig:"DYNAMODB_LEDGER_TABLE_NAME"`

	SQSQueueURL string `envconfig:"SQS_QUEUE_URL"`

	HTTPPort  string `envconfig:"HTTP_PORT"`
	RootToken string `envconfig:"ROOT_TOKEN"`

	SweepInterval       time.Duration `envconfig:"SWEEP_INTERVAL"`
	SettlementBatchSize int           `envconfig:"SETTLEMENT_BATCH_SIZE"`

	LogLevel   string `envconfig:"LOG_LEVEL"`
	LimitsFile string `envconfig:"LIMITS_FILE"`

	campaign.Limits
}

// Default returns the configuration used for anything not set explicitly.
func Default() *Config {
	return &Config{
		StorageBackend:      BackendBadger,
		HTTPPort:            "8080",
		SettlementBatchSize: campaign.DefaultSettlementBatchSize,
		LogLevel:            "info",
		Limits:              campaign.DefaultLimits(),
	}
}

// Load layers configuration: defaults, then the limits file, then the
// environment. A missing .env file is not an error.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading env file: %w", err)
	}

	cfg := Default()
	if file := os.Getenv("LIMITS_FILE"); file != "" {
		if err := cfg.loadLimitsFile(file); err != nil {
			return nil, err
		}
	}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("error processing environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadLimitsFile(path string) error {
	buf, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error reading limits file: %w", err)
	}
	if err := yaml.Unmarshal(buf, &c.Limits); err != nil {
		return fmt.Errorf("error parsing limits file: %w", err)
	}
	return nil
}

// Validate checks the configuration for the selected backend.
func (c *Config) Validate() error {
	if err := c.Limits.Validate(); err != nil {
		return err
	}
	if c.SettlementBatchSize <= 0 || c.SettlementBatchSize > math.MaxInt32 {
		return fmt.Errorf("settlement batch size must be between 1 and %d, got %d", math.MaxInt32, c.SettlementBatchSize)
	}
	if c.SweepInterval < 0 {
		return fmt.Errorf("sweep interval must not be negative, got %s", c.SweepInterval)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	switch c.StorageBackend {
	case BackendBadger:
	case BackendDynamoDB:
		if c.CampaignsTable == "" || c.ContributionsTable == "" || c.MetaTable == "" || c.WalletsTable == "" || c.LedgerTable == "" {
			return errors.New("one or more DynamoDB table name environment variables are not set")
		}
		if c.SettlementBatchSize > dydbstore.MaxSettlementBatchSize {
			return fmt.Errorf("settlement batch size %d does not fit one DynamoDB transaction, the maximum is %d",
				c.SettlementBatchSize, dydbstore.MaxSettlementBatchSize)
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.StorageBackend)
	}
	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return level, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// NewLogger returns a JSON logger writing to w at the configured level.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	level, err := c.Level()
	if err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}
