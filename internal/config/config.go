//-------------------------------------------------------------------------
//
// pgEdge Trade Seeder
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package config handles configuration management for pgedge-tradeseed.
// Configuration is loaded from config files and CLI flags (no environment variables).
// CLI flags take precedence over config file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/pgEdge/pgedge-tradeseed/internal/store"
)

// DateLayout is the layout used for the trade window bounds.
const DateLayout = "2006-01-02"

// Config holds all configuration for pgedge-tradeseed.
type Config struct {
	// Backend is the storage backend name (cassandra, postgres, clickhouse, memory).
	Backend string `mapstructure:"backend"`

	// Connection is the backend connection string.
	Connection string `mapstructure:"connection"`

	// Keyspace is the keyspace (schema, database) holding the seeded tables.
	Keyspace string `mapstructure:"keyspace"`

	// LogLevel controls logging verbosity (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level"`

	// LogJSON switches the logger from console output to JSON lines.
	LogJSON bool `mapstructure:"log_json"`

	// Schema holds configuration for keyspace and table creation.
	Schema SchemaConfig `mapstructure:"schema"`

	// Seed holds configuration for the bulk data generator.
	Seed SeedConfig `mapstructure:"seed"`
}

// SchemaConfig holds configuration for keyspace creation.
type SchemaConfig struct {
	// ReplicationFactor is used by backends that replicate keyspaces.
	ReplicationFactor int `mapstructure:"replication_factor"`
}

// User is one roster entry accounts are drawn from.
type User struct {
	Username string `mapstructure:"username"`
	Name     string `mapstructure:"name"`
}

// SeedConfig holds configuration for data generation.
type SeedConfig struct {
	// Accounts is the number of account rows to generate.
	Accounts int `mapstructure:"accounts"`

	// Positions is the number of distinct (account, symbol) positions.
	Positions int `mapstructure:"positions"`

	// Trades is the number of trade rows.
	Trades int `mapstructure:"trades"`

	// BatchSize is the number of rows submitted per batch.
	BatchSize int `mapstructure:"batch_size"`

	// RandomSeed makes a run reproducible. Zero picks a time based seed.
	RandomSeed uint64 `mapstructure:"random_seed"`

	// WindowStart is the first day (inclusive) trades may fall on, YYYY-MM-DD.
	WindowStart string `mapstructure:"window_start"`

	// WindowEnd is the end (exclusive) of the trade window, YYYY-MM-DD.
	WindowEnd string `mapstructure:"window_end"`

	// DropExisting drops the seeded tables before initialization.
	DropExisting bool `mapstructure:"drop_existing"`

	// Users is the roster account owners are sampled from.
	Users []User `mapstructure:"users"`

	// Instruments is the symbol roster for positions and trades.
	Instruments []string `mapstructure:"instruments"`
}

// DefaultUsers is the built-in account owner roster.
func DefaultUsers() []User {
	return []User{
		{Username: "mike", Name: "Michael Jones"},
		{Username: "stacy", Name: "Stacy Malibu"},
		{Username: "john", Name: "John Doe"},
		{Username: "marie", Name: "Marie Condo"},
		{Username: "tom", Name: "Tomas Train"},
	}
}

// DefaultInstruments is the built-in symbol roster.
func DefaultInstruments() []string {
	return []string{
		"ETSY", "PINS", "SE", "SHOP", "SQ", "MELI", "ISRG", "DIS", "BRK.A", "AMZN",
		"VOO", "VEA", "VGT", "VIG", "MBB", "QQQ", "SPY", "BSV", "BND", "MUB",
		"VSMPX", "VFIAX", "FXAIX", "VTSAX", "SPAXX", "VMFXX", "FDRXX", "FGXX",
	}
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Backend:  "cassandra",
		Keyspace: "trading",
		LogLevel: "info",
		Schema: SchemaConfig{
			ReplicationFactor: 1,
		},
		Seed: SeedConfig{
			Accounts:    10,
			Positions:   100,
			Trades:      1000,
			BatchSize:   10,
			WindowStart: "2013-01-01",
			WindowEnd:   "2022-08-31",
			Users:       DefaultUsers(),
			Instruments: DefaultInstruments(),
		},
	}
}

// Load reads configuration from config files.
// Config file locations (in order of precedence):
// 1. Path specified by configFile parameter
// 2. ./pgedge-tradeseed.yaml
// 3. ~/.config/pgedge-tradeseed/config.yaml
func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("pgedge-tradeseed")
	v.SetConfigType("yaml")

	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "pgedge-tradeseed"))
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Rosters from the file replace the built-in ones instead of being
	// merged element by element into them.
	cfg := DefaultConfig()
	cfg.Seed.Users = nil
	cfg.Seed.Instruments = nil
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}
	if len(cfg.Seed.Users) == 0 {
		cfg.Seed.Users = DefaultUsers()
	}
	if len(cfg.Seed.Instruments) == 0 {
		cfg.Seed.Instruments = DefaultInstruments()
	}

	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.Backend == "" {
		return fmt.Errorf("backend is required")
	}
	if c.Connection == "" && c.Backend != "memory" {
		return fmt.Errorf("connection string is required")
	}
	return store.ValidateKeyspace(c.Keyspace)
}

// ValidateSchema checks configuration required for creating the schema.
func (c *Config) ValidateSchema() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Schema.ReplicationFactor < 1 {
		return fmt.Errorf("replication_factor must be at least 1")
	}
	return nil
}

// ValidateSeed checks configuration required for the init command.
func (c *Config) ValidateSeed() error {
	if err := c.ValidateSchema(); err != nil {
		return err
	}
	s := c.Seed
	if s.Accounts < 0 || s.Positions < 0 || s.Trades < 0 {
		return fmt.Errorf("accounts, positions and trades must be non-negative")
	}
	if s.BatchSize < 1 {
		return fmt.Errorf("batch_size must be at least 1")
	}
	start, end, err := s.Window()
	if err != nil {
		return err
	}
	if !end.After(start) {
		return fmt.Errorf("window_end must be after window_start")
	}
	if len(s.Users) == 0 {
		return fmt.Errorf("at least one user is required")
	}
	for _, u := range s.Users {
		if u.Username == "" {
			return fmt.Errorf("user entries require a username")
		}
	}
	if len(s.Instruments) == 0 {
		return fmt.Errorf("at least one instrument is required")
	}
	return nil
}

// Window parses the trade window bounds as UTC dates.
func (s SeedConfig) Window() (time.Time, time.Time, error) {
	start, err := time.ParseInLocation(DateLayout, s.WindowStart, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid window_start %q: %w", s.WindowStart, err)
	}
	end, err := time.ParseInLocation(DateLayout, s.WindowEnd, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid window_end %q: %w", s.WindowEnd, err)
	}
	return start, end, nil
}
