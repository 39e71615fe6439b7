// Copyright (c) 2024 The BitFS developers
// Use of this source code is governed by the Open BSV License v5
// that can be found in the LICENSE file.

// Package config holds library and CLI configuration: where state lives,
// how much to log, and the hardcoded safety limits applied to every
// series creation.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/bitfsorg/libbond-go/policy"
)

// Config is the on-disk configuration, stored as TOML at
// {DataDir}/config.toml by default.
type Config struct {
	// DataDir is where the bolt databases (state and event log) live.
	DataDir string `toml:"data_dir"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`

	// Limits are the hardcoded safety bounds. Durations are whole days.
	Limits LimitsConfig `toml:"limits"`
}

// LimitsConfig is the TOML shape of policy.Limits.
type LimitsConfig struct {
	MaxShareBps     uint32 `toml:"max_share_bps"`
	MinTermDays     uint32 `toml:"min_term_days"`
	MaxTermDays     uint32 `toml:"max_term_days"`
	MinSupply       uint64 `toml:"min_supply"`
	MinPrincipal    uint64 `toml:"min_principal"`
	MinDistribution uint64 `toml:"min_distribution"`
	MinDepositDays  uint32 `toml:"min_deposit_days"`
	MaxDepositDays  uint32 `toml:"max_deposit_days"`
}

// Limits converts the configured bounds into the policy layer's form.
func (lc LimitsConfig) Limits() policy.Limits {
	day := 24 * time.Hour
	return policy.Limits{
		MaxShareBps:      lc.MaxShareBps,
		MinTerm:          time.Duration(lc.MinTermDays) * day,
		MaxTerm:          time.Duration(lc.MaxTermDays) * day,
		MinSupply:        lc.MinSupply,
		MinPrincipal:     lc.MinPrincipal,
		MinDistribution:  lc.MinDistribution,
		MinDepositWindow: time.Duration(lc.MinDepositDays) * day,
		MaxDepositWindow: time.Duration(lc.MaxDepositDays) * day,
	}
}

// DefaultConfig returns the default configuration. The data directory is
// ~/.libbond, falling back to a relative directory when the home
// directory is unknown.
func DefaultConfig() Config {
	dataDir := ".libbond"
	if home, err := os.UserHomeDir(); err == nil {
		dataDir = filepath.Join(home, ".libbond")
	}
	return Config{
		DataDir:  dataDir,
		LogLevel: "info",
		Limits: LimitsConfig{
			MaxShareBps:     5000,
			MinTermDays:     7,
			MaxTermDays:     3650,
			MinSupply:       1000,
			MinPrincipal:    1000,
			MinDistribution: 1,
			MinDepositDays:  1,
			MaxDepositDays:  30,
		},
	}
}

// LoadConfig reads and validates the TOML configuration at path.
func LoadConfig(path string) (Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Config{}, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
	}
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := ValidateConfig(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// SaveConfig writes the configuration as TOML at path, creating the
// parent directory if needed.
func SaveConfig(path string, cfg Config) error {
	if err := ValidateConfig(cfg); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	return nil
}
