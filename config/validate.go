// Copyright (c) 2024 The BitFS developers
// Use of this source code is governed by the Open BSV License v5
// that can be found in the LICENSE file.

package config

import (
	"fmt"
	"strings"
)

// validLogLevels lists the accepted log level strings.
var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// ValidateConfig checks that all configuration values are within acceptable
// ranges and returns the first error encountered, or nil if valid.
func ValidateConfig(cfg Config) error {
	if cfg.DataDir == "" {
		return ErrEmptyDataDir
	}

	if !validLogLevels[strings.ToLower(cfg.LogLevel)] {
		return ErrInvalidLogLevel
	}

	return validateLimits(cfg.Limits)
}

// validateLimits checks that the safety bounds describe a non-empty range.
func validateLimits(lc LimitsConfig) error {
	switch {
	case lc.MaxShareBps == 0 || lc.MaxShareBps > 10000:
		return fmt.Errorf("%w: max_share_bps must be in (0, 10000]", ErrInvalidLimits)
	case lc.MinTermDays == 0 || lc.MinTermDays > lc.MaxTermDays:
		return fmt.Errorf("%w: term range [%d, %d] days", ErrInvalidLimits, lc.MinTermDays, lc.MaxTermDays)
	case lc.MinSupply == 0:
		return fmt.Errorf("%w: min_supply must be positive", ErrInvalidLimits)
	case lc.MinPrincipal == 0:
		return fmt.Errorf("%w: min_principal must be positive", ErrInvalidLimits)
	case lc.MinDistribution == 0:
		return fmt.Errorf("%w: min_distribution must be positive", ErrInvalidLimits)
	case lc.MinDepositDays == 0 || lc.MinDepositDays > lc.MaxDepositDays:
		return fmt.Errorf("%w: deposit window range [%d, %d] days", ErrInvalidLimits, lc.MinDepositDays, lc.MaxDepositDays)
	}
	return nil
}
