// Copyright (c) 2024 The BitFS developers
// Use of this source code is governed by the Open BSV License v5
// that can be found in the LICENSE file.

package config

import (
	"fmt"

	"github.com/bitfsorg/paysplit-go/splitter"
)

// ValidateConfig checks that all configuration values are within acceptable
// ranges and returns the first error encountered, or nil if valid. Identity
// fields are validated only when set; Identities enforces their presence at
// instance construction time.
func ValidateConfig(cfg Config) error {
	if cfg.DataDir == "" {
		return ErrEmptyDataDir
	}

	if cfg.Network != "mainnet" && cfg.Network != "testnet" && cfg.Network != "regtest" {
		return ErrInvalidNetwork
	}

	if cfg.FeeRate == 0 {
		return ErrInvalidFeeRate
	}

	if cfg.Authority != "" {
		if _, err := splitter.AccountIDFromHex(cfg.Authority); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidAuthority, err)
		}
	}
	for i, p := range cfg.Payees {
		if _, err := splitter.AccountIDFromHex(p); err != nil {
			return fmt.Errorf("%w: payee %d: %w", ErrInvalidPayee, i, err)
		}
	}

	return nil
}
