// Copyright (c) 2024 The BitFS developers
// Use of this source code is governed by the Open BSV License v5
// that can be found in the LICENSE file.

package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bitfsorg/paysplit-go/splitter"
)

// Config holds deployment settings for one payment splitter instance.
type Config struct {
	DataDir   string   // directory for the ledger and event log databases
	Network   string   // "mainnet", "testnet", or "regtest"
	FeeRate   uint64   // sat/KB for settlement transactions
	Authority string   // hex-encoded 20-byte identity allowed to trigger payouts
	Payees    []string // hex-encoded 20-byte payee identities, payout order
}

// DefaultConfig returns a configuration with sensible defaults. Authority and
// payees have no defaults; they are deployment-specific.
func DefaultConfig() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return Config{
		DataDir: filepath.Join(home, ".paysplit"),
		Network: "mainnet",
		FeeRate: 1,
	}
}

// ConfigPath returns the path of the configuration file inside dataDir.
func ConfigPath(dataDir string) string {
	return filepath.Join(dataDir, "config")
}

// IsMainnet reports whether addresses should use mainnet encoding.
func (c Config) IsMainnet() bool {
	return c.Network == "mainnet"
}

// Identities parses the configured identities into account IDs. The payee
// order of the config file is preserved.
func (c Config) Identities() (payees []splitter.AccountID, authority splitter.AccountID, err error) {
	if c.Authority == "" {
		return nil, authority, fmt.Errorf("%w: authority is not set", ErrInvalidAuthority)
	}
	authority, err = splitter.AccountIDFromHex(c.Authority)
	if err != nil {
		return nil, authority, fmt.Errorf("%w: %w", ErrInvalidAuthority, err)
	}

	payees = make([]splitter.AccountID, 0, len(c.Payees))
	for i, p := range c.Payees {
		id, err := splitter.AccountIDFromHex(p)
		if err != nil {
			return nil, authority, fmt.Errorf("%w: payee %d: %w", ErrInvalidPayee, i, err)
		}
		payees = append(payees, id)
	}
	return payees, authority, nil
}

// LoadConfig reads a configuration file in "key = value" format, starting
// from DefaultConfig. Blank lines and lines starting with '#' are skipped;
// unknown keys are ignored for forward compatibility. The "payee" key may
// repeat, one line per payee.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return cfg, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, found := strings.Cut(line, "=")
		if !found {
			return cfg, fmt.Errorf("%w: line %d: %q", ErrInvalidConfigLine, lineNo, line)
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)

		switch key {
		case "datadir":
			cfg.DataDir = value
		case "network":
			cfg.Network = value
		case "feerate":
			rate, err := strconv.ParseUint(value, 10, 64)
			if err != nil {
				return cfg, fmt.Errorf("%w: line %d: feerate %q", ErrInvalidConfigLine, lineNo, value)
			}
			cfg.FeeRate = rate
		case "authority":
			cfg.Authority = value
		case "payee":
			cfg.Payees = append(cfg.Payees, value)
		default:
			// Unknown keys are ignored.
		}
	}
	if err := scanner.Err(); err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	return cfg, nil
}

// SaveConfig writes the configuration to path in "key = value" format,
// creating parent directories as needed.
func SaveConfig(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "datadir = %s\n", cfg.DataDir)
	fmt.Fprintf(&b, "network = %s\n", cfg.Network)
	fmt.Fprintf(&b, "feerate = %d\n", cfg.FeeRate)
	if cfg.Authority != "" {
		fmt.Fprintf(&b, "authority = %s\n", cfg.Authority)
	}
	for _, p := range cfg.Payees {
		fmt.Fprintf(&b, "payee = %s\n", p)
	}

	if err := os.WriteFile(path, []byte(b.String()), 0600); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}
