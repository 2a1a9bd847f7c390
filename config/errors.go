// Copyright (c) 2024 The BitFS developers
// Use of this source code is governed by the Open BSV License v5
// that can be found in the LICENSE file.

package config

import "errors"

var (
	// ErrInvalidNetwork indicates the network name is not recognized.
	ErrInvalidNetwork = errors.New("config: invalid network (must be \"mainnet\", \"testnet\", or \"regtest\")")

	// ErrEmptyDataDir indicates the data directory path is empty.
	ErrEmptyDataDir = errors.New("config: data directory must not be empty")

	// ErrInvalidFeeRate indicates the fee rate is zero.
	ErrInvalidFeeRate = errors.New("config: fee rate must be positive")

	// ErrInvalidAuthority indicates the authority identity is missing or malformed.
	ErrInvalidAuthority = errors.New("config: invalid authority")

	// ErrInvalidPayee indicates a payee identity is malformed.
	ErrInvalidPayee = errors.New("config: invalid payee")

	// ErrConfigNotFound indicates the configuration file does not exist.
	ErrConfigNotFound = errors.New("config: configuration file not found")

	// ErrInvalidConfigLine indicates a line in the config file is malformed.
	ErrInvalidConfigLine = errors.New("config: invalid configuration line")
)
