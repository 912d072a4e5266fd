// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when a
// configuration group is invalid.
var (
	// ErrInvalidAppConfigs indicates invalid application-level settings
	// (for example, an unknown log level).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidConverterConfigs indicates an unknown mode or an output
	// file combined with several inputs.
	ErrInvalidConverterConfigs = errors.New("invalid converter configuration")
	// ErrInvalidCryptoConfigs indicates invalid passphrase settings.
	ErrInvalidCryptoConfigs = errors.New("invalid crypto configuration")
	// ErrInvalidWorkerConfigs indicates invalid batch settings
	// (for example, a negative concurrency).
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")

	// ErrInvalidSkipRules indicates a skip rule file that cannot be used.
	ErrInvalidSkipRules = errors.New("invalid skip rules")
)
