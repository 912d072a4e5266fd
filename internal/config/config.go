// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// Conversion modes of the command-line tool.
const (
	ModeToHTML   = "to-html"
	ModeToENML   = "to-enml"
	ModeValidate = "validate"
)

// StructuredConfig is the top-level configuration container. It aggregates
// all sub-configurations and is populated by merging values from defaults,
// environment variables, command-line flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds process-wide settings such as the log level.
	App App `envPrefix:"APP_"`

	// Storage holds the resource store settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Converter selects the conversion and where its output goes.
	Converter Converter `envPrefix:"CONVERTER_"`

	// Crypto holds passphrase handling settings.
	Crypto Crypto `envPrefix:"CRYPTO_"`

	// Workers limits batch conversions.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the ENML_CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`

	// Files are the input files given as positional arguments.
	Files []string
}

// App holds application-level configuration.
type App struct {
	// LogLevel is a zerolog level name (e.g. "debug", "info").
	// Env: ENML_APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`

	// Interactive enables the passphrase prompt for encrypted blocks.
	// Env: ENML_APP_INTERACTIVE
	Interactive bool `env:"INTERACTIVE"`
}

// Storage groups the configuration for the storage backends.
type Storage struct {
	// DB holds the resource database settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the SQLite resource store.
type DB struct {
	// DSN is the SQLite database file or URI. Empty disables resource
	// previews: every en-media renders as a missing resource.
	// Env: ENML_STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Converter holds the settings of a conversion run.
type Converter struct {
	// Mode is one of [ModeToHTML], [ModeToENML] or [ModeValidate].
	// Env: ENML_CONVERTER_MODE
	Mode string `env:"MODE"`

	// SkipRulesPath is the YAML file with skip rules for [ModeToENML].
	// Env: ENML_CONVERTER_SKIP_RULES
	SkipRulesPath string `env:"SKIP_RULES"`

	// Output is the output file of a single conversion; stdout when empty.
	// Env: ENML_CONVERTER_OUTPUT
	Output string `env:"OUTPUT"`

	// CopyToClipboard copies the output of a single conversion to the
	// system clipboard.
	// Env: ENML_CONVERTER_COPY
	CopyToClipboard bool `env:"COPY"`

	// Timeout bounds the whole run (e.g. "30s"). Zero means no limit.
	// Env: ENML_CONVERTER_TIMEOUT
	Timeout time.Duration `env:"TIMEOUT"`
}

// Crypto holds passphrase handling settings.
type Crypto struct {
	// MaxPassphraseAttempts is how often a wrong passphrase may be retried
	// before a block is left encrypted.
	// Env: ENML_CRYPTO_MAX_PASSPHRASE_ATTEMPTS
	MaxPassphraseAttempts int `env:"MAX_PASSPHRASE_ATTEMPTS"`

	// Passphrases are tried on encrypted blocks without prompting.
	// Env: ENML_CRYPTO_PASSPHRASES (comma separated)
	Passphrases []string `env:"PASSPHRASES"`
}

// Workers holds batch conversion settings.
type Workers struct {
	// Concurrency is the number of notes converted in parallel.
	// Env: ENML_WORKERS_CONCURRENCY
	Concurrency int `env:"CONCURRENCY"`
}

// defaults returns the lowest-priority configuration layer.
func defaults() *StructuredConfig {
	return &StructuredConfig{
		App:       App{LogLevel: "info"},
		Converter: Converter{Mode: ModeToHTML},
		Crypto:    Crypto{MaxPassphraseAttempts: 3},
		Workers:   Workers{Concurrency: 4},
	}
}

// GetStructuredConfig loads, merges, and validates the configuration from
// all available sources in the following priority order (last source wins
// for non-zero fields):
//  1. Built-in defaults
//  2. Environment variables
//  3. Command-line flags parsed from args
//  4. JSON file (path resolved from sources 2 and 3)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags(args).
		withJSON().
		build()
}
