// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"flag"
	"fmt"
	"strings"
	"time"
)

// listFlag collects a repeatable or comma separated string flag.
// It implements the flag.Value interface.
type listFlag []string

// String returns the values joined by commas.
func (l *listFlag) String() string {
	return strings.Join(*l, ",")
}

// Set appends every non-empty comma separated value of s.
func (l *listFlag) Set(s string) error {
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			*l = append(*l, v)
		}
	}
	return nil
}

// ParseFlags parses all configuration flags from args (without the program
// name). Remaining positional arguments become [StructuredConfig.Files].
//
// Flags:
//
//	-mode to-html | to-enml | validate
//	-skip-rules YAML file with skip rules
//	-o output file of a single conversion
//	-copy copy the output to the clipboard
//	-timeout limit for the whole run (e.g. "30s")
//	-d/-resources-db SQLite resource store
//	-interactive prompt for passphrases
//	-passphrase passphrase to try on encrypted blocks (repeatable)
//	-max-attempts passphrase attempts per block
//	-concurrency parallel conversions
//	-log-level zerolog level name
//	-c/-config json file path with configs
func ParseFlags(args []string) (*StructuredConfig, error) {
	var (
		mode, skipRules, output string
		copyOutput, interactive bool
		timeout                 time.Duration
		databaseDSN             string
		passphrases             listFlag
		maxAttempts             int
		concurrency             int
		logLevel                string
		jsonConfigPath          string
	)

	fs := flag.NewFlagSet("enmlconv", flag.ContinueOnError)
	fs.StringVar(&mode, "mode", "", "Conversion mode: to-html, to-enml or validate")
	fs.StringVar(&skipRules, "skip-rules", "", "YAML file with skip rules")
	fs.StringVar(&output, "o", "", "Output file of a single conversion")
	fs.BoolVar(&copyOutput, "copy", false, "Copy the output to the clipboard")
	fs.DurationVar(&timeout, "timeout", 0, "Limit for the whole run (e.g., 30s)")
	fs.StringVar(&databaseDSN, "d", "", "SQLite resource store")
	fs.StringVar(&databaseDSN, "resources-db", "", "SQLite resource store (alias)")
	fs.BoolVar(&interactive, "interactive", false, "Prompt for passphrases")
	fs.Var(&passphrases, "passphrase", "Passphrase to try on encrypted blocks (repeatable)")
	fs.IntVar(&maxAttempts, "max-attempts", 0, "Passphrase attempts per block")
	fs.IntVar(&concurrency, "concurrency", 0, "Parallel conversions")
	fs.StringVar(&logLevel, "log-level", "", "Log level")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			LogLevel:    logLevel,
			Interactive: interactive,
		},
		Storage: Storage{
			DB: DB{DSN: databaseDSN},
		},
		Converter: Converter{
			Mode:            mode,
			SkipRulesPath:   skipRules,
			Output:          output,
			CopyToClipboard: copyOutput,
			Timeout:         timeout,
		},
		Crypto: Crypto{
			MaxPassphraseAttempts: maxAttempts,
			Passphrases:           passphrases,
		},
		Workers:      Workers{Concurrency: concurrency},
		JSONFilePath: jsonConfigPath,
		Files:        fs.Args(),
	}, nil
}
