// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var logLevels = []any{"trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled"}

// validate checks that the final merged [StructuredConfig] satisfies all
// invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or an error wrapping one of
// the ErrInvalid*Configs sentinels otherwise.
func (cfg *StructuredConfig) validate() error {
	if err := validation.ValidateStruct(&cfg.App,
		validation.Field(&cfg.App.LogLevel, validation.In(logLevels...)),
	); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidAppConfigs, err)
	}

	if err := validation.ValidateStruct(&cfg.Converter,
		validation.Field(&cfg.Converter.Mode, validation.Required, validation.In(ModeToHTML, ModeToENML, ModeValidate)),
		validation.Field(&cfg.Converter.Timeout, validation.Min(0)),
	); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConverterConfigs, err)
	}
	if cfg.Converter.Output != "" && len(cfg.Files) > 1 {
		return fmt.Errorf("%w: output file needs a single input", ErrInvalidConverterConfigs)
	}

	if err := validation.ValidateStruct(&cfg.Crypto,
		validation.Field(&cfg.Crypto.MaxPassphraseAttempts, validation.Min(1), validation.Max(10)),
		validation.Field(&cfg.Crypto.Passphrases, validation.Each(validation.Required)),
	); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidCryptoConfigs, err)
	}

	if err := validation.ValidateStruct(&cfg.Workers,
		validation.Field(&cfg.Workers.Concurrency, validation.Min(1), validation.Max(64)),
	); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidWorkerConfigs, err)
	}

	return nil
}
