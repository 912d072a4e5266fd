// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// envPrefix namespaces every variable of the converter, so APP_LOG_LEVEL
// is read from ENML_APP_LOG_LEVEL.
const envPrefix = "ENML_"

// parseEnv fills cfg from ENML_* environment variables. Lists such as
// ENML_CRYPTO_PASSPHRASES are comma separated.
func parseEnv(cfg *StructuredConfig) error {
	err := env.ParseWithOptions(cfg, env.Options{Prefix: envPrefix})
	if err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	return nil
}
