// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv fills cfg from the process environment via caarlos0/env.
// Variable names come from the `env` and `envPrefix` tags on
// [StructuredConfig] and its nested sections, so the full set of
// recognised variables is visible in config.go next to each field.
func parseEnv(cfg any) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse environment configuration: %w", err)
	}

	return nil
}
