// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"net/url"
	"strings"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Required: a parseable API base URL with a host, and a file-backed DSN for
// the local history store. Policy knobs are optional (zero selects component
// defaults) but must not be negative where a count is expected.
//
// Returns nil if the configuration is valid, or a sentinel error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Adapter.APIBaseURL == "" {
		return ErrInvalidAdapterConfigs
	}
	if u, err := url.Parse(cfg.Adapter.APIBaseURL); err != nil || u.Host == "" {
		return ErrInvalidAdapterConfigs
	}
	if cfg.Adapter.RetryMaxAttempts < 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Storage.DB.DSN == "" || strings.Contains(cfg.Storage.DB.DSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Engine.LockoutThreshold < 0 || cfg.Engine.MaxConcurrent < 0 {
		return ErrInvalidEngineConfigs
	}

	return nil
}
