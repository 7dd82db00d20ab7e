// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv reads a [StructuredConfig] from environ, or from the process
// environment when environ is nil. Variable names come from the `env` and
// `envPrefix` tags, e.g. WORKERS_SYNC_DEBOUNCE.
func parseEnv(environ map[string]string) (*StructuredConfig, error) {
	cfg, err := env.ParseAsWithOptions[StructuredConfig](env.Options{Environment: environ})
	if err != nil {
		return nil, fmt.Errorf("error getting env configs: %w", err)
	}

	return &cfg, nil
}
