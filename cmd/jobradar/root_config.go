package main

import (
	"fmt"

	"github.com/nanotecnologista/jobradar/internal/config"
)

// loadRuntimeConfig resolves the effective configuration: file values
// (when a path is given) merged over defaults, environment credentials
// on top, then validation.
func loadRuntimeConfig(path string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded.MergeWithDefaults(config.DefaultConfig())
	}

	cfg.LoadCredentialsFromEnv()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}
