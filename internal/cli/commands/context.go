// Package commands implements the prql subcommands.
package commands

import (
	"context"

	"github.com/leapstack-labs/prql/internal/config"
)

// configKey is used to store config in context.
type configKey struct{}

// WithConfig stores the loaded configuration in the context.
func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// GetConfig retrieves the config from the command context, falling back to
// defaults when the context carries none.
func GetConfig(ctx context.Context) *config.Config {
	if cfg, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return cfg
	}
	return &config.Config{
		Target:    config.DefaultTarget,
		Format:    true,
		Signature: true,
		Output:    config.DefaultOutput,
	}
}
