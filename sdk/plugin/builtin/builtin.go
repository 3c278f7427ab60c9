// Package builtin exposes the built-in reasoning transformer for SDK users.
package builtin

import (
	"github.com/router-for-me/reasoning-transformer/internal/config"
	"github.com/router-for-me/reasoning-transformer/internal/transformer"
	"github.com/router-for-me/reasoning-transformer/sdk/plugin"
)

// Name is the registration name of the reasoning transformer.
const Name = transformer.Name

// New builds a hot-reloadable reasoning transformer from cfg.
func New(cfg *config.Config) *transformer.Reloadable {
	return transformer.NewReloadable(cfg)
}

// Register builds the reasoning transformer from cfg and registers it in registry.
// A nil registry uses the default one.
func Register(registry *plugin.Registry, cfg *config.Config) (*transformer.Reloadable, error) {
	if registry == nil {
		registry = plugin.Default()
	}
	t := New(cfg)
	if err := registry.Register(t); err != nil {
		return nil, err
	}
	return t, nil
}

// Pipeline returns a pipeline that runs only the reasoning transformer, together with
// the transformer so callers can reload it.
func Pipeline(cfg *config.Config) (*plugin.Pipeline, *transformer.Reloadable) {
	t := New(cfg)
	return plugin.NewPipeline(t), t
}
