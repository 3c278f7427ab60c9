package transformer

import (
	"context"
	"sync/atomic"

	"github.com/router-for-me/reasoning-transformer/internal/config"
	log "github.com/sirupsen/logrus"
)

// Reloadable holds the current Transformer and swaps it atomically on configuration
// changes. In-flight calls finish on the Transformer they started with.
type Reloadable struct {
	current atomic.Pointer[Transformer]
}

// NewReloadable creates a holder serving a Transformer built from cfg.
func NewReloadable(cfg *config.Config) *Reloadable {
	r := &Reloadable{}
	r.current.Store(New(cfg))
	return r
}

// Current returns the Transformer in use.
func (r *Reloadable) Current() *Transformer {
	return r.current.Load()
}

// Reload builds a Transformer from cfg and swaps it in. A nil cfg keeps the current one.
func (r *Reloadable) Reload(cfg *config.Config) {
	if cfg == nil {
		log.Warn("transformer: reload skipped, configuration is nil")
		return
	}
	r.current.Store(New(cfg))
	log.Info("transformer: configuration reloaded")
}

// Name returns the transformer's registration name.
func (r *Reloadable) Name() string { return Name }

// TransformRequestIn delegates to the current Transformer.
func (r *Reloadable) TransformRequestIn(ctx context.Context, body []byte, provider Provider) ([]byte, error) {
	return r.Current().TransformRequestIn(ctx, body, provider)
}

// Transform delegates to the current Transformer.
func (r *Reloadable) Transform(ctx context.Context, body []byte, provider Provider) (Result, error) {
	return r.Current().Transform(ctx, body, provider)
}

// TransformResponseOut delegates to the current Transformer.
func (r *Reloadable) TransformResponseOut(ctx context.Context, resp ResponseEnvelope) (ResponseEnvelope, error) {
	return r.Current().TransformResponseOut(ctx, resp)
}
