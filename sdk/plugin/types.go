// Package plugin defines the host-facing boundary for request/response transformers.
// Hosts register transformers by name and run them through a Pipeline around each
// outbound chat-completion call.
package plugin

import (
	"context"

	"github.com/router-for-me/reasoning-transformer/internal/logging"
	"github.com/router-for-me/reasoning-transformer/internal/transformer"
)

// Provider describes the upstream provider a request is routed to.
type Provider = transformer.Provider

// ResponseEnvelope is a provider response as seen by the host.
type ResponseEnvelope = transformer.ResponseEnvelope

// Transformer is the plugin shape a host invokes once per outbound request and once per
// provider response.
type Transformer interface {
	// Name is the registration name, unique within a Registry.
	Name() string
	// TransformRequestIn returns the body to send upstream.
	TransformRequestIn(ctx context.Context, body []byte, provider Provider) ([]byte, error)
	// TransformResponseOut returns the response to hand back to the client.
	TransformResponseOut(ctx context.Context, resp ResponseEnvelope) (ResponseEnvelope, error)
}

// CallContext carries per-call host metadata.
type CallContext struct {
	RequestID string
	Provider  Provider
	Metadata  map[string]string
}

type callContextKey struct{}

// WithCallContext attaches cc to ctx. The request id is also registered for logging;
// an empty id is generated.
func WithCallContext(ctx context.Context, cc CallContext) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if cc.RequestID == "" {
		cc.RequestID = logging.GetRequestID(ctx)
	}
	if cc.RequestID == "" {
		cc.RequestID = logging.GenerateRequestID()
	}
	ctx = logging.WithRequestID(ctx, cc.RequestID)
	return context.WithValue(ctx, callContextKey{}, cc)
}

// CallContextFrom returns the CallContext stored in ctx, if any.
func CallContextFrom(ctx context.Context) (CallContext, bool) {
	if ctx == nil {
		return CallContext{}, false
	}
	cc, ok := ctx.Value(callContextKey{}).(CallContext)
	return cc, ok
}
