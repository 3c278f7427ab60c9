package plugin

import (
	"context"
	"fmt"

	"github.com/router-for-me/reasoning-transformer/internal/logging"
	log "github.com/sirupsen/logrus"
)

// RequestEnvelope represents a request in the transformation pipeline.
type RequestEnvelope struct {
	Provider Provider
	Body     []byte
}

// RequestMiddleware decorates request transformation.
type RequestMiddleware func(ctx context.Context, req RequestEnvelope, next RequestHandler) (RequestEnvelope, error)

// ResponseMiddleware decorates response transformation.
type ResponseMiddleware func(ctx context.Context, resp ResponseEnvelope, next ResponseHandler) (ResponseEnvelope, error)

// RequestHandler performs request transformation.
type RequestHandler func(ctx context.Context, req RequestEnvelope) (RequestEnvelope, error)

// ResponseHandler performs response transformation.
type ResponseHandler func(ctx context.Context, resp ResponseEnvelope) (ResponseEnvelope, error)

// Pipeline runs an ordered list of transformers with middleware support.
// Requests pass through the transformers in order, responses in reverse order.
type Pipeline struct {
	transformers       []Transformer
	requestMiddleware  []RequestMiddleware
	responseMiddleware []ResponseMiddleware
}

// NewPipeline constructs a pipeline over the given transformers. Nil entries are skipped.
func NewPipeline(transformers ...Transformer) *Pipeline {
	p := &Pipeline{}
	for _, t := range transformers {
		if t != nil {
			p.transformers = append(p.transformers, t)
		}
	}
	return p
}

// NewPipelineFromRegistry constructs a pipeline from named registrations.
// A nil registry uses the default one.
func NewPipelineFromRegistry(registry *Registry, names ...string) (*Pipeline, error) {
	if registry == nil {
		registry = Default()
	}
	transformers, err := registry.Resolve(names...)
	if err != nil {
		return nil, err
	}
	return NewPipeline(transformers...), nil
}

// UseRequest adds request middleware executed in registration order.
func (p *Pipeline) UseRequest(mw RequestMiddleware) {
	if mw != nil {
		p.requestMiddleware = append(p.requestMiddleware, mw)
	}
}

// UseResponse adds response middleware executed in registration order.
func (p *Pipeline) UseResponse(mw ResponseMiddleware) {
	if mw != nil {
		p.responseMiddleware = append(p.responseMiddleware, mw)
	}
}

// TransformRequest applies middleware and every transformer's TransformRequestIn.
// On a transformer error the body produced so far is returned with the error.
func (p *Pipeline) TransformRequest(ctx context.Context, req RequestEnvelope) (RequestEnvelope, error) {
	ctx = ensureCallContext(ctx, req.Provider)

	terminal := func(ctx context.Context, input RequestEnvelope) (RequestEnvelope, error) {
		for _, t := range p.transformers {
			body, err := t.TransformRequestIn(ctx, input.Body, input.Provider)
			if err != nil {
				logging.EntryFromContext(ctx).WithFields(log.Fields{
					"provider": input.Provider.Name,
					"error":    err.Error(),
				}).Warnf("plugin: transformer %s failed |", t.Name())
				return input, fmt.Errorf("plugin: %s: %w", t.Name(), err)
			}
			input.Body = body
		}
		return input, nil
	}

	handler := terminal
	for i := len(p.requestMiddleware) - 1; i >= 0; i-- {
		mw := p.requestMiddleware[i]
		next := handler
		handler = func(ctx context.Context, r RequestEnvelope) (RequestEnvelope, error) {
			return mw(ctx, r, next)
		}
	}

	return handler(ctx, req)
}

// TransformResponse applies middleware and every transformer's TransformResponseOut.
func (p *Pipeline) TransformResponse(ctx context.Context, resp ResponseEnvelope) (ResponseEnvelope, error) {
	terminal := func(ctx context.Context, input ResponseEnvelope) (ResponseEnvelope, error) {
		for i := len(p.transformers) - 1; i >= 0; i-- {
			t := p.transformers[i]
			out, err := t.TransformResponseOut(ctx, input)
			if err != nil {
				return input, fmt.Errorf("plugin: %s: %w", t.Name(), err)
			}
			input = out
		}
		return input, nil
	}

	handler := terminal
	for i := len(p.responseMiddleware) - 1; i >= 0; i-- {
		mw := p.responseMiddleware[i]
		next := handler
		handler = func(ctx context.Context, r ResponseEnvelope) (ResponseEnvelope, error) {
			return mw(ctx, r, next)
		}
	}

	return handler(ctx, resp)
}

func ensureCallContext(ctx context.Context, provider Provider) context.Context {
	if _, ok := CallContextFrom(ctx); ok {
		return ctx
	}
	return WithCallContext(ctx, CallContext{Provider: provider})
}
