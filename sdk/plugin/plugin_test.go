package plugin

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/router-for-me/reasoning-transformer/internal/logging"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

type stubTransformer struct {
	name string
	key  string
	err  error
}

func (s *stubTransformer) Name() string { return s.name }

func (s *stubTransformer) TransformRequestIn(ctx context.Context, body []byte, provider Provider) ([]byte, error) {
	if s.err != nil {
		return body, s.err
	}
	trail := gjson.GetBytes(body, "trail").String()
	return sjson.SetBytes(body, "trail", trail+s.key)
}

func (s *stubTransformer) TransformResponseOut(ctx context.Context, resp ResponseEnvelope) (ResponseEnvelope, error) {
	resp.Body = append(resp.Body, s.key...)
	return resp, nil
}

func TestRegistry_RegisterAndResolve(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register(&stubTransformer{name: "Alpha", key: "a"}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := reg.Register(&stubTransformer{name: " alpha ", key: "x"}); !errors.Is(err, ErrDuplicateTransformer) {
		t.Fatalf("expected duplicate error, got %v", err)
	}
	if err := reg.Register(&stubTransformer{name: "  "}); !errors.Is(err, ErrInvalidTransformer) {
		t.Fatalf("expected invalid error for empty name, got %v", err)
	}
	if err := reg.Register(nil); !errors.Is(err, ErrInvalidTransformer) {
		t.Fatalf("expected invalid error for nil, got %v", err)
	}
	if err := reg.Replace(&stubTransformer{name: "alpha", key: "b"}); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	got, ok := reg.Get("ALPHA")
	if !ok || got.(*stubTransformer).key != "b" {
		t.Fatalf("expected replaced transformer, got %+v", got)
	}
	if _, err := reg.Resolve("alpha", "missing"); !errors.Is(err, ErrUnknownTransformer) {
		t.Fatalf("expected unknown transformer error, got %v", err)
	}
	if names := reg.Names(); len(names) != 1 || names[0] != "alpha" {
		t.Fatalf("Names() = %v", names)
	}
}

func TestPipeline_OrderAndMiddleware(t *testing.T) {
	reg := NewRegistry()
	_ = reg.Register(&stubTransformer{name: "first", key: "1"})
	_ = reg.Register(&stubTransformer{name: "second", key: "2"})
	p, err := NewPipelineFromRegistry(reg, "first", "second")
	if err != nil {
		t.Fatalf("NewPipelineFromRegistry: %v", err)
	}

	var calls []string
	p.UseRequest(func(ctx context.Context, req RequestEnvelope, next RequestHandler) (RequestEnvelope, error) {
		calls = append(calls, "outer")
		return next(ctx, req)
	})
	p.UseRequest(func(ctx context.Context, req RequestEnvelope, next RequestHandler) (RequestEnvelope, error) {
		calls = append(calls, "inner")
		if _, ok := CallContextFrom(ctx); !ok {
			t.Fatal("expected call context to be attached")
		}
		return next(ctx, req)
	})

	out, err := p.TransformRequest(context.Background(), RequestEnvelope{Provider: Provider{Name: "zai"}, Body: []byte(`{"trail":""}`)})
	if err != nil {
		t.Fatalf("TransformRequest: %v", err)
	}
	if got := gjson.GetBytes(out.Body, "trail").String(); got != "12" {
		t.Fatalf("expected transformers in order, got trail %q", got)
	}
	if strings.Join(calls, ",") != "outer,inner" {
		t.Fatalf("expected middleware in registration order, got %v", calls)
	}

	resp, err := p.TransformResponse(context.Background(), ResponseEnvelope{StatusCode: 200, Body: []byte("r")})
	if err != nil {
		t.Fatalf("TransformResponse: %v", err)
	}
	if string(resp.Body) != "r21" {
		t.Fatalf("expected responses in reverse order, got %q", resp.Body)
	}
}

func TestPipeline_ErrorKeepsPriorBody(t *testing.T) {
	boom := errors.New("boom")
	p := NewPipeline(&stubTransformer{name: "ok", key: "1"}, nil, &stubTransformer{name: "bad", err: boom})
	out, err := p.TransformRequest(context.Background(), RequestEnvelope{Body: []byte(`{"trail":""}`)})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
	if gjson.GetBytes(out.Body, "trail").String() != "1" {
		t.Fatalf("expected body from the last successful transformer, got %s", out.Body)
	}
}

func TestWithCallContext_RequestID(t *testing.T) {
	ctx := WithCallContext(context.Background(), CallContext{RequestID: "abcd1234"})
	cc, ok := CallContextFrom(ctx)
	if !ok || cc.RequestID != "abcd1234" {
		t.Fatalf("CallContextFrom() = %+v, %v", cc, ok)
	}
	if logging.GetRequestID(ctx) != "abcd1234" {
		t.Fatal("expected request id registered for logging")
	}

	generated := WithCallContext(context.Background(), CallContext{})
	if cc, _ := CallContextFrom(generated); len(cc.RequestID) != 8 {
		t.Fatalf("expected generated request id, got %q", cc.RequestID)
	}

	var nilCtx context.Context
	if _, ok := CallContextFrom(nilCtx); ok {
		t.Fatal("expected no call context for nil context")
	}
}
