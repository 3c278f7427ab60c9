package builtin

import (
	"context"
	"errors"
	"testing"

	"github.com/router-for-me/reasoning-transformer/internal/config"
	"github.com/router-for-me/reasoning-transformer/sdk/plugin"
	"github.com/tidwall/gjson"
)

func TestRegister(t *testing.T) {
	reg := plugin.NewRegistry()
	rt, err := Register(reg, &config.Config{})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	got, ok := reg.Get(Name)
	if !ok || got != plugin.Transformer(rt) {
		t.Fatal("expected reasoning transformer registered under its name")
	}
	if _, err := Register(reg, nil); !errors.Is(err, plugin.ErrDuplicateTransformer) {
		t.Fatalf("expected duplicate registration error, got %v", err)
	}
}

func TestPipeline_StrawberryScenario(t *testing.T) {
	p, rt := Pipeline(&config.Config{})
	body := []byte(`{"model":"glm-4.6","messages":[{"role":"user","content":"How many r's are in strawberry?"}]}`)

	out, err := p.TransformRequest(context.Background(), plugin.RequestEnvelope{Provider: plugin.Provider{Name: "z.ai"}, Body: body})
	if err != nil {
		t.Fatalf("TransformRequest: %v", err)
	}
	if gjson.GetBytes(out.Body, "max_tokens").Int() != 131072 {
		t.Fatalf("expected glm-4.6 max_tokens, got %s", out.Body)
	}
	if gjson.GetBytes(out.Body, "thinking.type").String() != "enabled" {
		t.Fatalf("expected thinking marker, got %s", out.Body)
	}

	rt.Reload(&config.Config{Reasoning: config.ReasoningConfig{Overrides: config.Overrides{Reasoning: boolPtr(false)}}})
	out, err = p.TransformRequest(context.Background(), plugin.RequestEnvelope{Provider: plugin.Provider{Name: "z.ai"}, Body: body})
	if err != nil {
		t.Fatalf("TransformRequest after reload: %v", err)
	}
	if gjson.GetBytes(out.Body, "thinking").Exists() {
		t.Fatalf("expected reload to disable reasoning, got %s", out.Body)
	}
}

func TestPipeline_ResponsePassthrough(t *testing.T) {
	p, _ := Pipeline(nil)
	in := plugin.ResponseEnvelope{StatusCode: 200, Body: []byte(`{"choices":[]}`)}
	out, err := p.TransformResponse(context.Background(), in)
	if err != nil || string(out.Body) != string(in.Body) || out.StatusCode != 200 {
		t.Fatalf("expected unchanged response, got %+v err=%v", out, err)
	}
}

func boolPtr(v bool) *bool { return &v }
