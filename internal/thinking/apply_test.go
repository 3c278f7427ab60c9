package thinking_test

import (
	"errors"
	"testing"

	"github.com/router-for-me/reasoning-transformer/internal/registry"
	"github.com/router-for-me/reasoning-transformer/internal/thinking"
	_ "github.com/router-for-me/reasoning-transformer/internal/thinking/provider/claude"
	_ "github.com/router-for-me/reasoning-transformer/internal/thinking/provider/iflow"
	_ "github.com/router-for-me/reasoning-transformer/internal/thinking/provider/kimi"
	_ "github.com/router-for-me/reasoning-transformer/internal/thinking/provider/openai"
	_ "github.com/router-for-me/reasoning-transformer/internal/thinking/provider/zai"
	"github.com/tidwall/gjson"
)

func TestApplyThinking_ProviderMarkers(t *testing.T) {
	body := []byte(`{"model":"glm-4.6","max_tokens":131072,"messages":[]}`)
	model := registry.EffectiveModelConfig{Model: "glm-4.6", MaxTokens: 131072}

	cases := []struct {
		name     string
		provider string
		effort   thinking.Effort
		check    func(t *testing.T, out []byte)
	}{
		{
			name:     "zai",
			provider: "z.ai",
			effort:   thinking.EffortHigh,
			check: func(t *testing.T, out []byte) {
				if got := gjson.GetBytes(out, "thinking.type").String(); got != "enabled" {
					t.Fatalf("thinking.type = %q, want enabled", got)
				}
				if gjson.GetBytes(out, "thinking.budget_tokens").Exists() {
					t.Fatal("zai marker must not carry a budget")
				}
			},
		},
		{
			name:     "openai defaults none to medium",
			provider: "openai",
			effort:   thinking.EffortNone,
			check: func(t *testing.T, out []byte) {
				if got := gjson.GetBytes(out, "reasoning_effort").String(); got != "medium" {
					t.Fatalf("reasoning_effort = %q, want medium", got)
				}
			},
		},
		{
			name:     "kimi",
			provider: "Kimi",
			effort:   thinking.EffortLow,
			check: func(t *testing.T, out []byte) {
				if got := gjson.GetBytes(out, "reasoning_effort").String(); got != "low" {
					t.Fatalf("reasoning_effort = %q, want low", got)
				}
			},
		},
		{
			name:     "claude budget from effort",
			provider: "claude",
			effort:   thinking.EffortHigh,
			check: func(t *testing.T, out []byte) {
				if got := gjson.GetBytes(out, "thinking.budget_tokens").Int(); got != 24576 {
					t.Fatalf("budget_tokens = %d, want 24576", got)
				}
			},
		},
		{
			name:     "iflow glm",
			provider: "iflow",
			effort:   thinking.EffortMedium,
			check: func(t *testing.T, out []byte) {
				if !gjson.GetBytes(out, "chat_template_kwargs.enable_thinking").Bool() {
					t.Fatal("expected enable_thinking=true")
				}
				clearThinking := gjson.GetBytes(out, "chat_template_kwargs.clear_thinking")
				if !clearThinking.Exists() || clearThinking.Bool() {
					t.Fatalf("expected clear_thinking=false for GLM, got %s", clearThinking.Raw)
				}
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := thinking.ApplyThinking(body, tc.provider, tc.effort, model)
			if err != nil {
				t.Fatalf("ApplyThinking: %v", err)
			}
			if gjson.GetBytes(out, "max_tokens").Int() != 131072 {
				t.Fatalf("expected other fields untouched, got %s", out)
			}
			tc.check(t, out)
		})
	}
}

func TestApplyThinking_UnknownProviderPassthrough(t *testing.T) {
	body := []byte(`{"model":"x"}`)
	out, err := thinking.ApplyThinking(body, "nobody", thinking.EffortHigh, registry.EffectiveModelConfig{Model: "x"})
	var terr *thinking.ThinkingError
	if !errors.As(err, &terr) || terr.Code != thinking.ErrProviderNotRegistered || terr.Model != "x" {
		t.Fatalf("expected ErrProviderNotRegistered, got %v", err)
	}
	if !thinking.IsProviderNotRegistered(err) {
		t.Fatal("expected IsProviderNotRegistered to report the soft error")
	}
	if string(out) != string(body) {
		t.Fatalf("expected body unchanged, got %s", out)
	}
}

func TestApplyThinking_InvalidBody(t *testing.T) {
	body := []byte(`{not json`)
	out, err := thinking.ApplyThinking(body, "zai", thinking.EffortHigh, registry.EffectiveModelConfig{})
	var terr *thinking.ThinkingError
	if !errors.As(err, &terr) || terr.Code != thinking.ErrInvalidBody {
		t.Fatalf("expected ErrInvalidBody, got %v", err)
	}
	if terr.StatusCode() != 400 {
		t.Fatalf("expected status 400, got %d", terr.StatusCode())
	}
	if string(out) != string(body) {
		t.Fatal("expected original body returned on error")
	}
}

func TestApplyThinking_ClaudeBudgetOutOfRange(t *testing.T) {
	body := []byte(`{"max_tokens":512}`)
	out, err := thinking.ApplyThinking(body, "anthropic", thinking.EffortHigh, registry.EffectiveModelConfig{Model: "claude", MaxTokens: 512})
	var terr *thinking.ThinkingError
	if !errors.As(err, &terr) || terr.Code != thinking.ErrBudgetOutOfRange {
		t.Fatalf("expected ErrBudgetOutOfRange, got %v", err)
	}
	if gjson.GetBytes(out, "thinking").Exists() {
		t.Fatal("expected no marker when the budget cannot fit")
	}
}

func TestApplyThinking_ClaudeBudgetClampedBelowMaxTokens(t *testing.T) {
	body := []byte(`{"max_tokens":4096}`)
	out, err := thinking.ApplyThinking(body, "claude", thinking.EffortHigh, registry.EffectiveModelConfig{MaxTokens: 4096})
	if err != nil {
		t.Fatalf("ApplyThinking: %v", err)
	}
	if got := gjson.GetBytes(out, "thinking.budget_tokens").Int(); got != 4095 {
		t.Fatalf("budget_tokens = %d, want 4095", got)
	}
}

func TestResolveProviderKey(t *testing.T) {
	cases := []struct {
		host, profile, want string
	}{
		{"openai", "Z.AI", "openai"},
		{"openrouter", "Z.AI", "z.ai"},
		{"", " Zhipu ", "zhipu"},
		{"", "", ""},
		{"unknown", "also-unknown", ""},
	}
	for _, tc := range cases {
		got, err := thinking.ResolveProviderKey(tc.host, tc.profile)
		if got != tc.want {
			t.Fatalf("ResolveProviderKey(%q, %q) = %q, want %q", tc.host, tc.profile, got, tc.want)
		}
		if (tc.want == "") != thinking.IsProviderNotRegistered(err) {
			t.Fatalf("ResolveProviderKey(%q, %q) error = %v", tc.host, tc.profile, err)
		}
	}
	if thinking.IsProviderNotRegistered(errors.New("other")) || thinking.IsProviderNotRegistered(nil) {
		t.Fatal("expected unrelated errors not to match")
	}
}

func TestRegisteredProviders(t *testing.T) {
	names := thinking.RegisteredProviders()
	want := map[string]bool{"zai": false, "glm": false, "openai": false, "claude": false, "iflow": false, "kimi": false}
	for _, n := range names {
		if _, ok := want[n]; ok {
			want[n] = true
		}
	}
	for n, seen := range want {
		if !seen {
			t.Fatalf("expected provider %q to be registered, got %v", n, names)
		}
	}
}
