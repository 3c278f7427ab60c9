// Package claude implements the thinking marker for Claude models.
//
// Claude models use the thinking.budget_tokens format. The budget is derived from
// the effort and must stay below max_tokens with a floor of MinBudget.
package claude

import (
	"fmt"

	"github.com/router-for-me/reasoning-transformer/internal/registry"
	"github.com/router-for-me/reasoning-transformer/internal/thinking"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// MinBudget is the smallest budget_tokens value Claude accepts.
const MinBudget = 1024

// Applier implements thinking.ProviderApplier for Claude models.
// This applier is stateless and holds no configuration.
type Applier struct{}

var _ thinking.ProviderApplier = (*Applier)(nil)

// NewApplier creates a new Claude thinking applier.
func NewApplier() *Applier {
	return &Applier{}
}

func init() {
	thinking.RegisterProvider("claude", NewApplier())
	thinking.RegisterProvider("anthropic", NewApplier())
}

// Apply applies thinking configuration to a Claude request body.
//
// Expected output format:
//
//	{
//	  "thinking": {
//	    "type": "enabled",
//	    "budget_tokens": 16384
//	  }
//	}
func (a *Applier) Apply(body []byte, config thinking.ThinkingConfig, model registry.EffectiveModelConfig) ([]byte, error) {
	if len(body) == 0 || !gjson.ValidBytes(body) {
		body = []byte(`{}`)
	}

	budget := config.Budget
	if budget <= 0 {
		budget, _ = thinking.ConvertEffortToBudget(string(thinking.EffortMedium))
	}

	// Anthropic rejects budget_tokens >= max_tokens.
	maxTokens := effectiveMaxTokens(body, config)
	if maxTokens > 0 && budget >= maxTokens {
		budget = maxTokens - 1
	}
	if budget < MinBudget {
		return body, thinking.NewThinkingErrorWithModel(thinking.ErrBudgetOutOfRange,
			fmt.Sprintf("claude thinking: max_tokens %d leaves no room for the minimum budget %d", maxTokens, MinBudget), model.Model)
	}

	result, _ := sjson.SetBytes(body, "thinking.type", "enabled")
	result, _ = sjson.SetBytes(result, "thinking.budget_tokens", budget)
	return result, nil
}

// effectiveMaxTokens prefers the request's max_tokens, then the configured value.
func effectiveMaxTokens(body []byte, config thinking.ThinkingConfig) int {
	if maxTok := gjson.GetBytes(body, "max_tokens"); maxTok.Exists() && maxTok.Int() > 0 {
		return int(maxTok.Int())
	}
	return config.MaxTokens
}
