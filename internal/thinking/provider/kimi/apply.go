// Package kimi implements the thinking marker for Kimi (Moonshot AI) models.
//
// Kimi models use the OpenAI-compatible reasoning_effort format with discrete levels
// (low/medium/high).
package kimi

import (
	"fmt"

	"github.com/router-for-me/reasoning-transformer/internal/registry"
	"github.com/router-for-me/reasoning-transformer/internal/thinking"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Applier implements thinking.ProviderApplier for Kimi models.
//
// Kimi-specific behavior:
//   - Output format: reasoning_effort (string: low/medium/high)
//   - Uses OpenAI-compatible format
//   - Rejects efforts outside low/medium/high
type Applier struct{}

var _ thinking.ProviderApplier = (*Applier)(nil)

// NewApplier creates a new Kimi thinking applier.
func NewApplier() *Applier {
	return &Applier{}
}

func init() {
	thinking.RegisterProvider("kimi", NewApplier())
	thinking.RegisterProvider("moonshot", NewApplier())
}

// Apply applies thinking configuration to a Kimi request body.
//
// Expected output format:
//
//	{
//	  "reasoning_effort": "high"
//	}
func (a *Applier) Apply(body []byte, config thinking.ThinkingConfig, model registry.EffectiveModelConfig) ([]byte, error) {
	if len(body) == 0 || !gjson.ValidBytes(body) {
		body = []byte(`{}`)
	}

	effort, ok := thinking.ParseEffort(string(config.Effort))
	if !ok {
		return body, thinking.NewThinkingErrorWithModel(thinking.ErrUnknownEffort,
			fmt.Sprintf("kimi thinking: cannot map effort %q", config.Effort), model.Model)
	}

	result, err := sjson.SetBytes(body, "reasoning_effort", string(effort))
	if err != nil {
		return body, fmt.Errorf("kimi thinking: failed to set reasoning_effort: %w", err)
	}
	return result, nil
}
