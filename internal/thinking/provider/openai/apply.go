// Package openai implements the thinking marker for OpenAI-compatible models.
//
// OpenAI models use the reasoning_effort format with discrete levels
// (low/medium/high).
package openai

import (
	"github.com/router-for-me/reasoning-transformer/internal/registry"
	"github.com/router-for-me/reasoning-transformer/internal/thinking"
	log "github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// clampReasoningEffort maps an effort to a value that is safe to send as
// OpenAI reasoning_effort.
//
// Mapping rules:
//   - low / medium / high → returned as-is
//   - anything else       → "medium"
func clampReasoningEffort(effort thinking.Effort) string {
	if parsed, ok := thinking.ParseEffort(string(effort)); ok {
		return string(parsed)
	}
	log.WithFields(log.Fields{
		"original": effort,
		"clamped":  thinking.EffortMedium,
	}).Debug("openai: reasoning_effort clamped to nearest valid standard value")
	return string(thinking.EffortMedium)
}

// Applier implements thinking.ProviderApplier for OpenAI models.
type Applier struct{}

var _ thinking.ProviderApplier = (*Applier)(nil)

// NewApplier creates a new OpenAI thinking applier.
func NewApplier() *Applier {
	return &Applier{}
}

func init() {
	thinking.RegisterProvider("openai", NewApplier())
}

// Apply applies thinking configuration to an OpenAI request body.
//
// Expected output format:
//
//	{
//	  "reasoning_effort": "high"
//	}
func (a *Applier) Apply(body []byte, config thinking.ThinkingConfig, _ registry.EffectiveModelConfig) ([]byte, error) {
	if len(body) == 0 || !gjson.ValidBytes(body) {
		body = []byte(`{}`)
	}

	result, _ := sjson.SetBytes(body, "reasoning_effort", clampReasoningEffort(config.Effort))
	return result, nil
}
