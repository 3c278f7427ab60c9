// Package iflow implements the thinking marker for iFlow-hosted models.
//
// iFlow models use boolean toggle semantics:
//   - Models using chat_template_kwargs.enable_thinking (boolean toggle)
//   - MiniMax models: reasoning_split (boolean)
//
// The marker is only attached when reasoning is on, so the toggle is always true.
package iflow

import (
	"strings"

	"github.com/router-for-me/reasoning-transformer/internal/registry"
	"github.com/router-for-me/reasoning-transformer/internal/thinking"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Applier implements thinking.ProviderApplier for iFlow models.
//
// iFlow-specific behavior:
//   - GLM models: enable_thinking + clear_thinking=false
//   - MiniMax models: reasoning_split
//   - Other models: enable_thinking
type Applier struct{}

var _ thinking.ProviderApplier = (*Applier)(nil)

// NewApplier creates a new iFlow thinking applier.
func NewApplier() *Applier {
	return &Applier{}
}

func init() {
	thinking.RegisterProvider("iflow", NewApplier())
}

// Apply applies the thinking marker to an iFlow request body.
//
// Expected output format (GLM):
//
//	{
//	  "chat_template_kwargs": {
//	    "enable_thinking": true,
//	    "clear_thinking": false
//	  }
//	}
//
// Expected output format (MiniMax):
//
//	{
//	  "reasoning_split": true
//	}
func (a *Applier) Apply(body []byte, _ thinking.ThinkingConfig, model registry.EffectiveModelConfig) ([]byte, error) {
	if len(body) == 0 || !gjson.ValidBytes(body) {
		body = []byte(`{}`)
	}

	modelID := model.Model
	if id := gjson.GetBytes(body, "model").String(); id != "" {
		modelID = id
	}

	if isMiniMaxModel(modelID) {
		result, _ := sjson.SetBytes(body, "reasoning_split", true)
		return result, nil
	}
	return applyEnableThinking(body, isGLMModel(modelID)), nil
}

// applyEnableThinking sets chat_template_kwargs.enable_thinking.
// clear_thinking is a GLM-only knob and is removed for other models.
func applyEnableThinking(body []byte, setClearThinking bool) []byte {
	result, _ := sjson.SetBytes(body, "chat_template_kwargs.enable_thinking", true)
	result, _ = sjson.DeleteBytes(result, "chat_template_kwargs.clear_thinking")
	if setClearThinking {
		result, _ = sjson.SetBytes(result, "chat_template_kwargs.clear_thinking", false)
	}
	return result
}

// isGLMModel determines if the model is a GLM series model.
func isGLMModel(modelID string) bool {
	return strings.HasPrefix(strings.ToLower(modelID), "glm")
}

// isMiniMaxModel determines if the model is a MiniMax series model.
func isMiniMaxModel(modelID string) bool {
	return strings.HasPrefix(strings.ToLower(modelID), "minimax")
}
