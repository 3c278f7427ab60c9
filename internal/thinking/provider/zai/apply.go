// Package zai implements the thinking marker for Z.AI (Zhipu) GLM models.
//
// GLM models enable native reasoning with a typed thinking object. The marker
// carries no effort or budget; effort only influences prompt enhancement.
package zai

import (
	"fmt"

	"github.com/router-for-me/reasoning-transformer/internal/registry"
	"github.com/router-for-me/reasoning-transformer/internal/thinking"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Names under which the applier is registered.
var Names = []string{"zai", "z.ai", "zhipu", "bigmodel", "glm"}

// Applier implements thinking.ProviderApplier for Z.AI models.
type Applier struct{}

var _ thinking.ProviderApplier = (*Applier)(nil)

// NewApplier creates a new Z.AI thinking applier.
func NewApplier() *Applier {
	return &Applier{}
}

func init() {
	applier := NewApplier()
	for _, name := range Names {
		thinking.RegisterProvider(name, applier)
	}
}

// Apply applies the thinking marker to a Z.AI request body.
//
// Expected output format:
//
//	{
//	  "thinking": {
//	    "type": "enabled"
//	  }
//	}
func (a *Applier) Apply(body []byte, _ thinking.ThinkingConfig, _ registry.EffectiveModelConfig) ([]byte, error) {
	if len(body) == 0 || !gjson.ValidBytes(body) {
		body = []byte(`{}`)
	}

	// Replace the whole object so stale budget fields from other formats do not leak through.
	result, err := sjson.SetRawBytes(body, "thinking", []byte(`{"type":"enabled"}`))
	if err != nil {
		return body, fmt.Errorf("zai thinking: failed to set thinking: %w", err)
	}
	return result, nil
}
