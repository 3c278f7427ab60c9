// Package registry provides model profiles and lookup helpers for the reasoning transformer.
// Built-in profiles describe the GLM family served by Z.AI; operators may add or replace
// profiles through the configuration file.
package registry

// ProviderZAI is the provider identifier of the built-in GLM profiles.
const ProviderZAI = "Z.AI"

func floatPtr(v float64) *float64 { return &v }

// GetGLMModels returns the built-in GLM model profiles.
// A fresh slice is returned on every call so callers may modify it freely.
func GetGLMModels() []ModelProfile {
	return []ModelProfile{
		{
			Name:             "glm-4.6",
			MaxTokens:        131072,
			ContextWindow:    204800,
			Temperature:      floatPtr(1.0),
			TopP:             floatPtr(0.95),
			Reasoning:        true,
			KeywordDetection: true,
			Provider:         ProviderZAI,
		},
		{
			Name:             "glm-4.5",
			MaxTokens:        98304,
			ContextWindow:    131072,
			Temperature:      floatPtr(0.6),
			TopP:             floatPtr(0.95),
			Reasoning:        true,
			KeywordDetection: true,
			Provider:         ProviderZAI,
		},
		{
			Name:             "glm-4.5-air",
			MaxTokens:        98304,
			ContextWindow:    131072,
			Temperature:      floatPtr(0.6),
			TopP:             floatPtr(0.95),
			Reasoning:        true,
			KeywordDetection: true,
			Provider:         ProviderZAI,
		},
		{
			Name:             "glm-4.5v",
			MaxTokens:        16384,
			ContextWindow:    65536,
			Temperature:      floatPtr(0.6),
			TopP:             floatPtr(0.95),
			Reasoning:        true,
			KeywordDetection: true,
			Provider:         ProviderZAI,
		},
	}
}
