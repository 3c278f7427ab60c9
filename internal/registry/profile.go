package registry

import (
	"strings"

	"github.com/router-for-me/reasoning-transformer/internal/config"
)

// UnknownModel is the sentinel name used when a request carries no model.
const UnknownModel = "unknown"

// Fallback profile values applied to models missing from the table.
const (
	FallbackMaxTokens     = 131072
	FallbackContextWindow = 131072
)

// ModelProfile holds the static facts about one model.
type ModelProfile struct {
	// Name is the exact model identifier used for lookup.
	Name string
	// MaxTokens is the output-token budget sent upstream.
	MaxTokens int
	// ContextWindow is informational; it is only used for diagnostics.
	ContextWindow int
	// Temperature is the default sampling temperature; nil leaves it unset.
	Temperature *float64
	// TopP is the default nucleus-sampling value; nil leaves it unset.
	TopP *float64
	// Reasoning reports native reasoning support.
	Reasoning bool
	// KeywordDetection enables keyword-triggered prompt enhancement by default.
	KeywordDetection bool
	// Provider identifies the upstream provider, e.g. "Z.AI".
	Provider string
}

// FallbackProfile returns the conservative profile used for unknown models.
func FallbackProfile(name string) ModelProfile {
	return ModelProfile{
		Name:          name,
		MaxTokens:     FallbackMaxTokens,
		ContextWindow: FallbackContextWindow,
	}
}

// EffectiveModelConfig is a profile merged with the global overrides.
type EffectiveModelConfig struct {
	Model            string
	MaxTokens        int
	ContextWindow    int
	Temperature      *float64
	TopP             *float64
	Reasoning        bool
	KeywordDetection bool
	Provider         string
	// Known is false when the fallback profile was used.
	Known bool
}

// Table is an immutable name-keyed set of model profiles.
type Table struct {
	profiles map[string]ModelProfile
}

// NewTable builds a table from the built-in profiles, then applies operator-declared
// entries which add new models or replace built-in ones with the same name.
func NewTable(entries []config.ModelEntry) *Table {
	builtin := GetGLMModels()
	t := &Table{profiles: make(map[string]ModelProfile, len(builtin)+len(entries))}
	for _, p := range builtin {
		t.profiles[p.Name] = p
	}
	for _, e := range entries {
		name := strings.TrimSpace(e.Name)
		if name == "" {
			continue
		}
		t.profiles[name] = ModelProfile{
			Name:             name,
			MaxTokens:        e.MaxTokens,
			ContextWindow:    e.ContextWindow,
			Temperature:      copyFloat(e.Temperature),
			TopP:             copyFloat(e.TopP),
			Reasoning:        e.Reasoning,
			KeywordDetection: e.KeywordDetection,
			Provider:         e.Provider,
		}
	}
	return t
}

// Lookup returns the profile for name by exact, case-sensitive match. Surrounding
// whitespace is significant. Empty names are normalized to UnknownModel. A miss returns
// the fallback profile and ok=false; it is never an error.
func (t *Table) Lookup(name string) (ModelProfile, bool) {
	if name == "" {
		name = UnknownModel
	}
	if t != nil {
		if p, ok := t.profiles[name]; ok {
			return p, true
		}
	}
	return FallbackProfile(name), false
}

// Len reports the number of profiles in the table.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.profiles)
}

// Resolve merges a profile with the global overrides. For every field a non-nil override
// wins, otherwise the profile value is used. Fields are resolved independently.
func Resolve(profile ModelProfile, overrides config.Overrides) EffectiveModelConfig {
	eff := EffectiveModelConfig{
		Model:            profile.Name,
		MaxTokens:        profile.MaxTokens,
		ContextWindow:    profile.ContextWindow,
		Temperature:      copyFloat(profile.Temperature),
		TopP:             copyFloat(profile.TopP),
		Reasoning:        profile.Reasoning,
		KeywordDetection: profile.KeywordDetection,
		Provider:         profile.Provider,
	}
	if overrides.MaxTokens != nil {
		eff.MaxTokens = *overrides.MaxTokens
	}
	if overrides.Temperature != nil {
		eff.Temperature = copyFloat(overrides.Temperature)
	}
	if overrides.TopP != nil {
		eff.TopP = copyFloat(overrides.TopP)
	}
	if overrides.Reasoning != nil {
		eff.Reasoning = *overrides.Reasoning
	}
	if overrides.KeywordDetection != nil {
		eff.KeywordDetection = *overrides.KeywordDetection
	}
	return eff
}

// ResolveModel looks up name in the table and merges it with overrides.
func (t *Table) ResolveModel(name string, overrides config.Overrides) EffectiveModelConfig {
	profile, ok := t.Lookup(name)
	eff := Resolve(profile, overrides)
	eff.Known = ok
	return eff
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
