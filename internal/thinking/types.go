// Package thinking provides the reasoning decision engine.
//
// It resolves, per request, whether extended reasoning is on, at what effort, and
// whether the target prompt is rewritten with the reasoning instruction. It also owns
// the registry of provider formatters that turn a decision into a provider-specific
// thinking marker on the outbound body.
package thinking

import (
	"strings"

	"github.com/router-for-me/reasoning-transformer/internal/registry"
)

// Effort represents a qualitative reasoning intensity.
type Effort string

const (
	// EffortNone means no effort was requested from any source.
	EffortNone Effort = "none"
	// EffortLow requests light reasoning.
	EffortLow Effort = "low"
	// EffortMedium requests moderate reasoning.
	EffortMedium Effort = "medium"
	// EffortHigh requests maximum reasoning.
	EffortHigh Effort = "high"
)

// ParseEffort parses a case-insensitive low/medium/high value.
// Any other value, including "none", reports ok=false.
func ParseEffort(s string) (Effort, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(EffortLow):
		return EffortLow, true
	case string(EffortMedium):
		return EffortMedium, true
	case string(EffortHigh):
		return EffortHigh, true
	default:
		return EffortNone, false
	}
}

// Source identifies the precedence level whose verdict decided the reasoning state.
type Source int

const (
	// SourceForcePermanent is the force-permanent-thinking configuration flag.
	SourceForcePermanent Source = iota
	// SourceUltrathink is the trigger keyword found in the scanned text.
	SourceUltrathink
	// SourceUserTags is an inline <Thinking:On|Off> tag.
	SourceUserTags
	// SourceGlobalOverride is the operator's reasoning override.
	SourceGlobalOverride
	// SourceModelConfig is the model profile combined with the request flag.
	SourceModelConfig
	// SourceNative passes the request's own reasoning flag through.
	SourceNative
)

// String returns the string representation of Source.
func (s Source) String() string {
	switch s {
	case SourceForcePermanent:
		return "force-permanent"
	case SourceUltrathink:
		return "ultrathink"
	case SourceUserTags:
		return "user-tags"
	case SourceGlobalOverride:
		return "global-override"
	case SourceModelConfig:
		return "model-config"
	case SourceNative:
		return "native"
	default:
		return "unknown"
	}
}

// Input carries everything the decision engine needs for one request.
// All fields are read-only.
type Input struct {
	// ForcePermanent is the force-permanent-thinking flag.
	ForcePermanent bool
	// Text is the target message's scannable text with control tags already removed.
	Text string
	// Tags are the control tags found in the target message before stripping.
	Tags Tags
	// TargetIndex is the index of the rewrite target, or -1 when none is eligible.
	TargetIndex int
	// OverrideReasoning is the operator's reasoning override; nil defers.
	OverrideReasoning *bool
	// ProfileReasoning is the model profile's native reasoning flag.
	ProfileReasoning bool
	// KeywordDetection is the effective keyword-detection flag.
	KeywordDetection bool
	// RequestReasoning is reasoning.enabled from the request; nil when absent.
	RequestReasoning *bool
	// RequestEffort is reasoning.effort from the request, unvalidated.
	RequestEffort string
	// Keywords is the keyword set used for prompt enhancement.
	Keywords *KeywordSet
}

// Decision is the per-request reasoning verdict.
type Decision struct {
	// Reasoning is the effective reasoning state.
	Reasoning bool
	// Effort is the effective effort, EffortNone when no source set one.
	Effort Effort
	// Rewrite reports whether the target prompt receives the reasoning instruction.
	Rewrite bool
	// TargetIndex is the message chosen for rewriting, or -1.
	TargetIndex int
	// Source is the level that decided Reasoning.
	Source Source
	// Keyword is the keyword that triggered enhancement, if any.
	Keyword string
	// ApplyFormat reports whether a provider thinking marker should be attached.
	ApplyFormat bool
	// MutationSkipped is set by the assembler when the target content could not be parsed.
	MutationSkipped bool
}

// ThinkingConfig is the resolved reasoning configuration handed to a provider formatter.
type ThinkingConfig struct {
	// Effort is never EffortNone; formatters receive EffortMedium in that case.
	Effort Effort
	// Budget is the token budget derived from Effort.
	Budget int
	// MaxTokens is the effective max_tokens of the outbound request.
	MaxTokens int
}

// ProviderApplier defines the interface for provider-specific thinking markers.
//
// Implementation requirements:
//   - Apply method must be idempotent
//   - Must not modify the input config or model
//   - Returns a modified copy of the request body
//   - Returns a ThinkingError for configurations the provider cannot express
type ProviderApplier interface {
	// Apply attaches the provider's thinking marker to the request body.
	Apply(body []byte, config ThinkingConfig, model registry.EffectiveModelConfig) ([]byte, error)
}
