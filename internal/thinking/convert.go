package thinking

import (
	"strings"
)

// effortToBudgetMap defines the standard Effort → Budget mapping.
// All keys are lowercase; lookups should use strings.ToLower.
var effortToBudgetMap = map[string]int{
	"none":   0,
	"low":    1024,
	"medium": 8192,
	"high":   24576,
}

// ConvertEffortToBudget converts an effort to a token budget.
// Matching is case-insensitive.
//
// Effort → Budget mapping:
//   - none   → 0
//   - low    → 1024
//   - medium → 8192
//   - high   → 24576
func ConvertEffortToBudget(effort string) (int, bool) {
	budget, ok := effortToBudgetMap[strings.ToLower(strings.TrimSpace(effort))]
	return budget, ok
}

// NewThinkingConfig builds the formatter configuration for an effort.
// EffortNone and unknown values fall back to EffortMedium.
func NewThinkingConfig(effort Effort, maxTokens int) ThinkingConfig {
	if _, ok := ParseEffort(string(effort)); !ok {
		effort = EffortMedium
	}
	budget, _ := ConvertEffortToBudget(string(effort))
	return ThinkingConfig{
		Effort:    effort,
		Budget:    budget,
		MaxTokens: maxTokens,
	}
}
