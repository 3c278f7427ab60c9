package thinking

import (
	"strings"
)

// TriggerKeyword unconditionally forces high-effort reasoning when found in the scanned text.
const TriggerKeyword = "ultrathink"

// ReasoningInstruction is prepended to the target prompt when a rewrite is decided.
const ReasoningInstruction = "Think through this problem deeply and carefully before answering. " +
	"Break it into steps, verify each intermediate result, and check your final answer against the original question.\n\n"

// defaultKeywords are the built-in enhancement triggers. Entries are lower-case.
var defaultKeywords = []string{
	"how many",
	"how much",
	"count",
	"letters",
	"calculate",
	"compute",
	"analyze",
	"analyse",
	"explain",
	"reason",
	"think",
	"step by step",
	"solve",
	"prove",
	"compare",
	"evaluate",
	"debug",
	"why",
}

// DefaultKeywords returns a copy of the built-in keyword list.
func DefaultKeywords() []string {
	out := make([]string, len(defaultKeywords))
	copy(out, defaultKeywords)
	return out
}

// KeywordSet is an ordered, de-duplicated, lower-cased list of trigger phrases.
// It is immutable after construction.
type KeywordSet struct {
	keywords []string
}

// NewKeywordSet builds the keyword set. When override is true, custom replaces the
// built-in list; otherwise custom extends it.
func NewKeywordSet(custom []string, override bool) *KeywordSet {
	var src []string
	if !override {
		src = append(src, defaultKeywords...)
	}
	src = append(src, custom...)

	seen := make(map[string]struct{}, len(src))
	out := make([]string, 0, len(src))
	for _, kw := range src {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		if _, ok := seen[kw]; ok {
			continue
		}
		seen[kw] = struct{}{}
		out = append(out, kw)
	}
	return &KeywordSet{keywords: out}
}

// Match returns the first keyword contained in text. Matching is a lower-cased
// substring search without word boundaries.
func (k *KeywordSet) Match(text string) (string, bool) {
	if k == nil || text == "" {
		return "", false
	}
	lower := strings.ToLower(text)
	for _, kw := range k.keywords {
		if strings.Contains(lower, kw) {
			return kw, true
		}
	}
	return "", false
}

// Keywords returns a copy of the set's entries in order.
func (k *KeywordSet) Keywords() []string {
	if k == nil {
		return nil
	}
	out := make([]string, len(k.keywords))
	copy(out, k.keywords)
	return out
}

// Len reports the number of keywords.
func (k *KeywordSet) Len() int {
	if k == nil {
		return 0
	}
	return len(k.keywords)
}

// ContainsTrigger reports whether text contains TriggerKeyword, case-insensitively.
func ContainsTrigger(text string) bool {
	return strings.Contains(strings.ToLower(text), TriggerKeyword)
}
