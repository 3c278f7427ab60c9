package thinking

import (
	"regexp"
	"strings"
)

// controlTagPattern matches <Thinking:On|Off> and <Effort:Low|Medium|High>, case-insensitively.
// Unterminated or unknown variants do not match and stay in the text.
var controlTagPattern = regexp.MustCompile(`(?i)<(?:thinking:(on|off)|effort:(low|medium|high))>`)

// Tags holds the control tags found in a message.
type Tags struct {
	// Thinking is the value of the last <Thinking:…> tag, nil when absent.
	Thinking *bool
	// Effort is the value of the last <Effort:…> tag, EffortNone when absent.
	Effort Effort
	// Found reports whether any control tag matched.
	Found bool
}

// ParseTags scans text for control tags. When a kind repeats, the last one wins.
func ParseTags(text string) Tags {
	tags := Tags{Effort: EffortNone}
	for _, m := range controlTagPattern.FindAllStringSubmatch(text, -1) {
		tags.Found = true
		if m[1] != "" {
			on := strings.EqualFold(m[1], "on")
			tags.Thinking = &on
			continue
		}
		if effort, ok := ParseEffort(m[2]); ok {
			tags.Effort = effort
		}
	}
	return tags
}

// HasControlTags reports whether text contains at least one control tag.
func HasControlTags(text string) bool {
	return controlTagPattern.MatchString(text)
}

// StripControlTags removes every control tag from text.
// The boolean reports whether anything was removed.
func StripControlTags(text string) (string, bool) {
	if !controlTagPattern.MatchString(text) {
		return text, false
	}
	return controlTagPattern.ReplaceAllString(text, ""), true
}
