package thinking

import (
	"testing"

	"github.com/tidwall/gjson"
)

func TestConvertEffortToBudget(t *testing.T) {
	cases := map[string]int{"none": 0, "LOW": 1024, "medium": 8192, " high ": 24576}
	for effort, want := range cases {
		got, ok := ConvertEffortToBudget(effort)
		if !ok || got != want {
			t.Fatalf("ConvertEffortToBudget(%q) = (%d, %v), want %d", effort, got, ok, want)
		}
	}
	if _, ok := ConvertEffortToBudget("xhigh"); ok {
		t.Fatal("expected unknown effort to fail")
	}
}

func TestNewThinkingConfig_DefaultsToMedium(t *testing.T) {
	cfg := NewThinkingConfig(EffortNone, 100)
	if cfg.Effort != EffortMedium || cfg.Budget != 8192 || cfg.MaxTokens != 100 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg = NewThinkingConfig(EffortHigh, 0); cfg.Budget != 24576 {
		t.Fatalf("expected high budget, got %+v", cfg)
	}
}

func TestGetReasoningText(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{`{"reasoning_content":"step 1"}`, "step 1"},
		{`{"reasoning":"plan"}`, "plan"},
		{`{"content":[{"type":"text","text":"a"},{"type":"thinking","thinking":"deep"}]}`, "deep"},
		{`{"content":[{"type":"thinking","thinking":{"text":"nested"}}]}`, "nested"},
		{`{"content":"plain"}`, ""},
	}
	for _, tc := range cases {
		if got := GetReasoningText(gjson.Parse(tc.raw)); got != tc.want {
			t.Fatalf("GetReasoningText(%s) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}
