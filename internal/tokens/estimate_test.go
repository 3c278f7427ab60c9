package tokens

import "testing"

func TestEstimatePromptTokens(t *testing.T) {
	small, err := EstimatePromptTokens([]byte(`{"messages":[{"role":"user","content":"hi"}]}`))
	if err != nil {
		t.Fatalf("EstimatePromptTokens: %v", err)
	}
	if small <= 0 {
		t.Fatalf("expected a positive estimate, got %d", small)
	}

	large, err := EstimatePromptTokens([]byte(`{
		"messages":[
			{"role":"system","content":"You are a careful assistant."},
			{"role":"user","content":[{"type":"text","text":"how many letters in strawberry"},{"type":"image_url","image_url":{"url":"https://example.com/a.png"}}]}
		],
		"tools":[{"type":"function","function":{"name":"count","description":"count letters","parameters":{"type":"object"}}}]
	}`))
	if err != nil {
		t.Fatalf("EstimatePromptTokens: %v", err)
	}
	if large <= small {
		t.Fatalf("expected larger prompt to estimate more tokens, got small=%d large=%d", small, large)
	}
}

func TestEstimatePromptTokens_Empty(t *testing.T) {
	for _, body := range []string{``, `{}`, `{"messages":[]}`} {
		n, err := EstimatePromptTokens([]byte(body))
		if err != nil || n != 0 {
			t.Fatalf("EstimatePromptTokens(%q) = (%d, %v), want 0", body, n, err)
		}
	}
}

func TestCountChatTokens_NilEncoder(t *testing.T) {
	if _, err := CountChatTokens(nil, []byte(`{}`)); err == nil {
		t.Fatal("expected error for nil encoder")
	}
}
