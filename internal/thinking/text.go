package thinking

import (
	"github.com/tidwall/gjson"
)

// GetReasoningText extracts the reasoning text from a chat-completion message or delta.
// Handles various formats:
// - OpenAI-compatible: { "reasoning_content": "text" } or { "reasoning": "text" }
// - Block content: { "content": [{ "type": "thinking", "thinking": "text" }] }
// Returns the extracted text string.
func GetReasoningText(message gjson.Result) string {
	if rc := message.Get("reasoning_content"); rc.Type == gjson.String {
		return rc.String()
	}
	if r := message.Get("reasoning"); r.Type == gjson.String {
		return r.String()
	}

	content := message.Get("content")
	if !content.IsArray() {
		return ""
	}
	for _, part := range content.Array() {
		if part.Get("type").String() != "thinking" {
			continue
		}
		if text := getThinkingPartText(part); text != "" {
			return text
		}
	}
	return ""
}

// getThinkingPartText reads the text of a thinking block.
// Handles { "thinking": "text" }, { "text": "text" } and
// { "thinking": { "text": "text" } }.
func getThinkingPartText(part gjson.Result) string {
	thinkingField := part.Get("thinking")
	if thinkingField.Type == gjson.String {
		return thinkingField.String()
	}
	if thinkingField.IsObject() {
		if inner := thinkingField.Get("text"); inner.Type == gjson.String {
			return inner.String()
		}
	}
	if text := part.Get("text"); text.Type == gjson.String {
		return text.String()
	}
	return ""
}
