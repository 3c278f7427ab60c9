// Package tokens estimates prompt sizes of chat-completion bodies for context-window
// diagnostics. Estimates use the o200k base encoding and are approximate for non-OpenAI
// models; they are never used to alter a request.
package tokens

import (
	"fmt"
	"strings"
	"sync"

	"github.com/tidwall/gjson"
	"github.com/tiktoken-go/tokenizer"
)

var (
	codecOnce sync.Once
	codec     tokenizer.Codec
	codecErr  error
)

func defaultCodec() (tokenizer.Codec, error) {
	codecOnce.Do(func() {
		codec, codecErr = tokenizer.Get(tokenizer.O200kBase)
	})
	return codec, codecErr
}

// EstimatePromptTokens approximates the prompt tokens of a chat-completion body.
func EstimatePromptTokens(body []byte) (int, error) {
	enc, err := defaultCodec()
	if err != nil {
		return 0, fmt.Errorf("tokens: load encoding: %w", err)
	}
	return CountChatTokens(enc, body)
}

// CountChatTokens counts tokens of the prompt-bearing fields of body with enc.
func CountChatTokens(enc tokenizer.Codec, body []byte) (int, error) {
	if enc == nil {
		return 0, fmt.Errorf("tokens: encoder is nil")
	}
	if len(body) == 0 {
		return 0, nil
	}

	root := gjson.ParseBytes(body)
	segments := make([]string, 0, 32)

	collectMessages(root.Get("messages"), &segments)
	collectTools(root.Get("tools"), &segments)
	if choice := root.Get("tool_choice"); choice.Exists() {
		addIfNotEmpty(&segments, choiceText(choice))
	}
	if format := root.Get("response_format"); format.Exists() {
		addIfNotEmpty(&segments, format.Raw)
	}

	joined := strings.TrimSpace(strings.Join(segments, "\n"))
	if joined == "" {
		return 0, nil
	}
	return enc.Count(joined)
}

func choiceText(choice gjson.Result) string {
	if choice.Type == gjson.String {
		return choice.String()
	}
	return choice.Raw
}

func collectMessages(messages gjson.Result, segments *[]string) {
	if !messages.IsArray() {
		return
	}
	messages.ForEach(func(_, message gjson.Result) bool {
		addIfNotEmpty(segments, message.Get("role").String())
		addIfNotEmpty(segments, message.Get("name").String())
		collectContent(message.Get("content"), segments)
		message.Get("tool_calls").ForEach(func(_, call gjson.Result) bool {
			addIfNotEmpty(segments, call.Get("function.name").String())
			addIfNotEmpty(segments, call.Get("function.arguments").String())
			return true
		})
		return true
	})
}

func collectContent(content gjson.Result, segments *[]string) {
	switch {
	case content.Type == gjson.String:
		addIfNotEmpty(segments, content.String())
	case content.IsArray():
		content.ForEach(func(_, part gjson.Result) bool {
			switch part.Get("type").String() {
			case "text", "input_text", "output_text":
				addIfNotEmpty(segments, part.Get("text").String())
			case "image_url":
				addIfNotEmpty(segments, part.Get("image_url.url").String())
			case "tool_result":
				collectContent(part.Get("content"), segments)
			default:
				if part.Type == gjson.JSON {
					addIfNotEmpty(segments, part.Raw)
				} else {
					addIfNotEmpty(segments, part.String())
				}
			}
			return true
		})
	case content.Type == gjson.JSON:
		addIfNotEmpty(segments, content.Raw)
	}
}

func collectTools(tools gjson.Result, segments *[]string) {
	if !tools.IsArray() {
		return
	}
	tools.ForEach(func(_, tool gjson.Result) bool {
		fn := tool.Get("function")
		if !fn.Exists() {
			addIfNotEmpty(segments, tool.Raw)
			return true
		}
		addIfNotEmpty(segments, fn.Get("name").String())
		addIfNotEmpty(segments, fn.Get("description").String())
		if params := fn.Get("parameters"); params.Exists() {
			addIfNotEmpty(segments, params.Raw)
		}
		return true
	})
}

func addIfNotEmpty(segments *[]string, value string) {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		*segments = append(*segments, trimmed)
	}
}
