// Package message models chat message content and the pure operations the transformer
// applies to it: target selection, text extraction, control-tag stripping and
// instruction prefixing. Every operation returns a new value; inputs are never mutated.
package message

import (
	"errors"
	"strings"

	"github.com/router-for-me/reasoning-transformer/internal/thinking"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// ErrUnsupportedContent is returned by Parse when content is neither a string nor an array.
var ErrUnsupportedContent = errors.New("message: content is neither a string nor an array of blocks")

// Kind tags the variant held by a Content.
type Kind int

const (
	// KindText is plain string content.
	KindText Kind = iota
	// KindBlocks is an ordered list of typed content blocks.
	KindBlocks
)

// String returns the string representation of Kind.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindBlocks:
		return "blocks"
	default:
		return "unknown"
	}
}

// textualBlockTypes are the block types whose text is scanned and rewritten.
var textualBlockTypes = map[string]struct{}{
	"text":       {},
	"input_text": {},
}

// Block is one element of block content. Raw is the block's original JSON; it is only
// re-encoded when the block's text changes.
type Block struct {
	Type    string
	Text    string
	Raw     string
	textual bool
}

// Textual reports whether the block carries scannable text.
func (b Block) Textual() bool { return b.textual }

func (b Block) withText(text string) Block {
	raw, err := sjson.Set(b.Raw, "text", text)
	if err != nil {
		return b
	}
	b.Text = text
	b.Raw = raw
	return b
}

// Content is a tagged union over string and block content.
type Content struct {
	kind   Kind
	text   string
	blocks []Block
}

// NewText builds string content.
func NewText(text string) Content {
	return Content{kind: KindText, text: text}
}

// Parse converts a message's content value into a Content.
func Parse(value gjson.Result) (Content, error) {
	switch {
	case value.Type == gjson.String:
		return NewText(value.String()), nil
	case value.IsArray():
		items := value.Array()
		blocks := make([]Block, 0, len(items))
		for _, item := range items {
			b := Block{Type: item.Get("type").String(), Raw: item.Raw}
			if _, ok := textualBlockTypes[b.Type]; ok {
				if t := item.Get("text"); t.Type == gjson.String {
					b.Text = t.String()
					b.textual = true
				}
			}
			blocks = append(blocks, b)
		}
		return Content{kind: KindBlocks, blocks: blocks}, nil
	default:
		return Content{}, ErrUnsupportedContent
	}
}

// Kind returns the variant tag.
func (c Content) Kind() Kind { return c.kind }

// Blocks returns a copy of the blocks of block content.
func (c Content) Blocks() []Block {
	out := make([]Block, len(c.blocks))
	copy(out, c.blocks)
	return out
}

// Text returns the scannable text: string content verbatim, or the texts of textual
// blocks joined by a single space.
func (c Content) Text() string {
	if c.kind == KindText {
		return c.text
	}
	parts := make([]string, 0, len(c.blocks))
	for _, b := range c.blocks {
		if b.textual {
			parts = append(parts, b.Text)
		}
	}
	return strings.Join(parts, " ")
}

// StripControlTags returns a copy with control tags removed from every textual part.
// Text that had tags removed is trimmed. The boolean reports whether anything changed.
func (c Content) StripControlTags() (Content, bool) {
	if c.kind == KindText {
		stripped, ok := thinking.StripControlTags(c.text)
		if !ok {
			return c, false
		}
		return NewText(strings.TrimSpace(stripped)), true
	}

	changed := false
	blocks := make([]Block, len(c.blocks))
	for i, b := range c.blocks {
		blocks[i] = b
		if !b.textual {
			continue
		}
		stripped, ok := thinking.StripControlTags(b.Text)
		if !ok {
			continue
		}
		blocks[i] = b.withText(strings.TrimSpace(stripped))
		changed = true
	}
	if !changed {
		return c, false
	}
	return Content{kind: KindBlocks, blocks: blocks}, true
}

// HasPrefix reports whether the first textual part starts with prefix.
func (c Content) HasPrefix(prefix string) bool {
	if c.kind == KindText {
		return strings.HasPrefix(c.text, prefix)
	}
	for _, b := range c.blocks {
		if b.textual {
			return strings.HasPrefix(b.Text, prefix)
		}
	}
	return false
}

// Prepend returns a copy with instruction prefixed to the string, or to the first
// textual block only. Content already starting with instruction, or block content
// without a textual block, is returned unchanged with ok=false.
func (c Content) Prepend(instruction string) (Content, bool) {
	if instruction == "" || c.HasPrefix(instruction) {
		return c, false
	}
	if c.kind == KindText {
		return NewText(instruction + c.text), true
	}
	for i, b := range c.blocks {
		if !b.textual {
			continue
		}
		blocks := c.Blocks()
		blocks[i] = b.withText(instruction + b.Text)
		return Content{kind: KindBlocks, blocks: blocks}, true
	}
	return c, false
}

// Raw returns the JSON encoding of the content. Unchanged blocks keep their original bytes.
func (c Content) Raw() string {
	if c.kind == KindText {
		raw, err := sjson.Set(`{"v":""}`, "v", c.text)
		if err != nil {
			return `""`
		}
		return gjson.Get(raw, "v").Raw
	}
	parts := make([]string, len(c.blocks))
	for i, b := range c.blocks {
		parts[i] = b.Raw
	}
	return "[" + strings.Join(parts, ",") + "]"
}
