// Package transformer assembles outbound chat-completion requests. It resolves the model
// configuration, selects and cleans the target message, asks the decision engine for a
// reasoning verdict and writes the result into a new request body.
package transformer

import (
	"context"
	"strconv"

	"github.com/router-for-me/reasoning-transformer/internal/config"
	"github.com/router-for-me/reasoning-transformer/internal/logging"
	"github.com/router-for-me/reasoning-transformer/internal/message"
	"github.com/router-for-me/reasoning-transformer/internal/registry"
	"github.com/router-for-me/reasoning-transformer/internal/thinking"
	"github.com/router-for-me/reasoning-transformer/internal/tokens"
	log "github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Name is the transformer's registration name.
const Name = "reasoning"

// Provider describes the upstream provider a request is routed to.
type Provider struct {
	// Name is the host's provider identifier, used to pick a thinking formatter.
	Name string
	// BaseURL is informational.
	BaseURL string
}

// Result is the outcome of one Transform call.
type Result struct {
	// Body is the outbound request body. On error it is the original body.
	Body []byte
	// Decision is the reasoning verdict for the request.
	Decision thinking.Decision
	// Model is the effective model configuration.
	Model registry.EffectiveModelConfig
	// Formatter is the formatter key used for the thinking marker, empty when none applied.
	Formatter string
}

// Transformer rewrites chat-completion requests. It is immutable after New and safe for
// concurrent use.
type Transformer struct {
	table            *registry.Table
	keywords         *thinking.KeywordSet
	overrides        config.Overrides
	forcePermanent   bool
	ignoreSystem     bool
	logTokenEstimate bool
	instruction      string
}

// New builds a Transformer from cfg. A nil cfg behaves like an empty configuration.
func New(cfg *config.Config) *Transformer {
	if cfg == nil {
		cfg = &config.Config{}
	}
	r := cfg.Reasoning
	return &Transformer{
		table:            registry.NewTable(cfg.Models),
		keywords:         thinking.NewKeywordSet(r.CustomKeywords, r.OverrideKeywords),
		overrides:        copyOverrides(r.Overrides),
		forcePermanent:   r.ForcePermanentThinking,
		ignoreSystem:     r.IgnoreSystemMessages,
		logTokenEstimate: cfg.LogTokenEstimate,
		instruction:      thinking.ReasoningInstruction,
	}
}

// Name returns the transformer's registration name.
func (t *Transformer) Name() string { return Name }

// Keywords returns the effective keyword list.
func (t *Transformer) Keywords() []string { return t.keywords.Keywords() }

// TransformRequestIn returns the rewritten request body.
func (t *Transformer) TransformRequestIn(ctx context.Context, body []byte, provider Provider) ([]byte, error) {
	res, err := t.Transform(ctx, body, provider)
	return res.Body, err
}

// Transform rewrites body and reports the decision behind the rewrite.
// The caller's body is never modified.
func (t *Transformer) Transform(ctx context.Context, body []byte, provider Provider) (Result, error) {
	entry := logging.EntryFromContext(ctx)

	if len(body) == 0 || !gjson.ValidBytes(body) || !gjson.ParseBytes(body).IsObject() {
		entry.WithFields(log.Fields{
			"provider": provider.Name,
		}).Warn("transformer: request body is not a JSON object, passthrough |")
		return Result{Body: body, Decision: thinking.Decision{TargetIndex: -1}}, newError(ErrInvalidBody, "request body is not a JSON object")
	}

	root := gjson.ParseBytes(body)
	eff := t.table.ResolveModel(root.Get("model").String(), t.overrides)

	target := t.selectTarget(root.Get("messages"))
	if target.err != nil {
		entry.WithFields(log.Fields{
			"provider": provider.Name,
			"model":    eff.Model,
			"target":   target.index,
			"error":    target.err.Error(),
		}).Warn("transformer: target content unsupported, mutation skipped |")
	}

	in := thinking.Input{
		ForcePermanent:    t.forcePermanent,
		Text:              target.text,
		Tags:              target.tags,
		TargetIndex:       target.eligibleIndex(),
		OverrideReasoning: t.overrides.Reasoning,
		ProfileReasoning:  eff.Reasoning,
		KeywordDetection:  eff.KeywordDetection,
		RequestReasoning:  boolField(root.Get("reasoning.enabled")),
		RequestEffort:     root.Get("reasoning.effort").String(),
		Keywords:          t.keywords,
	}
	decision := thinking.Decide(in)
	decision.MutationSkipped = target.err != nil

	out := make([]byte, len(body))
	copy(out, body)
	out = t.applyModelConfig(out, eff)
	out = t.applyMessage(out, target, decision.Rewrite)

	res := Result{Decision: decision, Model: eff}
	if decision.ApplyFormat {
		key, errKey := thinking.ResolveProviderKey(provider.Name, eff.Provider)
		res.Formatter = key
		if errKey != nil {
			entry.WithFields(log.Fields{
				"provider": provider.Name,
				"model":    eff.Model,
				"error":    errKey.Error(),
			}).Debug("transformer: no thinking formatter for provider |")
		} else if marked, err := thinking.ApplyThinking(out, res.Formatter, decision.Effort, eff); err == nil {
			out = marked
		} else {
			res.Formatter = ""
		}
	}
	res.Body = out

	entry.WithFields(log.Fields{
		"provider":   provider.Name,
		"model":      eff.Model,
		"source":     decision.Source,
		"reasoning":  decision.Reasoning,
		"effort":     decision.Effort,
		"rewrite":    decision.Rewrite,
		"target":     decision.TargetIndex,
		"max_tokens": eff.MaxTokens,
		"keyword":    decision.Keyword,
	}).Debug("transformer: request transformed |")

	if t.logTokenEstimate {
		t.checkContextWindow(entry, out, eff)
	}
	return res, nil
}

// applyModelConfig writes max_tokens, the sampling values and the sampling flag.
func (t *Transformer) applyModelConfig(body []byte, eff registry.EffectiveModelConfig) []byte {
	body, _ = sjson.SetBytes(body, "max_tokens", eff.MaxTokens)
	if eff.Temperature != nil {
		body, _ = sjson.SetBytes(body, "temperature", *eff.Temperature)
	}
	if eff.TopP != nil {
		body, _ = sjson.SetBytes(body, "top_p", *eff.TopP)
	}
	body, _ = sjson.SetBytes(body, "do_sample", true)
	return body
}

// applyMessage replaces the target content when tags were stripped or a rewrite applies.
func (t *Transformer) applyMessage(body []byte, target targetMessage, rewrite bool) []byte {
	if target.index < 0 || target.err != nil {
		return body
	}
	content := target.content
	changed := target.stripped
	if rewrite {
		if prefixed, ok := content.Prepend(t.instruction); ok {
			content = prefixed
			changed = true
		}
	}
	if !changed {
		return body
	}
	out, err := sjson.SetRawBytes(body, message.ContentPath(target.index), []byte(content.Raw()))
	if err != nil {
		return body
	}
	return out
}

func (t *Transformer) checkContextWindow(entry *log.Entry, body []byte, eff registry.EffectiveModelConfig) {
	if eff.ContextWindow <= 0 {
		return
	}
	promptTokens, err := tokens.EstimatePromptTokens(body)
	if err != nil {
		entry.WithField("error", err.Error()).Debug("transformer: token estimate failed |")
		return
	}
	if promptTokens+eff.MaxTokens > eff.ContextWindow {
		entry.WithFields(log.Fields{
			"model":          eff.Model,
			"prompt_tokens":  promptTokens,
			"max_tokens":     eff.MaxTokens,
			"context_window": eff.ContextWindow,
		}).Warn("transformer: prompt plus max_tokens exceeds context window |")
	}
}

// targetMessage is the rewrite target after parsing and tag stripping.
type targetMessage struct {
	index    int
	content  message.Content
	text     string
	tags     thinking.Tags
	stripped bool
	err      error
}

func (m targetMessage) eligibleIndex() int {
	if m.err != nil {
		return -1
	}
	return m.index
}

func (t *Transformer) selectTarget(messages gjson.Result) targetMessage {
	target := targetMessage{index: message.FindTarget(messages, t.ignoreSystem), tags: thinking.Tags{Effort: thinking.EffortNone}}
	if target.index < 0 {
		return target
	}
	content, err := message.Parse(messages.Get(strconv.Itoa(target.index)).Get("content"))
	if err != nil {
		target.err = err
		return target
	}
	target.tags = thinking.ParseTags(content.Text())
	target.content, target.stripped = content.StripControlTags()
	target.text = target.content.Text()
	return target
}

func boolField(v gjson.Result) *bool {
	switch v.Type {
	case gjson.True:
		b := true
		return &b
	case gjson.False:
		b := false
		return &b
	default:
		return nil
	}
}

func copyOverrides(o config.Overrides) config.Overrides {
	out := config.Overrides{}
	if o.MaxTokens != nil {
		v := *o.MaxTokens
		out.MaxTokens = &v
	}
	if o.Temperature != nil {
		v := *o.Temperature
		out.Temperature = &v
	}
	if o.TopP != nil {
		v := *o.TopP
		out.TopP = &v
	}
	if o.Reasoning != nil {
		v := *o.Reasoning
		out.Reasoning = &v
	}
	if o.KeywordDetection != nil {
		v := *o.KeywordDetection
		out.KeywordDetection = &v
	}
	return out
}
