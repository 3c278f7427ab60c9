package transformer

import (
	"context"

	"github.com/router-for-me/reasoning-transformer/internal/logging"
	"github.com/router-for-me/reasoning-transformer/internal/thinking"
	log "github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

// ResponseEnvelope is a provider response as seen by the host.
type ResponseEnvelope struct {
	StatusCode int
	Header     map[string][]string
	Body       []byte
}

// TransformResponseOut passes the response through unchanged. Usage and reasoning
// metadata are inspected for debug logging only.
func (t *Transformer) TransformResponseOut(ctx context.Context, resp ResponseEnvelope) (ResponseEnvelope, error) {
	if !log.IsLevelEnabled(log.DebugLevel) || len(resp.Body) == 0 || !gjson.ValidBytes(resp.Body) {
		return resp, nil
	}

	root := gjson.ParseBytes(resp.Body)
	fields := log.Fields{
		"model":  root.Get("model").String(),
		"status": resp.StatusCode,
	}
	if usage := root.Get("usage"); usage.Exists() {
		fields["prompt_tokens"] = usage.Get("prompt_tokens").Int()
		fields["completion_tokens"] = usage.Get("completion_tokens").Int()
	}
	if text := thinking.GetReasoningText(root.Get("choices.0.message")); text != "" {
		fields["reasoning_chars"] = len(text)
	}
	logging.EntryFromContext(ctx).WithFields(fields).Debug("transformer: response passthrough |")
	return resp, nil
}
