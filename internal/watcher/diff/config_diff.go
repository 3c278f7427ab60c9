// Package diff summarizes configuration changes for reload logging.
package diff

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/router-for-me/reasoning-transformer/internal/config"
)

// BuildConfigChangeDetails lists human-readable differences between two configurations.
// It returns nil when either side is nil or nothing material changed.
func BuildConfigChangeDetails(oldCfg, newCfg *config.Config) []string {
	if oldCfg == nil || newCfg == nil {
		return nil
	}
	var changes []string
	add := func(s string) { changes = append(changes, s) }

	if oldCfg.Debug != newCfg.Debug {
		add(fmt.Sprintf("debug: %t -> %t", oldCfg.Debug, newCfg.Debug))
	}
	if oldCfg.LoggingToFile != newCfg.LoggingToFile {
		add(fmt.Sprintf("logging-to-file: %t -> %t", oldCfg.LoggingToFile, newCfg.LoggingToFile))
	}
	if oldCfg.LogDir != newCfg.LogDir {
		add(fmt.Sprintf("log-dir: %s -> %s", oldCfg.LogDir, newCfg.LogDir))
	}
	if oldCfg.LogMaxSizeMB != newCfg.LogMaxSizeMB {
		add(fmt.Sprintf("log-max-size-mb: %d -> %d", oldCfg.LogMaxSizeMB, newCfg.LogMaxSizeMB))
	}
	if oldCfg.LogMaxBackups != newCfg.LogMaxBackups {
		add(fmt.Sprintf("log-max-backups: %d -> %d", oldCfg.LogMaxBackups, newCfg.LogMaxBackups))
	}
	if oldCfg.LogTokenEstimate != newCfg.LogTokenEstimate {
		add(fmt.Sprintf("log-token-estimate: %t -> %t", oldCfg.LogTokenEstimate, newCfg.LogTokenEstimate))
	}

	o, n := oldCfg.Reasoning, newCfg.Reasoning
	if o.ForcePermanentThinking != n.ForcePermanentThinking {
		add(fmt.Sprintf("reasoning.force-permanent-thinking: %t -> %t", o.ForcePermanentThinking, n.ForcePermanentThinking))
	}
	if o.IgnoreSystemMessages != n.IgnoreSystemMessages {
		add(fmt.Sprintf("reasoning.ignore-system-messages: %t -> %t", o.IgnoreSystemMessages, n.IgnoreSystemMessages))
	}
	if o.OverrideKeywords != n.OverrideKeywords {
		add(fmt.Sprintf("reasoning.override-keywords: %t -> %t", o.OverrideKeywords, n.OverrideKeywords))
	}
	if !reflect.DeepEqual(trimStrings(o.CustomKeywords), trimStrings(n.CustomKeywords)) {
		add(fmt.Sprintf("reasoning.custom-keywords: updated (%d -> %d entries)", len(o.CustomKeywords), len(n.CustomKeywords)))
	}

	ov, nv := o.Overrides, n.Overrides
	addPtr(&changes, "reasoning.overrides.max-tokens", formatInt(ov.MaxTokens), formatInt(nv.MaxTokens))
	addPtr(&changes, "reasoning.overrides.temperature", formatFloat(ov.Temperature), formatFloat(nv.Temperature))
	addPtr(&changes, "reasoning.overrides.top-p", formatFloat(ov.TopP), formatFloat(nv.TopP))
	addPtr(&changes, "reasoning.overrides.reasoning", formatBool(ov.Reasoning), formatBool(nv.Reasoning))
	addPtr(&changes, "reasoning.overrides.keyword-detection", formatBool(ov.KeywordDetection), formatBool(nv.KeywordDetection))

	if details := diffModels(oldCfg.Models, newCfg.Models); len(details) > 0 {
		add("models:")
		changes = append(changes, details...)
	}
	return changes
}

func diffModels(oldModels, newModels []config.ModelEntry) []string {
	oldByName := make(map[string]config.ModelEntry, len(oldModels))
	for _, m := range oldModels {
		oldByName[strings.ToLower(m.Name)] = m
	}
	seen := make(map[string]struct{}, len(newModels))
	var out []string
	for _, m := range newModels {
		key := strings.ToLower(m.Name)
		seen[key] = struct{}{}
		prev, ok := oldByName[key]
		if !ok {
			out = append(out, fmt.Sprintf("  model added: %s (max-tokens=%d)", m.Name, m.MaxTokens))
			continue
		}
		if reflect.DeepEqual(prev, m) {
			continue
		}
		if prev.MaxTokens != m.MaxTokens {
			out = append(out, fmt.Sprintf("  model updated: %s (max-tokens %d -> %d)", m.Name, prev.MaxTokens, m.MaxTokens))
		} else {
			out = append(out, fmt.Sprintf("  model updated: %s", m.Name))
		}
	}
	for _, m := range oldModels {
		if _, ok := seen[strings.ToLower(m.Name)]; !ok {
			out = append(out, fmt.Sprintf("  model removed: %s", m.Name))
		}
	}
	return out
}

func addPtr(changes *[]string, field, oldVal, newVal string) {
	if oldVal != newVal {
		*changes = append(*changes, fmt.Sprintf("%s: %s -> %s", field, oldVal, newVal))
	}
}

func formatInt(v *int) string {
	if v == nil {
		return "<unset>"
	}
	return strconv.Itoa(*v)
}

func formatFloat(v *float64) string {
	if v == nil {
		return "<unset>"
	}
	return strconv.FormatFloat(*v, 'g', -1, 64)
}

func formatBool(v *bool) string {
	if v == nil {
		return "<unset>"
	}
	return strconv.FormatBool(*v)
}

func trimStrings(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
