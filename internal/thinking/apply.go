// Package thinking provides the reasoning decision engine.
package thinking

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/router-for-me/reasoning-transformer/internal/registry"
	log "github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

var (
	appliersMu sync.RWMutex
	// providerAppliers maps normalized provider names to their ProviderApplier implementations.
	providerAppliers = map[string]ProviderApplier{}
)

// normalizeProvider lower-cases and trims a provider name for registry lookups.
func normalizeProvider(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// RegisterProvider registers a provider applier by name. Provider packages call it from init.
func RegisterProvider(name string, applier ProviderApplier) {
	key := normalizeProvider(name)
	if key == "" || applier == nil {
		return
	}
	appliersMu.Lock()
	providerAppliers[key] = applier
	appliersMu.Unlock()
}

// GetProviderApplier returns the ProviderApplier for the given provider name.
// Returns nil if the provider is not registered.
func GetProviderApplier(provider string) ProviderApplier {
	appliersMu.RLock()
	defer appliersMu.RUnlock()
	return providerAppliers[normalizeProvider(provider)]
}

// RegisteredProviders returns the sorted names of all registered providers.
func RegisteredProviders() []string {
	appliersMu.RLock()
	names := make([]string, 0, len(providerAppliers))
	for name := range providerAppliers {
		names = append(names, name)
	}
	appliersMu.RUnlock()
	sort.Strings(names)
	return names
}

// ResolveProviderKey picks the formatter key for a request: the host provider name when a
// formatter is registered for it, otherwise the model profile's provider.
// When neither has a formatter it returns an empty key and an ErrProviderNotRegistered
// ThinkingError; callers treat that as a soft no-op.
func ResolveProviderKey(hostProvider, profileProvider string) (string, error) {
	for _, name := range []string{hostProvider, profileProvider} {
		key := normalizeProvider(name)
		if key == "" {
			continue
		}
		if GetProviderApplier(key) != nil {
			return key, nil
		}
	}
	return "", NewThinkingError(ErrProviderNotRegistered,
		fmt.Sprintf("no thinking formatter for provider %q or model provider %q", hostProvider, profileProvider))
}

// IsProviderNotRegistered reports whether err is the soft "no formatter" condition.
func IsProviderNotRegistered(err error) bool {
	var terr *ThinkingError
	return errors.As(err, &terr) && terr.Code == ErrProviderNotRegistered
}

// ApplyThinking attaches the provider's thinking marker to a request body.
//
// Parameters:
//   - body: Request body JSON, already carrying the effective max_tokens
//   - provider: Formatter key, usually from ResolveProviderKey
//   - effort: Effective effort; EffortNone is sent as medium
//   - model: Effective model configuration
//
// Returns:
//   - Modified request body JSON with the marker applied
//   - Error from the formatter. On error, the original body is returned (not nil).
//
// Passthrough behavior (returns original body with an ErrProviderNotRegistered error):
//   - Unknown provider (no registered formatter)
func ApplyThinking(body []byte, provider string, effort Effort, model registry.EffectiveModelConfig) ([]byte, error) {
	if len(body) == 0 || !gjson.ValidBytes(body) {
		return body, NewThinkingErrorWithModel(ErrInvalidBody, "request body is not valid JSON", model.Model)
	}

	applier := GetProviderApplier(provider)
	if applier == nil {
		log.WithFields(log.Fields{
			"provider": provider,
			"model":    model.Model,
		}).Debug("thinking: no formatter registered, passthrough |")
		return body, NewThinkingErrorWithModel(ErrProviderNotRegistered,
			fmt.Sprintf("no thinking formatter for provider %q", provider), model.Model)
	}

	config := NewThinkingConfig(effort, model.MaxTokens)
	result, err := applier.Apply(body, config, model)
	if err != nil {
		log.WithFields(log.Fields{
			"provider": provider,
			"model":    model.Model,
			"effort":   config.Effort,
			"error":    err.Error(),
		}).Warn("thinking: formatter rejected config |")
		return body, err
	}

	log.WithFields(log.Fields{
		"provider": provider,
		"model":    model.Model,
		"effort":   config.Effort,
	}).Debug("thinking: marker applied |")
	return result, nil
}
