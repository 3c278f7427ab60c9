// Package config provides configuration management for the reasoning transformer.
// It handles loading and parsing YAML configuration files, overlaying environment
// variables, and exposes the global overrides, keyword settings and operator-declared
// model profiles consumed when a transformer is constructed.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the transformer configuration, loaded from a YAML file.
type Config struct {
	// Debug enables debug level logging, including per-request reasoning decisions.
	Debug bool `yaml:"debug" json:"debug"`

	// LoggingToFile switches log output from stdout to a size-rotated file in LogDir.
	LoggingToFile bool `yaml:"logging-to-file" json:"logging-to-file"`

	// LogDir is the directory used when LoggingToFile is enabled. Defaults to "logs".
	LogDir string `yaml:"log-dir,omitempty" json:"log-dir,omitempty"`

	// LogMaxSizeMB is the size in megabytes at which the log file is rotated.
	// <= 0 uses the default of 10.
	LogMaxSizeMB int `yaml:"log-max-size-mb,omitempty" json:"log-max-size-mb,omitempty"`

	// LogMaxBackups is the number of rotated log files to keep. 0 keeps all of them.
	LogMaxBackups int `yaml:"log-max-backups,omitempty" json:"log-max-backups,omitempty"`

	// LogTokenEstimate enables prompt token estimation for context-window warnings.
	LogTokenEstimate bool `yaml:"log-token-estimate" json:"log-token-estimate"`

	// Reasoning holds the reasoning decision settings.
	Reasoning ReasoningConfig `yaml:"reasoning" json:"reasoning"`

	// Models declares additional model profiles or replaces built-in ones by name.
	Models []ModelEntry `yaml:"models,omitempty" json:"models,omitempty"`
}

// ReasoningConfig groups the options that drive the reasoning decision engine.
type ReasoningConfig struct {
	// ForcePermanentThinking turns reasoning on with high effort for every request.
	ForcePermanentThinking bool `yaml:"force-permanent-thinking" json:"force-permanent-thinking"`

	// IgnoreSystemMessages restricts the rewrite target to user messages only.
	IgnoreSystemMessages bool `yaml:"ignore-system-messages" json:"ignore-system-messages"`

	// CustomKeywords are additional keyword-enhancement trigger phrases.
	CustomKeywords []string `yaml:"custom-keywords,omitempty" json:"custom-keywords,omitempty"`

	// OverrideKeywords replaces the built-in keyword list with CustomKeywords instead of extending it.
	OverrideKeywords bool `yaml:"override-keywords" json:"override-keywords"`

	// Overrides are operator-level values that win over every model profile.
	Overrides Overrides `yaml:"overrides" json:"overrides"`
}

// Overrides holds the global override set. A nil field defers to the model profile;
// a non-nil field, including an explicit false, always wins.
type Overrides struct {
	MaxTokens        *int     `yaml:"max-tokens,omitempty" json:"max-tokens,omitempty"`
	Temperature      *float64 `yaml:"temperature,omitempty" json:"temperature,omitempty"`
	TopP             *float64 `yaml:"top-p,omitempty" json:"top-p,omitempty"`
	Reasoning        *bool    `yaml:"reasoning,omitempty" json:"reasoning,omitempty"`
	KeywordDetection *bool    `yaml:"keyword-detection,omitempty" json:"keyword-detection,omitempty"`
}

// ModelEntry declares a model profile in the configuration file.
type ModelEntry struct {
	Name             string   `yaml:"name" json:"name"`
	MaxTokens        int      `yaml:"max-tokens" json:"max-tokens"`
	ContextWindow    int      `yaml:"context-window,omitempty" json:"context-window,omitempty"`
	Temperature      *float64 `yaml:"temperature,omitempty" json:"temperature,omitempty"`
	TopP             *float64 `yaml:"top-p,omitempty" json:"top-p,omitempty"`
	Reasoning        bool     `yaml:"reasoning" json:"reasoning"`
	KeywordDetection bool     `yaml:"keyword-detection" json:"keyword-detection"`
	Provider         string   `yaml:"provider,omitempty" json:"provider,omitempty"`
}

// ErrInvalidConfig is wrapped by every validation failure returned from LoadConfig.
var ErrInvalidConfig = errors.New("invalid config")

// LoadConfig reads a YAML configuration file, sanitizes it and validates overrides.
func LoadConfig(configFile string) (*Config, error) {
	return LoadConfigOptional(configFile, false)
}

// LoadConfigOptional reads the configuration file. When optional is true, a missing or
// empty file yields a zero configuration instead of an error.
func LoadConfigOptional(configFile string, optional bool) (*Config, error) {
	data, err := os.ReadFile(configFile)
	if err != nil {
		if optional && (os.IsNotExist(err) || strings.TrimSpace(configFile) == "") {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return ParseConfig(data, optional)
}

// ParseConfig decodes YAML bytes into a sanitized, validated Config.
func ParseConfig(data []byte, allowEmpty bool) (*Config, error) {
	cfg := &Config{}
	if len(strings.TrimSpace(string(data))) == 0 {
		if allowEmpty {
			return cfg, nil
		}
		return nil, fmt.Errorf("%w: config file is empty", ErrInvalidConfig)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg.Sanitize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Sanitize normalizes keyword lists and model names in place.
func (cfg *Config) Sanitize() {
	if cfg == nil {
		return
	}
	cfg.Reasoning.CustomKeywords = NormalizeKeywords(cfg.Reasoning.CustomKeywords)
	cfg.LogDir = strings.TrimSpace(cfg.LogDir)

	if len(cfg.Models) == 0 {
		return
	}
	out := make([]ModelEntry, 0, len(cfg.Models))
	for _, entry := range cfg.Models {
		entry.Name = strings.TrimSpace(entry.Name)
		entry.Provider = strings.TrimSpace(entry.Provider)
		if entry.Name == "" {
			continue
		}
		out = append(out, entry)
	}
	cfg.Models = out
}

// Validate rejects override and model values that can never be sent upstream.
func (cfg *Config) Validate() error {
	if cfg == nil {
		return nil
	}
	o := cfg.Reasoning.Overrides
	if o.MaxTokens != nil && *o.MaxTokens <= 0 {
		return fmt.Errorf("%w: reasoning.overrides.max-tokens must be positive, got %d", ErrInvalidConfig, *o.MaxTokens)
	}
	if o.Temperature != nil && !validTemperature(*o.Temperature) {
		return fmt.Errorf("%w: reasoning.overrides.temperature must be a finite non-negative number", ErrInvalidConfig)
	}
	if o.TopP != nil && !validTopP(*o.TopP) {
		return fmt.Errorf("%w: reasoning.overrides.top-p must be within [0,1]", ErrInvalidConfig)
	}
	for _, entry := range cfg.Models {
		if entry.MaxTokens <= 0 {
			return fmt.Errorf("%w: models[%s].max-tokens must be positive", ErrInvalidConfig, entry.Name)
		}
		if entry.Temperature != nil && !validTemperature(*entry.Temperature) {
			return fmt.Errorf("%w: models[%s].temperature must be a finite non-negative number", ErrInvalidConfig, entry.Name)
		}
		if entry.TopP != nil && !validTopP(*entry.TopP) {
			return fmt.Errorf("%w: models[%s].top-p must be within [0,1]", ErrInvalidConfig, entry.Name)
		}
	}
	return nil
}

// NaN and infinities cannot be encoded as JSON numbers.
func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func validTemperature(v float64) bool {
	return finite(v) && v >= 0
}

func validTopP(v float64) bool {
	return finite(v) && v >= 0 && v <= 1
}

// NormalizeKeywords trims, lower-cases and de-duplicates keywords, preserving order.
func NormalizeKeywords(keywords []string) []string {
	if len(keywords) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(keywords))
	out := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		if _, ok := seen[kw]; ok {
			continue
		}
		seen[kw] = struct{}{}
		out = append(out, kw)
	}
	return out
}
