package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Environment variables recognised by ApplyEnv.
const (
	EnvConfigPath             = "REASONING_CONFIG"
	EnvDebug                  = "REASONING_DEBUG"
	EnvLoggingToFile          = "REASONING_LOGGING_TO_FILE"
	EnvLogDir                 = "REASONING_LOG_DIR"
	EnvLogTokenEstimate       = "REASONING_LOG_TOKEN_ESTIMATE"
	EnvForcePermanentThinking = "REASONING_FORCE_PERMANENT_THINKING"
	EnvIgnoreSystemMessages   = "REASONING_IGNORE_SYSTEM_MESSAGES"
	EnvOverrideKeywords       = "REASONING_OVERRIDE_KEYWORDS"
	EnvCustomKeywords         = "REASONING_CUSTOM_KEYWORDS"
	EnvOverrideMaxTokens      = "REASONING_OVERRIDE_MAX_TOKENS"
	EnvOverrideTemperature    = "REASONING_OVERRIDE_TEMPERATURE"
	EnvOverrideTopP           = "REASONING_OVERRIDE_TOP_P"
	EnvOverrideReasoning      = "REASONING_OVERRIDE_REASONING"
	EnvOverrideKeywordDetect  = "REASONING_OVERRIDE_KEYWORD_DETECTION"
)

// LoadEnvFile loads KEY=VALUE pairs from path into the process environment.
// Variables already set take precedence. A missing file is not an error.
func LoadEnvFile(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return nil
}

// ApplyEnv overlays REASONING_* environment variables onto cfg.
// Values that cannot be parsed are logged and ignored.
func (cfg *Config) ApplyEnv() {
	if cfg == nil {
		return
	}
	envBool(EnvDebug, &cfg.Debug)
	envBool(EnvLoggingToFile, &cfg.LoggingToFile)
	if v, ok := lookupEnv(EnvLogDir); ok {
		cfg.LogDir = v
	}
	envBool(EnvLogTokenEstimate, &cfg.LogTokenEstimate)

	r := &cfg.Reasoning
	envBool(EnvForcePermanentThinking, &r.ForcePermanentThinking)
	envBool(EnvIgnoreSystemMessages, &r.IgnoreSystemMessages)
	envBool(EnvOverrideKeywords, &r.OverrideKeywords)
	if v, ok := lookupEnv(EnvCustomKeywords); ok {
		r.CustomKeywords = NormalizeKeywords(strings.Split(v, ","))
	}

	o := &r.Overrides
	if v, ok := lookupEnv(EnvOverrideMaxTokens); ok {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			log.Warnf("config: ignoring %s=%q: expected a positive integer", EnvOverrideMaxTokens, v)
		} else {
			o.MaxTokens = &n
		}
	}
	envFloatPtr(EnvOverrideTemperature, &o.Temperature, validTemperature)
	envFloatPtr(EnvOverrideTopP, &o.TopP, validTopP)
	envBoolPtr(EnvOverrideReasoning, &o.Reasoning)
	envBoolPtr(EnvOverrideKeywordDetect, &o.KeywordDetection)
}

// FromEnv builds a configuration purely from the environment, optionally reading the YAML
// file named by REASONING_CONFIG first.
func FromEnv() (*Config, error) {
	cfg := &Config{}
	if path, ok := lookupEnv(EnvConfigPath); ok {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	cfg.ApplyEnv()
	cfg.Sanitize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func lookupEnv(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return "", false
	}
	return v, true
}

func parseBool(v string) (bool, bool) {
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true, true
	case "0", "false", "no", "off":
		return false, true
	}
	return false, false
}

func envBool(key string, dst *bool) {
	v, ok := lookupEnv(key)
	if !ok {
		return
	}
	b, valid := parseBool(v)
	if !valid {
		log.Warnf("config: ignoring %s=%q: expected a boolean", key, v)
		return
	}
	*dst = b
}

func envBoolPtr(key string, dst **bool) {
	v, ok := lookupEnv(key)
	if !ok {
		return
	}
	b, valid := parseBool(v)
	if !valid {
		log.Warnf("config: ignoring %s=%q: expected a boolean", key, v)
		return
	}
	*dst = &b
}

// envFloatPtr parses a float accepted by valid.
func envFloatPtr(key string, dst **float64, valid func(float64) bool) {
	v, ok := lookupEnv(key)
	if !ok {
		return
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || !valid(f) {
		log.Warnf("config: ignoring %s=%q: out of range or not a number", key, v)
		return
	}
	*dst = &f
}
