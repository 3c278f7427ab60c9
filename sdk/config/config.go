// Package config provides the public SDK configuration API.
//
// It re-exports the transformer configuration types and helpers so external projects can
// embed the reasoning transformer without importing internal packages.
package config

import internalconfig "github.com/router-for-me/reasoning-transformer/internal/config"

type Config = internalconfig.Config
type ReasoningConfig = internalconfig.ReasoningConfig
type Overrides = internalconfig.Overrides
type ModelEntry = internalconfig.ModelEntry

var ErrInvalidConfig = internalconfig.ErrInvalidConfig

const EnvConfigPath = internalconfig.EnvConfigPath

func LoadConfig(configFile string) (*Config, error) { return internalconfig.LoadConfig(configFile) }

func LoadConfigOptional(configFile string, optional bool) (*Config, error) {
	return internalconfig.LoadConfigOptional(configFile, optional)
}

func ParseConfig(data []byte, allowEmpty bool) (*Config, error) {
	return internalconfig.ParseConfig(data, allowEmpty)
}

// FromEnv loads the file named by REASONING_CONFIG, if any, and overlays REASONING_* variables.
func FromEnv() (*Config, error) { return internalconfig.FromEnv() }

func LoadEnvFile(path string) error { return internalconfig.LoadEnvFile(path) }
