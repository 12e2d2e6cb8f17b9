package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileOverrides is the shape of an optional YAML config file; any field
// left zero does not override the environment/default value.
type FileOverrides struct {
	MonitorMode        string `yaml:"monitorMode"`
	MonitorFailureMode string `yaml:"monitorFailureMode"`
	PolicyBundleDir    string `yaml:"policyBundleDir"`
	LogLevel           string `yaml:"logLevel"`
}

// LoadFile reads path as YAML and applies any non-empty fields on top of
// cfg, returning the merged result. cfg is not mutated.
func LoadFile(cfg *Config, path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var overrides FileOverrides
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	merged := *cfg
	if overrides.MonitorMode != "" {
		merged.MonitorMode = overrides.MonitorMode
	}
	if overrides.MonitorFailureMode != "" {
		merged.MonitorFailureMode = overrides.MonitorFailureMode
	}
	if overrides.PolicyBundleDir != "" {
		merged.PolicyBundleDir = overrides.PolicyBundleDir
	}
	if overrides.LogLevel != "" {
		merged.LogLevel = overrides.LogLevel
	}
	return &merged, nil
}
