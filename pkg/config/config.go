// Package config loads monitor and policy-bundle defaults from the
// environment and, optionally, a YAML file — the ambient configuration
// layer that the core protocol packages (covenant, ccl, monitor, receipt,
// identity, breach) never depend on directly (spec §5 keeps the core free
// of I/O).
package config

import "os"

// Config holds the defaults a deployment-level wrapper around the
// protocol packages is expected to supply.
type Config struct {
	MonitorMode        string
	MonitorFailureMode string
	PolicyBundleDir    string
	LogLevel           string
}

// Load reads configuration from environment variables, falling back to
// safe defaults.
func Load() *Config {
	mode := os.Getenv("COVENANT_MONITOR_MODE")
	if mode == "" {
		mode = "enforce"
	}

	failureMode := os.Getenv("COVENANT_MONITOR_FAILURE_MODE")
	if failureMode == "" {
		failureMode = "fail_closed"
	}

	bundleDir := os.Getenv("COVENANT_POLICY_BUNDLE_DIR")
	if bundleDir == "" {
		bundleDir = "./policies"
	}

	logLevel := os.Getenv("COVENANT_LOG_LEVEL")
	if logLevel == "" {
		logLevel = "INFO"
	}

	return &Config{
		MonitorMode:        mode,
		MonitorFailureMode: failureMode,
		PolicyBundleDir:    bundleDir,
		LogLevel:           logLevel,
	}
}
