package monitor

import "fmt"

// MonitorDeniedError is raised by Evaluate in ModeEnforce when the action is
// denied, carrying enough context for the caller to report why.
type MonitorDeniedError struct {
	Action      string
	Resource    string
	MatchedRule string
	Severity    string
}

func (e *MonitorDeniedError) Error() string {
	return fmt.Sprintf("monitor: denied %s on %s (rule: %s, severity: %s)", e.Action, e.Resource, e.MatchedRule, e.Severity)
}

// ConfigError reports an invalid Monitor construction parameter.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("monitor: invalid config field %q: %s", e.Field, e.Message)
}
