package linter

import "fmt"

// ConfigError reports a configuration file or object that could not be
// used. It is surfaced before any rule runs.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("loading config %q: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("loading config: %v", e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// RuleExecutionError reports a rule implementation failing internally.
// It aborts the whole lint invocation: skipping a broken rule would
// produce a misleadingly good score.
type RuleExecutionError struct {
	RuleID string
	Err    error
}

func (e *RuleExecutionError) Error() string {
	return fmt.Sprintf("rule %q failed: %v", e.RuleID, e.Err)
}

func (e *RuleExecutionError) Unwrap() error { return e.Err }
