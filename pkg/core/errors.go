package core

import (
	"errors"
	"fmt"
)

// Sentinel errors for configuration problems. They are wrapped in a ConfigError
// before reaching the caller.
var (
	ErrUnknownRule     = errors.New("unknown rule")
	ErrUnknownCategory = errors.New("unknown analyzer category")
	ErrUnknownProfile  = errors.New("unknown profile")
	ErrInvalidOption   = errors.New("invalid rule option")
)

// ConfigError is a fatal configuration problem. A run that hits one aborts
// before any analysis executes.
type ConfigError struct {
	Source string
	Err    error
}

// NewConfigError wraps err as a ConfigError attributed to source.
func NewConfigError(source string, err error) *ConfigError {
	return &ConfigError{Source: source, Err: err}
}

func (e *ConfigError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("config error: %v", e.Err)
	}
	return fmt.Sprintf("config error (%s): %v", e.Source, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// IsConfigError reports whether err is or wraps a ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

// WarningKind classifies non-fatal conditions collected during a run.
type WarningKind string

// Warning kinds.
const (
	// WarningParse marks a malformed or incomplete file record.
	WarningParse WarningKind = "parse"
	// WarningRule marks a rule whose evaluation failed internally.
	WarningRule WarningKind = "rule"
	// WarningGraph marks a dependency graph inconsistency.
	WarningGraph WarningKind = "graph"
)

// Warning is a non-fatal condition that degraded the result without aborting it.
type Warning struct {
	Kind     WarningKind `json:"kind"`
	FilePath string      `json:"file_path,omitempty"`
	Rule     string      `json:"rule,omitempty"`
	Message  string      `json:"message"`
}

// ParseWarning builds a warning for a record that could not be fully extracted.
func ParseWarning(path, format string, args ...any) Warning {
	return Warning{Kind: WarningParse, FilePath: path, Message: fmt.Sprintf(format, args...)}
}

// RuleFault builds a warning for a rule whose predicate failed.
func RuleFault(ruleID, path string, cause any) Warning {
	return Warning{Kind: WarningRule, Rule: ruleID, FilePath: path, Message: fmt.Sprintf("rule evaluation failed: %v", cause)}
}
