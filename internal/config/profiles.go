package config

import (
	"github.com/leapstack-labs/ngaudit/pkg/core"
	"github.com/leapstack-labs/ngaudit/pkg/lint"
)

// AllProfiles returns the built-in profiles with the user profiles merged
// over them.
func (c *Config) AllProfiles() map[string]lint.Profile {
	return lint.MergeProfiles(lint.BuiltinProfiles(), c.Profiles)
}

// RuleSet resolves the active profile together with the complexity and
// depth overrides.
func (c *Config) RuleSet() (*lint.RuleSet, error) {
	profile, err := lint.SelectProfile(c.AllProfiles(), c.Profile)
	if err != nil {
		return nil, err
	}
	return lint.Resolve(profile, lint.Overrides{
		MaxComplexity: c.Analysis.MaxComplexity,
		MaxDepth:      c.Analysis.Depth,
	})
}

// SeverityFloor returns the configured severity floor.
func (c *Config) SeverityFloor() (core.Severity, error) {
	s, ok := core.ParseSeverity(c.Analysis.Severity)
	if !ok {
		return 0, core.NewConfigError("analysis.severity", core.ErrInvalidOption)
	}
	return s, nil
}
