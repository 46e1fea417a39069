// Package config provides the configuration schema for ngaudit and the
// pieces shared by every front end: defaults, config file discovery,
// validation and rule set resolution. Layered loading with environment
// variables and flags lives in the CLI.
package config

import "github.com/leapstack-labs/ngaudit/pkg/lint"

// Config is the full configuration document.
type Config struct {
	// Profile names the active rule profile.
	Profile string `koanf:"profile" yaml:"profile" validate:"required"`
	// Profiles are user profiles, merged over the built-ins by name.
	Profiles map[string]lint.Profile `koanf:"profiles" yaml:"profiles,omitempty"`
	// Ignore holds glob patterns for record paths that are skipped.
	Ignore   []string       `koanf:"ignore" yaml:"ignore,omitempty" validate:"dive,required"`
	Output   OutputConfig   `koanf:"output" yaml:"output"`
	Analysis AnalysisConfig `koanf:"analysis" yaml:"analysis"`
	Verbose  bool           `koanf:"verbose" yaml:"verbose,omitempty"`

	// ConfigFile is the file the document was read from, if any.
	ConfigFile string `koanf:"-" yaml:"-"`
}

// OutputConfig controls report rendering.
type OutputConfig struct {
	Formats                []string `koanf:"formats" yaml:"formats" validate:"dive,oneof=json yaml table"`
	Path                   string   `koanf:"path" yaml:"path,omitempty"`
	IncludeRecommendations bool     `koanf:"include_recommendations" yaml:"include_recommendations"`
	IncludeMetrics         bool     `koanf:"include_metrics" yaml:"include_metrics"`
}

// AnalysisConfig holds per-run analysis settings. Every field has a
// matching analyze flag.
type AnalysisConfig struct {
	Analyzers     []string `koanf:"analyzers" yaml:"analyzers,omitempty"`
	Full          bool     `koanf:"full" yaml:"full,omitempty"`
	Severity      string   `koanf:"severity" yaml:"severity" validate:"oneof=error warning info"`
	MaxComplexity int      `koanf:"max_complexity" yaml:"max_complexity,omitempty" validate:"gte=0"`
	Depth         int      `koanf:"depth" yaml:"depth,omitempty" validate:"gte=0"`
	Workers       int      `koanf:"workers" yaml:"workers,omitempty" validate:"gte=0"`
	Root          string   `koanf:"root" yaml:"root,omitempty"`
}
