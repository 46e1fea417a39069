package config

import (
	"github.com/leapstack-labs/ngaudit/internal/loader"
	"github.com/leapstack-labs/ngaudit/pkg/lint"
)

// Default configuration values.
const (
	DefaultProfile  = lint.ProfileRecommended
	DefaultFormat   = "json"
	DefaultSeverity = "info"
)

// Defaults returns the lowest-precedence configuration layer as a flat
// key map.
func Defaults() map[string]any {
	return map[string]any{
		"profile":                        DefaultProfile,
		"ignore":                         loader.DefaultIgnore,
		"verbose":                        false,
		"output.formats":                 []string{DefaultFormat},
		"output.path":                    "",
		"output.include_recommendations": true,
		"output.include_metrics":         true,
		"analysis.severity":              DefaultSeverity,
		"analysis.full":                  false,
		"analysis.max_complexity":        0,
		"analysis.depth":                 0,
		"analysis.workers":               0,
		"analysis.root":                  ".",
	}
}

// Default returns a Config holding the default values.
func Default() *Config {
	return &Config{
		Profile: DefaultProfile,
		Ignore:  append([]string(nil), loader.DefaultIgnore...),
		Output: OutputConfig{
			Formats:                []string{DefaultFormat},
			IncludeRecommendations: true,
			IncludeMetrics:         true,
		},
		Analysis: AnalysisConfig{Severity: DefaultSeverity, Root: "."},
	}
}
