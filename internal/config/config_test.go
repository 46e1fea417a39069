package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/ngaudit/pkg/core"
	"github.com/leapstack-labs/ngaudit/pkg/lint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFromDir_Defaults(t *testing.T) {
	cfg, err := LoadFromDir(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, DefaultProfile, cfg.Profile)
	assert.Equal(t, []string{"json"}, cfg.Output.Formats)
	assert.True(t, cfg.Output.IncludeRecommendations)
	assert.Equal(t, "info", cfg.Analysis.Severity)
	assert.NotEmpty(t, cfg.Ignore)
	assert.Empty(t, cfg.ConfigFile)
}

func TestLoadFromDir_File(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, ConfigFileName, `profile: team
ignore:
  - "**/generated/**"
output:
  formats: [json, table]
  path: report.json
analysis:
  severity: warning
  max_complexity: 12
profiles:
  team:
    rules:
      component-complexity:
        severity: error
      change-detection-strategy:
        enabled: false
`)

	cfg, err := LoadFromDir(dir)
	require.NoError(t, err)

	assert.Equal(t, path, cfg.ConfigFile)
	assert.Equal(t, "team", cfg.Profile)
	assert.Equal(t, []string{"**/generated/**"}, cfg.Ignore)
	assert.Equal(t, []string{"json", "table"}, cfg.Output.Formats)
	assert.Equal(t, "report.json", cfg.Output.Path)
	assert.Equal(t, "warning", cfg.Analysis.Severity)
	require.Contains(t, cfg.Profiles, "team")
	assert.Equal(t, "team", cfg.Profiles["team"].Name)

	set, err := cfg.RuleSet()
	require.NoError(t, err)
	r, ok := set.Rule(lint.RuleComponentComplexity)
	require.True(t, ok)
	assert.Equal(t, core.SeverityError, r.Severity)
	assert.Equal(t, 12, r.Params.(*lint.ComplexityParams).MaxComplexity)
	assert.Contains(t, set.Disabled(), lint.RuleChangeDetectionStrategy)

	floor, err := cfg.SeverityFloor()
	require.NoError(t, err)
	assert.Equal(t, core.SeverityWarning, floor)
}

func TestLoadFromDir_JSONDocument(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ConfigFileNameAlt, `{"profile": "strict", "output": {"formats": ["yaml"]}}`)

	cfg, err := LoadFromDir(dir)
	require.NoError(t, err)
	assert.Equal(t, "strict", cfg.Profile)
	assert.Equal(t, []string{"yaml"}, cfg.Output.Formats)
}

func TestLoadFromDir_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed", "profile: [unclosed"},
		{"bad format", "output:\n  formats: [xml]\n"},
		{"bad severity", "analysis:\n  severity: fatal\n"},
		{"negative workers", "analysis:\n  workers: -1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, ConfigFileName, tt.content)

			_, err := LoadFromDir(dir)
			require.Error(t, err)
			assert.True(t, core.IsConfigError(err), "want ConfigError, got %v", err)
		})
	}
}

func TestLoadFromDir_InactiveProfileErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    error
	}{
		{"unknown rule", "profiles:\n  team:\n    rules:\n      no-such-rule:\n        severity: error\n", core.ErrUnknownRule},
		{"bad severity", "profiles:\n  team:\n    rules:\n      component-complexity:\n        severity: bogus\n", core.ErrInvalidOption},
		{"disabled rule bad severity", "profiles:\n  team:\n    rules:\n      missing-template:\n        enabled: false\n        severity: bogus\n", core.ErrInvalidOption},
		{"bad option", "profiles:\n  team:\n    rules:\n      too-many-inputs:\n        options:\n          max_inputs: lots\n", core.ErrInvalidOption},
		{"unknown option", "profiles:\n  relaxed:\n    rules:\n      too-many-inputs:\n        options:\n          max_widgets: 3\n", core.ErrInvalidOption},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, ConfigFileName, "profile: recommended\n"+tt.content)

			_, err := LoadFromDir(dir)
			require.Error(t, err)
			assert.True(t, core.IsConfigError(err), "want ConfigError, got %v", err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestConfig_RuleSet_Errors(t *testing.T) {
	t.Run("unknown profile", func(t *testing.T) {
		cfg := Default()
		cfg.Profile = "missing"
		_, err := cfg.RuleSet()
		require.Error(t, err)
		assert.True(t, errors.Is(err, core.ErrUnknownProfile))
	})

	t.Run("unknown rule", func(t *testing.T) {
		cfg := Default()
		cfg.Profiles = map[string]lint.Profile{
			DefaultProfile: {Rules: map[string]lint.RuleSetting{"no-such-rule": {}}},
		}
		_, err := cfg.RuleSet()
		require.Error(t, err)
		assert.True(t, errors.Is(err, core.ErrUnknownRule))
		assert.True(t, core.IsConfigError(err))
	})
}

func TestConfig_RuleSet_DepthOverride(t *testing.T) {
	cfg := Default()
	cfg.Analysis.Depth = 2

	set, err := cfg.RuleSet()
	require.NoError(t, err)
	r, ok := set.Rule(lint.RuleDeepDependencyChain)
	require.True(t, ok)
	assert.Equal(t, 2, r.Params.(*lint.ChainParams).MaxDepth)
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, ConfigFileName, "profile: relaxed\n")
	nested := filepath.Join(root, "src", "app")
	require.NoError(t, os.MkdirAll(nested, 0o750))

	assert.Equal(t, root, FindProjectRoot(nested))
	assert.Empty(t, FindProjectRoot(t.TempDir()))
}
