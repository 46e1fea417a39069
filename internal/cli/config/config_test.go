package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/ngaudit/internal/testutil"
	"github.com/leapstack-labs/ngaudit/pkg/core"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ngaudit.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func analyzeFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("profile", "", "")
	flags.String("severity", "", "")
	flags.String("format", "", "")
	flags.StringSlice("analyzers", nil, "")
	flags.Int("max-complexity", 0, "")
	flags.Bool("full", false, "")
	return flags
}

const fileContent = `profile: strict
analysis:
  severity: warning
  max_complexity: 9
`

func TestLoadConfig_FlagPrecedence(t *testing.T) {
	path := writeConfig(t, fileContent)
	t.Setenv("NGAUDIT_ANALYSIS__SEVERITY", "info")

	flags := analyzeFlags()
	require.NoError(t, flags.Set("severity", "error"))
	require.NoError(t, flags.Set("max-complexity", "20"))
	require.NoError(t, flags.Set("analyzers", "state,performance"))
	require.NoError(t, flags.Set("format", "table"))

	cfg, err := LoadConfig(path, flags)
	require.NoError(t, err)

	assert.Equal(t, "error", cfg.Analysis.Severity, "flag value should override env var and config file")
	assert.Equal(t, 20, cfg.Analysis.MaxComplexity)
	assert.Equal(t, []string{"state", "performance"}, cfg.Analysis.Analyzers)
	assert.Equal(t, []string{"table"}, cfg.Output.Formats)
	assert.Equal(t, "strict", cfg.Profile)
	assert.Equal(t, path, cfg.ConfigFile)
}

func TestLoadConfig_EnvPrecedenceOverFile(t *testing.T) {
	path := writeConfig(t, fileContent)
	t.Setenv("NGAUDIT_ANALYSIS__SEVERITY", "error")
	t.Setenv("NGAUDIT_PROFILE", "relaxed")

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "error", cfg.Analysis.Severity, "env var should override config file")
	assert.Equal(t, "relaxed", cfg.Profile)
	assert.Equal(t, 9, cfg.Analysis.MaxComplexity)
}

func TestLoadConfig_FlagNotSetUsesFile(t *testing.T) {
	path := writeConfig(t, fileContent)

	flags := analyzeFlags()
	cfg, err := LoadConfig(path, flags)
	require.NoError(t, err)

	assert.Equal(t, "warning", cfg.Analysis.Severity, "unset flag should not override config file")
	assert.Equal(t, "strict", cfg.Profile)
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"), nil)
	require.Error(t, err)
	assert.True(t, core.IsConfigError(err))
}

func TestLoadConfig_InvalidFlagValue(t *testing.T) {
	flags := analyzeFlags()
	require.NoError(t, flags.Set("format", "xml"))

	_, err := LoadConfig(writeConfig(t, "profile: recommended\n"), flags)
	require.Error(t, err)
	assert.True(t, core.IsConfigError(err))
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "profile", envKey("NGAUDIT_PROFILE"))
	assert.Equal(t, "analysis.max_complexity", envKey("NGAUDIT_ANALYSIS__MAX_COMPLEXITY"))
}

func TestEnvVar_RoundTrip(t *testing.T) {
	for _, key := range []string{"profile", "analysis.max_complexity", "output.include_metrics"} {
		assert.Equal(t, key, envKey(EnvVar(key)))
	}
	assert.Equal(t, "NGAUDIT_ANALYSIS__SEVERITY", EnvVar("analysis.severity"))
}

func TestFlagKey(t *testing.T) {
	assert.Equal(t, "analysis.max_complexity", FlagKey("max-complexity"))
	assert.Equal(t, "output.path", FlagKey("out"))
	assert.Equal(t, "profile", FlagKey("profile"))
	assert.Equal(t, "verbose", FlagKey("verbose"))
}

func TestGetLogger(t *testing.T) {
	assert.NotNil(t, GetLogger(context.Background()))

	logger := testutil.NewTestLogger(t)
	ctx := WithLogger(context.Background(), logger)
	assert.Same(t, logger, GetLogger(ctx))
}

func TestGetConfig(t *testing.T) {
	assert.Equal(t, "recommended", GetConfig(context.Background()).Profile)

	cfg := GetConfig(context.Background())
	cfg.Profile = "strict"
	ctx := WithConfig(context.Background(), cfg)
	assert.Same(t, cfg, GetConfig(ctx))
}
