// Package main provides tests for the ngaudit CLI.
package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leapstack-labs/ngaudit/internal/cli"
	clitest "github.com/leapstack-labs/ngaudit/internal/cli/testutil"
	"github.com/leapstack-labs/ngaudit/internal/testutil"
	"github.com/leapstack-labs/ngaudit/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupRecords writes the Foo fixture to records.json in a fresh working
// directory.
func setupRecords(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)

	return clitest.WriteRecords(t, dir, "records.json", testutil.FooRecords())
}

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cmd := cli.NewRootCmd()
	out := new(bytes.Buffer)
	errOut := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "ngaudit")
}

func TestHelpCommand(t *testing.T) {
	out, _, err := execute(t, "--help")
	require.NoError(t, err)

	for _, expected := range []string{"analyze", "rules", "init", "version", "completion"} {
		assert.Contains(t, out, expected, "help output should list %q", expected)
	}
}

func TestCompletionCommand(t *testing.T) {
	out, _, err := execute(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "ngaudit")
}

func TestAnalyzeCommand(t *testing.T) {
	records := setupRecords(t)

	out, errOut, err := execute(t, "analyze", records)
	require.NoError(t, err)

	var report struct {
		Issues          []core.Issue     `json:"issues"`
		Summary         core.Summary     `json:"summary"`
		Recommendations []map[string]any `json:"recommendations"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Len(t, report.Issues, 3)
	assert.Equal(t, 3, report.Summary.Shown)
	assert.Len(t, report.Recommendations, 1)
	assert.Contains(t, errOut, "3 issues")
}

func TestAnalyzeCommand_Flags(t *testing.T) {
	t.Run("severity floor", func(t *testing.T) {
		records := setupRecords(t)
		out, _, err := execute(t, "analyze", records, "--severity", "error")
		require.NoError(t, err)

		var report struct {
			Issues []core.Issue `json:"issues"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &report))
		require.Len(t, report.Issues, 1)
		assert.Equal(t, "missing-template", report.Issues[0].Rule)
	})

	t.Run("complexity override", func(t *testing.T) {
		records := setupRecords(t)
		out, _, err := execute(t, "analyze", records, "--max-complexity", "20", "--format", "table")
		require.NoError(t, err)
		assert.NotContains(t, out, "component-complexity")
		assert.Contains(t, out, "missing-template")
	})

	t.Run("report file", func(t *testing.T) {
		records := setupRecords(t)
		path := filepath.Join(filepath.Dir(records), "report.yaml")
		out, _, err := execute(t, "analyze", records, "--format", "yaml", "--out", path)
		require.NoError(t, err)
		assert.Empty(t, out)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(data), "project:"))
	})
}

func TestAnalyzeCommand_ConfigFile(t *testing.T) {
	records := setupRecords(t)
	cfg := `profile: strict
analysis:
  severity: warning
`
	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(records), "ngaudit.yaml"), []byte(cfg), 0o600))

	out, _, err := execute(t, "analyze", records)
	require.NoError(t, err)

	var report struct {
		Issues []core.Issue `json:"issues"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Len(t, report.Issues, 3)
	for _, is := range report.Issues {
		if is.Rule == "component-complexity" {
			assert.Equal(t, core.SeverityError, is.Severity)
			assert.Contains(t, is.Message, "maximum of 8")
		}
	}
}

func TestAnalyzeCommand_WorkspaceDirectory(t *testing.T) {
	records := setupRecords(t)
	dir := filepath.Dir(records)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ngaudit.yaml"), []byte("profile: recommended\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"), []byte(`{"name": "app"}`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tsconfig.json"), []byte(`{"compilerOptions": {}}`), 0o600))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "node_modules", "lib"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "node_modules", "lib", "index.json"), []byte(`{"broken": `), 0o600))

	out, _, err := execute(t, "analyze")
	require.NoError(t, err)

	var report struct {
		Issues   []core.Issue   `json:"issues"`
		Warnings []core.Warning `json:"warnings"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Empty(t, report.Warnings)
	assert.Len(t, report.Issues, 3)
}

func TestAnalyzeCommand_UnknownAnalyzer(t *testing.T) {
	records := setupRecords(t)

	_, _, err := execute(t, "analyze", records, "--analyzers", "styling")
	require.Error(t, err)

	var cfgErr *core.ConfigError
	assert.True(t, errors.As(err, &cfgErr), "expected a ConfigError, got %T", err)
}

func TestAnalyzeCommand_MissingInput(t *testing.T) {
	setupRecords(t)

	_, _, err := execute(t, "analyze", "does-not-exist.json")
	assert.Error(t, err)
}
