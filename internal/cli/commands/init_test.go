package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/ngaudit/internal/cli/testutil"
	"github.com/leapstack-labs/ngaudit/internal/config"
	"github.com/leapstack-labs/ngaudit/pkg/core"
	"github.com/leapstack-labs/ngaudit/pkg/lint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInitCommand(t *testing.T) {
	tests := []struct {
		name     string
		setupDir func(t *testing.T, dir string)
		args     []string
		wantErr  bool
	}{
		{
			name: "init empty directory",
			args: []string{},
		},
		{
			name: "init existing config without force",
			setupDir: func(_ *testing.T, dir string) {
				_ = os.WriteFile(filepath.Join(dir, "ngaudit.yaml"), []byte("existing"), 0o600)
			},
			args:    []string{},
			wantErr: true,
		},
		{
			name: "init existing config with force",
			setupDir: func(_ *testing.T, dir string) {
				_ = os.WriteFile(filepath.Join(dir, "ngaudit.yaml"), []byte("existing"), 0o600)
			},
			args: []string{"--force"},
		},
		{
			name:    "unknown profile",
			args:    []string{"--profile", "lenient"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			if tt.setupDir != nil {
				tt.setupDir(t, tmpDir)
			}

			cmd := NewInitCommand()
			buf := new(bytes.Buffer)
			cmd.SetOut(buf)
			cmd.SetErr(buf)
			cmd.SetArgs(append([]string{tmpDir}, tt.args...))

			err := cmd.Execute()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.FileExists(t, filepath.Join(tmpDir, "ngaudit.yaml"))
		})
	}
}

func TestInitCommandMetadata(t *testing.T) {
	cmd := NewInitCommand()

	assert.Equal(t, "init [directory]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotNil(t, cmd.Flags().Lookup("force"), "--force flag should exist")
	assert.NotNil(t, cmd.Flags().Lookup("profile"), "--profile flag should exist")
}

func TestInitCreatesLoadableConfig(t *testing.T) {
	tmpDir := t.TempDir()

	cmd := NewInitCommand()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{tmpDir, "--profile", "strict"})
	require.NoError(t, cmd.Execute())

	content, err := os.ReadFile(filepath.Join(tmpDir, "ngaudit.yaml"))
	require.NoError(t, err)
	for _, expected := range []string{"profile: strict", "component-complexity:", "max_complexity: 8"} {
		assert.Contains(t, string(content), expected, "config should contain %q", expected)
	}

	cfg, err := config.LoadFromDir(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, "strict", cfg.Profile)

	set, err := cfg.RuleSet()
	require.NoError(t, err)
	r, ok := set.Rule(lint.RuleComponentComplexity)
	require.True(t, ok)
	assert.Equal(t, core.SeverityError, r.Severity)
}

func TestRunInit_Output(t *testing.T) {
	tr := testutil.NewTestRenderer(false)
	dir := filepath.Join(t.TempDir(), "nested")

	require.NoError(t, runInit(tr.Renderer, dir, lint.ProfileRelaxed, false))

	out := tr.Output()
	assert.Contains(t, out, "relaxed profile")
	assert.Contains(t, out, "Next steps:")
	testutil.AssertNoANSI(t, out)
	assert.FileExists(t, filepath.Join(dir, "ngaudit.yaml"))
}
