package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/ngaudit/pkg/lint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigFields_Described(t *testing.T) {
	fields := configFields()
	require.NotEmpty(t, fields)
	for _, f := range fields {
		assert.NotEmpty(t, f.Description, "config key %s has no description", f.Key)
	}
}

func TestGenerateRulesDocs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, generateRulesDocs(dir))

	data, err := os.ReadFile(filepath.Join(dir, "rules.md"))
	require.NoError(t, err)
	for _, def := range lint.Rules() {
		assert.Contains(t, string(data), "### "+def.ID)
	}
}

func TestProfileSetting(t *testing.T) {
	profiles := lint.BuiltinProfiles()
	def, ok := lint.Lookup(lint.RuleComponentComplexity)
	require.True(t, ok)

	assert.Equal(t, "error, max_complexity 8", profileSetting(profiles[lint.ProfileStrict], def))

	cd, _ := lint.Lookup(lint.RuleChangeDetectionStrategy)
	assert.Equal(t, "off", profileSetting(profiles[lint.ProfileRelaxed], cd))

	tc, _ := lint.Lookup(lint.RuleTemplateConflict)
	assert.Equal(t, "default", profileSetting(profiles[lint.ProfileRecommended], tc))
}

func TestMarkdownWriter_Table(t *testing.T) {
	w := NewMarkdownWriter()
	w.Table([]string{"A", "B"}, [][]string{{"x|y", "z"}})
	assert.Equal(t, "| A | B |\n| --- | --- |\n| x\\|y | z |\n\n", string(w.Bytes()))
}

func TestGenerateCLIDocs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, generateCLIDocs(dir))

	index, err := os.ReadFile(filepath.Join(dir, "index.md"))
	require.NoError(t, err)
	assert.Contains(t, string(index), "`NGAUDIT_ANALYSIS__SEVERITY`")
	assert.Contains(t, string(index), "[`analyze`](/cli/analyze)")

	analyze, err := os.ReadFile(filepath.Join(dir, "analyze.md"))
	require.NoError(t, err)
	assert.Contains(t, string(analyze), "| `--max-complexity` | `0` | `analysis.max_complexity` |")
	assert.Contains(t, string(analyze), "## Examples")
	assert.FileExists(t, filepath.Join(dir, "rules.md"))
	assert.NoFileExists(t, filepath.Join(dir, "help.md"))
}

func TestDedent(t *testing.T) {
	in := "\n  # first\n  ngaudit analyze\n\n    --full\n"
	assert.Equal(t, "# first\nngaudit analyze\n\n  --full", dedent(in))
}
