package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/leapstack-labs/ngaudit/pkg/core"
	"github.com/leapstack-labs/ngaudit/pkg/lint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRulesCommand(t *testing.T) {
	cmd := NewRulesCommand()

	assert.Equal(t, "rules [rule-id]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")

	flags := []string{"category", "json"}
	for _, flag := range flags {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func executeRules(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRulesCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestRulesCommand_ListAll(t *testing.T) {
	output, err := executeRules(t)
	require.NoError(t, err)

	assert.Contains(t, output, "Component")
	assert.Contains(t, output, "Performance")
	assert.Contains(t, output, lint.RuleComponentComplexity)
	assert.Contains(t, output, lint.RuleFeatureModuleOrganization)
	assert.Contains(t, output, fmt.Sprintf("%d rules", len(lint.Rules())))
}

func TestRulesCommand_FilterByCategory(t *testing.T) {
	t.Run("state", func(t *testing.T) {
		output, err := executeRules(t, "--category", "state")
		require.NoError(t, err)

		assert.Contains(t, output, lint.RuleMissingUnsubscribePattern)
		assert.NotContains(t, output, lint.RuleComponentComplexity)
	})

	t.Run("unknown category", func(t *testing.T) {
		_, err := executeRules(t, "-c", "styling")
		assert.Error(t, err)
	})
}

func TestRulesCommand_ShowSpecificRule(t *testing.T) {
	output, err := executeRules(t, lint.RuleComponentComplexity)
	require.NoError(t, err)

	assert.Contains(t, output, lint.RuleComponentComplexity)
	assert.Contains(t, output, "warning")
	assert.Contains(t, output, "max_complexity = 10")
}

func TestRulesCommand_UnknownRule(t *testing.T) {
	_, err := executeRules(t, "no-such-rule")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestRulesCommand_JSON(t *testing.T) {
	output, err := executeRules(t, "--json", "--category", "dependency")
	require.NoError(t, err)

	var rules []map[string]any
	require.NoError(t, json.Unmarshal([]byte(output), &rules))
	require.Len(t, rules, len(lint.RulesFor(core.CategoryDependency)))
	for _, r := range rules {
		assert.Equal(t, "dependency", r["category"])
	}
}

func TestHasPrefixFold(t *testing.T) {
	assert.True(t, hasPrefixFold("component-complexity", "COMP"))
	assert.True(t, hasPrefixFold("circular-dependency", ""))
	assert.False(t, hasPrefixFold("circular", "circular-dependency"))
}
