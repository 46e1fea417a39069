package commands

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/ngaudit/internal/cli/output"
	"github.com/leapstack-labs/ngaudit/pkg/core"
	"github.com/leapstack-labs/ngaudit/pkg/lint"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// RulesOptions holds options for the rules command.
type RulesOptions struct {
	Category string // Filter by category
	JSON     bool   // Machine-readable output
}

// NewRulesCommand creates the rules command.
func NewRulesCommand() *cobra.Command {
	opts := &RulesOptions{}
	cmd := &cobra.Command{
		Use:   "rules [rule-id]",
		Short: "List available rules",
		Long: `List the rule catalogue with each rule's category, default severity
and default options.

Rules are grouped by category in evaluation order.`,
		Example: `  # List all rules
  ngaudit rules

  # Show a single rule
  ngaudit rules component-complexity

  # List dependency rules only
  ngaudit rules --category dependency

  # Output as JSON
  ngaudit rules --json`,
		Args: cobra.MaximumNArgs(1),
		ValidArgsFunction: func(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			var ids []string
			for _, id := range ruleIDs() {
				if hasPrefixFold(id, toComplete) {
					ids = append(ids, id)
				}
			}
			return ids, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr())
			if len(args) > 0 {
				return showRule(r, args[0], opts)
			}
			return listRules(r, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Category, "category", "c", "", "Filter by category: component, dependency, state, performance")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Output as JSON")

	return cmd
}

func listRules(r *output.Renderer, opts *RulesOptions) error {
	rules := lint.Info()
	if opts.Category != "" {
		cat, err := core.ParseCategory(opts.Category)
		if err != nil {
			return err
		}
		rules = slices.DeleteFunc(rules, func(ri core.RuleInfo) bool { return ri.Category != cat })
	}

	if opts.JSON {
		return writeRulesJSON(r, rules)
	}

	titleCaser := cases.Title(language.English)
	t := table.NewWriter()
	t.SetOutputMirror(r.Out())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Category", "Rule", "Severity", "Description"})
	current := core.Category(-1)
	for _, ri := range rules {
		if ri.Category != current && current >= 0 {
			t.AppendSeparator()
		}
		current = ri.Category
		t.AppendRow(table.Row{titleCaser.String(ri.Category.String()), ri.ID, ri.DefaultSeverity.String(), ri.Description})
	}
	t.Render()

	r.Println("")
	r.Println(r.Styles().Muted.Render(fmt.Sprintf("%d rules", len(rules))))
	return nil
}

func showRule(r *output.Renderer, ruleID string, opts *RulesOptions) error {
	def, ok := lint.Lookup(ruleID)
	if !ok {
		return fmt.Errorf("rule %q not found", ruleID)
	}
	info := core.RuleInfo{
		ID:              def.ID,
		Category:        def.Category,
		Description:     def.Description,
		DefaultSeverity: def.Severity,
		DefaultOptions:  def.Defaults,
	}

	if opts.JSON {
		return writeRulesJSON(r, info)
	}

	styles := r.Styles()
	r.Println(styles.Header1.Render(info.ID))
	r.Println("")
	r.Println(info.Description)
	r.Println("")
	r.Printf("  %s %s\n", styles.Bold.Render("Category:"), info.Category)
	r.Printf("  %s %s\n", styles.Bold.Render("Severity:"), styles.Severity(info.DefaultSeverity).Render(info.DefaultSeverity.String()))
	if len(info.DefaultOptions) > 0 {
		r.Printf("  %s\n", styles.Bold.Render("Options:"))
		for _, key := range slices.Sorted(maps.Keys(info.DefaultOptions)) {
			r.Printf("    %s = %v\n", key, info.DefaultOptions[key])
		}
	}
	return nil
}

func writeRulesJSON(r *output.Renderer, v any) error {
	enc := json.NewEncoder(r.Out())
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode rules: %w", err)
	}
	return nil
}

// ruleIDs returns the catalogue ids, used for completion.
func ruleIDs() []string {
	rules := lint.Rules()
	ids := make([]string, len(rules))
	for i, def := range rules {
		ids[i] = def.ID
	}
	return ids
}

// hasPrefixFold reports whether s starts with prefix, ignoring case.
func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
