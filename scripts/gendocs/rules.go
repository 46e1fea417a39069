package main

import (
	"fmt"
	"log"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/leapstack-labs/ngaudit/pkg/core"
	"github.com/leapstack-labs/ngaudit/pkg/lint"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// categoryDescriptions provides human-readable descriptions for rule categories.
var categoryDescriptions = map[core.Category]string{
	core.CategoryComponent:   "Rules about the size and shape of individual components.",
	core.CategoryDependency:  "Rules about the injection graph between components, services and modules.",
	core.CategoryState:       "Rules about shared mutable state and subscription cleanup.",
	core.CategoryPerformance: "Rules about change detection, lazy loading and module organization.",
}

var profileOrder = []string{lint.ProfileStrict, lint.ProfileRecommended, lint.ProfileRelaxed}

// generateRulesDocs generates the rule catalogue page.
func generateRulesDocs(outDir string) error {
	log.Printf("Generating rules docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	title := cases.Title(language.English)
	profiles := lint.BuiltinProfiles()
	w := NewMarkdownWriter()

	w.Frontmatter("Rules", "Rule catalogue for ngaudit")
	w.GeneratedMarker()

	w.Header(1, "Rules")
	w.Paragraph(fmt.Sprintf("ngaudit ships %d rules in %d categories. Only the component category runs "+
		"unless %s or %s is given.", len(lint.Rules()), len(core.AllCategories()),
		InlineCode("--analyzers"), InlineCode("--full")))

	w.Header(2, "Severity Levels")
	w.Table(
		[]string{"Severity", "Description"},
		[][]string{
			{InlineCode("error"), "Critical issue that should be fixed"},
			{InlineCode("warning"), "Potential issue that should be reviewed"},
			{InlineCode("info"), "Informational feedback"},
		},
	)

	w.Header(2, "Configuration")
	w.Paragraph("Rules are configured per profile in `ngaudit.yaml`:")
	w.CodeBlock("yaml", `profile: team
profiles:
  team:
    rules:
      change-detection-strategy:
        enabled: false         # disable rule
      component-complexity:
        severity: error        # override severity
        options:
          max_complexity: 12   # rule-specific option`)

	for _, cat := range core.AllCategories() {
		w.Line(fmt.Sprintf("## %s {#%s}", title.String(cat.String()), cat))
		w.Newline()
		if desc, ok := categoryDescriptions[cat]; ok {
			w.Paragraph(desc)
		}
		for _, def := range lint.RulesFor(cat) {
			writeRuleDoc(w, def, profiles)
		}
	}

	if err := os.WriteFile(filepath.Join(outDir, "rules.md"), w.Bytes(), 0600); err != nil {
		return err
	}
	log.Printf("  Generated rules.md")
	return nil
}

// writeRuleDoc writes detailed documentation for a single rule.
func writeRuleDoc(w *MarkdownWriter, def lint.RuleDef, profiles map[string]lint.Profile) {
	w.Line(fmt.Sprintf("### %s {#%s}", def.ID, def.ID))
	w.Newline()

	w.Line(fmt.Sprintf("**Default severity:** %s", InlineCode(def.Severity.String())))
	w.Newline()

	w.Paragraph(cleanDescription(def.Description))

	if len(def.Defaults) > 0 {
		w.Header(4, "Options")
		var rows [][]string
		for _, key := range slices.Sorted(maps.Keys(def.Defaults)) {
			rows = append(rows, []string{InlineCode(key), fmt.Sprint(def.Defaults[key])})
		}
		w.Table([]string{"Option", "Default"}, rows)
	}

	w.Header(4, "Profiles")
	var rows [][]string
	for _, name := range profileOrder {
		rows = append(rows, []string{name, profileSetting(profiles[name], def)})
	}
	w.Table([]string{"Profile", "Setting"}, rows)

	w.Line("---")
	w.Newline()
}

// profileSetting describes how a profile configures a rule.
func profileSetting(p lint.Profile, def lint.RuleDef) string {
	setting, ok := p.Rules[def.ID]
	if !ok {
		return "default"
	}
	if setting.Enabled != nil && !*setting.Enabled {
		return "off"
	}
	out := def.Severity.String()
	if setting.Severity != "" {
		out = setting.Severity
	}
	for _, key := range slices.Sorted(maps.Keys(setting.Options)) {
		out += fmt.Sprintf(", %s %v", key, setting.Options[key])
	}
	return out
}
