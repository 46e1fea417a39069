package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/leapstack-labs/ngaudit/internal/config"
)

// ConfigField represents a configuration key.
type ConfigField struct {
	Key         string
	Type        string
	Default     string
	Description string
}

// fieldDescriptions documents each leaf configuration key.
var fieldDescriptions = map[string]string{
	"profile":                        "Active rule profile: a built-in or a key of `profiles`",
	"profiles":                       "User profiles, merged over the built-ins by name",
	"ignore":                         "Globs for record paths that are skipped",
	"verbose":                        "Debug logging on stderr",
	"output.formats":                 "Report formats: json, yaml, table",
	"output.path":                    "Report file; stdout when empty",
	"output.include_recommendations": "Include recommendations in reports",
	"output.include_metrics":         "Include project metrics in reports",
	"analysis.analyzers":             "Categories to run: component, dependency, state, performance, full",
	"analysis.full":                  "Run every category",
	"analysis.severity":              "Minimum severity shown: error, warning, info",
	"analysis.max_complexity":        "Overrides `max_complexity` of every rule that declares it; 0 keeps the profile value",
	"analysis.depth":                 "Overrides `max_depth` of every rule that declares it; 0 keeps the profile value",
	"analysis.workers":               "Concurrent workers; 0 uses all CPUs",
	"analysis.root":                  "Project root; also the default input when no records are given",
}

// configFields walks the koanf tags of the configuration document.
func configFields() []ConfigField {
	defaults := config.Defaults()
	var fields []ConfigField

	var walk func(t reflect.Type, prefix string)
	walk = func(t reflect.Type, prefix string) {
		for i := range t.NumField() {
			f := t.Field(i)
			tag := f.Tag.Get("koanf")
			if tag == "" || tag == "-" {
				continue
			}
			key := prefix + tag
			if f.Type.Kind() == reflect.Struct {
				walk(f.Type, key+".")
				continue
			}
			def := ""
			if v, ok := defaults[key]; ok {
				def = fmt.Sprint(v)
			}
			fields = append(fields, ConfigField{
				Key:         key,
				Type:        f.Type.String(),
				Default:     def,
				Description: fieldDescriptions[key],
			})
		}
	}
	walk(reflect.TypeFor[config.Config](), "")
	return fields
}

// generateConfigDocs generates the configuration reference page.
func generateConfigDocs(outDir string) error {
	log.Printf("Generating config docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	w := NewMarkdownWriter()
	w.Frontmatter("Configuration", "ngaudit configuration reference")
	w.GeneratedMarker()

	w.Header(1, "Configuration")
	w.Paragraph(fmt.Sprintf("ngaudit reads %s (or %s) from the project root, found by searching upward "+
		"from the working directory. Run %s to write one.",
		InlineCode(config.ConfigFileName), InlineCode(config.ConfigFileNameAlt), InlineCode("ngaudit init")))

	w.Header(2, "Keys")
	var rows [][]string
	for _, f := range configFields() {
		def := f.Default
		if def != "" {
			def = InlineCode(def)
		}
		rows = append(rows, []string{InlineCode(f.Key), InlineCode(strings.TrimPrefix(f.Type, "map[string]lint.")), def, f.Description})
	}
	w.Table([]string{"Key", "Type", "Default", "Description"}, rows)

	if err := os.WriteFile(filepath.Join(outDir, "configuration.md"), w.Bytes(), 0600); err != nil {
		return err
	}
	log.Printf("  Generated configuration.md")
	return nil
}
