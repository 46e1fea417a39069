package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/ngaudit/internal/cli"
	"github.com/leapstack-labs/ngaudit/internal/cli/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// generateCLIDocs writes index.md plus one page per ngaudit command.
func generateCLIDocs(outDir string) error {
	log.Printf("Generating CLI docs to %s", outDir)
	if err := os.MkdirAll(outDir, 0o750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	root := cli.NewRootCmd()
	keys := configKeys()

	if err := writePage(outDir, "index", cliIndex(root, keys)); err != nil {
		return err
	}
	for _, cmd := range documentedCommands(root) {
		if err := writePage(outDir, cmd.Name(), commandPage(cmd, keys)); err != nil {
			return err
		}
	}
	return nil
}

func writePage(outDir, name string, w *MarkdownWriter) error {
	path := filepath.Join(outDir, name+".md")
	if err := os.WriteFile(path, w.Bytes(), 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	log.Printf("  Generated %s.md", name)
	return nil
}

// documentedCommands returns the user-facing subcommands of root.
func documentedCommands(root *cobra.Command) []*cobra.Command {
	var out []*cobra.Command
	for _, cmd := range root.Commands() {
		if cmd.Hidden || cmd.Name() == "help" || strings.HasPrefix(cmd.Name(), "__") {
			continue
		}
		out = append(out, cmd)
	}
	return out
}

// configKeys returns the set of leaf configuration keys.
func configKeys() map[string]bool {
	keys := make(map[string]bool)
	for _, f := range configFields() {
		keys[f.Key] = true
	}
	return keys
}

func cliIndex(root *cobra.Command, keys map[string]bool) *MarkdownWriter {
	w := NewMarkdownWriter()
	w.Frontmatter("CLI Reference", "Command-line interface reference for ngaudit")
	w.GeneratedMarker()

	w.Header(1, "CLI Reference")
	w.Paragraph("ngaudit analyzes parsed Angular project records, lists its rule catalogue and writes starter configuration.")
	w.CodeBlock("bash", "go install github.com/leapstack-labs/ngaudit/cmd/ngaudit@latest")

	w.Header(2, "Commands")
	var rows [][]string
	for _, cmd := range documentedCommands(root) {
		rows = append(rows, []string{
			fmt.Sprintf("[%s](/cli/%s)", InlineCode(cmd.Name()), cmd.Name()),
			cleanDescription(cmd.Short),
		})
	}
	w.Table([]string{"Command", "Description"}, rows)

	w.Header(2, "Global Options")
	w.Table(flagHeaders, flagRows(root.PersistentFlags(), keys))

	w.Header(2, "Configuration Layers")
	w.Paragraph(fmt.Sprintf("Settings are read from built-in defaults, then %s (searched upward from the working directory "+
		"unless %s is given), then environment variables, then flags set on the command line. Later layers win.",
		InlineCode("ngaudit.yaml"), InlineCode("--config")))

	var envRows [][]string
	for _, f := range configFields() {
		if strings.HasPrefix(f.Type, "map[") {
			continue
		}
		envRows = append(envRows, []string{InlineCode(config.EnvVar(f.Key)), InlineCode(f.Key)})
	}
	w.Table([]string{"Variable", "Config key"}, envRows)

	w.Header(2, "Exit Codes")
	w.Table([]string{"Code", "Meaning"}, [][]string{
		{InlineCode("0"), "Analysis completed, whatever issues it found"},
		{InlineCode("1"), "Invalid configuration, unknown category or rule, or unreadable input"},
	})
	return w
}

func commandPage(cmd *cobra.Command, keys map[string]bool) *MarkdownWriter {
	w := NewMarkdownWriter()
	w.Frontmatter(cmd.Name(), cmd.Short)
	w.GeneratedMarker()

	w.Header(1, "ngaudit "+cmd.Name())
	desc := cmd.Long
	if desc == "" {
		desc = cmd.Short
	}
	w.Paragraph(desc)

	w.Header(2, "Usage")
	w.CodeBlock("bash", cmd.UseLine())

	if cmd.HasLocalFlags() {
		w.Header(2, "Options")
		w.Table(flagHeaders, flagRows(cmd.LocalFlags(), keys))
	}
	if cmd.HasInheritedFlags() {
		w.Header(2, "Global Options")
		w.Table(flagHeaders, flagRows(cmd.InheritedFlags(), keys))
	}
	if cmd.Example != "" {
		w.Header(2, "Examples")
		w.CodeBlock("bash", dedent(cmd.Example))
	}
	return w
}

var flagHeaders = []string{"Option", "Default", "Config key", "Description"}

// flagRows lists visible flags with the configuration key each one sets.
func flagRows(flags *pflag.FlagSet, keys map[string]bool) [][]string {
	var rows [][]string
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		option := InlineCode("--" + f.Name)
		if f.Shorthand != "" {
			option += ", " + InlineCode("-"+f.Shorthand)
		}
		def := f.DefValue
		if def != "" && def != "[]" && f.Value.Type() != "bool" {
			def = InlineCode(def)
		}
		key := ""
		if k := config.FlagKey(f.Name); keys[k] {
			key = InlineCode(k)
		}
		rows = append(rows, []string{option, def, key, cleanDescription(f.Usage)})
	})
	return rows
}

// dedent strips the indentation shared by the non-blank lines of s.
func dedent(s string) string {
	lines := strings.Split(strings.Trim(s, "\n"), "\n")
	indent := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if n := len(line) - len(strings.TrimLeft(line, " \t")); indent < 0 || n < indent {
			indent = n
		}
	}
	for i, line := range lines {
		if len(line) >= indent && indent > 0 {
			lines[i] = line[indent:]
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
