package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/leapstack-labs/ngaudit/internal/cli/output"
	"github.com/leapstack-labs/ngaudit/internal/config"
	"github.com/leapstack-labs/ngaudit/pkg/lint"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const configHeader = `# ngaudit configuration.
# Rules not listed under the active profile run with their default severity
# and options. See 'ngaudit rules' for the catalogue.
`

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool
	var profile string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create an ngaudit.yaml configuration",
		Long: `Create an ngaudit.yaml configuration file with the chosen built-in
profile written out in full, ready to be edited.`,
		Example: `  # Initialize in the current directory
  ngaudit init

  # Start from the strict profile
  ngaudit init --profile strict

  # Force overwrite existing config
  ngaudit init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr())
			return runInit(r, dir, profile, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")
	cmd.Flags().StringVar(&profile, "profile", lint.ProfileRecommended, "Built-in profile to start from")

	return cmd
}

func runInit(r *output.Renderer, dir, profile string, force bool) error {
	p, err := lint.SelectProfile(lint.BuiltinProfiles(), profile)
	if err != nil {
		return err
	}

	if dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	configPath := filepath.Join(dir, config.ConfigFileName)
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("%s already exists. Use --force to overwrite", config.ConfigFileName)
	}

	cfg := config.Default()
	cfg.Profile = p.Name
	cfg.Profiles = map[string]lint.Profile{p.Name: p}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}
	if err := os.WriteFile(configPath, append([]byte(configHeader), data...), 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", configPath, err)
	}

	r.StatusLine(configPath, "success", "")
	r.Println("")
	r.Success(fmt.Sprintf("ngaudit configured with the %s profile", p.Name))
	r.Println("")
	r.Println("Next steps:")
	r.Println("  1. Export parsed records for your project (JSON or YAML)")
	r.Println("  2. Run 'ngaudit analyze <records>' to analyze them")
	r.Println("  3. Run 'ngaudit rules' to see every rule")
	return nil
}
