package commands

import (
	"log/slog"

	"github.com/leapstack-labs/ngaudit/internal/cli/config"
	"github.com/leapstack-labs/ngaudit/internal/cli/output"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext collects the config and logger the root command stored
// in the context, plus a renderer bound to the command's writers.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	return &CommandContext{
		Cfg:      config.GetConfig(cmd.Context()),
		Logger:   config.GetLogger(cmd.Context()),
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr()),
	}
}
