package commands

import (
	"context"
	"fmt"
	"io"
	"maps"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"strings"

	"github.com/leapstack-labs/ngaudit/internal/analysis"
	"github.com/leapstack-labs/ngaudit/internal/cli/config"
	"github.com/leapstack-labs/ngaudit/internal/cli/output"
	"github.com/leapstack-labs/ngaudit/internal/loader"
	"github.com/leapstack-labs/ngaudit/internal/watch"
	"github.com/leapstack-labs/ngaudit/pkg/core"
	"github.com/leapstack-labs/ngaudit/pkg/lint"
	"github.com/spf13/cobra"
)

// NewAnalyzeCommand creates the analyze command.
//
// Flag values are read back from the loaded configuration, where they take
// precedence over the environment and the config file.
func NewAnalyzeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [records...]",
		Short: "Analyze parsed project records",
		Long: `Build a project model from parsed file records and run the rule categories over it.

Records are JSON or YAML documents produced by the parsing front end. Each
argument may be a document or a directory, which is searched recursively.
Without arguments the --root directory is used.

Only the component category runs unless --analyzers or --full is given.
Issues below --severity are hidden but still counted in the summary.`,
		Example: `  # Analyze records in the current directory
  ngaudit analyze

  # Run every category with the strict profile
  ngaudit analyze records/ --full --profile strict

  # Run selected categories and only show errors
  ngaudit analyze records/ --analyzers dependency,state --severity error

  # Write a YAML report to a file
  ngaudit analyze records/ --format yaml --out report.yaml

  # Re-run whenever the records change
  ngaudit analyze records/ --watch`,
		RunE: runAnalyze,
	}

	cmd.Flags().String("profile", "", "Rule profile (recommended, strict, relaxed or a configured profile)")
	cmd.Flags().Int("max-complexity", 0, "Override the maximum component complexity (0 keeps the profile value)")
	cmd.Flags().Int("depth", 0, "Override the maximum dependency chain depth (0 keeps the profile value)")
	cmd.Flags().String("severity", "", "Minimum severity to show: error, warning, info")
	cmd.Flags().StringSlice("analyzers", nil, "Categories to run: component, dependency, state, performance, full")
	cmd.Flags().Bool("full", false, "Run every category")
	cmd.Flags().StringP("format", "f", "", "Report format: json, yaml, table")
	cmd.Flags().StringP("out", "o", "", "Write the report to a file instead of stdout")
	cmd.Flags().Int("workers", 0, "Concurrent workers (0 uses all CPUs)")
	cmd.Flags().String("root", "", "Project root recorded in the report")
	cmd.Flags().Bool("watch", false, "Re-run when record documents change")

	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return output.Formats(), cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("severity", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"error", "warning", "info"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("analyzers", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		names := []string{analysis.FullAnalysis}
		for _, c := range core.AllCategories() {
			names = append(names, c.String())
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("profile", func(cmd *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return profileNames(config.GetConfig(cmd.Context()).AllProfiles()), cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cc := NewCommandContext(cmd)
	cfg := cc.Cfg

	// Resolve everything that can fail on configuration before reading input.
	categories, err := analysis.ResolveCategories(cfg.Analysis.Analyzers, cfg.Analysis.Full)
	if err != nil {
		return err
	}
	rules, err := cfg.RuleSet()
	if err != nil {
		return err
	}
	floor, err := cfg.SeverityFloor()
	if err != nil {
		return err
	}
	ignore, err := loader.NewIgnoreMatcher(cfg.Ignore)
	if err != nil {
		return core.NewConfigError("ignore", err)
	}

	orch, err := analysis.New(analysis.Config{
		Rules:      rules,
		Categories: categories,
		Floor:      &floor,
		Workers:    cfg.Analysis.Workers,
		RootPath:   cfg.Analysis.Root,
		Logger:     cc.Logger,
	})
	if err != nil {
		return err
	}

	paths := args
	if len(paths) == 0 {
		paths = []string{cfg.Analysis.Root}
	}
	run := func(ctx context.Context) error {
		loaded, err := loader.Load(paths, loader.Options{Ignore: ignore, Logger: cc.Logger})
		if err != nil {
			return err
		}
		cc.Logger.Debug("records loaded", "records", len(loaded.Records), "ignored", loaded.Ignored, "warnings", len(loaded.Warnings))

		result, err := orch.Analyze(ctx, loaded.Records, loaded.Warnings)
		if err != nil {
			return err
		}
		if err := writeReports(cmd.OutOrStdout(), result, cfg); err != nil {
			return err
		}
		cc.Renderer.Summary(result.Summary)
		return nil
	}

	if watchMode, _ := cmd.Flags().GetBool("watch"); watchMode {
		return watchAnalyze(cmd.Context(), cc, paths, run)
	}
	return run(cmd.Context())
}

// watchAnalyze runs once, then again after every settled change to the
// record documents until interrupted. Failed runs are reported and watching
// continues.
func watchAnalyze(ctx context.Context, cc *CommandContext, paths []string, run func(context.Context) error) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	w, err := watch.New(paths, watch.Options{Logger: cc.Logger})
	if err != nil {
		return err
	}

	if err := run(ctx); err != nil {
		cc.Renderer.Status(cc.Renderer.Styles().Error.Render("Analysis failed: " + err.Error()))
	}
	cc.Renderer.Status(cc.Renderer.Styles().Muted.Render("Watching for changes. Press Ctrl+C to stop"))

	return w.Run(ctx, func(ctx context.Context, changed []string) {
		cc.Renderer.Status(fmt.Sprintf("Change detected: %s", strings.Join(changed, ", ")))
		if err := run(ctx); err != nil {
			cc.Renderer.Status(cc.Renderer.Styles().Error.Render("Analysis failed: " + err.Error()))
		}
	})
}

// writeReports renders one report per configured format. With an output
// path and several formats, each report goes to the path with the format as
// its extension.
func writeReports(stdout io.Writer, result *core.AnalysisResult, cfg *config.Config) error {
	opts := output.ReportOptions{
		IncludeMetrics:         cfg.Output.IncludeMetrics,
		IncludeRecommendations: cfg.Output.IncludeRecommendations,
	}

	for _, name := range cfg.Output.Formats {
		format := output.Format(name)
		if cfg.Output.Path == "" {
			if err := output.WriteReport(stdout, result, format, opts); err != nil {
				return err
			}
			continue
		}

		path := cfg.Output.Path
		if len(cfg.Output.Formats) > 1 {
			path = strings.TrimSuffix(path, filepath.Ext(path)) + "." + name
		}
		if err := writeReportFile(path, result, format, opts); err != nil {
			return err
		}
	}
	return nil
}

func writeReportFile(path string, result *core.AnalysisResult, format output.Format, opts output.ReportOptions) (err error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	f, err := os.Create(path) //nolint:gosec // path comes from the user's own flags or config
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return output.WriteReport(f, result, format, opts)
}

func profileNames(profiles map[string]lint.Profile) []string {
	return slices.Sorted(maps.Keys(profiles))
}
