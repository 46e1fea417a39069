// Package analysis runs the rule categories over a built project and
// assembles the final result.
//
// Categories are evaluated concurrently against a read-only project, graph
// and rule set. Each category writes only its own slot; merging, sorting and
// the severity floor happen afterwards on a single goroutine so that the
// result does not depend on scheduling.
package analysis

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/leapstack-labs/ngaudit/internal/builder"
	"github.com/leapstack-labs/ngaudit/internal/dag"
	"github.com/leapstack-labs/ngaudit/internal/metrics"
	"github.com/leapstack-labs/ngaudit/pkg/core"
	"github.com/leapstack-labs/ngaudit/pkg/lint"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

// Config holds orchestrator configuration.
type Config struct {
	// Rules is the resolved rule set. Required.
	Rules *lint.RuleSet
	// Categories to run, typically from ResolveCategories. Empty means
	// DefaultCategories.
	Categories []core.Category
	// Floor hides issues less severe than it. They are still counted.
	// Nil shows every issue.
	Floor *core.Severity
	// Workers bounds concurrent category evaluation. Zero uses GOMAXPROCS.
	Workers int
	// RootPath is passed to the model builder by Analyze.
	RootPath string
	// Logger is the structured logger (optional, uses discard if nil).
	Logger *slog.Logger
}

// Orchestrator runs analyses. It holds no per-run state and may be reused.
type Orchestrator struct {
	cfg    Config
	floor  core.Severity
	logger *slog.Logger
}

// categoryResult is the private output of one category task.
type categoryResult struct {
	issues   []core.Issue
	warnings []core.Warning
}

// New creates an orchestrator.
func New(cfg Config) (*Orchestrator, error) {
	if cfg.Rules == nil {
		return nil, errors.New("analysis: rule set is required")
	}
	if len(cfg.Categories) == 0 {
		cfg.Categories = slices.Clone(DefaultCategories)
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}
	floor := core.SeverityInfo
	if cfg.Floor != nil {
		floor = *cfg.Floor
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Orchestrator{cfg: cfg, floor: floor, logger: logger}, nil
}

// Analyze builds the project model from records and runs the analysis.
// Warnings are carried into the result ahead of any produced by the run.
func (o *Orchestrator) Analyze(ctx context.Context, records []core.FileRecord, warnings []core.Warning) (*core.AnalysisResult, error) {
	built, err := builder.New(builder.Options{
		RootPath: o.cfg.RootPath,
		Workers:  o.cfg.Workers,
		Logger:   o.logger,
	}).Build(ctx, records)
	if err != nil {
		return nil, fmt.Errorf("failed to build project model: %w", err)
	}
	return o.Run(ctx, built.Project, slices.Concat(warnings, built.Warnings))
}

// Run evaluates the configured categories against p. The project must not
// be mutated while Run executes. The returned result is never modified
// afterwards.
func (o *Orchestrator) Run(ctx context.Context, p *core.Project, warnings []core.Warning) (result *core.AnalysisResult, err error) {
	start := time.Now()
	runID := uuid.NewString()
	logger := o.logger.With("run_id", runID)

	ctx, span := tracer.Start(ctx, "analysis.Run",
		trace.WithAttributes(
			attribute.String("run_id", runID),
			attribute.Int("categories", len(o.cfg.Categories)),
			attribute.Int("components", len(p.Components)),
		))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.End()
		recordRunMetrics(ctx, time.Since(start), err == nil)
	}()

	logger.Info("starting analysis",
		"categories", categoryNames(o.cfg.Categories),
		"profile", o.cfg.Rules.Profile,
		"floor", o.floor.String())

	graph := dag.Build(p, logger)
	lctx := lint.NewContext(p, graph)

	slots := make([]categoryResult, len(o.cfg.Categories))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.cfg.Workers)
	for i, cat := range o.cfg.Categories {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			slots[i] = o.runCategory(gctx, lctx, cat, logger)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var found []core.Issue
	allWarnings := slices.Clone(warnings)
	for _, slot := range slots {
		found = append(found, slot.issues...)
		allWarnings = append(allWarnings, slot.warnings...)
	}
	sortIssues(found)

	summary := core.Summary{
		TotalFound: len(found),
		BySeverity: map[core.Severity]int{core.SeverityError: 0, core.SeverityWarning: 0, core.SeverityInfo: 0},
		Warnings:   len(allWarnings),
	}
	shown := make([]core.Issue, 0, len(found))
	for _, is := range found {
		summary.BySeverity[is.Severity]++
		if is.Severity.AtLeast(o.floor) {
			shown = append(shown, is)
		}
	}
	summary.Shown = len(shown)

	ran := make(map[core.Category]bool, len(o.cfg.Categories))
	for _, cat := range o.cfg.Categories {
		ran[cat] = true
	}

	m := metrics.Aggregate(p)
	m.GraphNodes = graph.NodeCount()
	m.GraphEdges = graph.EdgeCount()
	m.DroppedEdges = graph.DroppedEdges()
	m.Cycles = len(lctx.Cycles)
	m.MaxChainDepth = graph.MaxChainDepth()

	imports := dag.BuildImports(p.Files, logger)
	m.SourceFiles = imports.NodeCount()
	m.ImportEdges = imports.EdgeCount()
	m.ImportCycles = len(imports.FindCycles())
	m.OrphanedFiles = imports.Orphans()
	m.MostImported = imports.MostImported(dag.DefaultTopFiles)
	m.MostDependent = imports.MostDependent(dag.DefaultTopFiles)

	if allWarnings == nil {
		allWarnings = []core.Warning{}
	}
	result = &core.AnalysisResult{
		Project:         p,
		Issues:          shown,
		Metrics:         m,
		Recommendations: recommend(p, m, ran),
		Summary:         summary,
		Warnings:        allWarnings,
	}

	span.SetAttributes(
		attribute.Int("issues_found", summary.TotalFound),
		attribute.Int("issues_shown", summary.Shown),
		attribute.Int("warnings", summary.Warnings),
	)
	logger.Info("analysis complete",
		"found", summary.TotalFound,
		"shown", summary.Shown,
		"recommendations", len(result.Recommendations),
		"warnings", summary.Warnings,
		"duration", time.Since(start))

	return result, nil
}

func (o *Orchestrator) runCategory(ctx context.Context, lctx *lint.Context, cat core.Category, logger *slog.Logger) categoryResult {
	ctx, span := tracer.Start(ctx, "analysis.category",
		trace.WithAttributes(attribute.String("category", cat.String())))
	defer span.End()

	rules := o.cfg.Rules.ForCategory(cat)
	issues, warnings := lint.Evaluate(lctx, rules, logger.With("category", cat.String()))

	span.SetAttributes(
		attribute.Int("rules", len(rules)),
		attribute.Int("issues", len(issues)),
		attribute.Int("faults", len(warnings)),
	)
	recordCategoryMetrics(ctx, cat.String(), len(issues), len(warnings))
	logger.Debug("category evaluated", "category", cat.String(), "rules", len(rules), "issues", len(issues))

	return categoryResult{issues: issues, warnings: warnings}
}

// sortIssues orders issues by (file path, rule id, line). The sort is stable
// so ties keep category and rule declaration order.
func sortIssues(issues []core.Issue) {
	slices.SortStableFunc(issues, func(a, b core.Issue) int {
		return cmp.Or(
			cmp.Compare(a.FilePath, b.FilePath),
			cmp.Compare(a.Rule, b.Rule),
			cmp.Compare(a.Line, b.Line),
		)
	})
}

func categoryNames(cats []core.Category) []string {
	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = c.String()
	}
	return names
}
