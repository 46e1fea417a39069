package lint

import (
	"maps"

	"github.com/leapstack-labs/ngaudit/pkg/core"
)

// Rule ids.
const (
	RuleComponentComplexity        = "component-complexity"
	RuleChangeDetectionStrategy    = "change-detection-strategy"
	RuleTooManyInputs              = "too-many-inputs"
	RuleTooManyOutputs             = "too-many-outputs"
	RuleMissingCleanupPattern      = "missing-cleanup-pattern"
	RuleMissingTemplate            = "missing-template"
	RuleTemplateConflict           = "template-conflict"
	RuleInlineTemplateTooLarge     = "inline-template-too-large"
	RuleCircularDependency         = "circular-dependency"
	RuleUnusedDependency           = "unused-dependency"
	RuleDeepDependencyChain        = "deep-dependency-chain"
	RuleConsiderStateManagement    = "consider-state-management"
	RuleMissingUnsubscribePattern  = "missing-unsubscribe-pattern"
	RuleComplexStateComponents     = "complex-state-components"
	RuleHighDefaultChangeDetection = "high-default-change-detection"
	RuleConsiderLazyLoading        = "consider-lazy-loading"
	RulePotentialMemoryLeak        = "potential-memory-leak"
	RuleFeatureModuleOrganization  = "feature-module-organization"
	RuleExcessiveBindings          = "excessive-bindings"
	RuleTooManyStylesheets         = "too-many-stylesheets"
)

// Option keys shared by several rules. CLI overrides target these.
const (
	OptMaxComplexity = "max_complexity"
	OptMaxDepth      = "max_depth"
)

// RuleDef is a data-driven rule definition.
type RuleDef struct {
	ID          string
	Category    core.Category
	Description string
	Severity    core.Severity
	// Defaults holds the rule's options before profile overrides.
	Defaults map[string]any
}

// catalogue lists every rule, grouped by category in evaluation order.
// Declaration order within a category is the evaluation order.
var catalogue = []RuleDef{
	// component
	{
		ID:          RuleComponentComplexity,
		Category:    core.CategoryComponent,
		Description: "Component complexity score exceeds the configured maximum",
		Severity:    core.SeverityWarning,
		Defaults:    map[string]any{OptMaxComplexity: 10},
	},
	{
		ID:          RuleChangeDetectionStrategy,
		Category:    core.CategoryComponent,
		Description: "Component uses Default change detection instead of OnPush",
		Severity:    core.SeverityInfo,
	},
	{
		ID:          RuleTooManyInputs,
		Category:    core.CategoryComponent,
		Description: "Component declares more inputs than allowed",
		Severity:    core.SeverityWarning,
		Defaults:    map[string]any{"max_inputs": 8},
	},
	{
		ID:          RuleTooManyOutputs,
		Category:    core.CategoryComponent,
		Description: "Component declares more outputs than allowed",
		Severity:    core.SeverityWarning,
		Defaults:    map[string]any{"max_outputs": 5},
	},
	{
		ID:          RuleMissingCleanupPattern,
		Category:    core.CategoryComponent,
		Description: "Component subscribes to resources but does not implement ngOnDestroy",
		Severity:    core.SeverityWarning,
	},
	{
		ID:          RuleMissingTemplate,
		Category:    core.CategoryComponent,
		Description: "Component sets neither template nor templateUrl",
		Severity:    core.SeverityError,
	},
	{
		ID:          RuleTemplateConflict,
		Category:    core.CategoryComponent,
		Description: "Component sets both template and templateUrl",
		Severity:    core.SeverityError,
	},
	{
		ID:          RuleInlineTemplateTooLarge,
		Category:    core.CategoryComponent,
		Description: "Inline template is longer than the configured character limit",
		Severity:    core.SeverityWarning,
		Defaults:    map[string]any{"max_chars": 500},
	},

	// dependency
	{
		ID:          RuleCircularDependency,
		Category:    core.CategoryDependency,
		Description: "Entities depend on each other in a cycle",
		Severity:    core.SeverityError,
	},
	{
		ID:          RuleUnusedDependency,
		Category:    core.CategoryDependency,
		Description: "Injected dependency is never referenced",
		Severity:    core.SeverityWarning,
	},
	{
		ID:          RuleDeepDependencyChain,
		Category:    core.CategoryDependency,
		Description: "Dependency chain from a root is deeper than allowed",
		Severity:    core.SeverityWarning,
		Defaults:    map[string]any{OptMaxDepth: 5},
	},

	// state
	{
		ID:          RuleConsiderStateManagement,
		Category:    core.CategoryState,
		Description: "Service holds mutable state shared by several components",
		Severity:    core.SeverityInfo,
		Defaults:    map[string]any{"min_mutable_fields": 3, "min_components": 2},
	},
	{
		ID:          RuleMissingUnsubscribePattern,
		Category:    core.CategoryState,
		Description: "Subscription has no matching cleanup reachable from ngOnDestroy",
		Severity:    core.SeverityWarning,
	},
	{
		ID:          RuleComplexStateComponents,
		Category:    core.CategoryState,
		Description: "Complex component also holds mutable state",
		Severity:    core.SeverityWarning,
		Defaults:    map[string]any{OptMaxComplexity: 10},
	},

	// performance
	{
		ID:          RuleHighDefaultChangeDetection,
		Category:    core.CategoryPerformance,
		Description: "Complex component uses Default change detection",
		Severity:    core.SeverityWarning,
		Defaults:    map[string]any{"threshold": 8},
	},
	{
		ID:          RuleConsiderLazyLoading,
		Category:    core.CategoryPerformance,
		Description: "Large module is eagerly imported by a root module",
		Severity:    core.SeverityInfo,
		Defaults:    map[string]any{"component_threshold": 10},
	},
	{
		ID:          RulePotentialMemoryLeak,
		Category:    core.CategoryPerformance,
		Description: "Subscription without cleanup may leak memory",
		Severity:    core.SeverityWarning,
	},
	{
		ID:          RuleFeatureModuleOrganization,
		Category:    core.CategoryPerformance,
		Description: "Module groups components with unrelated selector prefixes",
		Severity:    core.SeverityInfo,
		Defaults:    map[string]any{"min_selectors": 3, "max_prefix_ratio": 0.5},
	},
	{
		ID:          RuleExcessiveBindings,
		Category:    core.CategoryPerformance,
		Description: "Component declares more inputs and outputs combined than allowed",
		Severity:    core.SeverityWarning,
		Defaults:    map[string]any{"max_bindings": 15},
	},
	{
		ID:          RuleTooManyStylesheets,
		Category:    core.CategoryPerformance,
		Description: "Component references more stylesheets than allowed",
		Severity:    core.SeverityWarning,
		Defaults:    map[string]any{"max_stylesheets": 3},
	},
}

// Rules returns a copy of the catalogue in evaluation order.
func Rules() []RuleDef {
	out := make([]RuleDef, len(catalogue))
	for i, def := range catalogue {
		out[i] = def
		out[i].Defaults = maps.Clone(def.Defaults)
	}
	return out
}

// RulesFor returns the rules of one category in declaration order.
func RulesFor(cat core.Category) []RuleDef {
	var out []RuleDef
	for _, def := range Rules() {
		if def.Category == cat {
			out = append(out, def)
		}
	}
	return out
}

// Lookup returns the rule with the given id.
func Lookup(id string) (RuleDef, bool) {
	for _, def := range catalogue {
		if def.ID == id {
			def.Defaults = maps.Clone(def.Defaults)
			return def, true
		}
	}
	return RuleDef{}, false
}

// Info returns documentation metadata for every rule.
func Info() []core.RuleInfo {
	infos := make([]core.RuleInfo, 0, len(catalogue))
	for _, def := range Rules() {
		infos = append(infos, core.RuleInfo{
			ID:              def.ID,
			Category:        def.Category,
			Description:     def.Description,
			DefaultSeverity: def.Severity,
			DefaultOptions:  def.Defaults,
		})
	}
	return infos
}
