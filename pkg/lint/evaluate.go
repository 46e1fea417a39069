package lint

import (
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/ngaudit/pkg/core"
)

// Evaluate runs the rules in order against ctx. Each issue receives the
// rule's id, category and effective severity. A rule that fails internally
// contributes a warning instead of issues and does not affect other rules.
func Evaluate(ctx *Context, rules []ResolvedRule, logger *slog.Logger) ([]core.Issue, []core.Warning) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	var issues []core.Issue
	var warnings []core.Warning
	for _, r := range rules {
		found, err := evaluateRule(ctx, r)
		if err != nil {
			logger.Warn("rule evaluation failed", "rule", r.ID, "error", err)
			warnings = append(warnings, core.RuleFault(r.ID, "", err))
			continue
		}
		for i := range found {
			found[i].Rule = r.ID
			found[i].Category = r.Category
			found[i].Severity = r.Severity
		}
		logger.Debug("rule evaluated", "rule", r.ID, "issues", len(found))
		issues = append(issues, found...)
	}
	return issues, warnings
}

func evaluateRule(ctx *Context, r ResolvedRule) (issues []core.Issue, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			issues = nil
			err = fmt.Errorf("panic: %v", rec)
		}
	}()
	return check(ctx, r), nil
}

// check is the single evaluator: it interprets a rule by id.
func check(ctx *Context, r ResolvedRule) []core.Issue {
	switch r.ID {
	case RuleComponentComplexity:
		return checkComplexity(ctx, r.Params.(*ComplexityParams))
	case RuleChangeDetectionStrategy:
		return checkChangeDetection(ctx)
	case RuleTooManyInputs:
		return checkTooManyInputs(ctx, r.Params.(*InputsParams))
	case RuleTooManyOutputs:
		return checkTooManyOutputs(ctx, r.Params.(*OutputsParams))
	case RuleMissingCleanupPattern:
		return checkMissingCleanup(ctx)
	case RuleMissingTemplate:
		return checkMissingTemplate(ctx)
	case RuleTemplateConflict:
		return checkTemplateConflict(ctx)
	case RuleInlineTemplateTooLarge:
		return checkInlineTemplateSize(ctx, r.Params.(*TemplateSizeParams))
	case RuleCircularDependency:
		return checkCircularDependency(ctx)
	case RuleUnusedDependency:
		return checkUnusedDependency(ctx)
	case RuleDeepDependencyChain:
		return checkDeepChain(ctx, r.Params.(*ChainParams))
	case RuleConsiderStateManagement:
		return checkStateManagement(ctx, r.Params.(*StateParams))
	case RuleMissingUnsubscribePattern:
		return checkUnmatchedSubscriptions(ctx, "has a subscription without cleanup reachable from ngOnDestroy")
	case RuleComplexStateComponents:
		return checkComplexState(ctx, r.Params.(*ComplexityParams))
	case RuleHighDefaultChangeDetection:
		return checkHighDefaultChangeDetection(ctx, r.Params.(*ThresholdParams))
	case RuleConsiderLazyLoading:
		return checkLazyLoading(ctx, r.Params.(*LazyLoadingParams))
	case RulePotentialMemoryLeak:
		return checkUnmatchedSubscriptions(ctx, "may leak memory: subscription is never released")
	case RuleFeatureModuleOrganization:
		return checkFeatureModule(ctx, r.Params.(*FeatureModuleParams))
	case RuleExcessiveBindings:
		return checkExcessiveBindings(ctx, r.Params.(*BindingsParams))
	case RuleTooManyStylesheets:
		return checkTooManyStylesheets(ctx, r.Params.(*StylesheetParams))
	default:
		panic(fmt.Sprintf("no evaluator for rule %q", r.ID))
	}
}

// issue builds an issue; the evaluator fills in rule, category and severity.
func issue(path string, line int, format string, args ...any) core.Issue {
	return core.Issue{FilePath: path, Line: line, Message: fmt.Sprintf(format, args...)}
}
