package analysis

import (
	"cmp"
	"fmt"
	"slices"
	"unicode/utf8"

	"github.com/leapstack-labs/ngaudit/pkg/core"
	"github.com/leapstack-labs/ngaudit/pkg/lint"
)

// Fixed recommendation thresholds.
const (
	defaultStrategyRatio   = 0.5
	highAverageComplexity  = 10.0
	minComplexComponents   = 2
	serviceLessComponents  = 3
	highInjectionsAverage  = 5.0
	minLeakingComponents   = 2
	singleModuleComponents = 8
	largeTemplateChars     = 500
	minLargeTemplates      = 2
)

// recommend derives recommendations from project aggregates. Only the
// categories that ran contribute.
func recommend(p *core.Project, m core.ProjectMetrics, ran map[core.Category]bool) []core.Recommendation {
	out := []core.Recommendation{}
	total := len(p.Components)

	if (ran[core.CategoryComponent] || ran[core.CategoryPerformance]) && total > 0 {
		if float64(m.DefaultComponents)/float64(total) >= defaultStrategyRatio {
			out = append(out, core.Recommendation{
				Category: core.CategoryPerformance,
				Title:    "Optimize Change Detection",
				Description: fmt.Sprintf("%d of %d components use Default change detection; consider OnPush",
					m.DefaultComponents, total),
				Priority: core.PriorityMedium,
			})
		}
	}

	if ran[core.CategoryComponent] && total >= minComplexComponents && m.AverageComplexity > highAverageComplexity {
		out = append(out, core.Recommendation{
			Category: core.CategoryComponent,
			Title:    "Reduce Component Complexity",
			Description: fmt.Sprintf("Average component complexity is %.2f; split large components into smaller ones",
				m.AverageComplexity),
			Priority: core.PriorityHigh,
		})
	}

	if ran[core.CategoryDependency] {
		if len(p.Services) == 0 && total > serviceLessComponents {
			out = append(out, core.Recommendation{
				Category:    core.CategoryDependency,
				Title:       "Consider Adding Services",
				Description: fmt.Sprintf("%d components and no services; move shared logic into injectable services", total),
				Priority:    core.PriorityLow,
			})
		}
		if avg := averageInjections(p); avg > highInjectionsAverage {
			out = append(out, core.Recommendation{
				Category:    core.CategoryDependency,
				Title:       "High Dependency Coupling",
				Description: fmt.Sprintf("Components inject %.2f dependencies on average; consider facades", avg),
				Priority:    core.PriorityMedium,
			})
		}
	}

	if ran[core.CategoryState] {
		leaking := 0
		for _, c := range p.Components {
			if lint.HasUnreleasedSubscription(c.Methods) {
				leaking++
			}
		}
		if leaking >= minLeakingComponents {
			out = append(out, core.Recommendation{
				Category:    core.CategoryState,
				Title:       "Implement Proper Cleanup",
				Description: fmt.Sprintf("%d components keep subscriptions alive; release them in ngOnDestroy", leaking),
				Priority:    core.PriorityHigh,
			})
		}
	}

	if ran[core.CategoryPerformance] {
		if len(p.Modules) == 1 && total > singleModuleComponents {
			out = append(out, core.Recommendation{
				Category:    core.CategoryPerformance,
				Title:       "Implement Lazy Loading",
				Description: fmt.Sprintf("All %d components live in a single module; split it into lazy-loaded feature modules", total),
				Priority:    core.PriorityMedium,
				FilePath:    p.Modules[0].FilePath,
			})
		}
		large := 0
		for _, c := range p.Components {
			if c.Template != nil && utf8.RuneCountInString(*c.Template) > largeTemplateChars {
				large++
			}
		}
		if large >= minLargeTemplates {
			out = append(out, core.Recommendation{
				Category:    core.CategoryPerformance,
				Title:       "Optimize Template Size",
				Description: fmt.Sprintf("%d components have inline templates over %d characters; move them to templateUrl files", large, largeTemplateChars),
				Priority:    core.PriorityLow,
			})
		}
	}

	slices.SortStableFunc(out, func(a, b core.Recommendation) int {
		return cmp.Or(
			cmp.Compare(a.Priority, b.Priority),
			cmp.Compare(a.Category, b.Category),
			cmp.Compare(a.Title, b.Title),
		)
	})
	return out
}

func averageInjections(p *core.Project) float64 {
	if len(p.Components) == 0 {
		return 0
	}
	n := 0
	for _, c := range p.Components {
		n += len(c.Dependencies)
	}
	return float64(n) / float64(len(p.Components))
}
