package lint

import (
	"strings"

	"github.com/leapstack-labs/ngaudit/internal/dag"
	"github.com/leapstack-labs/ngaudit/pkg/core"
)

func checkHighDefaultChangeDetection(ctx *Context, p *ThresholdParams) []core.Issue {
	var out []core.Issue
	for _, c := range ctx.Project.Components {
		if c.ChangeDetection == core.ChangeDetectionOnPush || c.ComplexityScore <= p.Threshold {
			continue
		}
		out = append(out, issue(c.FilePath, c.Line,
			"Component %s has complexity %d (above %d) and uses Default change detection",
			c.Name, c.ComplexityScore, p.Threshold))
	}
	return out
}

// declaredComponents resolves a module's declarations to project components.
func declaredComponents(p *core.Project, m *core.Module) []*core.Component {
	var out []*core.Component
	for _, name := range m.Declarations {
		if c := p.Component(dag.Identifier(name)); c != nil {
			out = append(out, c)
		}
	}
	return out
}

func checkLazyLoading(ctx *Context, p *LazyLoadingParams) []core.Issue {
	var out []core.Issue
	for _, m := range ctx.Project.Modules {
		if m.IsRoot() {
			continue
		}
		count := len(declaredComponents(ctx.Project, m))
		if count <= p.ComponentThreshold {
			continue
		}
		root := eagerImporter(ctx.Project, m.Name)
		if root == nil {
			continue
		}
		out = append(out, issue(m.FilePath, m.Line,
			"Module %s declares %d components and is eagerly imported by %s; consider lazy loading it",
			m.Name, count, root.Name))
	}
	return out
}

// eagerImporter returns the first root module importing name.
func eagerImporter(p *core.Project, name string) *core.Module {
	for _, m := range p.Modules {
		if !m.IsRoot() {
			continue
		}
		for _, imp := range m.Imports {
			if dag.Identifier(imp) == name {
				return m
			}
		}
	}
	return nil
}

func checkFeatureModule(ctx *Context, p *FeatureModuleParams) []core.Issue {
	var out []core.Issue
	for _, m := range ctx.Project.Modules {
		prefixes := make(map[string]bool)
		selectors := 0
		for _, c := range declaredComponents(ctx.Project, m) {
			if c.Selector == "" {
				continue
			}
			selectors++
			prefixes[selectorPrefix(c.Selector)] = true
		}
		if selectors < p.MinSelectors {
			continue
		}
		if ratio := float64(len(prefixes)) / float64(selectors); ratio > p.MaxPrefixRatio {
			out = append(out, issue(m.FilePath, m.Line,
				"Module %s groups %d selectors with %d different prefixes; split it into feature modules",
				m.Name, selectors, len(prefixes)))
		}
	}
	return out
}

// selectorPrefix returns the feature segment of a component selector:
// "app-user-list" yields "user", a selector without a dash yields itself.
func selectorPrefix(selector string) string {
	parts := strings.Split(strings.TrimSpace(selector), "-")
	if len(parts) >= 2 {
		return parts[1]
	}
	return parts[0]
}

func checkExcessiveBindings(ctx *Context, p *BindingsParams) []core.Issue {
	var out []core.Issue
	for _, c := range ctx.Project.Components {
		bindings := len(c.Inputs) + len(c.Outputs)
		if bindings <= p.MaxBindings {
			continue
		}
		out = append(out, issue(c.FilePath, c.Line,
			"Component %s has %d bindings (%d inputs, %d outputs), exceeding the maximum of %d",
			c.Name, bindings, len(c.Inputs), len(c.Outputs), p.MaxBindings))
	}
	return out
}

func checkTooManyStylesheets(ctx *Context, p *StylesheetParams) []core.Issue {
	var out []core.Issue
	for _, c := range ctx.Project.Components {
		if len(c.StyleURLs) <= p.MaxStylesheets {
			continue
		}
		out = append(out, issue(c.FilePath, c.Line,
			"Component %s references %d stylesheets; consolidate them (maximum %d)",
			c.Name, len(c.StyleURLs), p.MaxStylesheets))
	}
	return out
}
