package lint

import (
	"strings"

	"github.com/leapstack-labs/ngaudit/pkg/core"
)

func checkStateManagement(ctx *Context, p *StateParams) []core.Issue {
	var out []core.Issue
	for _, s := range ctx.Project.Services {
		fields := s.MutableFields()
		users := ctx.InjectedBy(s.Name)
		if len(fields) < p.MinMutableFields || len(users) < p.MinComponents {
			continue
		}
		out = append(out, issue(s.FilePath, s.Line,
			"Service %s holds %d mutable fields shared by %d components; consider a state management pattern",
			s.Name, len(fields), len(users)))
	}
	return out
}

// checkUnmatchedSubscriptions reports components and directives with
// subscription-like calls that are never released.
func checkUnmatchedSubscriptions(ctx *Context, message string) []core.Issue {
	var out []core.Issue
	report := func(kind, name, path string, line int, methods []core.Method) {
		l := unmatchedSubscriptions(methods)
		if l == nil {
			return
		}
		if l.line > 0 {
			line = l.line
		}
		out = append(out, issue(path, line, "%s %s %s (%s)", kind, name, message, strings.Join(l.calls, ", ")))
	}
	for _, c := range ctx.Project.Components {
		report("Component", c.Name, c.FilePath, c.Line, c.Methods)
	}
	for _, d := range ctx.Project.Directives {
		report("Directive", d.Name, d.FilePath, d.Line, d.Methods)
	}
	return out
}

func checkComplexState(ctx *Context, p *ComplexityParams) []core.Issue {
	var out []core.Issue
	for _, c := range ctx.Project.Components {
		fields := c.MutableFields()
		if c.ComplexityScore <= p.MaxComplexity || len(fields) == 0 {
			continue
		}
		out = append(out, issue(c.FilePath, c.Line,
			"Component %s has complexity %d (max %d) and holds %d mutable fields; move state into a service",
			c.Name, c.ComplexityScore, p.MaxComplexity, len(fields)))
	}
	return out
}
