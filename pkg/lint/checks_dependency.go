package lint

import (
	"strings"

	"github.com/leapstack-labs/ngaudit/pkg/core"
)

func checkCircularDependency(ctx *Context) []core.Issue {
	out := make([]core.Issue, 0, len(ctx.Cycles))
	for _, cycle := range ctx.Cycles {
		names := make([]string, 0, len(cycle.Path)+1)
		for _, id := range cycle.Path {
			names = append(names, ctx.node(id).Name)
		}
		names = append(names, names[0])

		start := ctx.node(cycle.Start())
		out = append(out, issue(start.FilePath, 0,
			"Circular dependency: %s", strings.Join(names, " -> ")))
	}
	return out
}

// injector is any entity that receives constructor injections.
type injector struct {
	kind       string
	name       string
	path       string
	line       int
	injections []core.Injection
	methods    []core.Method
}

func injectors(p *core.Project) []injector {
	var out []injector
	for _, c := range p.Components {
		out = append(out, injector{"Component", c.Name, c.FilePath, c.Line, c.Injections, c.Methods})
	}
	for _, s := range p.Services {
		out = append(out, injector{"Service", s.Name, s.FilePath, s.Line, s.Injections, s.Methods})
	}
	for _, d := range p.Directives {
		out = append(out, injector{"Directive", d.Name, d.FilePath, d.Line, d.Injections, d.Methods})
	}
	for _, pp := range p.Pipes {
		out = append(out, injector{"Pipe", pp.Name, pp.FilePath, pp.Line, pp.Injections, pp.Methods})
	}
	return out
}

func checkUnusedDependency(ctx *Context) []core.Issue {
	var out []core.Issue
	for _, e := range injectors(ctx.Project) {
		for _, inj := range e.injections {
			if inj.Param == "" || referenced(e.methods, inj.Param) {
				continue
			}
			out = append(out, issue(e.path, e.line,
				"%s %s injects %s as '%s' but never references it", e.kind, e.name, inj.Type, inj.Param))
		}
	}
	return out
}

func referenced(methods []core.Method, param string) bool {
	for _, m := range methods {
		if m.References(param) {
			return true
		}
	}
	return false
}

func checkDeepChain(ctx *Context, p *ChainParams) []core.Issue {
	var out []core.Issue
	for _, chain := range ctx.Chains {
		if chain.Length() <= p.MaxDepth {
			continue
		}
		root := ctx.node(chain.Root)
		out = append(out, issue(root.FilePath, 0,
			"Dependency chain from %s has depth %d (max %d), ending at %s",
			root.Name, chain.Length(), p.MaxDepth, ctx.node(chain.Terminal()).Name))
	}
	return out
}
