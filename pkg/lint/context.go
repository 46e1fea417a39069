package lint

import (
	"github.com/leapstack-labs/ngaudit/internal/dag"
	"github.com/leapstack-labs/ngaudit/pkg/core"
)

// Context is the read-only input shared by every rule evaluation.
// Graph-derived results are computed once here.
type Context struct {
	Project *core.Project
	Graph   *dag.Graph
	Cycles  []dag.Cycle
	Chains  []dag.Chain

	// injectedBy maps a class name to the components that inject it.
	injectedBy map[string][]*core.Component
}

// NewContext prepares a rule context. The project and graph must not be
// mutated afterwards.
func NewContext(p *core.Project, g *dag.Graph) *Context {
	if g == nil {
		g = dag.Build(p, nil)
	}
	ctx := &Context{
		Project:    p,
		Graph:      g,
		Cycles:     g.FindCycles(),
		Chains:     g.LongestChains(),
		injectedBy: make(map[string][]*core.Component),
	}
	for _, c := range p.Components {
		for _, dep := range c.Dependencies {
			ctx.injectedBy[dep] = append(ctx.injectedBy[dep], c)
		}
	}
	return ctx
}

// InjectedBy returns the components that inject the named class.
func (c *Context) InjectedBy(name string) []*core.Component {
	return c.injectedBy[name]
}

// node returns the graph node for a qualified ID, falling back to the ID
// itself as a name.
func (c *Context) node(id string) *dag.Node {
	if n, ok := c.Graph.GetNode(id); ok {
		return n
	}
	return &dag.Node{ID: id, Name: id}
}
