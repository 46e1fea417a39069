package dag

import (
	"errors"
	"log/slog"
	"sort"
	"strings"

	"github.com/leapstack-labs/ngaudit/pkg/core"
)

// Build creates the dependency graph of a project. Edges come from
// constructor injection and from module declarations, imports and exports.
// An edge whose target is not an entity of the project is dropped and
// counted; it is not an error.
func Build(p *core.Project, logger *slog.Logger) *Graph {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	g := NewGraph()
	byName := make(map[string][]string)
	add := func(n Node) {
		g.AddNode(n)
		byName[n.Name] = append(byName[n.Name], n.ID)
	}

	for _, c := range p.Components {
		add(Node{ID: QualifiedName(c.FilePath, c.Name), Name: c.Name, FilePath: c.FilePath, Kind: core.KindComponent})
	}
	for _, s := range p.Services {
		add(Node{ID: QualifiedName(s.FilePath, s.Name), Name: s.Name, FilePath: s.FilePath, Kind: core.KindService})
	}
	for _, m := range p.Modules {
		add(Node{ID: QualifiedName(m.FilePath, m.Name), Name: m.Name, FilePath: m.FilePath, Kind: core.KindModule})
	}
	for _, d := range p.Directives {
		add(Node{ID: QualifiedName(d.FilePath, d.Name), Name: d.Name, FilePath: d.FilePath, Kind: core.KindDirective})
	}
	for _, pp := range p.Pipes {
		add(Node{ID: QualifiedName(pp.FilePath, pp.Name), Name: pp.Name, FilePath: pp.FilePath, Kind: core.KindPipe})
	}
	for name := range byName {
		sort.Strings(byName[name])
	}

	link := func(from, target string) {
		ids := byName[Identifier(target)]
		if len(ids) == 0 {
			g.dropped++
			logger.Debug("dropping edge to entity outside project", "from", from, "to", target)
			return
		}
		if len(ids) > 1 {
			logger.Debug("ambiguous dependency name, using first match", "from", from, "to", target, "candidates", ids)
		}
		if err := g.AddEdge(from, ids[0]); err != nil {
			g.dropped++
			if !errors.Is(err, ErrSelfLoop) {
				logger.Debug("dropping edge", "from", from, "to", target, "error", err)
			}
		}
	}

	for _, c := range p.Components {
		for _, dep := range c.Dependencies {
			link(QualifiedName(c.FilePath, c.Name), dep)
		}
	}
	for _, s := range p.Services {
		for _, dep := range s.Dependencies {
			link(QualifiedName(s.FilePath, s.Name), dep)
		}
	}
	for _, d := range p.Directives {
		for _, dep := range d.Dependencies {
			link(QualifiedName(d.FilePath, d.Name), dep)
		}
	}
	for _, pp := range p.Pipes {
		for _, dep := range pp.Dependencies {
			link(QualifiedName(pp.FilePath, pp.Name), dep)
		}
	}
	for _, m := range p.Modules {
		from := QualifiedName(m.FilePath, m.Name)
		for _, list := range [][]string{m.Declarations, m.Imports, m.Exports} {
			for _, target := range list {
				link(from, target)
			}
		}
	}

	logger.Debug("dependency graph built",
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
		"dropped", g.dropped)
	return g
}

// Identifier reduces a declaration expression to the class it names, e.g.
// "RouterModule.forRoot(routes)" becomes "RouterModule".
func Identifier(expr string) string {
	expr = strings.TrimSpace(expr)
	if i := strings.IndexAny(expr, ".(<"); i >= 0 {
		expr = expr[:i]
	}
	return expr
}
