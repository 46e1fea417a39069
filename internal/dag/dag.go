// Package dag provides the entity dependency graph: nodes keyed by qualified
// name, directed "depends on" edges, cycle detection and chain depth.
package dag

import (
	"fmt"
	"sort"

	"github.com/leapstack-labs/ngaudit/pkg/core"
)

// Node represents an entity in the graph.
type Node struct {
	// ID is the qualified name: file path + "#" + class name.
	ID       string
	Name     string
	FilePath string
	Kind     core.RecordKind
}

// QualifiedName builds the node ID for an entity.
func QualifiedName(filePath, name string) string {
	return filePath + "#" + name
}

// Graph is a directed graph where an edge from -> to means "from depends on to".
// Adjacency lists are kept sorted so every traversal is deterministic.
type Graph struct {
	nodes      map[string]*Node
	deps       map[string][]string // from -> dependencies
	dependents map[string][]string // to -> dependents
	dropped    int
}

// NewGraph creates a new empty graph.
func NewGraph() *Graph {
	return &Graph{
		nodes:      make(map[string]*Node),
		deps:       make(map[string][]string),
		dependents: make(map[string][]string),
	}
}

// AddNode adds a node to the graph. Re-adding an ID replaces its data.
func (g *Graph) AddNode(n Node) {
	if _, exists := g.nodes[n.ID]; !exists {
		g.deps[n.ID] = []string{}
		g.dependents[n.ID] = []string{}
	}
	node := n
	g.nodes[n.ID] = &node
}

// AddEdge adds a directed edge meaning "from depends on to".
func (g *Graph) AddEdge(from, to string) error {
	if _, exists := g.nodes[from]; !exists {
		return fmt.Errorf("%w: %q", ErrNodeNotFound, from)
	}
	if _, exists := g.nodes[to]; !exists {
		return fmt.Errorf("%w: %q", ErrNodeNotFound, to)
	}
	if from == to {
		return fmt.Errorf("%w: %s", ErrSelfLoop, from)
	}

	g.deps[from] = insertSorted(g.deps[from], to)
	g.dependents[to] = insertSorted(g.dependents[to], from)
	return nil
}

// GetNode returns a node by ID.
func (g *Graph) GetNode(id string) (*Node, bool) {
	node, exists := g.nodes[id]
	return node, exists
}

// Dependencies returns the nodes id depends on.
func (g *Graph) Dependencies(id string) []string {
	return g.deps[id]
}

// Dependents returns the nodes that depend on id.
func (g *Graph) Dependents(id string) []string {
	return g.dependents[id]
}

// Nodes returns all nodes sorted by ID.
func (g *Graph) Nodes() []*Node {
	nodes := make([]*Node, 0, len(g.nodes))
	for _, node := range g.nodes {
		nodes = append(nodes, node)
	}
	sort.Slice(nodes, func(i, j int) bool {
		return nodes[i].ID < nodes[j].ID
	})
	return nodes
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int {
	count := 0
	for _, to := range g.deps {
		count += len(to)
	}
	return count
}

// DroppedEdges returns how many edges Build could not add.
func (g *Graph) DroppedEdges() int {
	return g.dropped
}

// Roots returns nodes that nothing depends on, sorted.
func (g *Graph) Roots() []string {
	var roots []string
	for id := range g.nodes {
		if len(g.dependents[id]) == 0 {
			roots = append(roots, id)
		}
	}
	sort.Strings(roots)
	return roots
}

// TopologicalSort returns node IDs with every node after its dependents, so
// that roots come first. Returns ErrCycle if the graph contains a cycle.
func (g *Graph) TopologicalSort() ([]string, error) {
	if cycles := g.FindCycles(); len(cycles) > 0 {
		return nil, fmt.Errorf("%w: %v", ErrCycle, cycles[0].Path)
	}

	visited := make(map[string]bool)
	var result []string

	var visit func(id string)
	visit = func(id string) {
		if visited[id] {
			return
		}
		visited[id] = true
		for _, d := range g.dependents[id] {
			visit(d)
		}
		result = append(result, id)
	}

	for _, n := range g.Nodes() {
		visit(n.ID)
	}
	return result, nil
}

// insertSorted adds s to a sorted slice unless already present.
func insertSorted(slice []string, s string) []string {
	i := sort.SearchStrings(slice, s)
	if i < len(slice) && slice[i] == s {
		return slice
	}
	slice = append(slice, "")
	copy(slice[i+1:], slice[i:])
	slice[i] = s
	return slice
}
