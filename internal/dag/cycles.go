package dag

import (
	"sort"
	"strings"
)

// DFS colors.
const (
	white = iota // unvisited
	gray         // in progress
	black        // done
)

// Cycle is a closed dependency loop. Path starts at the lexicographically
// smallest node and does not repeat it at the end.
type Cycle struct {
	Path []string
}

// Start returns the canonical first node.
func (c Cycle) Start() string {
	return c.Path[0]
}

// Contains reports whether id is part of the cycle.
func (c Cycle) Contains(id string) bool {
	for _, n := range c.Path {
		if n == id {
			return true
		}
	}
	return false
}

// String renders the loop as "a -> b -> c -> a".
func (c Cycle) String() string {
	if len(c.Path) == 0 {
		return ""
	}
	return strings.Join(append(append([]string(nil), c.Path...), c.Path[0]), " -> ")
}

// FindCycles detects cycles with a three-color depth-first traversal. A
// back-edge to an in-progress node closes a cycle. Cycles over the same node
// set are reported once.
func (g *Graph) FindCycles() []Cycle {
	color := make(map[string]int, len(g.nodes))
	seen := make(map[string]bool)
	var stack []string
	var cycles []Cycle

	var dfs func(id string)
	dfs = func(id string) {
		color[id] = gray
		stack = append(stack, id)

		for _, next := range g.deps[id] {
			switch color[next] {
			case white:
				dfs(next)
			case gray:
				start := len(stack) - 1
				for stack[start] != next {
					start--
				}
				c := canonicalCycle(stack[start:])
				if key := setKey(c.Path); !seen[key] {
					seen[key] = true
					cycles = append(cycles, c)
				}
			}
		}

		stack = stack[:len(stack)-1]
		color[id] = black
	}

	for _, n := range g.Nodes() {
		if color[n.ID] == white {
			dfs(n.ID)
		}
	}

	sort.Slice(cycles, func(i, j int) bool {
		return strings.Join(cycles[i].Path, "\x00") < strings.Join(cycles[j].Path, "\x00")
	})
	return cycles
}

// HasCycle reports whether the graph contains any cycle.
func (g *Graph) HasCycle() bool {
	return len(g.FindCycles()) > 0
}

// canonicalCycle rotates path to start at its smallest node.
func canonicalCycle(path []string) Cycle {
	minIdx := 0
	for i, id := range path {
		if id < path[minIdx] {
			minIdx = i
		}
	}
	out := make([]string, 0, len(path))
	out = append(out, path[minIdx:]...)
	out = append(out, path[:minIdx]...)
	return Cycle{Path: out}
}

func setKey(path []string) string {
	sorted := append([]string(nil), path...)
	sort.Strings(sorted)
	return strings.Join(sorted, "\x00")
}
