package dag

// maxSearchSteps bounds the backtracking search used on cyclic graphs.
const maxSearchSteps = 1 << 20

// Chain is the longest simple dependency path starting at a root.
type Chain struct {
	Root string
	Path []string
}

// Length returns the number of edges in the chain.
func (c Chain) Length() int {
	if len(c.Path) == 0 {
		return 0
	}
	return len(c.Path) - 1
}

// Terminal returns the last node of the chain.
func (c Chain) Terminal() string {
	if len(c.Path) == 0 {
		return ""
	}
	return c.Path[len(c.Path)-1]
}

// LongestChains returns, for every root in sorted order, the longest simple
// path that starts there. Among equally long paths the first in sorted
// traversal order wins.
func (g *Graph) LongestChains() []Chain {
	roots := g.Roots()
	chains := make([]Chain, 0, len(roots))

	if !g.HasCycle() {
		memo := make(map[string][]string, len(g.nodes))
		for _, root := range roots {
			chains = append(chains, Chain{Root: root, Path: g.longestAcyclic(root, memo)})
		}
		return chains
	}

	for _, root := range roots {
		chains = append(chains, Chain{Root: root, Path: g.longestBacktracking(root)})
	}
	return chains
}

// MaxChainDepth returns the longest chain length in edges.
func (g *Graph) MaxChainDepth() int {
	depth := 0
	for _, c := range g.LongestChains() {
		if c.Length() > depth {
			depth = c.Length()
		}
	}
	return depth
}

func (g *Graph) longestAcyclic(id string, memo map[string][]string) []string {
	if p, ok := memo[id]; ok {
		return p
	}
	best := []string{id}
	for _, next := range g.deps[id] {
		sub := g.longestAcyclic(next, memo)
		if len(sub)+1 > len(best) {
			best = append([]string{id}, sub...)
		}
	}
	memo[id] = best
	return best
}

func (g *Graph) longestBacktracking(root string) []string {
	onPath := map[string]bool{root: true}
	path := []string{root}
	best := []string{root}
	steps := 0

	var walk func(id string)
	walk = func(id string) {
		for _, next := range g.deps[id] {
			if onPath[next] || steps >= maxSearchSteps {
				continue
			}
			steps++
			onPath[next] = true
			path = append(path, next)
			if len(path) > len(best) {
				best = append(best[:0:0], path...)
			}
			walk(next)
			path = path[:len(path)-1]
			onPath[next] = false
		}
	}
	walk(root)
	return best
}
