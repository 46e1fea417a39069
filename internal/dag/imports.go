package dag

import (
	"errors"
	"log/slog"
	"path"
	"sort"
	"strings"

	"github.com/leapstack-labs/ngaudit/pkg/core"
)

// DefaultTopFiles is how many entries MostImported and MostDependent report.
const DefaultTopFiles = 10

// sourceExtensions are tried, in order, when an import names a module without
// an extension.
var sourceExtensions = []string{".ts", ".tsx", ".js", ".mjs"}

// ImportGraph is the file-level graph of relative imports. Node IDs are file
// paths; an edge from -> to means from imports to. Package imports are not
// part of the graph.
type ImportGraph struct {
	*Graph
	exports map[string]bool
}

// BuildImports creates the import graph of the given files. Relative imports
// that resolve to no analyzed file are dropped and counted.
func BuildImports(files []*core.SourceFile, logger *slog.Logger) *ImportGraph {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	ig := &ImportGraph{Graph: NewGraph(), exports: make(map[string]bool)}
	for _, f := range files {
		ig.AddNode(Node{ID: f.Path, Name: path.Base(f.Path), FilePath: f.Path, Kind: core.KindUnknown})
		if len(f.Exports) > 0 {
			ig.exports[f.Path] = true
		}
	}

	for _, f := range files {
		for _, imp := range f.Imports {
			if !isRelative(imp.Source) {
				continue
			}
			target, ok := ig.resolve(f.Path, imp.Source)
			if !ok {
				ig.dropped++
				logger.Debug("dropping unresolved import", "file", f.Path, "source", imp.Source)
				continue
			}
			if err := ig.AddEdge(f.Path, target); err != nil {
				ig.dropped++
				if !errors.Is(err, ErrSelfLoop) {
					logger.Debug("dropping import", "file", f.Path, "source", imp.Source, "error", err)
				}
			}
		}
	}

	logger.Debug("import graph built",
		"files", ig.NodeCount(),
		"edges", ig.EdgeCount(),
		"dropped", ig.dropped)
	return ig
}

// resolve maps a relative import source to an analyzed file: the exact
// path, the path with a source extension, or an index file in the directory.
func (ig *ImportGraph) resolve(from, source string) (string, bool) {
	base := path.Join(path.Dir(from), source)
	candidates := []string{base}
	for _, ext := range sourceExtensions {
		candidates = append(candidates, base+ext)
	}
	for _, ext := range sourceExtensions {
		candidates = append(candidates, base+"/index"+ext)
	}
	for _, c := range candidates {
		if _, ok := ig.nodes[c]; ok {
			return c, true
		}
	}
	return "", false
}

func isRelative(source string) bool {
	return source == "." || source == ".." ||
		strings.HasPrefix(source, "./") || strings.HasPrefix(source, "../")
}

// Orphans returns the files that no other file imports and that export
// nothing, sorted by path.
func (ig *ImportGraph) Orphans() []string {
	out := []string{}
	for _, n := range ig.Nodes() {
		if len(ig.Dependents(n.ID)) == 0 && !ig.exports[n.ID] {
			out = append(out, n.ID)
		}
	}
	return out
}

// MostImported returns up to n files with the most importers.
func (ig *ImportGraph) MostImported(n int) []core.FileCount {
	return ig.top(n, ig.Dependents)
}

// MostDependent returns up to n files that import the most other files.
func (ig *ImportGraph) MostDependent(n int) []core.FileCount {
	return ig.top(n, ig.Dependencies)
}

// top ranks files by the size of their adjacency list, largest first, ties by
// path. Files with no edges are left out.
func (ig *ImportGraph) top(n int, edges func(string) []string) []core.FileCount {
	out := []core.FileCount{}
	for _, node := range ig.Nodes() {
		if c := len(edges(node.ID)); c > 0 {
			out = append(out, core.FileCount{Path: node.ID, Count: c})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
