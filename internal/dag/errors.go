package dag

import "errors"

// Sentinel errors for graph operations.
var (
	// ErrNodeNotFound indicates an edge endpoint is not a node of the graph.
	ErrNodeNotFound = errors.New("node not found")
	// ErrSelfLoop indicates an edge from a node to itself.
	ErrSelfLoop = errors.New("self-loop")
	// ErrCycle indicates an operation that requires an acyclic graph.
	ErrCycle = errors.New("cycle detected")
)
