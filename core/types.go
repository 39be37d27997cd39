// SPDX-License-Identifier: MIT

package core

import "errors"

// Sentinel errors for core graph operations.
var (
	// ErrNegativeOrder indicates a graph was requested with a negative vertex count.
	ErrNegativeOrder = errors.New("core: vertex count must be non-negative")

	// ErrVertexNotFound indicates an operation referenced a vertex outside [0, n).
	ErrVertexNotFound = errors.New("core: vertex not found")

	// ErrLoopNotAllowed indicates a self-loop was attempted when loops are disabled.
	ErrLoopNotAllowed = errors.New("core: self-loop not allowed")

	// ErrMultiEdgeNotAllowed indicates the edge is already present.
	ErrMultiEdgeNotAllowed = errors.New("core: multi-edges not allowed")
)

// Edge is one directed half of an undirected edge. A self-loop is a single
// Edge with From == To.
type Edge struct {
	From int
	To   int
}

// GraphOption configures behavior of a Graph before creation.
type GraphOption func(g *Graph)

// WithLoops permits self-loops (edges from a vertex to itself).
func WithLoops() GraphOption {
	return func(g *Graph) { g.allowLoops = true }
}

// Graph is an undirected graph over the vertices 0..n-1.
type Graph struct {
	allowLoops bool
	adj        [][]int // sorted ascending, no duplicates
	halfEdges  int
}

// NewGraph creates a graph with n isolated vertices.
func NewGraph(n int, opts ...GraphOption) (*Graph, error) {
	if n < 0 {
		return nil, ErrNegativeOrder
	}
	g := &Graph{adj: make([][]int, n)}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}
