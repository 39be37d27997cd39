// SPDX-License-Identifier: MIT

package core

import (
	"fmt"
	"sort"
)

// Order returns the number of vertices.
func (g *Graph) Order() int { return len(g.adj) }

// Looped reports whether self-loops are permitted.
func (g *Graph) Looped() bool { return g.allowLoops }

// HasVertex reports whether v is a valid vertex index.
func (g *Graph) HasVertex(v int) bool { return v >= 0 && v < len(g.adj) }

// AddEdge inserts the undirected edge {u, v}.
func (g *Graph) AddEdge(u, v int) error {
	if !g.HasVertex(u) || !g.HasVertex(v) {
		return fmt.Errorf("%w: edge {%d,%d} in graph of order %d", ErrVertexNotFound, u, v, len(g.adj))
	}
	if u == v && !g.allowLoops {
		return ErrLoopNotAllowed
	}
	if g.HasEdge(u, v) {
		return ErrMultiEdgeNotAllowed
	}
	g.adj[u] = insertSorted(g.adj[u], v)
	g.halfEdges++
	if u != v {
		g.adj[v] = insertSorted(g.adj[v], u)
		g.halfEdges++
	}
	return nil
}

// AddLoops adds a self-loop to every vertex that lacks one.
func (g *Graph) AddLoops() error {
	if !g.allowLoops {
		return ErrLoopNotAllowed
	}
	for v := range g.adj {
		if !g.HasEdge(v, v) {
			g.adj[v] = insertSorted(g.adj[v], v)
			g.halfEdges++
		}
	}
	return nil
}

// HasEdge reports whether {u, v} is present.
func (g *Graph) HasEdge(u, v int) bool {
	if !g.HasVertex(u) || !g.HasVertex(v) {
		return false
	}
	nb := g.adj[u]
	i := sort.SearchInts(nb, v)
	return i < len(nb) && nb[i] == v
}

// Neighbors returns a copy of v's adjacency list in ascending order,
// including v itself when it carries a self-loop.
func (g *Graph) Neighbors(v int) ([]int, error) {
	if !g.HasVertex(v) {
		return nil, fmt.Errorf("%w: %d", ErrVertexNotFound, v)
	}
	out := make([]int, len(g.adj[v]))
	copy(out, g.adj[v])
	return out, nil
}

// Degree returns the number of adjacency entries of v (a loop counts once).
func (g *Graph) Degree(v int) int {
	if !g.HasVertex(v) {
		return 0
	}
	return len(g.adj[v])
}

// MaxDegree returns the largest Degree over all vertices.
func (g *Graph) MaxDegree() int {
	best := 0
	for _, nb := range g.adj {
		if len(nb) > best {
			best = len(nb)
		}
	}
	return best
}

// NumHalfEdges returns len(Edges()) without materializing the list.
func (g *Graph) NumHalfEdges() int { return g.halfEdges }

// Edges returns every directed half-edge in (From, To) lexicographic order.
// Each undirected edge appears twice, each self-loop once.
//
// Complexity: O(V + E).
func (g *Graph) Edges() []Edge {
	out := make([]Edge, 0, g.halfEdges)
	for u, nb := range g.adj {
		for _, v := range nb {
			out = append(out, Edge{From: u, To: v})
		}
	}
	return out
}

// ConnectedComponents labels vertices by breadth-first flooding, scanning
// start vertices in ascending order. Components are returned in the order
// their lowest vertex was met; each component is sorted ascending.
//
// Time:   O(V + E).
// Memory: O(V).
func (g *Graph) ConnectedComponents() [][]int {
	seen := make([]bool, len(g.adj))
	var comps [][]int
	for s := range g.adj {
		if seen[s] {
			continue
		}
		queue := []int{s}
		seen[s] = true
		for qi := 0; qi < len(queue); qi++ {
			for _, v := range g.adj[queue[qi]] {
				if !seen[v] {
					seen[v] = true
					queue = append(queue, v)
				}
			}
		}
		sort.Ints(queue)
		comps = append(comps, queue)
	}
	return comps
}

// LargestComponent returns the biggest connected component; among equally
// large components the first one labeled wins. Nil for an empty graph.
func (g *Graph) LargestComponent() []int {
	var best []int
	for _, c := range g.ConnectedComponents() {
		if len(c) > len(best) {
			best = c
		}
	}
	return best
}

// Induced returns the subgraph induced by keep, with keep[i] becoming vertex i.
// The loop setting is inherited.
func (g *Graph) Induced(keep []int) (*Graph, error) {
	index := make(map[int]int, len(keep))
	for i, v := range keep {
		if !g.HasVertex(v) {
			return nil, fmt.Errorf("%w: %d", ErrVertexNotFound, v)
		}
		index[v] = i
	}
	sub := &Graph{allowLoops: g.allowLoops, adj: make([][]int, len(keep))}
	for i, v := range keep {
		for _, w := range g.adj[v] {
			if j, ok := index[w]; ok {
				sub.adj[i] = append(sub.adj[i], j)
			}
		}
		sort.Ints(sub.adj[i])
		sub.halfEdges += len(sub.adj[i])
	}
	return sub, nil
}

// Clone returns a deep copy of g.
func (g *Graph) Clone() *Graph {
	c := &Graph{allowLoops: g.allowLoops, adj: make([][]int, len(g.adj)), halfEdges: g.halfEdges}
	for v, nb := range g.adj {
		c.adj[v] = append([]int(nil), nb...)
	}
	return c
}

// insertSorted inserts v into the ascending slice s.
func insertSorted(s []int, v int) []int {
	i := sort.SearchInts(s, v)
	s = append(s, 0)
	copy(s[i+1:], s[i:])
	s[i] = v
	return s
}
