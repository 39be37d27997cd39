// SPDX-License-Identifier: MIT

// Package matrix provides the dense row-major containers and the travel-time
// engine used by the routing controller.
//
// Dense stores float64 costs, IntDense stores integer predecessors; both keep
// their r×c elements in one flat slice. Row(i) exposes a row as a view for
// hot loops, At/Set are bounds-checked.
//
// TimeMatrix computes, for every ordered pair of motion-graph vertices, the
// hop cost of a shortest path and the predecessor of the destination on that
// path. Costs are uniform per edge (WithEdgeTime). A horizon H bounds the
// number of hops examined: pairs further apart than H hops are reported as
// MaxCost with predecessor NoPath. H = Unbounded examines every hop count.
//
// Two interchangeable methods produce identical cost matrices (predecessors
// may pick different parents among equally short paths):
//
//	Relaxation:   synchronous label-relaxation rounds over the edge list,
//	              all origins at once; round k settles every pair ≤ k hops.
//	              O(min(H, D)·E·n) where D is the graph diameter.
//	BreadthFirst: one depth-limited BFS per origin. O(n·(n + E)).
//
// The predecessor matrix is indexed [origin][dest]; following it backwards
// from dest reaches origin. The diagonal holds NoPath.
package matrix
