// SPDX-License-Identifier: MIT

// Package core provides the compact, index-based undirected graph that every
// other package in this module walks: vertices are the integers 0..n-1 and
// adjacency lists are kept sorted, so iteration is deterministic without any
// extra bookkeeping.
//
// The Graph G = (V,E) supports:
//
//   - Undirected edges stored as mirrored adjacency entries.
//   - Optional self-loops (WithLoops); a loop appears once in Neighbors(v).
//   - Deterministic iteration: Neighbors() ascending, Edges() in
//     (From, To) lexicographic order.
//   - Connected components with first-encountered labeling, and induced
//     subgraphs re-indexed by a caller-supplied vertex order.
//
// Graphs are not safe for concurrent mutation. Coverage maps build a graph
// once and only read it afterwards.
//
// Errors:
//
//	ErrNegativeOrder       - NewGraph called with n < 0.
//	ErrVertexNotFound      - vertex index outside [0, n).
//	ErrLoopNotAllowed      - self-loop when loops are disabled.
//	ErrMultiEdgeNotAllowed - the edge already exists.
package core
