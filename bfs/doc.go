// Package bfs provides breadth-first search over a core.Graph,
// returning unweighted shortest-path distances, parent links, and visit order.
//
// BFS explores vertices in increasing distance from a start vertex,
// with optional hooks, depth limiting, and neighbor filtering. Neighbors
// are expanded in ascending index order, so Order, Depth and Parent are
// fully deterministic for a given graph.
//
// Nearest grows whole BFS layers around a vertex until a requested number
// of vertices has been collected; coverage episodes use it to carve a
// compact start region out of the motion graph.
package bfs
