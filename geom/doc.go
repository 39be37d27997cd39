// SPDX-License-Identifier: MIT

// Package geom holds the planar primitives used to assemble coverage maps:
// points, axis-aligned rectangles, road segments, flat pairwise-distance
// tables, and R-tree backed spatial indexes for radius and nearest-point
// queries.
//
// Positions are kept in flat []Point slices whose index is the node id used
// everywhere else in the module; no routine here reorders its input.
//
// Index answers Within/Nearest in O(log n + k) on average, where k is the
// number of candidates whose bounding boxes intersect the query. Exact
// Euclidean filtering is applied after the R-tree prefilter so results never
// depend on the tree's approximate rectangle distances.
package geom
