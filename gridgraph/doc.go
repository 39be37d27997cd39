// SPDX-License-Identifier: MIT

// Package gridgraph assembles coverage maps: a regular lattice of candidate
// points is laid over a bounding region, thinned to the points lying near a
// procedural road network, joined by a fixed-radius proximity graph with
// self-loops, and finally reduced to its single largest connected component.
//
// Pipeline (Build):
//
//	Stage 1 (Lattice):   sheared grid inside Spec.Bounds, centered on it.
//	Stage 2 (Obstacles): drop points inside any Spec.Obstacles rectangle.
//	Stage 3 (Roads):     random cities joined by a Euclidean MST plus every
//	                     pair within IntercityRadius; keep points within
//	                     RoadTolerance of a segment.
//	Stage 4 (Radius):    proximity graph at MotionRadius, self-loops added.
//	Stage 5 (Component): keep the largest component (first label on ties)
//	                     and re-index targets 0..n-1.
//
// The resulting Map is fully connected under the motion radius, so every
// pairwise travel time is finite when no horizon is applied. An empty or
// edgeless result is reported as ErrDegenerateMap rather than producing a
// zero-target map.
//
// Map.Fingerprint hashes target coordinates and edges with BLAKE3; callers
// compare fingerprints to decide whether cached travel-time matrices are stale.
package gridgraph
