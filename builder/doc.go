// SPDX-License-Identifier: MIT

// Package builder provides deterministic constructors for canonical motion
// graphs: paths, cycles, stars, rectangular grids, and seeded random sparse
// graphs, optionally with a self-loop on every vertex.
//
// Constructors are plain values (Constructor) resolved by Build together with
// functional options (BuilderOption). Equal inputs and equal seeds always
// produce identical graphs, which makes these graphs the standard fixtures for
// the time-matrix, action and routing tests. Grid also has a positional twin,
// GridPoints, so geometry-driven code can be checked against a known graph.
//
// Only tests import this package; the simulator builds its maps in gridgraph.
package builder
