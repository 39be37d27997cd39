// Package gymflock is a multi-robot coverage simulator: a team of robots
// moves over a graph of target locations and is rewarded for every target
// it visits for the first time.
//
// 🚀 What is inside?
//
//   - geom/      points, rectangles, R-tree index, road segments
//   - core/      undirected motion graph with self-loops
//   - builder/   deterministic graph fixtures (path, cycle, grid, ...)
//   - bfs/       breadth-first traversal and nearest-region queries
//   - gridgraph/ spatial graph builder: lattice, roads, obstacles, motion edges
//   - matrix/    bounded-horizon travel-time and next-hop matrices
//   - action/    per-robot candidate actions and collision resolution
//   - obs/       fixed-capacity graph observations and their wire format
//   - vrp/       prize-collecting multi-vehicle route planner
//   - routing/   random, greedy and planned expert controllers
//   - config/    validated YAML / JSONC configuration
//   - coverage/  the episode surface: Reset, Step, Expert, Rollout
//   - trace/     step traces in a zstd CBOR stream
//
// The binary cmd/coverage-sim plays episodes from the command line:
//
//	coverage-sim --config sim.yaml --episodes 10 --policy planned --trace run.trace
//
// Quick ASCII example of a square lattice with its motion edges; every
// target also carries a self-loop so "stay" is an action:
//
//	o───o───o
//	│   │   │
//	o───o───o
package gymflock
