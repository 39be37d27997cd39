// SPDX-License-Identifier: MIT

// Package obs packs the coverage state into fixed-capacity graph buffers.
//
// An Observation has MaxNodes node rows and MaxEdges edge rows; MaxEdges is
// MaxNodes·EdgesPerNode. Node ids are shared by robots and targets: robots
// occupy [0, R), targets [R, R+T). Rows past the real node count are zero.
//
// Node columns:
//
//	0 is-robot, 1 is-target, 2 is-unvisited,
//	then visitation-history (NodeHistory), then frontier (HideNodes).
//
// Edge columns:
//
//	last-edge flag (LastEdge), then distance, or dx, dy, distance (PosDelta).
//	Lengths are divided by Resolution; dx, dy is sender minus receiver.
//
// Edge buffer:
//
//	[0, M)                motion edges, written once by NewEncoder
//	[M, MaxEdges-A)       sentinel (-1 sender and receiver)
//	[MaxEdges-A, MaxEdges) A active edges rewritten every Encode:
//	                      target→robot action edges, robot→target action
//	                      edges, then robot↔robot communication edges
//
// With HideNodes, a node is discovered once a robot comes within
// DiscoveryRadius of it and stays discovered until ResetDiscovery.
// Undiscovered rows are zeroed; motion edges touching an undiscovered node
// are masked to -1; active edges are always kept. A discovered target with
// an undiscovered motion neighbour carries the frontier flag.
//
// Overflowing either capacity is reported as ErrCapacity. TensorCodec
// flattens observations for numeric consumers; Marshal/Unmarshal give a
// compressed CBOR wire form.
package obs
