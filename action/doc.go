// SPDX-License-Identifier: MIT

// Package action turns robot locations into a fixed discrete action space
// and applies chosen actions under a deterministic collision policy.
//
// Candidates lists, for every robot, exactly K destination targets: the
// motion-graph neighbours of its current target in ascending order (the
// self-loop included), padded with further self-loops when the degree is
// below K. An action is an index into that list. A degree above K means the
// configured action count cannot express the graph and is reported as
// ErrActionOverflow.
//
// Resolve applies one destination per robot. Robots staying put are settled
// first and never blocked; the rest move in index order when collision
// checking is on, and a move into a destination already settled this step is
// refused (the robot stays where it was).
package action
