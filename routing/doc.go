// SPDX-License-Identifier: MIT

// Package routing turns the coverage state into one action per robot.
//
// A Controller owns the travel-time and predecessor matrices of the current
// map and a cached multi-vehicle plan. Three policies are available:
//
//   - Random:  every robot draws one of its K actions uniformly.
//   - Greedy:  every robot heads for the cheapest reachable unvisited
//     (and discovered) target; no such target yields NoTarget.
//   - Planned: robots follow routes of a vrp.Solver, popping waypoints as
//     they reach them, and fall back to their greedy choice once their
//     route is exhausted.
//
// A decided target is translated into an action through the next hop on a
// shortest path. Unreachable targets within the horizon degrade to a random
// action for that robot only; a target equal to the robot's node selects
// the robot's self-loop.
//
// Matrices are rebuilt lazily whenever the map fingerprint changes. The plan
// is recomputed when absent, on every decision under a finite horizon, or on
// request. Solver timeouts and infeasible plans fall back to greedy; an
// unavailable solver is a configuration error and is returned.
//
// A Controller is not safe for concurrent use.
package routing
