// SPDX-License-Identifier: MIT

// Package vrp formulates the multi-vehicle coverage plan as a vehicle
// routing problem with optional nodes, and solves it.
//
// BuildDataModel turns a target time matrix into a depot-augmented data
// model: node 0 is a virtual depot, target t is node t+1. Every vehicle
// leaves the depot for free only towards its own start node, returns to the
// depot for free from anywhere, and may skip any target at the cost of that
// target's drop penalty. Targets that are already visited (and are not a
// start) are decoupled with a flat cost equal to the penalty multiplier.
//
// The Solver capability consumes the data model and returns, per vehicle,
// the ordered target indices of its route with the depot removed. The first
// entry of every route is the vehicle's start target.
//
// Heuristic is the built-in Solver:
//
//	Stage 1 (Construct): global cheapest-arc path extension under the
//	                     per-vehicle time budget.
//	Stage 2 (Insert):    cheapest insertion of still-dropped targets whose
//	                     detour is below their penalty.
//	Stage 3 (Improve):   first-improvement 2-opt on every open route.
//
// Optional restarts perturb the construction order with deterministic
// substreams of one seed and keep the plan of lowest objective.
//
// Unavailable stands in for a solver that is not wired into a build and
// fails with ErrSolverUnavailable only when Solve is called.
package vrp
