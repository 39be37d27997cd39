// SPDX-License-Identifier: MIT

// Package coverage is the episode surface of the multi-robot coverage
// simulation.
//
// An Env owns one map, the robots placed on it and the per-episode state:
// visited targets, discovery, visitation history and the expert's cached
// plan. Reset starts an episode, Step advances it by one synchronous move of
// every robot, Expert proposes actions from the routing controller.
//
//	env, err := coverage.New(config.Default())
//	o, err := env.Reset()
//	for {
//		acts, err := env.Expert(ctx)
//		res, err := env.Step(acts)
//		if res.Done {
//			break
//		}
//	}
//
// All randomness (geometry, start positions, active targets, the revisit
// rule and random actions) is drawn from one generator seeded by WithSeed
// and reseeded by Seed.
// An Env is not safe for concurrent use; run independent environments in
// parallel instead.
package coverage
