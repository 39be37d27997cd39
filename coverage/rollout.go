// SPDX-License-Identifier: MIT

package coverage

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/henghenghahei849/gym-flock/routing"
)

// StepHook observes every step of Rollout. It is also called once after
// each Reset with nil actions and a Result carrying the initial observation
// at step 0. A non-nil error stops the run.
type StepHook func(id uuid.UUID, actions []int, res *Result) error

// EpisodeStats summarises one episode.
type EpisodeStats struct {
	ID         uuid.UUID
	Reward     int
	Steps      int
	AllVisited bool
	Blocked    int
}

// Rollout plays episodes to completion with policy and returns their
// statistics. hook may be nil.
//
// Complexity: O(episodes · EpisodeLength · cost of one Decide).
func Rollout(ctx context.Context, env *Env, policy routing.Policy, episodes int, hook StepHook) ([]EpisodeStats, error) {
	stats := make([]EpisodeStats, 0, episodes)
	for ep := 0; ep < episodes; ep++ {
		o, err := env.Reset()
		if err != nil {
			return stats, fmt.Errorf("episode %d: %w", ep, err)
		}
		st := EpisodeStats{ID: env.Episode()}
		if hook != nil {
			if err := hook(st.ID, nil, &Result{Obs: o}); err != nil {
				return stats, err
			}
		}
		resetPlan := true
		for {
			if err := ctx.Err(); err != nil {
				return stats, err
			}
			actions, err := env.Decide(ctx, policy, resetPlan)
			if err != nil {
				return stats, fmt.Errorf("episode %d: %w", ep, err)
			}
			resetPlan = false
			res, err := env.Step(actions)
			if err != nil {
				return stats, fmt.Errorf("episode %d: %w", ep, err)
			}
			if hook != nil {
				if err := hook(st.ID, actions, res); err != nil {
					return stats, err
				}
			}
			st.Reward += res.Reward
			st.Blocked += res.Info.Blocked
			st.Steps = res.Info.Step
			if res.Done {
				st.AllVisited = res.Info.AllVisited
				break
			}
		}
		stats = append(stats, st)
	}
	return stats, nil
}
