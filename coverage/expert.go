// SPDX-License-Identifier: MIT

package coverage

import (
	"context"

	"github.com/henghenghahei849/gym-flock/obs"
	"github.com/henghenghahei849/gym-flock/routing"
)

// Decide returns one action per robot chosen by policy for the current
// state. resetPlan forces a fresh plan under routing.Planned.
func (e *Env) Decide(ctx context.Context, policy routing.Policy, resetPlan bool) ([]int, error) {
	if e.actions == nil {
		return nil, ErrNotReset
	}
	return e.ctrl.Decide(ctx, e.routingState(), policy, resetPlan)
}

// Expert returns the actions of the configured routing policy.
func (e *Env) Expert(ctx context.Context) ([]int, error) {
	return e.Decide(ctx, e.cfg.Routing.Policy, false)
}

// Controller exposes the routing controller.
func (e *Env) Controller() *routing.Controller { return e.ctrl }

func (e *Env) routingState() routing.State {
	s := routing.State{
		Map:           e.m,
		Current:       e.current,
		Actions:       e.actions,
		Visited:       e.visited,
		Step:          e.step,
		EpisodeLength: e.cfg.EpisodeLength,
	}
	if e.cfg.Features.HideNodes {
		s.Discovered = e.enc.Discovered()
	}
	return s
}

// Pack flattens the latest observation with the configured codec.
func (e *Env) Pack() ([]float32, error) {
	if e.last == nil {
		return nil, ErrNotReset
	}
	var c obs.TensorCodec = obs.FlatCodec{Layout: e.enc.Layout()}
	if e.opts.codec != nil {
		c = e.opts.codec
	}
	return c.Pack(e.last)
}
