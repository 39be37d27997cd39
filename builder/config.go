// SPDX-License-Identifier: MIT

package builder

import (
	"math/rand"

	"github.com/henghenghahei849/gym-flock/core"
)

// defaultSeed keeps stochastic constructors reproducible when no seed is given.
const defaultSeed int64 = 1

// builderConfig is the resolved, immutable view of all BuilderOptions.
type builderConfig struct {
	loops bool
	rng   *rand.Rand
}

// BuilderOption customizes construction.
type BuilderOption func(*builderConfig)

// WithLoops adds a self-loop to every vertex after the topology is built.
func WithLoops() BuilderOption {
	return func(c *builderConfig) { c.loops = true }
}

// WithSeed fixes the random stream used by stochastic constructors.
func WithSeed(seed int64) BuilderOption {
	return func(c *builderConfig) { c.rng = rand.New(rand.NewSource(seed)) }
}

// WithRand injects an existing random stream. Panics on nil.
func WithRand(r *rand.Rand) BuilderOption {
	if r == nil {
		panic("builder: WithRand(nil)")
	}
	return func(c *builderConfig) { c.rng = r }
}

func newBuilderConfig(opts ...BuilderOption) builderConfig {
	cfg := builderConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.rng == nil {
		cfg.rng = rand.New(rand.NewSource(defaultSeed))
	}
	return cfg
}

func (c builderConfig) graphOptions() []core.GraphOption {
	if c.loops {
		return []core.GraphOption{core.WithLoops()}
	}
	return nil
}
