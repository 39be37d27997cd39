// SPDX-License-Identifier: MIT

package builder

import (
	"fmt"

	"github.com/henghenghahei849/gym-flock/core"
)

// Constructor describes one graph topology. It reports the vertex count and
// emits undirected edges through add in a stable order.
type Constructor func(cfg builderConfig) (order int, edges func(add func(u, v int) error) error, err error)

// Build resolves opts and materializes con into a new core.Graph.
// Any constructor error is wrapped with the context "Build: %w".
//
// Complexity: O(V + E·log Δ) where Δ is the maximum degree.
func Build(con Constructor, opts ...BuilderOption) (*core.Graph, error) {
	if con == nil {
		return nil, fmt.Errorf("Build: nil constructor: %w", ErrConstructFailed)
	}
	cfg := newBuilderConfig(opts...)
	n, emit, err := con(cfg)
	if err != nil {
		return nil, fmt.Errorf("Build: %w", err)
	}
	g, err := core.NewGraph(n, cfg.graphOptions()...)
	if err != nil {
		return nil, fmt.Errorf("Build: %w", err)
	}
	if err = emit(g.AddEdge); err != nil {
		return nil, fmt.Errorf("Build: %w", err)
	}
	if cfg.loops {
		if err = g.AddLoops(); err != nil {
			return nil, fmt.Errorf("Build: %w", err)
		}
	}
	return g, nil
}

// MustBuild is Build for fixtures known to be valid; it panics on error.
func MustBuild(con Constructor, opts ...BuilderOption) *core.Graph {
	g, err := Build(con, opts...)
	if err != nil {
		panic(err)
	}
	return g
}
