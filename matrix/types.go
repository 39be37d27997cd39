// SPDX-License-Identifier: MIT

package matrix

import (
	"errors"
	"fmt"
)

// Sentinel errors for matrix operations.
var (
	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrIndexOutOfBounds indicates that a row or column index is outside valid range.
	ErrIndexOutOfBounds = errors.New("matrix: index out of bounds")

	// ErrGraphNil is returned when TimeMatrix receives a nil graph.
	ErrGraphNil = errors.New("matrix: graph is nil")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("matrix: invalid option supplied")
)

const (
	// MaxCost is the default cost reported for pairs not reached within the horizon.
	MaxCost = 1000.0

	// NoPath marks predecessor cells without a path, and the diagonal.
	NoPath = -1

	// Unbounded disables the horizon.
	Unbounded = -1
)

// Method selects the shortest-path procedure used by TimeMatrix.
type Method int

const (
	// Relaxation runs synchronous Bellman-Ford rounds.
	Relaxation Method = iota
	// BreadthFirst runs one depth-limited BFS per origin.
	BreadthFirst
)

// String returns the method name.
func (m Method) String() string {
	switch m {
	case Relaxation:
		return "relaxation"
	case BreadthFirst:
		return "breadth-first"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// UnmarshalText parses the String form of a Method.
func (m *Method) UnmarshalText(b []byte) error {
	for _, v := range []Method{Relaxation, BreadthFirst} {
		if v.String() == string(b) {
			*m = v
			return nil
		}
	}
	return fmt.Errorf("%w: method %q", ErrOptionViolation, b)
}

// MarshalText implements encoding.TextMarshaler.
func (m Method) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// Option configures TimeMatrix via functional arguments.
type Option func(*Options)

// Options holds the parameters of a TimeMatrix computation.
type Options struct {
	Horizon  int
	EdgeTime float64
	MaxCost  float64
	Method   Method

	err error
}

// DefaultOptions returns an unbounded horizon, unit edge time, MaxCost
// clamping and the Relaxation method.
func DefaultOptions() Options {
	return Options{Horizon: Unbounded, EdgeTime: 1, MaxCost: MaxCost, Method: Relaxation}
}

// WithHorizon limits the number of hops examined. Unbounded (-1) lifts the
// limit; other negative values are rejected.
func WithHorizon(h int) Option {
	return func(o *Options) {
		if h < Unbounded {
			o.err = fmt.Errorf("%w: horizon %d", ErrOptionViolation, h)
			return
		}
		o.Horizon = h
	}
}

// WithEdgeTime sets the cost of a single hop (must be > 0).
func WithEdgeTime(c float64) Option {
	return func(o *Options) {
		if !(c > 0) {
			o.err = fmt.Errorf("%w: edge time %v", ErrOptionViolation, c)
			return
		}
		o.EdgeTime = c
	}
}

// WithMaxCost sets the value written for unreached pairs (must be > 0).
func WithMaxCost(m float64) Option {
	return func(o *Options) {
		if !(m > 0) {
			o.err = fmt.Errorf("%w: max cost %v", ErrOptionViolation, m)
			return
		}
		o.MaxCost = m
	}
}

// WithMethod selects the shortest-path procedure.
func WithMethod(m Method) Option {
	return func(o *Options) {
		if m != Relaxation && m != BreadthFirst {
			o.err = fmt.Errorf("%w: %v", ErrOptionViolation, m)
			return
		}
		o.Method = m
	}
}
