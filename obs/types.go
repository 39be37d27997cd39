// SPDX-License-Identifier: MIT

package obs

import (
	"errors"

	"github.com/henghenghahei849/gym-flock/action"
	"github.com/henghenghahei849/gym-flock/geom"
)

// Sentinel errors for observation encoding.
var (
	// ErrCapacity indicates the nodes or edges do not fit the fixed buffers.
	ErrCapacity = errors.New("obs: buffer capacity exceeded")

	// ErrStateShape indicates a State slice does not match the encoder.
	ErrStateShape = errors.New("obs: state does not match encoder shape")

	// ErrCodecUnavailable is returned by the Unavailable codec.
	ErrCodecUnavailable = errors.New("obs: tensor codec unavailable")

	// ErrMalformed indicates a flat tensor or wire payload of the wrong shape.
	ErrMalformed = errors.New("obs: malformed payload")
)

// Sentinel is written to unused sender and receiver slots.
const Sentinel = -1

// Fixed node feature columns.
const (
	ColRobot = iota
	ColTarget
	ColUnvisited
	baseNodeWidth
)

// Options configures an Encoder.
type Options struct {
	// MaxNodes fixes the node rows; 0 sizes the buffer to exactly R+T.
	MaxNodes        int
	EdgesPerNode    int
	Resolution      float64
	NodeHistory     bool
	HideNodes       bool
	DiscoveryRadius float64
	PosDelta        bool
	LastEdge        bool
	CommEdges       bool
	CommRadius      float64
}

// Layout is the fixed shape of every observation of one encoder.
type Layout struct {
	MaxNodes     int `cbor:"max_nodes"`
	EdgesPerNode int `cbor:"edges_per_node"`
	NodeWidth    int `cbor:"node_width"`
	EdgeWidth    int `cbor:"edge_width"`
	HistoryCol   int `cbor:"history_col"`  // -1 when absent
	FrontierCol  int `cbor:"frontier_col"` // -1 when absent
	LastEdgeCol  int `cbor:"last_col"`     // -1 when absent
}

// MaxEdges returns the number of edge rows.
func (l Layout) MaxEdges() int { return l.MaxNodes * l.EdgesPerNode }

// layoutFor derives the column layout from opts.
func layoutFor(opts Options, maxNodes int) Layout {
	l := Layout{MaxNodes: maxNodes, EdgesPerNode: opts.EdgesPerNode, NodeWidth: baseNodeWidth,
		HistoryCol: -1, FrontierCol: -1, LastEdgeCol: -1}
	if opts.NodeHistory {
		l.HistoryCol = l.NodeWidth
		l.NodeWidth++
	}
	if opts.HideNodes {
		l.FrontierCol = l.NodeWidth
		l.NodeWidth++
	}
	if opts.LastEdge {
		l.LastEdgeCol = 0
		l.EdgeWidth = 1
	}
	if opts.PosDelta {
		l.EdgeWidth += 3
	} else {
		l.EdgeWidth++
	}
	return l
}

// Observation is one encoded step.
type Observation struct {
	Layout    Layout
	NumNodes  int
	Nodes     []float32 // MaxNodes × NodeWidth
	Edges     []float32 // MaxEdges × EdgeWidth
	Senders   []int32
	Receivers []int32
	Step      int
}

// Node returns the feature row of node i.
func (o *Observation) Node(i int) []float32 {
	w := o.Layout.NodeWidth
	return o.Nodes[i*w : (i+1)*w]
}

// Edge returns the feature row of edge slot e.
func (o *Observation) Edge(e int) []float32 {
	w := o.Layout.EdgeWidth
	return o.Edges[e*w : (e+1)*w]
}

// ActiveEdges counts slots whose sender is not the sentinel.
func (o *Observation) ActiveEdges() int {
	n := 0
	for _, s := range o.Senders {
		if s != Sentinel {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of o.
func (o *Observation) Clone() *Observation {
	c := *o
	c.Nodes = append([]float32(nil), o.Nodes...)
	c.Edges = append([]float32(nil), o.Edges...)
	c.Senders = append([]int32(nil), o.Senders...)
	c.Receivers = append([]int32(nil), o.Receivers...)
	return &c
}

// State is the per-step input of Encode. Per-target slices are indexed by
// target id (0..T-1), not by node id.
type State struct {
	Robots  []geom.Point
	Visited []bool
	// History marks targets ever occupied; read when NodeHistory is set.
	History []bool
	Actions *action.Table
	// LastLoc holds each robot's target before the step, or nil.
	LastLoc []int
	Step    int
}
