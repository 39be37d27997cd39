// SPDX-License-Identifier: MIT

package obs

import "fmt"

// TensorCodec converts observations to and from one flat float32 vector.
type TensorCodec interface {
	Pack(o *Observation) ([]float32, error)
	Unpack(flat []float32) (*Graph, error)
}

// FlatCodec lays an observation out as
// [nodes | edges | senders | receivers | step], every block row-major at the
// full fixed capacity of Layout.
type FlatCodec struct {
	Layout Layout
}

// Size returns the length of a packed vector.
func (c FlatCodec) Size() int {
	l := c.Layout
	return l.MaxNodes*l.NodeWidth + l.MaxEdges()*(l.EdgeWidth+2) + 1
}

// NodesFromSize recovers MaxNodes from a packed vector length.
func (c FlatCodec) NodesFromSize(size int) int {
	l := c.Layout
	return (size - 1) / (l.EdgesPerNode*(2+l.EdgeWidth) + l.NodeWidth)
}

// Pack flattens o.
func (c FlatCodec) Pack(o *Observation) ([]float32, error) {
	if o.Layout != c.Layout {
		return nil, fmt.Errorf("%w: observation layout %+v, codec layout %+v", ErrMalformed, o.Layout, c.Layout)
	}
	flat := make([]float32, 0, c.Size())
	flat = append(flat, o.Nodes...)
	flat = append(flat, o.Edges...)
	for _, s := range o.Senders {
		flat = append(flat, float32(s))
	}
	for _, r := range o.Receivers {
		flat = append(flat, float32(r))
	}
	return append(flat, float32(o.Step)), nil
}

// Unpack splits flat and drops padded edges. Every MaxNodes row is returned
// since the flat form does not carry the real node count.
func (c FlatCodec) Unpack(flat []float32) (*Graph, error) {
	if len(flat) != c.Size() {
		return nil, fmt.Errorf("%w: %d values, want %d", ErrMalformed, len(flat), c.Size())
	}
	l := c.Layout
	maxEdges := l.MaxEdges()
	nodes := flat[:l.MaxNodes*l.NodeWidth]
	edges := flat[len(nodes) : len(nodes)+maxEdges*l.EdgeWidth]
	senders := flat[len(nodes)+len(edges) : len(nodes)+len(edges)+maxEdges]
	receivers := flat[len(nodes)+len(edges)+maxEdges : len(flat)-1]

	g := &Graph{Nodes: make([][]float32, l.MaxNodes), Step: int(flat[len(flat)-1])}
	for i := range g.Nodes {
		g.Nodes[i] = append([]float32(nil), nodes[i*l.NodeWidth:(i+1)*l.NodeWidth]...)
	}
	for e, s := range senders {
		if s == Sentinel {
			continue
		}
		g.Edges = append(g.Edges, Edge{
			Sender:   int(s),
			Receiver: int(receivers[e]),
			Features: append([]float32(nil), edges[e*l.EdgeWidth:(e+1)*l.EdgeWidth]...),
		})
	}
	return g, nil
}

// Unavailable stands in for a codec that is not wired into this build.
// It fails only when used.
type Unavailable struct {
	Reason string
}

// Pack always fails with ErrCodecUnavailable.
func (u Unavailable) Pack(*Observation) ([]float32, error) {
	return nil, fmt.Errorf("%w: %s", ErrCodecUnavailable, u.Reason)
}

// Unpack always fails with ErrCodecUnavailable.
func (u Unavailable) Unpack([]float32) (*Graph, error) {
	return nil, fmt.Errorf("%w: %s", ErrCodecUnavailable, u.Reason)
}
