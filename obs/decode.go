// SPDX-License-Identifier: MIT

package obs

// Edge is one active edge of a decoded graph.
type Edge struct {
	Sender   int
	Receiver int
	Features []float32
}

// Graph is the active content of an observation, padding removed.
type Graph struct {
	Nodes [][]float32
	Edges []Edge
	Step  int
}

// Decode returns the first NumNodes node rows and every edge slot whose
// sender is not the sentinel, in slot order.
func Decode(o *Observation) *Graph {
	g := &Graph{Nodes: make([][]float32, o.NumNodes), Step: o.Step}
	for i := range g.Nodes {
		g.Nodes[i] = append([]float32(nil), o.Node(i)...)
	}
	for e, s := range o.Senders {
		if s == Sentinel {
			continue
		}
		g.Edges = append(g.Edges, Edge{
			Sender:   int(s),
			Receiver: int(o.Receivers[e]),
			Features: append([]float32(nil), o.Edge(e)...),
		})
	}
	return g
}
