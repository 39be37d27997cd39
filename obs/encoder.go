// SPDX-License-Identifier: MIT

package obs

import (
	"fmt"
	"math"

	"github.com/henghenghahei849/gym-flock/geom"
	"github.com/henghenghahei849/gym-flock/gridgraph"
)

// Encoder owns the fixed buffers of one map and the discovery state of the
// running episode. It is not safe for concurrent use.
type Encoder struct {
	opts    Options
	layout  Layout
	robots  int
	targets []geom.Point
	index   *geom.Index

	motion      int     // motion edges in the prefix
	motionEdges []int32 // sender, receiver pairs of the prefix
	motionFeat  []float32

	discovered []bool // robots first, then targets
}

// NewEncoder sizes the buffers for nRobots robots on m and writes the motion
// prefix.
func NewEncoder(opts Options, m *gridgraph.Map, nRobots int) (*Encoder, error) {
	if m == nil || nRobots < 1 || opts.EdgesPerNode < 1 || !(opts.Resolution > 0) {
		return nil, fmt.Errorf("%w: robots=%d edges/node=%d resolution=%v", ErrStateShape, nRobots, opts.EdgesPerNode, opts.Resolution)
	}
	n := nRobots + m.NumTargets()
	maxNodes := opts.MaxNodes
	if maxNodes == 0 {
		maxNodes = n
	}
	if n > maxNodes {
		return nil, fmt.Errorf("%w: %d nodes, MaxNodes=%d", ErrCapacity, n, maxNodes)
	}
	e := &Encoder{
		opts:       opts,
		layout:     layoutFor(opts, maxNodes),
		robots:     nRobots,
		targets:    m.Targets,
		index:      m.Index(),
		discovered: make([]bool, n),
	}
	edges := m.Motion.Edges()
	if len(edges) > e.layout.MaxEdges() {
		return nil, fmt.Errorf("%w: %d motion edges, MaxEdges=%d", ErrCapacity, len(edges), e.layout.MaxEdges())
	}
	e.motion = len(edges)
	e.motionEdges = make([]int32, 0, 2*len(edges))
	e.motionFeat = make([]float32, 0, len(edges)*e.layout.EdgeWidth)
	for _, ed := range edges {
		e.motionEdges = append(e.motionEdges, int32(nRobots+ed.From), int32(nRobots+ed.To))
		e.motionFeat = e.appendFeatures(e.motionFeat, m.Targets[ed.From], m.Targets[ed.To], false)
	}
	return e, nil
}

// Layout returns the buffer shape.
func (e *Encoder) Layout() Layout { return e.layout }

// MotionEdges returns the size of the motion prefix.
func (e *Encoder) MotionEdges() int { return e.motion }

// ResetDiscovery forgets every discovered node.
func (e *Encoder) ResetDiscovery() {
	for i := range e.discovered {
		e.discovered[i] = false
	}
}

// Discovered reports, per target id, whether the target has been discovered.
// Without HideNodes every target is reported discovered.
func (e *Encoder) Discovered() []bool {
	out := make([]bool, len(e.targets))
	for t := range out {
		out[t] = !e.opts.HideNodes || e.discovered[e.robots+t]
	}
	return out
}

// Encode writes state into a new Observation.
func (e *Encoder) Encode(s State) (*Observation, error) {
	if err := e.checkShape(s); err != nil {
		return nil, err
	}
	nodePos := func(id int32) geom.Point {
		if int(id) < e.robots {
			return s.Robots[id]
		}
		return e.targets[int(id)-e.robots]
	}

	// active edges
	k := s.Actions.K()
	var active []int32
	for r := 0; r < e.robots; r++ {
		for _, d := range s.Actions.Row(r) {
			active = append(active, int32(e.robots+d), int32(r))
		}
	}
	for r := 0; r < e.robots; r++ {
		for _, d := range s.Actions.Row(r) {
			active = append(active, int32(r), int32(e.robots+d))
		}
	}
	if e.opts.CommEdges {
		pairs, err := geom.NewIndex(s.Robots).RadiusPairs(e.opts.CommRadius, false)
		if err != nil {
			return nil, err
		}
		for _, p := range pairs {
			active = append(active, int32(p[0]), int32(p[1]))
		}
	}
	nActive := len(active) / 2
	maxEdges := e.layout.MaxEdges()
	if e.motion+nActive > maxEdges {
		return nil, fmt.Errorf("%w: %d motion + %d active edges, MaxEdges=%d", ErrCapacity, e.motion, nActive, maxEdges)
	}

	o := &Observation{
		Layout:    e.layout,
		NumNodes:  e.robots + len(e.targets),
		Nodes:     make([]float32, e.layout.MaxNodes*e.layout.NodeWidth),
		Edges:     make([]float32, maxEdges*e.layout.EdgeWidth),
		Senders:   make([]int32, maxEdges),
		Receivers: make([]int32, maxEdges),
		Step:      s.Step,
	}
	for i := range o.Senders {
		o.Senders[i], o.Receivers[i] = Sentinel, Sentinel
	}
	for i := 0; i < e.motion; i++ {
		o.Senders[i], o.Receivers[i] = e.motionEdges[2*i], e.motionEdges[2*i+1]
	}
	copy(o.Edges, e.motionFeat)

	suffix := maxEdges - nActive
	feat := o.Edges[suffix*e.layout.EdgeWidth : suffix*e.layout.EdgeWidth]
	for i := 0; i < nActive; i++ {
		snd, rcv := active[2*i], active[2*i+1]
		o.Senders[suffix+i], o.Receivers[suffix+i] = snd, rcv
		// the first R·K active edges are target→robot action edges
		last := i < e.robots*k && s.LastLoc != nil && int(snd) == e.robots+s.LastLoc[rcv]
		feat = e.appendFeatures(feat, nodePos(snd), nodePos(rcv), last)
	}

	e.writeNodes(o, s)
	if e.opts.HideNodes {
		e.discover(s.Robots)
		e.applyVisibility(o, suffix)
	}
	return o, nil
}

func (e *Encoder) checkShape(s State) error {
	switch {
	case len(s.Robots) != e.robots:
		return fmt.Errorf("%w: %d robot positions, want %d", ErrStateShape, len(s.Robots), e.robots)
	case len(s.Visited) != len(e.targets):
		return fmt.Errorf("%w: %d visited flags, want %d", ErrStateShape, len(s.Visited), len(e.targets))
	case s.Actions == nil || s.Actions.Robots() != e.robots:
		return fmt.Errorf("%w: action table does not cover %d robots", ErrStateShape, e.robots)
	case e.opts.NodeHistory && len(s.History) != len(e.targets):
		return fmt.Errorf("%w: %d history flags, want %d", ErrStateShape, len(s.History), len(e.targets))
	case s.LastLoc != nil && len(s.LastLoc) != e.robots:
		return fmt.Errorf("%w: %d last locations, want %d", ErrStateShape, len(s.LastLoc), e.robots)
	}
	return nil
}

// appendFeatures appends one edge row for sender a and receiver b.
func (e *Encoder) appendFeatures(dst []float32, a, b geom.Point, last bool) []float32 {
	if e.layout.LastEdgeCol >= 0 {
		dst = append(dst, boolf(last))
	}
	d := a.Sub(b).Scale(1 / e.opts.Resolution)
	dist := float32(math.Hypot(d.X, d.Y))
	if e.opts.PosDelta {
		return append(dst, float32(d.X), float32(d.Y), dist)
	}
	return append(dst, dist)
}

func (e *Encoder) writeNodes(o *Observation, s State) {
	for r := 0; r < e.robots; r++ {
		o.Node(r)[ColRobot] = 1
	}
	for t := range e.targets {
		row := o.Node(e.robots + t)
		row[ColTarget] = 1
		row[ColUnvisited] = boolf(!s.Visited[t])
		if e.layout.HistoryCol >= 0 {
			row[e.layout.HistoryCol] = boolf(s.History[t])
		}
	}
}

// discover marks every node within DiscoveryRadius of a robot.
func (e *Encoder) discover(robots []geom.Point) {
	for r, p := range robots {
		e.discovered[r] = true
		ids, _ := e.index.Within(p, e.opts.DiscoveryRadius)
		for _, t := range ids {
			e.discovered[e.robots+t] = true
		}
	}
}

// applyVisibility zeroes undiscovered nodes, flags the frontier and masks
// motion edges touching undiscovered nodes. Slots from suffix on are kept.
func (e *Encoder) applyVisibility(o *Observation, suffix int) {
	for i := 0; i < o.NumNodes; i++ {
		if !e.discovered[i] {
			row := o.Node(i)
			for j := range row {
				row[j] = 0
			}
		}
	}
	for i := 0; i < e.motion; i++ {
		snd, rcv := o.Senders[i], o.Receivers[i]
		if !e.discovered[snd] && e.discovered[rcv] {
			o.Node(int(rcv))[e.layout.FrontierCol] = 1
		}
	}
	for i := 0; i < suffix; i++ {
		snd, rcv := o.Senders[i], o.Receivers[i]
		if snd == Sentinel || (e.discovered[snd] && e.discovered[rcv]) {
			continue
		}
		o.Senders[i], o.Receivers[i] = Sentinel, Sentinel
		row := o.Edge(i)
		for j := range row {
			row[j] = 0
		}
	}
}

func boolf(b bool) float32 {
	if b {
		return 1
	}
	return 0
}
