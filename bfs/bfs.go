package bfs

import (
	"context"
	"fmt"

	"github.com/henghenghahei849/gym-flock/core"
)

// walker encapsulates mutable BFS state.
type walker struct {
	graph *core.Graph
	opts  BFSOptions
	ctx   context.Context
	queue []int
	res   *BFSResult
}

// BFS runs breadth-first search on g starting from start,
// applying any number of functional Options.
// Returns ErrGraphNil or ErrStartVertexNotFound for invalid input,
// ErrOptionViolation for bad options, or any user-supplied hook error.
func BFS(g *core.Graph, start int, opts ...Option) (*BFSResult, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	// Build options and catch any invalid ones immediately
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if !g.HasVertex(start) {
		return nil, ErrStartVertexNotFound
	}

	n := g.Order()
	w := &walker{
		graph: g,
		opts:  o,
		ctx:   o.Ctx,
		queue: make([]int, 0, n),
		res: &BFSResult{
			Start:  start,
			Order:  make([]int, 0, n),
			Depth:  make([]int, n),
			Parent: make([]int, n),
		},
	}
	for v := 0; v < n; v++ {
		w.res.Depth[v] = Unreached
		w.res.Parent[v] = Unreached
	}

	w.enqueue(start, 0, Unreached)
	return w.res, w.loop()
}

// enqueue marks v reached at depth d and appends it to the queue.
func (w *walker) enqueue(v, d, parent int) {
	w.res.Depth[v] = d
	w.res.Parent[v] = parent
	w.queue = append(w.queue, v)
}

// loop processes the queue until empty, error, or cancellation.
func (w *walker) loop() error {
	for qi := 0; qi < len(w.queue); qi++ {
		select {
		case <-w.ctx.Done():
			return w.ctx.Err()
		default:
		}

		v := w.queue[qi]
		d := w.res.Depth[v]
		w.res.Order = append(w.res.Order, v)
		if err := w.opts.OnVisit(v, d); err != nil {
			return fmt.Errorf("bfs: OnVisit error at %d: %w", v, err)
		}
		if w.opts.MaxDepth > 0 && d >= w.opts.MaxDepth {
			continue
		}
		neighbors, _ := w.graph.Neighbors(v)
		for _, nbr := range neighbors {
			if w.res.Depth[nbr] != Unreached || !w.opts.FilterNeighbor(v, nbr) {
				continue
			}
			w.enqueue(nbr, d+1, v)
		}
	}
	return nil
}

// Nearest collects at least n vertices around start by absorbing whole BFS
// layers: the result holds every vertex up to the first depth at which the
// running count reaches n, or the entire component of start when it is
// smaller than n. Vertices are returned in BFS visit order.
func Nearest(g *core.Graph, start, n int) ([]int, error) {
	res, err := BFS(g, start)
	if err != nil {
		return nil, err
	}
	if n <= 0 {
		return []int{}, nil
	}
	cut := len(res.Order)
	for i, v := range res.Order {
		if i+1 >= n {
			// extend to the end of v's layer
			cut = i + 1
			for cut < len(res.Order) && res.Depth[res.Order[cut]] == res.Depth[v] {
				cut++
			}
			break
		}
	}
	out := make([]int, cut)
	copy(out, res.Order[:cut])
	return out, nil
}
