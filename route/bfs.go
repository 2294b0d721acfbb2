package route

import (
	"fmt"

	"github.com/katalvlaran/portalgrid/portal"
)

// queueItem pairs a node id with its BFS depth.
type queueItem struct {
	id    int
	depth int
}

// walker encapsulates mutable BFS state.
type walker struct {
	graph *portal.Graph
	opts  Options
	queue []queueItem
	res   *Result
}

// BFS runs breadth-first search on g from node start.
// Returns ErrGraphNil, ErrStartNotFound or ErrOptionViolation for invalid
// input, the context error on cancellation, or a wrapped OnVisit error.
// On error the partial Result is still returned.
func BFS(g *portal.Graph, start int, opts ...Option) (*Result, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if _, err := g.Node(start); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStartNotFound, err)
	}

	n := g.Len()
	w := &walker{
		graph: g,
		opts:  o,
		queue: make([]queueItem, 0, n),
		res: &Result{
			Start:  start,
			Order:  make([]int, 0, n),
			Depth:  fill(n, -1),
			Parent: fill(n, -1),
		},
	}
	w.enqueue(start, 0, -1)

	return w.res, w.loop()
}

// enqueue records depth and parent for id and appends it to the queue.
func (w *walker) enqueue(id, d, parent int) {
	w.res.Depth[id] = d
	w.res.Parent[id] = parent
	w.queue = append(w.queue, queueItem{id: id, depth: d})
}

// loop processes the queue until empty, error, or cancellation.
func (w *walker) loop() error {
	for len(w.queue) > 0 {
		select {
		case <-w.opts.Ctx.Done():
			return w.opts.Ctx.Err()
		default:
		}

		item := w.queue[0]
		w.queue = w.queue[1:]

		w.res.Order = append(w.res.Order, item.id)
		if err := w.opts.OnVisit(item.id, item.depth); err != nil {
			return fmt.Errorf("route: OnVisit error at node %d: %w", item.id, err)
		}
		if err := w.enqueueNeighbors(item); err != nil {
			return err
		}
	}
	return nil
}

// enqueueNeighbors enqueues every undiscovered neighbour within MaxDepth.
func (w *walker) enqueueNeighbors(item queueItem) error {
	next := item.depth + 1
	if w.opts.MaxDepth > 0 && next > w.opts.MaxDepth {
		return nil
	}
	nbs, err := w.graph.NeighborIDs(item.id)
	if err != nil {
		return fmt.Errorf("route: neighbours of %d: %w", item.id, err)
	}
	for _, nb := range nbs {
		if w.res.Depth[nb] < 0 {
			w.enqueue(nb, next, item.id)
		}
	}
	return nil
}

// fill returns a slice of n copies of v.
func fill(n, v int) []int {
	s := make([]int, n)
	for i := range s {
		s[i] = v
	}
	return s
}
