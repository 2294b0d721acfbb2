package route

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/katalvlaran/portalgrid/portal"
)

// EdgeLength returns the Euclidean distance between the centroids of a and b,
// the cost Shortest charges for moving between adjacent rectangles.
func EdgeLength(a, b portal.Rect) float64 {
	ax, ay := a.Centroid()
	bx, by := b.Centroid()
	return math.Hypot(bx-ax, by-ay)
}

// Shortest runs Dijkstra on g from node start, weighting each edge by
// EdgeLength. Distances grow monotonically, so no negative-weight scan is
// needed.
// Returns ErrGraphNil, ErrStartNotFound or ErrOptionViolation for invalid
// input, the context error on cancellation, or a wrapped OnVisit error
// (depth passed to OnVisit is the hop count along the settled path).
// Complexity: O((V + E) log V).
func Shortest(g *portal.Graph, start int, opts ...Option) (*Weighted, error) {
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
	r := &runner{
		g:       g,
		opts:    o,
		nodes:   g.Nodes(),
		hops:    fill(n, 0),
		visited: make([]bool, n),
		res: &Weighted{
			Start: start,
			Dist:  make([]float64, n),
			Prev:  fill(n, -1),
		},
	}
	for i := range r.res.Dist {
		r.res.Dist[i] = math.Inf(1)
	}
	r.res.Dist[start] = 0
	heap.Push(&r.pq, &nodeItem{id: start, dist: 0})

	return r.res, r.process()
}

// runner holds the mutable state for a single Shortest execution.
type runner struct {
	g       *portal.Graph
	opts    Options
	nodes   []*portal.Node
	hops    []int
	visited []bool
	pq      nodePQ
	res     *Weighted
}

// process pops the closest unsettled node, settles it and relaxes its edges,
// until the heap empties or the next node is beyond MaxDistance.
func (r *runner) process() error {
	for r.pq.Len() > 0 {
		select {
		case <-r.opts.Ctx.Done():
			return r.opts.Ctx.Err()
		default:
		}

		item := heap.Pop(&r.pq).(*nodeItem)
		u := item.id
		if r.visited[u] {
			continue // stale entry
		}
		if item.dist > r.opts.MaxDistance {
			break
		}
		r.visited[u] = true
		if err := r.opts.OnVisit(u, r.hops[u]); err != nil {
			return fmt.Errorf("route: OnVisit error at node %d: %w", u, err)
		}
		r.relax(u)
	}
	return nil
}

// relax tries to improve the distance of each neighbour of u through u.
func (r *runner) relax(u int) {
	from := r.nodes[u]
	for _, v := range from.Adjacent() {
		if r.visited[v] {
			continue
		}
		nd := r.res.Dist[u] + EdgeLength(from.Rect, r.nodes[v].Rect)
		if nd > r.opts.MaxDistance || nd >= r.res.Dist[v] {
			continue
		}
		r.res.Dist[v] = nd
		r.res.Prev[v] = u
		r.hops[v] = r.hops[u] + 1
		heap.Push(&r.pq, &nodeItem{id: v, dist: nd})
	}
}

// nodeItem is a heap entry: a node id and its tentative distance.
type nodeItem struct {
	id   int
	dist float64
}

// nodePQ is a min-heap of *nodeItem ordered by dist, ties broken by id.
type nodePQ []*nodeItem

func (pq nodePQ) Len() int { return len(pq) }

func (pq nodePQ) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}
	return pq[i].id < pq[j].id
}

func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(*nodeItem)) }

func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}
