package route

import (
	"context"
	"errors"
	"fmt"
	"math"
)

// Sentinel errors for route searches.
var (
	// ErrGraphNil is returned if a nil graph pointer is passed.
	ErrGraphNil = errors.New("route: graph is nil")

	// ErrStartNotFound is returned when the start id is not a node.
	ErrStartNotFound = errors.New("route: start node not found")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("route: invalid option supplied")

	// ErrEndpoint is returned when a start or finish cell has no rectangle.
	ErrEndpoint = errors.New("route: endpoint cell not in any portal")

	// ErrNoRoute is returned when the destination was not reached.
	ErrNoRoute = errors.New("route: no route")
)

// Option configures a search via functional arguments.
// Invalid values are recorded and surfaced as ErrOptionViolation.
type Option func(*Options)

// Options holds parameters and callbacks shared by BFS and Shortest.
type Options struct {
	// Ctx allows cancellation and deadlines.
	Ctx context.Context

	// OnVisit is called for each node as it is visited (BFS) or settled
	// (Shortest). Returning an error aborts the search.
	OnVisit func(id int, depth int) error

	// MaxDepth, if > 0, stops BFS from enqueueing beyond this depth.
	MaxDepth int

	// MaxDistance stops Shortest from settling nodes beyond this distance.
	MaxDistance float64

	err error
}

// DefaultOptions returns background context, no-op hook and no limits.
func DefaultOptions() Options {
	return Options{
		Ctx:         context.Background(),
		OnVisit:     func(int, int) error { return nil },
		MaxDepth:    0,
		MaxDistance: math.Inf(1),
	}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithOnVisit registers a callback run per visited node.
func WithOnVisit(fn func(id int, depth int) error) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnVisit = fn
		}
	}
}

// WithMaxDepth limits BFS depth.
//
//	d > 0: limit to depth d
//	d == 0: explicit no depth limit
//	d < 0: invalid option → ErrOptionViolation
func WithMaxDepth(d int) Option {
	return func(o *Options) {
		if d < 0 {
			o.err = fmt.Errorf("%w: MaxDepth cannot be negative (%d)", ErrOptionViolation, d)
			return
		}
		o.MaxDepth = d
	}
}

// WithMaxDistance limits how far Shortest settles nodes. x must be ≥ 0 and not NaN.
func WithMaxDistance(x float64) Option {
	return func(o *Options) {
		if x < 0 || math.IsNaN(x) {
			o.err = fmt.Errorf("%w: MaxDistance must be non-negative (%v)", ErrOptionViolation, x)
			return
		}
		o.MaxDistance = x
	}
}

// Result holds the outcome of a BFS traversal:
//   - Order: node ids in visit sequence.
//   - Depth: hop count from Start per node id, -1 if unreached.
//   - Parent: predecessor per node id, -1 for Start and unreached nodes.
type Result struct {
	Start  int
	Order  []int
	Depth  []int
	Parent []int
}

// Reached reports whether id was discovered.
func (r *Result) Reached(id int) bool {
	return id >= 0 && id < len(r.Depth) && r.Depth[id] >= 0
}

// PathTo reconstructs the node path from Start to dest.
// Returns ErrNoRoute if dest was not reached.
func (r *Result) PathTo(dest int) ([]int, error) {
	if !r.Reached(dest) {
		return nil, fmt.Errorf("%w: node %d from %d", ErrNoRoute, dest, r.Start)
	}
	return walkBack(r.Parent, dest), nil
}

// Weighted holds the outcome of Shortest:
//   - Dist: centroid distance from Start per node id, +Inf if unreached.
//   - Prev: predecessor per node id, -1 for Start and unreached nodes.
type Weighted struct {
	Start int
	Dist  []float64
	Prev  []int
}

// Reached reports whether id was settled or relaxed within the limits.
func (w *Weighted) Reached(id int) bool {
	return id >= 0 && id < len(w.Dist) && !math.IsInf(w.Dist[id], 1)
}

// PathTo reconstructs the node path from Start to dest.
// Returns ErrNoRoute if dest was not reached.
func (w *Weighted) PathTo(dest int) ([]int, error) {
	if !w.Reached(dest) {
		return nil, fmt.Errorf("%w: node %d from %d", ErrNoRoute, dest, w.Start)
	}
	return walkBack(w.Prev, dest), nil
}

// walkBack follows parent links from dest to the root and returns the
// path root → dest.
func walkBack(parent []int, dest int) []int {
	path := []int{}
	for cur := dest; cur >= 0; cur = parent[cur] {
		path = append(path, cur)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
