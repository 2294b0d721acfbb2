package portal

import (
	"fmt"

	"github.com/katalvlaran/portalgrid/grid"
)

// Decomposition is the output of the rectangle pass: the rectangles in
// claim order plus the ownership index that maps each cell to its owner.
type Decomposition struct {
	// Rects lists the claimed rectangles; a rectangle's id is its index here.
	Rects []Rect

	width, height int
	threshold     float64
	passable      int
	owners        []int // row-major, Unowned or an index into Rects
}

// Width returns the source grid width.
func (d *Decomposition) Width() int { return d.width }

// Height returns the source grid height.
func (d *Decomposition) Height() int { return d.height }

// Threshold returns the passability threshold the grid was scanned with.
func (d *Decomposition) Threshold() float64 { return d.threshold }

// Owner returns the id of the rectangle that owns (x,y), or Unowned for
// impassable or out-of-bounds cells.
func (d *Decomposition) Owner(x, y int) int {
	if x < 0 || x >= d.width || y < 0 || y >= d.height {
		return Unowned
	}
	return d.owners[y*d.width+x]
}

// decomposer holds the mutable scan state for a single Decompose call.
type decomposer struct {
	g         *grid.Grid
	w, h      int
	threshold float64
	growth    GrowthPolicy
	owners    []int
	rects     []Rect
}

// Decompose partitions the passable cells of g into rectangles.
//
// Every passable cell ends up in exactly one rectangle, no impassable cell
// is claimed, and the result depends only on g and the options. A 0×0 grid
// yields no rectangles.
//
// Returns ErrInvalidInput for a nil grid or invalid options, before any
// scanning happens.
// Complexity: O(W×H) time and memory.
func Decompose(g *grid.Grid, opts ...Option) (*Decomposition, error) {
	if g == nil {
		return nil, fmt.Errorf("%w: grid is nil", ErrInvalidInput)
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	d := &decomposer{
		g:         g,
		w:         g.Width(),
		h:         g.Height(),
		threshold: o.Threshold,
		growth:    o.Growth,
		owners:    make([]int, g.Len()),
	}
	for i := range d.owners {
		d.owners[i] = Unowned
	}
	d.scan()

	return &Decomposition{
		Rects:     d.rects,
		width:     d.w,
		height:    d.h,
		threshold: d.threshold,
		passable:  g.PassableCount(d.threshold),
		owners:    d.owners,
	}, nil
}

// free reports whether (x,y) is passable and not yet claimed.
func (d *decomposer) free(x, y int) bool {
	i := y*d.w + x
	return d.owners[i] == Unowned && d.g.AtIndex(i) < d.threshold
}

// scan visits cells row-major and claims a rectangle at every free cell.
func (d *decomposer) scan() {
	for y := 0; y < d.h; y++ {
		for x := 0; x < d.w; {
			if !d.free(x, y) {
				x++
				continue
			}
			r := d.grow(x, y)
			d.claim(r)
			// everything in [x, r.X1) on this row is now claimed
			x = r.X1
		}
	}
}

// grow builds the rectangle anchored at the free cell (x,y).
func (d *decomposer) grow(x, y int) Rect {
	nx := x + 1
	for nx < d.w && d.free(nx, y) {
		nx++
	}

	ny := y + 1
	for ny < d.h {
		p := d.freePrefix(x, nx, ny)
		if p == nx {
			ny++
			continue
		}
		if d.growth == GrowClip && p > x {
			nx = p
			ny++
		}
		break
	}

	return Rect{X0: x, Y0: y, X1: nx, Y1: ny}
}

// freePrefix returns the first column in [x0,x1) of row y that is not free,
// or x1 if the whole span is free.
func (d *decomposer) freePrefix(x0, x1, y int) int {
	x := x0
	for x < x1 && d.free(x, y) {
		x++
	}
	return x
}

// claim writes the next rectangle id into every cell of r and records r.
func (d *decomposer) claim(r Rect) {
	id := len(d.rects)
	for y := r.Y0; y < r.Y1; y++ {
		row := y * d.w
		for x := r.X0; x < r.X1; x++ {
			d.owners[row+x] = id
		}
	}
	d.rects = append(d.rects, r)
}
