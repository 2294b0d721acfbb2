package grid

import (
	"fmt"
	"math"
)

// New constructs a Grid of the given dimensions from a flat row-major slice.
// The slice is deep-copied, so later writes by the caller do not leak in.
// A 0×0 grid with an empty slice is valid.
// Returns ErrInvalidInput (wrapped with detail) on any malformed input.
// Complexity: O(W×H) time and memory.
func New(width, height int, cells []float64) (*Grid, error) {
	if err := checkDims(width, height); err != nil {
		return nil, err
	}
	if width*height != len(cells) {
		return nil, fmt.Errorf("%w: %dx%d grid needs %d cells, got %d",
			ErrInvalidInput, width, height, width*height, len(cells))
	}
	for i, v := range cells {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: non-finite value %v at (%d,%d)",
				ErrInvalidInput, v, i%width, i/width)
		}
	}
	cp := make([]float64, len(cells))
	copy(cp, cells)

	return &Grid{width: width, height: height, cells: cp}, nil
}

// checkDims rejects negative sizes and sizes whose cell count overflows int.
func checkDims(width, height int) error {
	if width < 0 || height < 0 {
		return fmt.Errorf("%w: negative dimensions %dx%d", ErrInvalidInput, width, height)
	}
	if width != 0 && height > math.MaxInt/width {
		return fmt.Errorf("%w: %dx%d grid overflows the cell count", ErrInvalidInput, width, height)
	}
	return nil
}

// FromRows builds a Grid from a [y][x] slice of rows. Every row must have
// the same length. An empty outer slice yields a 0×0 grid.
// Complexity: O(W×H).
func FromRows(rows [][]float64) (*Grid, error) {
	if len(rows) == 0 {
		return New(0, 0, nil)
	}
	w := len(rows[0])
	flat := make([]float64, 0, w*len(rows))
	for y, row := range rows {
		if len(row) != w {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidInput, y, len(row), w)
		}
		flat = append(flat, row...)
	}

	return New(w, len(rows), flat)
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Len returns Width×Height.
func (g *Grid) Len() int { return len(g.cells) }

// InBounds reports whether (x,y) lies within the grid boundaries.
// Complexity: O(1).
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// Index maps (x,y) to its row-major index y*Width + x.
// The caller is responsible for bounds; use InBounds first when unsure.
func (g *Grid) Index(x, y int) int {
	return y*g.width + x
}

// Coordinate converts a row-major index back to (x,y).
func (g *Grid) Coordinate(idx int) (x, y int) {
	return idx % g.width, idx / g.width
}

// At returns the cost stored at (x,y). It panics if (x,y) is out of bounds,
// like a slice index would.
func (g *Grid) At(x, y int) float64 {
	if !g.InBounds(x, y) {
		panic(fmt.Sprintf("grid: At(%d,%d) out of bounds %dx%d", x, y, g.width, g.height))
	}
	return g.cells[g.Index(x, y)]
}

// AtIndex returns the cost stored at a row-major index.
func (g *Grid) AtIndex(idx int) float64 {
	return g.cells[idx]
}

// Passable reports whether (x,y) is in bounds and its cost is strictly
// below threshold. A value equal to the threshold is impassable.
func (g *Grid) Passable(x, y int, threshold float64) bool {
	return g.InBounds(x, y) && g.cells[g.Index(x, y)] < threshold
}

// PassableCount returns how many cells are strictly below threshold.
// Complexity: O(W×H).
func (g *Grid) PassableCount(threshold float64) int {
	n := 0
	for _, v := range g.cells {
		if v < threshold {
			n++
		}
	}
	return n
}

// Cells returns a copy of the flat row-major cost slice.
func (g *Grid) Cells() []float64 {
	cp := make([]float64, len(g.cells))
	copy(cp, g.cells)
	return cp
}
