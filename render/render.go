package render

import (
	"image/color"

	"github.com/katalvlaran/portalgrid/grid"
	"github.com/katalvlaran/portalgrid/portal"
)

var (
	// Impassable is the colour of blocked cells in the Passable view.
	Impassable = color.RGBA{A: 0xff}
	// Blocked is the colour of blocked cells in the Graph view.
	Blocked = color.RGBA{R: 190, G: 190, B: 190, A: 0xff}
)

// Passable draws g at one pixel per cell: blocked cells black, the rest white.
func Passable(g *grid.Grid, threshold float64) *Canvas {
	c := NewCanvas(g.Width(), g.Height(), 1)
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			if !g.Passable(x, y, threshold) {
				c.Fill(x, y, Impassable)
			}
		}
	}
	return c
}

// Graph draws blocked cells in grey, every node's rectangle outline, and a
// line from each node's centroid to each neighbour's centroid. Outline and
// line colours rotate per node so neighbouring rectangles stay distinct.
func Graph(g *grid.Grid, pg *portal.Graph, scale int) *Canvas {
	c := NewCanvas(g.Width(), g.Height(), scale)
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			if !g.Passable(x, y, pg.Threshold()) {
				c.Fill(x, y, Blocked)
			}
		}
	}

	var rc uint8
	for _, n := range pg.Nodes() {
		r := n.Rect
		c.BoxOutline(r.X0, r.Y0, r.X1, r.Y1, color.RGBA{R: 90, G: rc, B: 90, A: 0xff})
		rc += 40 // wraps mod 256

		cx, cy := r.Centroid()
		line := color.RGBA{R: rc, G: 90, B: 90, A: 0xff}
		nbs, _ := pg.Neighbors(n.ID)
		for _, nb := range nbs {
			bx, by := nb.Rect.Centroid()
			c.Line(cx, cy, bx, by, line)
		}
	}
	return c
}
