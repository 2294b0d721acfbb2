package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"
)

// Canvas is an RGBA image addressed in grid-cell units.
type Canvas struct {
	img   *image.RGBA
	scale int
}

// NewCanvas returns a white canvas for a w×h grid, scale pixels per cell.
// A scale below 1 is treated as 1.
func NewCanvas(w, h, scale int) *Canvas {
	if scale < 1 {
		scale = 1
	}
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	img := image.NewRGBA(image.Rect(0, 0, w*scale, h*scale))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	return &Canvas{img: img, scale: scale}
}

// Image returns the backing image.
func (c *Canvas) Image() *image.RGBA { return c.img }

// Scale returns pixels per cell.
func (c *Canvas) Scale() int { return c.scale }

// Fill paints the whole pixel block of cell (x,y).
func (c *Canvas) Fill(x, y int, col color.Color) {
	s := c.scale
	r := image.Rect(x*s, y*s, (x+1)*s, (y+1)*s).Intersect(c.img.Bounds())
	draw.Draw(c.img, r, image.NewUniform(col), image.Point{}, draw.Src)
}

// BoxOutline draws the one-pixel border of the cell block [sx,ex) × [sy,ey).
func (c *Canvas) BoxOutline(sx, sy, ex, ey int, col color.Color) {
	s := c.scale
	x0, y0 := sx*s, sy*s
	x1, y1 := ex*s-1, ey*s-1
	for x := x0; x <= x1; x++ {
		c.img.Set(x, y0, col)
		c.img.Set(x, y1, col)
	}
	for y := y0; y <= y1; y++ {
		c.img.Set(x0, y, col)
		c.img.Set(x1, y, col)
	}
}

// Line draws a segment between two cell-space points (fractions allowed,
// e.g. centroids) with Bresenham's algorithm. Pixels outside the canvas
// are dropped.
func (c *Canvas) Line(x0, y0, x1, y1 float64, col color.Color) {
	s := float64(c.scale)
	ax, ay := int(math.Round(x0*s)), int(math.Round(y0*s))
	bx, by := int(math.Round(x1*s)), int(math.Round(y1*s))

	steep := abs(by-ay) > abs(bx-ax)
	if steep {
		ax, ay = ay, ax
		bx, by = by, bx
	}
	if ax > bx {
		ax, bx = bx, ax
		ay, by = by, ay
	}
	dx, dy := bx-ax, abs(by-ay)
	e := dx / 2
	ystep := -1
	if ay < by {
		ystep = 1
	}
	y := ay
	for x := ax; x <= bx; x++ {
		if steep {
			c.img.Set(y, x, col)
		} else {
			c.img.Set(x, y, col)
		}
		e -= dy
		if e < 0 {
			y += ystep
			e += dx
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
