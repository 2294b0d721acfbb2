package portal

import (
	"errors"
	"fmt"
	"image"
	"math"
	"slices"
	"strings"
)

// Sentinel errors for portal operations.
var (
	// ErrInvalidInput indicates a precondition violation detected before any scanning.
	ErrInvalidInput = errors.New("portal: invalid input")

	// ErrNodeNotFound indicates a node id outside [0, Len()).
	ErrNodeNotFound = errors.New("portal: node not found")

	// ErrOutOfBounds indicates a cell coordinate outside the source grid.
	ErrOutOfBounds = errors.New("portal: cell out of bounds")

	// ErrCellNotPassable indicates a cell that belongs to no rectangle.
	ErrCellNotPassable = errors.New("portal: cell not passable")
)

// Unowned marks an ownership-index cell that no rectangle claims.
const Unowned = -1

// DefaultThreshold is the passability threshold used when none is given.
const DefaultThreshold = 0.8

// Rect is an axis-aligned block of cells [X0,X1) × [Y0,Y1).
type Rect struct {
	X0, Y0 int // inclusive top-left corner
	X1, Y1 int // exclusive bottom-right corner
}

// Width returns X1-X0.
func (r Rect) Width() int { return r.X1 - r.X0 }

// Height returns Y1-Y0.
func (r Rect) Height() int { return r.Y1 - r.Y0 }

// Area returns the number of cells covered.
func (r Rect) Area() int { return r.Width() * r.Height() }

// Contains reports whether cell (x,y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X0 && x < r.X1 && y >= r.Y0 && y < r.Y1
}

// Centroid returns the geometric centre of r in cell units.
func (r Rect) Centroid() (cx, cy float64) {
	return float64(r.X0) + float64(r.Width())/2, float64(r.Y0) + float64(r.Height())/2
}

// Image converts r to an image.Rectangle with the same bounds.
func (r Rect) Image() image.Rectangle {
	return image.Rect(r.X0, r.Y0, r.X1, r.Y1)
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d,%d,%d)", r.X0, r.Y0, r.X1, r.Y1)
}

// GrowthPolicy decides how downward growth ends at the first row in which
// the current span is no longer entirely free.
type GrowthPolicy int

const (
	// GrowStop ends the rectangle just above that row, keeping its width.
	GrowStop GrowthPolicy = iota
	// GrowClip narrows the span to that row's free prefix (if non-empty),
	// includes the row, and ends the rectangle there.
	GrowClip
)

// String returns "stop" or "clip".
func (p GrowthPolicy) String() string {
	switch p {
	case GrowStop:
		return "stop"
	case GrowClip:
		return "clip"
	default:
		return fmt.Sprintf("GrowthPolicy(%d)", int(p))
	}
}

// ParseGrowthPolicy maps "stop" or "clip" (case-insensitive) to a policy.
func ParseGrowthPolicy(s string) (GrowthPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "stop":
		return GrowStop, nil
	case "clip":
		return GrowClip, nil
	default:
		return GrowStop, fmt.Errorf("%w: unknown growth policy %q", ErrInvalidInput, s)
	}
}

// Option configures decomposition via functional arguments.
// Invalid values are recorded and surfaced as ErrInvalidInput when
// Decompose or Build runs.
type Option func(*Options)

// Options holds the decomposition parameters.
type Options struct {
	// Threshold: a cell is passable iff its value < Threshold.
	Threshold float64

	// Growth selects the downward-growth rule.
	Growth GrowthPolicy

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns Threshold=DefaultThreshold and Growth=GrowStop.
// Use WithGrowth(GrowClip) for the narrowest-span clipping rule.
func DefaultOptions() Options {
	return Options{
		Threshold: DefaultThreshold,
		Growth:    GrowStop,
	}
}

// WithThreshold sets the passability threshold. NaN and ±Inf are rejected.
func WithThreshold(t float64) Option {
	return func(o *Options) {
		if math.IsNaN(t) || math.IsInf(t, 0) {
			o.err = fmt.Errorf("%w: threshold must be finite, got %v", ErrInvalidInput, t)
			return
		}
		o.Threshold = t
	}
}

// WithGrowth sets the downward-growth rule.
func WithGrowth(p GrowthPolicy) Option {
	return func(o *Options) {
		if p != GrowStop && p != GrowClip {
			o.err = fmt.Errorf("%w: unknown growth policy %d", ErrInvalidInput, int(p))
			return
		}
		o.Growth = p
	}
}

// Node is one rectangle of the portal graph.
// Nodes are owned by their Graph and never change after Build returns.
type Node struct {
	// ID is the node's index in its Graph and in the decomposition order.
	ID int

	// Rect is the block of passable cells this node stands for.
	Rect Rect

	adj []int // sorted, distinct neighbour ids
}

// Adjacent returns a copy of the sorted neighbour ids.
func (n *Node) Adjacent() []int {
	out := make([]int, len(n.adj))
	copy(out, n.adj)
	return out
}

// Degree returns the number of neighbours.
func (n *Node) Degree() int { return len(n.adj) }

// IsAdjacent reports whether id is a neighbour of n.
func (n *Node) IsAdjacent(id int) bool {
	_, ok := slices.BinarySearch(n.adj, id)
	return ok
}

// Edge is an undirected link between two nodes, stored with A < B.
type Edge struct {
	A, B int
}

// Stats summarises a built graph.
type Stats struct {
	// PassableCells is the number of grid cells below the threshold.
	PassableCells int `json:"passable_cells"`
	// Rectangles is the node count.
	Rectangles int `json:"rectangles"`
	// Edges is the undirected edge count.
	Edges int `json:"edges"`
	// Isolated counts nodes with no neighbours.
	Isolated int `json:"isolated"`
	// SpeedFactor is PassableCells / Rectangles, or 0 with no rectangles.
	SpeedFactor float64 `json:"speed_factor"`
}
