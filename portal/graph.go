package portal

import (
	"fmt"

	"github.com/katalvlaran/portalgrid/grid"
)

// Graph is the frozen portal graph of one grid. Node handles returned by
// its methods point into a single arena owned by the Graph; the arena is
// never resized or mutated after construction, so handles stay valid for
// the Graph's lifetime and the Graph is safe for concurrent reads.
type Graph struct {
	width, height int
	threshold     float64
	passable      int
	nodes         []Node
}

// Build decomposes g and links the resulting rectangles in one call.
// The ownership index is discarded once the graph is built.
// Returns ErrInvalidInput for a nil grid or invalid options.
// Complexity: O(W×H + P + E log E).
func Build(g *grid.Grid, opts ...Option) (*Graph, error) {
	d, err := Decompose(g, opts...)
	if err != nil {
		return nil, err
	}
	return BuildGraph(d), nil
}

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.nodes) }

// Width returns the source grid width.
func (g *Graph) Width() int { return g.width }

// Height returns the source grid height.
func (g *Graph) Height() int { return g.height }

// Threshold returns the threshold the graph was built with.
func (g *Graph) Threshold() float64 { return g.threshold }

// Node returns the node with the given id.
func (g *Graph) Node(id int) (*Node, error) {
	if id < 0 || id >= len(g.nodes) {
		return nil, fmt.Errorf("%w: id %d, graph has %d nodes", ErrNodeNotFound, id, len(g.nodes))
	}
	return &g.nodes[id], nil
}

// Nodes returns handles to all nodes in id order.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, len(g.nodes))
	for i := range g.nodes {
		out[i] = &g.nodes[i]
	}
	return out
}

// Rects returns every node's rectangle in id order.
func (g *Graph) Rects() []Rect {
	out := make([]Rect, len(g.nodes))
	for i := range g.nodes {
		out[i] = g.nodes[i].Rect
	}
	return out
}

// Neighbors returns handles to the neighbours of id, in ascending id order.
func (g *Graph) Neighbors(id int) ([]*Node, error) {
	n, err := g.Node(id)
	if err != nil {
		return nil, err
	}
	out := make([]*Node, len(n.adj))
	for i, nb := range n.adj {
		out[i] = &g.nodes[nb]
	}
	return out, nil
}

// NeighborIDs returns a copy of the sorted neighbour ids of id.
func (g *Graph) NeighborIDs(id int) ([]int, error) {
	n, err := g.Node(id)
	if err != nil {
		return nil, err
	}
	return n.Adjacent(), nil
}

// Edges returns every undirected edge once, as {A,B} with A < B, sorted
// by A then B.
// Complexity: O(V + E).
func (g *Graph) Edges() []Edge {
	var out []Edge
	for id := range g.nodes {
		for _, nb := range g.nodes[id].adj {
			if nb > id {
				out = append(out, Edge{A: id, B: nb})
			}
		}
	}
	return out
}

// Locate returns the node whose rectangle contains cell (x,y).
// Returns ErrOutOfBounds outside the grid and ErrCellNotPassable when no
// rectangle covers the cell.
// Complexity: O(V).
func (g *Graph) Locate(x, y int) (*Node, error) {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return nil, fmt.Errorf("%w: (%d,%d) in %dx%d grid", ErrOutOfBounds, x, y, g.width, g.height)
	}
	for i := range g.nodes {
		r := g.nodes[i].Rect
		if r.Y0 > y {
			// rectangles are claimed in row-major order of their top-left corner
			break
		}
		if r.Contains(x, y) {
			return &g.nodes[i], nil
		}
	}
	return nil, fmt.Errorf("%w: (%d,%d)", ErrCellNotPassable, x, y)
}

// Stats summarises the graph. SpeedFactor is 0 for an empty graph.
// Complexity: O(V).
func (g *Graph) Stats() Stats {
	s := Stats{
		PassableCells: g.passable,
		Rectangles:    len(g.nodes),
	}
	degrees := 0
	for i := range g.nodes {
		d := len(g.nodes[i].adj)
		degrees += d
		if d == 0 {
			s.Isolated++
		}
	}
	s.Edges = degrees / 2
	if s.Rectangles > 0 {
		s.SpeedFactor = float64(s.PassableCells) / float64(s.Rectangles)
	}
	return s
}
