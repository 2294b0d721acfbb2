package route

import (
	"context"
	"fmt"
	"image"

	"github.com/katalvlaran/portalgrid/portal"
)

// Path is a route between two cells through the portal graph.
type Path struct {
	// Nodes lists node ids from the start cell's rectangle to the finish cell's.
	Nodes []int `json:"nodes"`
	// Hops is len(Nodes)-1.
	Hops int `json:"hops"`
	// Length is the summed centroid distance along Nodes.
	Length float64 `json:"length"`
}

// Between finds a path from cell from to cell to. With weighted=false it
// minimises hops (BFS); with weighted=true it minimises centroid distance
// (Shortest). Both cells in the same rectangle give a single-node path.
// Returns ErrEndpoint if either cell is outside the grid or impassable, and
// ErrNoRoute if the two rectangles are not connected.
func Between(ctx context.Context, g *portal.Graph, from, to image.Point, weighted bool) (*Path, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	src, err := g.Locate(from.X, from.Y)
	if err != nil {
		return nil, fmt.Errorf("%w: start %v: %w", ErrEndpoint, from, err)
	}
	dst, err := g.Locate(to.X, to.Y)
	if err != nil {
		return nil, fmt.Errorf("%w: finish %v: %w", ErrEndpoint, to, err)
	}

	var nodes []int
	if weighted {
		res, err := Shortest(g, src.ID, WithContext(ctx))
		if err != nil {
			return nil, err
		}
		if nodes, err = res.PathTo(dst.ID); err != nil {
			return nil, err
		}
	} else {
		res, err := BFS(g, src.ID, WithContext(ctx))
		if err != nil {
			return nil, err
		}
		if nodes, err = res.PathTo(dst.ID); err != nil {
			return nil, err
		}
	}

	p := &Path{Nodes: nodes, Hops: len(nodes) - 1}
	for i := 1; i < len(nodes); i++ {
		a, _ := g.Node(nodes[i-1])
		b, _ := g.Node(nodes[i])
		p.Length += EdgeLength(a.Rect, b.Rect)
	}
	return p, nil
}
