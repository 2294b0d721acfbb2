package portal

import (
	"slices"
)

// BuildGraph links every rectangle of d to the rectangles it shares a
// border with and freezes the result into a Graph.
//
// Implementation:
//   - Phase 1: for each rectangle, read the ownership index along the row
//     above, the row below, the column to the left and the column to the
//     right (skipping sides on the grid edge). Each owner found, other than
//     Unowned and the rectangle itself, is recorded as a link in both
//     directions.
//   - Phase 2: sort and deduplicate each neighbour list and lay the nodes
//     out in one arena, indexed by rectangle id.
//
// The graph keeps no reference to d; d may be discarded afterwards.
// Complexity: O(P + E log E), P = summed rectangle perimeter, E = links found.
func BuildGraph(d *Decomposition) *Graph {
	links := make([][]int, len(d.Rects))
	for id, r := range d.Rects {
		d.borderOwners(r, func(owner int) {
			if owner == Unowned || owner == id {
				return
			}
			links[id] = append(links[id], owner)
			links[owner] = append(links[owner], id)
		})
	}

	nodes := make([]Node, len(d.Rects))
	for id, r := range d.Rects {
		adj := links[id]
		slices.Sort(adj)
		adj = slices.Compact(adj)
		nodes[id] = Node{ID: id, Rect: r, adj: slices.Clip(adj)}
	}

	return &Graph{
		width:     d.width,
		height:    d.height,
		threshold: d.threshold,
		passable:  d.passable,
		nodes:     nodes,
	}
}

// borderOwners calls visit with the owner of every cell orthogonally
// outside r: the row above, the row below, the column left and the
// column right. Sides on the grid boundary are skipped; corners are not
// visited.
func (d *Decomposition) borderOwners(r Rect, visit func(owner int)) {
	w := d.width
	if r.Y0 > 0 {
		row := (r.Y0 - 1) * w
		for x := r.X0; x < r.X1; x++ {
			visit(d.owners[row+x])
		}
	}
	if r.Y1 < d.height {
		row := r.Y1 * w
		for x := r.X0; x < r.X1; x++ {
			visit(d.owners[row+x])
		}
	}
	if r.X0 > 0 {
		for y := r.Y0; y < r.Y1; y++ {
			visit(d.owners[y*w+r.X0-1])
		}
	}
	if r.X1 < w {
		for y := r.Y0; y < r.Y1; y++ {
			visit(d.owners[y*w+r.X1])
		}
	}
}
