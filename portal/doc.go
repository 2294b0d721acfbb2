// Package portal reduces a cost grid to a graph of "portals": maximal
// axis-aligned rectangles of passable cells, linked when they share a border.
//
// What:
//
//   - Decompose scans a grid.Grid once in row-major order and greedily claims
//     rectangles of passable, unclaimed cells. It returns the rectangle
//     sequence together with an ownership index (cell → rectangle id).
//   - BuildGraph walks the four borders of every rectangle through the
//     ownership index and links each rectangle to every distinct owner it
//     touches. Links are recorded in both directions, deduplicated and
//     frozen into an immutable arena of Nodes.
//   - Build runs both phases and drops the ownership index.
//
// Why:
//
//   - Path search over a large grid touches every cell. Over the portal
//     graph it touches one node per open region instead. The ratio of
//     passable cells to nodes (Stats.SpeedFactor) measures the saving.
//
// Decomposition rule (deterministic, not minimum-count):
//
//  1. Visit rows top to bottom, columns left to right.
//  2. At the first free cell (passable and unclaimed) extend right while free.
//  3. Extend down while the whole span is free in the next row. At the first
//     row where it is not, GrowStop (default) stops above that row, while
//     GrowClip narrows the span to that row's free prefix, includes the row
//     and stops. GrowClip is the narrowest-span rule: the final width is the
//     narrowest free span across the rows the rectangle covers, and a span
//     never re-widens. GrowStop keeps every rectangle as wide as its top
//     row. Both policies give a full, non-overlapping cover.
//  4. Claim the rectangle and resume scanning right after its right edge.
//
// Adjacency rule:
//
//	Two nodes are adjacent iff some cell of one is orthogonally next to a
//	cell of the other. Corner-only contact does not count, and no node is
//	adjacent to itself.
//
// Complexity:
//
//   - Decompose:  O(W×H) time, O(W×H) memory for the ownership index.
//   - BuildGraph: O(P + E log E) where P is the summed rectangle perimeter.
//   - Locate:     O(R) over R rectangles.
//
// Errors:
//
//   - ErrInvalidInput: nil grid, NaN/±Inf threshold, unknown growth policy.
//   - ErrNodeNotFound: node id out of range.
//   - ErrOutOfBounds:  Locate outside the grid.
//   - ErrCellNotPassable: Locate on an impassable cell.
package portal
