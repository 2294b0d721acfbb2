// Package route searches a portal.Graph. It is the consumer stage that turns
// the rectangle graph into start-to-finish paths.
//
// What
//
//   - BFS explores nodes by hop count from a start node and returns the
//     visit order, per-node depth and parent links.
//   - Shortest runs Dijkstra where each edge costs the Euclidean distance
//     between the two rectangles' centroids.
//   - Between maps a start cell and a finish cell to their rectangles and
//     returns the node path between them, by hops or by centroid distance.
//
// Why
//
//   - Searching rectangles instead of cells visits one node per open region.
//     Cells inside one rectangle are mutually reachable without any search.
//
// Determinism
//
//	Neighbour ids come back from portal in ascending order and are expanded
//	in that order, so visit sequences and tie-breaks are reproducible.
//
// Complexity (V = nodes, E = edges)
//
//   - BFS:      Time O(V + E), Memory O(V).
//   - Shortest: Time O((V + E) log V), Memory O(V + E) with lazy decrease-key.
//   - Between:  the chosen search plus two O(V) Locate calls.
//
// Options
//
//   - WithContext(ctx):    cancellation, checked once per expanded node.
//   - WithMaxDepth(d):     BFS only; do not enqueue beyond depth d (>0).
//   - WithMaxDistance(x):  Shortest only; do not settle nodes farther than x.
//   - WithOnVisit(fn):     hook per visited/settled node; an error aborts.
//
// Errors
//
//   - ErrGraphNil          the graph pointer is nil.
//   - ErrStartNotFound     the start id is not a node of the graph.
//   - ErrOptionViolation   an option received an invalid value.
//   - ErrEndpoint          Between: a start/finish cell is outside the grid or impassable.
//   - ErrNoRoute           the destination is not reachable from the start.
//   - Wrapped hook errors from OnVisit and context errors.
package route
