// Package grid holds the immutable cost grid that portalgrid decomposes.
//
// What:
//
//   - Grid stores a flat, row-major slice of float64 costs with its Width and Height.
//   - Cell (x,y) lives at index y*Width + x.
//   - A cell is passable under a threshold iff its value is strictly below it.
//   - Random builds a reproducible grid of uniform [0,1) values from a seed.
//
// Why:
//
//   - A flat slice keeps neighbour lookups to one multiply-add and lets the
//     portal package keep a parallel ownership slice of the same shape.
//   - Deep copies at construction make a Grid safe to share between goroutines.
//
// Complexity:
//
//   - New, FromRows, Random: O(W×H) time and memory.
//   - At, Passable, InBounds, Index, Coordinate: O(1).
//   - PassableCount: O(W×H).
//
// Errors:
//
//   - ErrInvalidInput: negative dimensions, cell count not equal to W×H,
//     ragged rows, or a NaN/±Inf cell value.
package grid
