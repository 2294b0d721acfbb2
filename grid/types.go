package grid

import "errors"

// ErrInvalidInput indicates a malformed grid: negative dimensions, a cell
// count that does not match Width×Height, ragged rows, or non-finite values.
var ErrInvalidInput = errors.New("grid: invalid input")

// Grid is an immutable W×H cost grid stored row-major.
// Construct it with New, FromRows or Random; the zero value is an empty 0×0 grid.
type Grid struct {
	width, height int
	cells         []float64 // len == width*height, index y*width + x
}
