package grid

import "math/rand"

// Random returns a width×height grid of uniform values in [0,1) drawn from
// a source seeded with seed. Equal arguments always give an equal grid.
// Complexity: O(W×H).
func Random(width, height int, seed int64) (*Grid, error) {
	if err := checkDims(width, height); err != nil {
		return nil, err
	}
	r := rand.New(rand.NewSource(seed))
	cells := make([]float64, width*height)
	for i := range cells {
		cells[i] = r.Float64()
	}

	return New(width, height, cells)
}
