package route_test

import (
	"context"
	"errors"
	"image"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/portalgrid/grid"
	"github.com/katalvlaran/portalgrid/portal"
	"github.com/katalvlaran/portalgrid/route"
)

// build turns a picture ('.' passable, '#' blocked) into a portal graph.
func build(t *testing.T, rows ...string) *portal.Graph {
	t.Helper()
	vals := make([][]float64, len(rows))
	for y, row := range rows {
		vals[y] = make([]float64, len(row))
		for x, c := range row {
			if c == '#' {
				vals[y][x] = 1
			}
		}
	}
	g, err := grid.FromRows(vals)
	require.NoError(t, err)
	pg, err := portal.Build(g)
	require.NoError(t, err)
	return pg
}

// mixed is the 5×4 grid below. Its rectangles are
//
//	0 (0,0,2,3)  1 (3,0,5,2)  2 (2,1,3,4)
//	3 (4,2,5,4)  4 (1,3,2,4)  5 (3,3,4,4)
//
// with adjacency 0:{2,4} 1:{2,3} 2:{0,1,4,5} 3:{1,5} 4:{0,2} 5:{2,3}.
func mixed(t *testing.T) *portal.Graph {
	return build(t, "..#..", ".....", "...#.", "#....")
}

// TestBFS_Errors verifies that invalid inputs and options are rejected.
func TestBFS_Errors(t *testing.T) {
	pg := mixed(t)

	_, err := route.BFS(nil, 0)
	assert.ErrorIs(t, err, route.ErrGraphNil)

	_, err = route.BFS(pg, 6)
	assert.ErrorIs(t, err, route.ErrStartNotFound)
	assert.ErrorIs(t, err, portal.ErrNodeNotFound)

	_, err = route.BFS(pg, 0, route.WithMaxDepth(-1))
	assert.ErrorIs(t, err, route.ErrOptionViolation)

	_, err = route.Shortest(nil, 0)
	assert.ErrorIs(t, err, route.ErrGraphNil)

	_, err = route.Shortest(pg, -1)
	assert.ErrorIs(t, err, route.ErrStartNotFound)

	_, err = route.Shortest(pg, 0, route.WithMaxDistance(-2))
	assert.ErrorIs(t, err, route.ErrOptionViolation)
}

// TestBFS_Order checks visit order, depths and path reconstruction.
func TestBFS_Order(t *testing.T) {
	pg := mixed(t)

	res, err := route.BFS(pg, 0)
	require.NoError(t, err)

	assert.Equal(t, []int{0, 2, 4, 1, 5, 3}, res.Order)
	assert.Equal(t, []int{0, 2, 1, 3, 1, 2}, res.Depth)
	assert.Equal(t, -1, res.Parent[0])

	path, err := res.PathTo(3)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2, 1, 3}, path)

	path, err = res.PathTo(0)
	require.NoError(t, err)
	assert.Equal(t, []int{0}, path)
}

// TestBFS_MaxDepth stops enqueueing beyond the limit.
func TestBFS_MaxDepth(t *testing.T) {
	pg := mixed(t)

	res, err := route.BFS(pg, 0, route.WithMaxDepth(1))
	require.NoError(t, err)

	assert.Equal(t, []int{0, 2, 4}, res.Order)
	assert.False(t, res.Reached(1))
	_, err = res.PathTo(3)
	assert.ErrorIs(t, err, route.ErrNoRoute)
}

// TestBFS_OnVisitAbort propagates hook errors.
func TestBFS_OnVisitAbort(t *testing.T) {
	pg := mixed(t)
	stop := errors.New("stop")

	var seen []int
	res, err := route.BFS(pg, 0, route.WithOnVisit(func(id, depth int) error {
		seen = append(seen, id)
		if id == 4 {
			return stop
		}
		return nil
	}))
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, []int{0, 2, 4}, seen)
	assert.Equal(t, []int{0, 2, 4}, res.Order)
}

// TestBFS_Cancelled returns the context error.
func TestBFS_Cancelled(t *testing.T) {
	pg := mixed(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := route.BFS(pg, 0, route.WithContext(ctx))
	assert.ErrorIs(t, err, context.Canceled)

	_, err = route.Shortest(pg, 0, route.WithContext(ctx))
	assert.ErrorIs(t, err, context.Canceled)
}

// TestShortest_CentroidDistance prefers the geometrically shorter detour
// through node 5 over the hop-equal path through node 1.
func TestShortest_CentroidDistance(t *testing.T) {
	pg := mixed(t)

	res, err := route.Shortest(pg, 0)
	require.NoError(t, err)

	path, err := res.PathTo(3)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2, 5, 3}, path)

	want := math.Hypot(1.5, 1) + math.Hypot(1, 1) + math.Hypot(1, 0.5)
	assert.InDelta(t, want, res.Dist[3], 1e-9)
	assert.Equal(t, 0.0, res.Dist[0])
	for id := 0; id < pg.Len(); id++ {
		assert.True(t, res.Reached(id), "node %d", id)
	}
}

// TestShortest_MaxDistance leaves far nodes unreached.
func TestShortest_MaxDistance(t *testing.T) {
	pg := mixed(t)

	res, err := route.Shortest(pg, 0, route.WithMaxDistance(2))
	require.NoError(t, err)

	assert.True(t, res.Reached(2))  // 1.80 away
	assert.False(t, res.Reached(4)) // 2.06 away
	assert.False(t, res.Reached(3))
	_, err = res.PathTo(3)
	assert.ErrorIs(t, err, route.ErrNoRoute)
}

// TestBetween covers both search modes, same-rectangle routes and failures.
func TestBetween(t *testing.T) {
	pg := mixed(t)
	ctx := context.Background()

	p, err := route.Between(ctx, pg, image.Pt(0, 0), image.Pt(4, 3), false)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2, 1, 3}, p.Nodes)
	assert.Equal(t, 3, p.Hops)

	p, err = route.Between(ctx, pg, image.Pt(0, 0), image.Pt(4, 3), true)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2, 5, 3}, p.Nodes)
	assert.InDelta(t, math.Hypot(1.5, 1)+math.Hypot(1, 1)+math.Hypot(1, 0.5), p.Length, 1e-9)

	p, err = route.Between(ctx, pg, image.Pt(0, 0), image.Pt(1, 2), true)
	require.NoError(t, err)
	assert.Equal(t, []int{0}, p.Nodes)
	assert.Equal(t, 0, p.Hops)
	assert.Equal(t, 0.0, p.Length)

	_, err = route.Between(ctx, pg, image.Pt(2, 0), image.Pt(4, 3), false)
	assert.ErrorIs(t, err, route.ErrEndpoint)
	assert.ErrorIs(t, err, portal.ErrCellNotPassable)

	_, err = route.Between(ctx, pg, image.Pt(0, 0), image.Pt(9, 9), false)
	assert.ErrorIs(t, err, route.ErrEndpoint)
	assert.ErrorIs(t, err, portal.ErrOutOfBounds)

	_, err = route.Between(ctx, nil, image.Pt(0, 0), image.Pt(0, 0), false)
	assert.ErrorIs(t, err, route.ErrGraphNil)

	split := build(t, ".#.")
	_, err = route.Between(ctx, split, image.Pt(0, 0), image.Pt(2, 0), false)
	assert.ErrorIs(t, err, route.ErrNoRoute)
	_, err = route.Between(ctx, split, image.Pt(0, 0), image.Pt(2, 0), true)
	assert.ErrorIs(t, err, route.ErrNoRoute)
}
