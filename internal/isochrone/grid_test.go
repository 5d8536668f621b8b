package isochrone

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridShapeAndLengths(t *testing.T) {
	e := newTestEngine(t, unevenTable(t))
	g := e.ensureGrid()

	assert.Equal(t, 3, g.nfeh)
	assert.Equal(t, 2, g.nage)
	assert.Equal(t, 4, g.maxLen, "longest track sets the padded row count")
	assert.Equal(t, 12, g.ncols)

	assert.Equal(t, 4, g.trackLen(0, 0))
	assert.Equal(t, 3, g.trackLen(0, 1))
	assert.Equal(t, 3, g.trackLen(1, 0))
	assert.Equal(t, 3, g.trackLen(1, 1))
	assert.Equal(t, 3, g.trackLen(2, 0))
	assert.Equal(t, 0, g.trackLen(2, 1), "cell with no models has zero length")
}

func TestGridPaddingIsNaN(t *testing.T) {
	e := newTestEngine(t, unevenTable(t))
	g := e.ensureGrid()

	for fi := 0; fi < g.nfeh; fi++ {
		for ai := 0; ai < g.nage; ai++ {
			n := g.trackLen(fi, ai)
			for k := n; k < g.maxLen; k++ {
				for c := 0; c < g.ncols; c++ {
					require.True(t, math.IsNaN(g.at(fi, ai, k, c)),
						"cell (%d,%d) row %d col %d must be padding", fi, ai, k, c)
				}
			}
		}
	}
}

func TestGridPreservesTrackRowOrder(t *testing.T) {
	e := newTestEngine(t, unevenTable(t))
	g := e.ensureGrid()

	// Track masses must be non-decreasing and match the table's row order.
	want := []float64{0.8, 1.0, 1.2, 1.4}
	for k, m := range want {
		assert.Equal(t, m, g.at(0, 0, k, e.cols.Mass))
	}
	// Every stored row must be bit-identical to its source row.
	assert.Equal(t, cellBase(1, 1)-0.5*(1.2-0.8), g.at(1, 1, 2, e.cols.LogG))
}

func TestGridBuildIdempotent(t *testing.T) {
	tb := unevenTable(t)
	g1 := newTestEngine(t, tb).ensureGrid()
	g2 := newTestEngine(t, tb).ensureGrid()

	require.Equal(t, g1.lens, g2.lens)
	require.Len(t, g2.data, len(g1.data))
	for i := range g1.data {
		// Bitwise comparison: NaN padding must match too.
		if math.Float64bits(g1.data[i]) != math.Float64bits(g2.data[i]) {
			t.Fatalf("grid data diverges at %d: %v vs %v", i, g1.data[i], g2.data[i])
		}
	}
}

func TestEnsureGridBuildsOnce(t *testing.T) {
	e := newTestEngine(t, testTable(t))

	var wg sync.WaitGroup
	grids := make([]*grid, 16)
	for i := range grids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			grids[i] = e.ensureGrid()
		}(i)
	}
	wg.Wait()

	for i := 1; i < len(grids); i++ {
		assert.Same(t, grids[0], grids[i], "all callers must observe the same grid")
	}
}
