package isochrone

import (
	"math"
	"sort"
)

// grid is the padded rectangular form of the table: a flat row-major
// [Nfeh][Nage][maxLen][ncols] float64 block plus a [Nfeh][Nage] table of
// true track lengths. Rows beyond a track's length are NaN in every column.
// Once published by buildOnce the grid is immutable, so reads need no
// locking.
type grid struct {
	nfeh, nage int
	maxLen     int
	ncols      int

	data []float64
	lens []int
}

// ensureGrid builds the grid exactly once. Concurrent first queries all
// observe the same fully built grid.
func (e *Engine) ensureGrid() *grid {
	e.buildOnce.Do(func() {
		e.grid = e.buildGrid()
	})
	return e.grid
}

// buildGrid assembles the padded grid from the model table. Row order within
// each (feh, age) track is preserved exactly as it appears in the table.
func (e *Engine) buildGrid() *grid {
	nfeh, nage, ncols := len(e.fehs), len(e.ages), e.tab.NCols

	// First pass: per-cell track lengths and the padded row count.
	lens := make([]int, nfeh*nage)
	for i := 0; i < e.tab.NRows; i++ {
		fi, ai, ok := e.cellIndex(i)
		if !ok {
			continue
		}
		lens[fi*nage+ai]++
	}
	maxLen := 0
	for _, n := range lens {
		if n > maxLen {
			maxLen = n
		}
	}

	g := &grid{
		nfeh:   nfeh,
		nage:   nage,
		maxLen: maxLen,
		ncols:  ncols,
		data:   make([]float64, nfeh*nage*maxLen*ncols),
		lens:   lens,
	}
	for i := range g.data {
		g.data[i] = math.NaN()
	}

	// Second pass: copy each track into its cell, front-packed; the NaN
	// prefill is the padding. cursor tracks the next free row per cell.
	cursor := make([]int, nfeh*nage)
	for i := 0; i < e.tab.NRows; i++ {
		fi, ai, ok := e.cellIndex(i)
		if !ok {
			continue
		}
		cell := fi*nage + ai
		k := cursor[cell]
		cursor[cell]++
		copy(g.data[g.rowOffset(fi, ai, k):], e.tab.Row(i))
	}
	return g
}

// cellIndex locates the axis indices of table row i by exact match.
func (e *Engine) cellIndex(i int) (fi, ai int, ok bool) {
	fi, ok = axisIndex(e.fehs, e.tab.At(i, e.cols.Feh))
	if !ok {
		return 0, 0, false
	}
	ai, ok = axisIndex(e.ages, e.tab.At(i, e.cols.LogAge))
	if !ok {
		return 0, 0, false
	}
	return fi, ai, true
}

// axisIndex finds v's exact position in a sorted axis.
func axisIndex(axis []float64, v float64) (int, bool) {
	i := sort.SearchFloat64s(axis, v)
	if i < len(axis) && axis[i] == v {
		return i, true
	}
	return 0, false
}

// rowOffset returns the flat offset of row k of cell (fi, ai).
func (g *grid) rowOffset(fi, ai, k int) int {
	return ((fi*g.nage+ai)*g.maxLen + k) * g.ncols
}

// trackLen returns the true (unpadded) row count of cell (fi, ai).
func (g *grid) trackLen(fi, ai int) int {
	return g.lens[fi*g.nage+ai]
}

// at returns column c of row k of cell (fi, ai).
func (g *grid) at(fi, ai, k, c int) float64 {
	return g.data[g.rowOffset(fi, ai, k)+c]
}
