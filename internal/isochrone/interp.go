package isochrone

import (
	"fmt"
	"math"
	"sort"
)

// InterpValue interpolates the given table column at one (mass, age, feh)
// query. Queries outside the covered region return NaN; malformed inputs
// (non-positive or non-finite mass, non-finite age or metallicity, bad
// column) return an error.
//
// The interpolation is trilinear: the query metallicity and age select a
// bracketing 2x2 block of tracks, the column is linearly interpolated by
// mass inside each of the four tracks, and the four corner values are
// combined with bilinear weights. A query that misses any corner's valid
// mass range yields NaN with no partial averaging.
func (e *Engine) InterpValue(mass, age, feh float64, col int) (float64, error) {
	if err := e.checkQuery(mass, age, feh, col); err != nil {
		return math.NaN(), err
	}
	return e.interp(mass, age, feh, col), nil
}

// InterpValues is the element-wise form of InterpValue over equal-length
// slices. Each output element is exactly what InterpValue would return for
// the corresponding scalar query.
func (e *Engine) InterpValues(mass, age, feh []float64, col int) ([]float64, error) {
	if len(mass) != len(age) || len(mass) != len(feh) {
		return nil, fmt.Errorf("%w: mass=%d age=%d feh=%d",
			ErrLengthMismatch, len(mass), len(age), len(feh))
	}
	for i := range mass {
		if err := e.checkQuery(mass[i], age[i], feh[i], col); err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
	}
	out := make([]float64, len(mass))
	for i := range mass {
		out[i] = e.interp(mass[i], age[i], feh[i], col)
	}
	return out, nil
}

// checkQuery rejects structurally invalid inputs. Out-of-range but finite
// values are left for the sentinel path.
func (e *Engine) checkQuery(mass, age, feh float64, col int) error {
	if col < 0 || col >= e.tab.NCols {
		return fmt.Errorf("%w: %d (table width %d)", ErrBadColumn, col, e.tab.NCols)
	}
	if mass <= 0 || math.IsNaN(mass) || math.IsInf(mass, 0) {
		return fmt.Errorf("%w: %v", ErrBadMass, mass)
	}
	if math.IsNaN(age) || math.IsInf(age, 0) || math.IsNaN(feh) || math.IsInf(feh, 0) {
		return fmt.Errorf("%w: age=%v feh=%v", ErrBadInput, age, feh)
	}
	return nil
}

// interp is the validated trilinear interpolation core.
func (e *Engine) interp(mass, age, feh float64, col int) float64 {
	g := e.ensureGrid()

	flo, fhi, wf, ok := bracket(e.fehs, feh)
	if !ok {
		return math.NaN()
	}
	alo, ahi, wa, ok := bracket(e.ages, age)
	if !ok {
		return math.NaN()
	}

	v00 := g.trackValue(flo, alo, mass, e.cols.Mass, col)
	v01 := g.trackValue(flo, ahi, mass, e.cols.Mass, col)
	v10 := g.trackValue(fhi, alo, mass, e.cols.Mass, col)
	v11 := g.trackValue(fhi, ahi, mass, e.cols.Mass, col)
	if math.IsNaN(v00) || math.IsNaN(v01) || math.IsNaN(v10) || math.IsNaN(v11) {
		return math.NaN()
	}

	return (1-wf)*((1-wa)*v00+wa*v01) + wf*((1-wa)*v10+wa*v11)
}

// bracket locates the axis indices (lo, hi) enclosing v and the fractional
// position w of v between them. Exact axis points collapse to a degenerate
// bracket (lo == hi, w == 0) so grid-point queries reproduce stored values
// bit for bit. Values outside the axis range report ok == false; the engine
// does not extrapolate along any axis.
func bracket(axis []float64, v float64) (lo, hi int, w float64, ok bool) {
	n := len(axis)
	if n == 0 || v < axis[0] || v > axis[n-1] {
		return 0, 0, 0, false
	}
	i := sort.SearchFloat64s(axis, v)
	if i < n && axis[i] == v {
		return i, i, 0, true
	}
	lo, hi = i-1, i
	return lo, hi, (v - axis[lo]) / (axis[hi] - axis[lo]), true
}

// trackValue interpolates col by mass within the valid prefix of the track
// at cell (fi, ai). Masses outside the track's range, and empty tracks,
// yield NaN: there is no extrapolation at the track level.
func (g *grid) trackValue(fi, ai int, mass float64, massCol, col int) float64 {
	n := g.trackLen(fi, ai)
	if n == 0 {
		return math.NaN()
	}
	if mass < g.at(fi, ai, 0, massCol) || mass > g.at(fi, ai, n-1, massCol) {
		return math.NaN()
	}

	// Binary search for the first row with mass >= query. Track masses are
	// non-decreasing; ties collapse to the first matching row.
	k := sort.Search(n, func(k int) bool { return g.at(fi, ai, k, massCol) >= mass })
	mk := g.at(fi, ai, k, massCol)
	if mk == mass {
		return g.at(fi, ai, k, col)
	}

	m0, m1 := g.at(fi, ai, k-1, massCol), mk
	v0, v1 := g.at(fi, ai, k-1, col), g.at(fi, ai, k, col)
	return v0 + (v1-v0)*(mass-m0)/(m1-m0)
}
