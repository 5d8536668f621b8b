package isochrone

import (
	"errors"
	"fmt"
	"math"

	"github.com/jmorland/isogrid/internal/extinction"
)

var (
	// ErrUnknownBand indicates a band the table carries no magnitudes for.
	ErrUnknownBand = errors.New("isochrone: unknown photometric band")
	// ErrBadDistance indicates a negative or non-finite distance.
	ErrBadDistance = errors.New("isochrone: distance must be positive and finite")
)

// MagOptions configures apparent-magnitude computation. The zero value means
// 10 pc, no extinction, default extinction curve.
type MagOptions struct {
	// DistancePC is the distance in parsecs. Zero selects the 10 pc default,
	// i.e. absolute magnitude.
	DistancePC float64
	// AV scales the extinction term.
	AV float64
	// ExtParam selects the extinction curve shape; zero uses the precomputed
	// default curve.
	ExtParam float64
	// UseExtTable forces the static per-band coefficient table instead of
	// curve evaluation. The engine-level default applies when false.
	UseExtTable bool
}

// Mag computes the apparent magnitude in band: the interpolated intrinsic
// magnitude plus the distance modulus plus the extinction term. NaN
// propagates from out-of-coverage interpolation.
func (e *Engine) Mag(band string, mass, age, feh float64, opts MagOptions) (float64, error) {
	col, ok := e.cols.Mags[band]
	if !ok {
		return math.NaN(), fmt.Errorf("%w: %q", ErrUnknownBand, band)
	}

	dist := opts.DistancePC
	if dist == 0 {
		dist = 10
	}
	if dist < 0 || math.IsNaN(dist) || math.IsInf(dist, 0) {
		return math.NaN(), fmt.Errorf("%w: %v", ErrBadDistance, opts.DistancePC)
	}

	intrinsic, err := e.InterpValue(mass, age, feh, col)
	if err != nil {
		return math.NaN(), err
	}

	dm := 5*math.Log10(dist) - 5
	return intrinsic + dm + e.extinctionTerm(band, opts), nil
}

// Mags computes Mag for every band the table carries, keyed by band name.
func (e *Engine) Mags(mass, age, feh float64, opts MagOptions) (map[string]float64, error) {
	out := make(map[string]float64, len(e.cols.Bands))
	for _, band := range e.cols.Bands {
		m, err := e.Mag(band, mass, age, feh, opts)
		if err != nil {
			return nil, err
		}
		out[band] = m
	}
	return out, nil
}

// extinctionTerm computes A_band = AV * (per-band factor). The factor comes
// from the static coefficient table when requested, otherwise from the
// extinction curve at the band's effective wavelength; ExtParam == 0 takes
// the precomputed default-curve fast path.
func (e *Engine) extinctionTerm(band string, opts MagOptions) float64 {
	if opts.AV == 0 {
		return 0
	}
	if opts.UseExtTable || e.extTable {
		return opts.AV * extinction.Coefficient[band]
	}
	curve := extinction.Curve0
	if opts.ExtParam != 0 {
		curve = extinction.Curve(opts.ExtParam)
	}
	return opts.AV * curve(extinction.LambdaEff[band])
}
