// Package extinction models interstellar extinction for the photometric
// bands the isochrone engine knows about.
//
// The parameterized curve follows the Cardelli, Clayton & Mathis (1989)
// A(lambda)/A(V) polynomials, with the single shape parameter shifting the
// effective R_V of the curve. The engine only ever consumes the curve as an
// opaque wavelength -> extinction-factor function.
package extinction

import "math"

// rv0 is the diffuse-ISM ratio of total to selective extinction.
const rv0 = 3.1

// rvSlope converts the dimensionless curve shape parameter into an R_V shift.
const rvSlope = 9.1

// Curve returns the extinction curve A(lambda)/A(V) for shape parameter x.
// Wavelengths are in Angstroms. x = 0 reproduces the mean diffuse-ISM curve;
// positive x flattens the curve (larger R_V), negative x steepens it.
// Wavelengths outside the supported 1250 A - 33000 A range yield NaN.
func Curve(x float64) func(lambda float64) float64 {
	rv := rv0 + rvSlope*x
	return func(lambda float64) float64 {
		return ccm(lambda, rv)
	}
}

// Curve0 is the precomputed default curve (shape parameter 0). Callers on the
// hot path use it directly instead of rebuilding the closure per query.
var Curve0 = Curve(0)

// ccm evaluates the CCM89 extinction law A(lambda)/A(V) at wavelength
// lambda (Angstroms) for ratio rv.
func ccm(lambda, rv float64) float64 {
	if !(lambda > 0) || rv <= 0 {
		return math.NaN()
	}
	// CCM operates on inverse microns.
	x := 1e4 / lambda

	var a, b float64
	switch {
	case x >= 0.3 && x < 1.1:
		// Infrared.
		p := math.Pow(x, 1.61)
		a = 0.574 * p
		b = -0.527 * p
	case x >= 1.1 && x < 3.3:
		// Optical / NIR, seventh-order polynomials in y = x - 1.82.
		y := x - 1.82
		a = 1 + y*(0.17699+y*(-0.50447+y*(-0.02427+y*(0.72085+y*(0.01979+y*(-0.77530+y*0.32999))))))
		b = y * (1.41338 + y*(2.28305+y*(1.07233+y*(-5.38434+y*(-0.62251+y*(5.30260+y*-2.09002))))))
	case x >= 3.3 && x <= 8.0:
		// Ultraviolet.
		var fa, fb float64
		if x >= 5.9 {
			d := x - 5.9
			fa = d * d * (-0.04473 - 0.009779*d)
			fb = d * d * (0.2130 + 0.1207*d)
		}
		a = 1.752 - 0.316*x - 0.104/((x-4.67)*(x-4.67)+0.341) + fa
		b = -3.090 + 1.825*x + 1.206/((x-4.62)*(x-4.62)+0.263) + fb
	default:
		return math.NaN()
	}

	return a + b/rv
}
