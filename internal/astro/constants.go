// Package astro holds the physical constants needed to turn interpolated
// isochrone columns into physical stellar quantities.
package astro

// Constants is the set of CGS constants the engine depends on. Callers that
// track their own ephemeris values can inject them at engine construction;
// everything else uses Default.
type Constants struct {
	// G is the gravitational constant in cm^3 g^-1 s^-2.
	G float64
	// Msun is the solar mass in grams.
	Msun float64
	// Rsun is the solar radius in centimetres.
	Rsun float64
}

// Default returns the nominal IAU 2015 CGS values.
func Default() Constants {
	return Constants{
		G:    6.674e-8,
		Msun: 1.989e33,
		Rsun: 6.957e10,
	}
}

// IsZero reports whether c carries no values and should be replaced by Default.
func (c Constants) IsZero() bool {
	return c.G == 0 && c.Msun == 0 && c.Rsun == 0
}
