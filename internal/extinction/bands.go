package extinction

// LambdaEff maps a photometric band name to its effective wavelength in
// Angstroms. The default set covers the SDSS ugriz system the MIST tables
// ship magnitudes for.
var LambdaEff = map[string]float64{
	"u": 3551,
	"g": 4686,
	"r": 6166,
	"i": 7480,
	"z": 8932,
}

// Coefficient is the static per-band A_b/A_V table used when the caller asks
// for table-based extinction instead of evaluating the curve. Values follow
// the Schlegel, Finkbeiner & Davis recalibration for the SDSS bands.
var Coefficient = map[string]float64{
	"u": 1.579,
	"g": 1.161,
	"r": 0.843,
	"i": 0.639,
	"z": 0.453,
}
