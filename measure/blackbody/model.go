package blackbody

import (
	"math"

	"github.com/cwbudde/algo-photometry/internal/levmar"
	"github.com/cwbudde/algo-photometry/phot/bands"
	"github.com/cwbudde/algo-photometry/phot/sed"
)

// fluxDensityModel returns the effective-wavelength model: blackbody flux
// density in mJy sampled at each rest-frame frequency in x. Parameters
// are (log10 T, log10 R).
func fluxDensityModel(distanceCm float64) levmar.ModelFunc {
	return func(params, x, out []float64) {
		temp := math.Pow(10, params[0])
		radius := math.Pow(10, params[1])

		for i, nu := range x {
			out[i] = sed.FluxDensityMJy(temp, radius, distanceCm, nu)
		}
	}
}

// bandpassModel returns the full-integration model for one epoch. The
// numeric independent variable holds indices into the epoch-local band
// table; the model resolves them back to bands before synthesis. The
// table belongs to this epoch alone and is discarded with the fit.
func bandpassModel(table []bands.Band, distanceCm, redshift float64, format sed.OutputFormat) levmar.ModelFunc {
	resolved := make([]bands.Band, len(table))

	return func(params, x, out []float64) {
		temp := math.Pow(10, params[0])
		radius := math.Pow(10, params[1])

		for i, xi := range x {
			resolved[i] = table[int(math.Round(xi))]
		}

		// The format is validated before any fit starts and the indices
		// are constructed in range, so synthesis cannot fail here.
		_ = sed.BandObservables(temp, radius, distanceCm, redshift,
			resolved[:len(x)], format, out)
	}
}
