package sed

import (
	"errors"
	"fmt"
	"math"

	vecmath "github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate"

	"github.com/cwbudde/algo-photometry/phot/bands"
	"github.com/cwbudde/algo-photometry/phot/core"
)

// ErrOutputFormat is returned when an observable is requested in a
// representation the bandpass model cannot produce.
var ErrOutputFormat = errors.New("sed: unsupported output format for bandpass model")

// OutputFormat selects the representation of a synthetic bandpass
// observable.
type OutputFormat int

const (
	// FormatMagnitude reports synthetic AB magnitudes.
	FormatMagnitude OutputFormat = iota

	// FormatFlux reports synthetic bandpass fluxes in erg*s^-1*cm^-2.
	FormatFlux
)

// Wavelength grid used for SED synthesis, in angstrom.
const (
	GridMinAA  = 100.0
	GridMaxAA  = 80000.0
	GridPoints = 300
)

// WavelengthGrid returns the geometrically spaced synthesis grid in
// angstrom.
func WavelengthGrid() []float64 {
	grid := make([]float64, GridPoints)
	floats.LogSpan(grid, GridMinAA, GridMaxAA)

	return grid
}

// SpectrumLambda synthesizes the observed blackbody SED on the given
// wavelength grid as f_lambda in erg*s^-1*cm^-2*AA^-1. Each observed
// wavelength is mapped to its K-corrected frequency before the blackbody
// is evaluated, matching the effective-wavelength path.
func SpectrumLambda(temperatureK, radiusCm, distanceCm, redshift float64, lambdaAA []float64) []float64 {
	fluxLambda := make([]float64, len(lambdaAA))
	factor := make([]float64, len(lambdaAA))

	for i, lambda := range lambdaAA {
		nu := core.KCorrectedFrequency(core.FrequencyFromAngstrom(lambda), redshift)
		fluxLambda[i] = FluxDensity(temperatureK, radiusCm, distanceCm, nu)

		// f_lambda = f_nu * c / lambda^2 with c in AA/s.
		factor[i] = core.SpeedOfLightAAPerS / (lambda * lambda)
	}

	vecmath.MulBlockInPlace(fluxLambda, factor)

	return fluxLambda
}

// ABMagnitudeFromSpectrum converts a tabulated spectrum f_lambda
// (erg*s^-1*cm^-2*AA^-1 on an angstrom grid) to a synthetic AB magnitude
// through the band's transmission profile. The band flux is
// photon-weighted,
//
//	F = Int f_lambda(l) T(l) l dl / (h c)
//
// and referenced against the AB zero point of 3631 Jy integrated through
// the same profile.
func ABMagnitudeFromSpectrum(lambdaAA, fluxLambda []float64, b bands.Band) float64 {
	n := len(lambdaAA)

	trans := make([]float64, n)
	for i, lambda := range lambdaAA {
		trans[i] = b.Transmission(lambda)
	}

	// Photon-weighted band flux integrand: lambda * T * f_lambda.
	numIntegrand := make([]float64, n)
	vecmath.MulBlock(numIntegrand, trans, fluxLambda)
	vecmath.MulBlockInPlace(numIntegrand, lambdaAA)

	// Zero-point integrand: T / lambda.
	zpIntegrand := make([]float64, n)
	for i := range zpIntegrand {
		zpIntegrand[i] = trans[i] / lambdaAA[i]
	}

	photon := integrate.Trapezoidal(lambdaAA, numIntegrand) /
		(core.PlanckErgS * core.SpeedOfLightAAPerS)
	zeroPoint := core.ABReferenceJy * core.JanskyCGS / core.PlanckErgS *
		integrate.Trapezoidal(lambdaAA, zpIntegrand)

	if photon <= 0 || zeroPoint <= 0 {
		return math.Inf(1)
	}

	return -2.5 * math.Log10(photon/zeroPoint)
}

// BandMagnitude synthesizes a blackbody SED and returns its AB magnitude
// in the given band.
func BandMagnitude(temperatureK, radiusCm, distanceCm, redshift float64, b bands.Band) float64 {
	grid := WavelengthGrid()
	spectrum := SpectrumLambda(temperatureK, radiusCm, distanceCm, redshift, grid)

	return ABMagnitudeFromSpectrum(grid, spectrum, b)
}

// BandFlux synthesizes a blackbody SED and returns its bandpass flux in
// erg*s^-1*cm^-2, derived from the synthetic AB magnitude and the band's
// zero-point flux.
func BandFlux(temperatureK, radiusCm, distanceCm, redshift float64, b bands.Band) float64 {
	mag := BandMagnitude(temperatureK, radiusCm, distanceCm, redshift, b)

	return b.ReferenceFlux() * math.Pow(10, -0.4*mag)
}

// BandObservables synthesizes one blackbody SED and evaluates it through
// each band, writing the observable in the requested format into out.
// The SED is synthesized once per call, so fitting loops pay the grid
// cost once per parameter evaluation rather than once per band.
func BandObservables(temperatureK, radiusCm, distanceCm, redshift float64,
	bandList []bands.Band, format OutputFormat, out []float64) error {
	if len(out) != len(bandList) {
		return fmt.Errorf("sed: output length %d does not match band count %d", len(out), len(bandList))
	}

	grid := WavelengthGrid()
	spectrum := SpectrumLambda(temperatureK, radiusCm, distanceCm, redshift, grid)

	for i, b := range bandList {
		mag := ABMagnitudeFromSpectrum(grid, spectrum, b)

		switch format {
		case FormatMagnitude:
			out[i] = mag
		case FormatFlux:
			out[i] = b.ReferenceFlux() * math.Pow(10, -0.4*mag)
		default:
			return fmt.Errorf("%w: %d", ErrOutputFormat, int(format))
		}
	}

	return nil
}
