package sed

import (
	"math"

	"github.com/cwbudde/algo-photometry/phot/core"
)

// PlanckNu returns the blackbody spectral radiance B_nu(T) in
// erg*s^-1*cm^-2*Hz^-1*sr^-1.
func PlanckNu(temperatureK, nuHz float64) float64 {
	num := 2 * core.PlanckErgS * nuHz * nuHz * nuHz
	denom := core.SpeedOfLightCmPerS * core.SpeedOfLightCmPerS

	x := core.PlanckErgS * nuHz / (core.BoltzmannErgPerK * temperatureK)

	return num / denom / math.Expm1(x)
}

// PlanckLambda returns the blackbody spectral radiance B_lambda(T) in
// erg*s^-1*cm^-2*cm^-1*sr^-1 for a wavelength in cm.
func PlanckLambda(temperatureK, lambdaCm float64) float64 {
	c := core.SpeedOfLightCmPerS
	num := 2 * core.PlanckErgS * c * c / math.Pow(lambdaCm, 5)

	x := core.PlanckErgS * c / (lambdaCm * core.BoltzmannErgPerK * temperatureK)

	return num / math.Expm1(x)
}

// FluxDensity returns the observed blackbody flux density in
// erg*s^-1*cm^-2*Hz^-1 for a photosphere of the given temperature and
// radius at the given luminosity distance:
//
//	f_nu = 2 pi h nu^3 R^2 / (d^2 c^2) / (exp(h nu / k T) - 1)
func FluxDensity(temperatureK, radiusCm, distanceCm, nuHz float64) float64 {
	num := 2 * math.Pi * core.PlanckErgS * nuHz * nuHz * nuHz * radiusCm * radiusCm
	denom := distanceCm * distanceCm * core.SpeedOfLightCmPerS * core.SpeedOfLightCmPerS

	x := core.PlanckErgS * nuHz / (core.BoltzmannErgPerK * temperatureK)

	return num / denom / math.Expm1(x)
}

// FluxDensityMJy is FluxDensity converted to mJy.
func FluxDensityMJy(temperatureK, radiusCm, distanceCm, nuHz float64) float64 {
	return core.CGSToMilliJansky(FluxDensity(temperatureK, radiusCm, distanceCm, nuHz))
}

// Luminosity returns the bolometric blackbody luminosity in erg/s via the
// Stefan-Boltzmann law:
//
//	L = 4 pi R^2 sigma_SB T^4
func Luminosity(temperatureK, radiusCm float64) float64 {
	t2 := temperatureK * temperatureK

	return 4 * math.Pi * radiusCm * radiusCm * core.StefanBoltzmann * t2 * t2
}
