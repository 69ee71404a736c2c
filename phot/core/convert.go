package core

import "math"

// FrequencyFromAngstrom converts a wavelength in angstrom to a frequency
// in Hz.
func FrequencyFromAngstrom(lambdaAA float64) float64 {
	return SpeedOfLightCmPerS / (lambdaAA * CmPerAngstrom)
}

// AngstromFromFrequency converts a frequency in Hz to a wavelength in
// angstrom.
func AngstromFromFrequency(nuHz float64) float64 {
	return SpeedOfLightCmPerS / nuHz / CmPerAngstrom
}

// KCorrectedFrequency transforms an observed frequency to its rest-frame
// equivalent at the source:
//
//	nu_rest = nu_obs * (1 + z)
func KCorrectedFrequency(nuHz, redshift float64) float64 {
	return nuHz * (1 + redshift)
}

// RestFrameTime converts an observer-frame time to the source rest frame:
//
//	t_rest = t_obs / (1 + z)
func RestFrameTime(t, redshift float64) float64 {
	return t / (1 + redshift)
}

// ABMagnitudeToFluxDensityMJy converts an AB magnitude to a flux density
// in mJy using the 3631 Jy reference:
//
//	f_nu = 3631 Jy * 10^(-0.4 m)
func ABMagnitudeToFluxDensityMJy(mag float64) float64 {
	return ABReferenceJy * 1e3 * math.Pow(10, -0.4*mag)
}

// ABMagnitudeToFluxDensityMJyErr converts an AB magnitude and its error to
// a flux density in mJy with the propagated error
//
//	sigma_f = 0.4 * ln(10) * f * sigma_m
func ABMagnitudeToFluxDensityMJyErr(mag, magErr float64) (flux, fluxErr float64) {
	flux = ABMagnitudeToFluxDensityMJy(mag)
	fluxErr = math.Abs(0.4 * Ln10 * flux * magErr)
	return flux, fluxErr
}

// FluxDensityMJyToABMagnitude converts a flux density in mJy to an AB
// magnitude. Returns +Inf for zero flux and NaN for negative flux.
func FluxDensityMJyToABMagnitude(fluxMJy float64) float64 {
	if fluxMJy < 0 {
		return math.NaN()
	}

	if fluxMJy == 0 {
		return math.Inf(1)
	}

	return -2.5 * math.Log10(fluxMJy/(ABReferenceJy*1e3))
}

// CGSToMilliJansky converts a flux density in erg*s^-1*cm^-2*Hz^-1 to mJy.
func CGSToMilliJansky(fluxCGS float64) float64 {
	return fluxCGS / MilliJanskyCGS
}
