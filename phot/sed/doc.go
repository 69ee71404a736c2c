// Package sed evaluates blackbody spectral energy distributions and the
// observables derived from them.
//
// A blackbody photosphere of temperature T and radius R at luminosity
// distance d has the observed flux density
//
//	f_nu = 2 pi h nu^3 R^2 / (d^2 c^2) / (exp(h nu / k T) - 1)
//
// in erg*s^-1*cm^-2*Hz^-1. Two evaluation paths are provided:
//
//   - Effective wavelength: sample f_nu at a single representative
//     frequency per measurement (FluxDensityMJy).
//   - Bandpass integration: synthesize the SED on a geometric wavelength
//     grid, push it through a filter transmission profile, and report a
//     synthetic AB magnitude or bandpass flux (BandObservables).
//
// The package also integrates the SED itself: Luminosity applies the
// Stefan-Boltzmann law, and BoostedLuminosity corrects for flux missing
// blue-ward of an observational cutoff wavelength.
package sed
