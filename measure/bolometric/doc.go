// Package bolometric derives the bolometric luminosity evolution of a
// transient from per-epoch blackbody fits.
//
// Each surviving blackbody fit is integrated with the Stefan-Boltzmann
// law,
//
//	L = 4 pi R^2 sigma_SB T^4
//
// and reported in units of 1e50 erg/s. Two optional corrections compose
// on top: a boost factor recovering flux missing blue-ward of a cutoff
// wavelength (WithLambdaCut), and a dust extinction correction in
// magnitudes (WithExtinction). Both the corrected and the bare blackbody
// luminosity are retained per epoch. Uncertainties follow from the fit
// errors via
//
//	(dL/L)^2 = (2 dR/R)^2 + (4 dT/T)^2
//
// with the correction factors treated as constants. Rows whose relative
// luminosity error reaches unity are dropped.
package bolometric
