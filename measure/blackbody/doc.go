// Package blackbody reconstructs the thermal evolution of a transient from
// sparse multi-band photometry: it bins the observations into fixed-width
// epochs and fits a blackbody SED to each epoch, producing temperature and
// photospheric radius as functions of time with analytic uncertainties.
//
// Two model paths exist, selected by the data mode of the input series.
// Flux-density data (numeric frequencies) uses the effective-wavelength
// approximation: the blackbody flux density is sampled at each
// K-corrected frequency. Bandpass data (magnitudes or bandpass fluxes
// with band labels) is fit by full bandpass integration of a synthetic
// SED through each filter's transmission profile; WithEffectiveWavelength
// forces the approximation instead, converting the measurements to flux
// density first.
//
// Fitting happens in (log10 T, log10 R) space, which keeps both
// parameters positive and conditions the problem well. Per-epoch fits
// are independent and run on a worker pool; a failed epoch is logged and
// skipped without disturbing its siblings. Fits whose relative parameter
// error reaches unity are dropped after the fact.
//
// # Usage
//
//	fits, err := blackbody.Estimate(ser,
//	    blackbody.WithDistance(1e27),
//	    blackbody.WithBinWidth(1.0),
//	)
//	if err != nil {
//	    // configuration problem: bad series, missing redshift, unknown band
//	}
//	if len(fits) == 0 {
//	    // insufficient data: no epoch had enough measurements or fit
//	}
package blackbody
