package bolometric

import (
	"math"

	"github.com/cwbudde/algo-photometry/measure/blackbody"
	"github.com/cwbudde/algo-photometry/phot/core"
	"github.com/cwbudde/algo-photometry/phot/sed"
	"github.com/cwbudde/algo-photometry/phot/series"
)

// lumUnit rescales erg/s to the reported unit of 1e50 erg/s.
const lumUnit = 1e50

// Point extends a blackbody fit with the derived luminosities, all in
// units of 1e50 erg/s.
type Point struct {
	blackbody.Fit

	// LumBol is the bolometric luminosity with boost and extinction
	// corrections applied, LumBolErr its one-sigma uncertainty.
	LumBol    float64
	LumBolErr float64

	// LumBolBB is the bare blackbody luminosity before the boost
	// (extinction still applies), with its uncertainty.
	LumBolBB    float64
	LumBolBBErr float64

	// RestFrameTime is the epoch time divided by (1 + z).
	RestFrameTime float64
}

// Estimate fits blackbody parameters per epoch and maps them through the
// Stefan-Boltzmann law. The empty-result semantics of the blackbody fit
// propagate unchanged: a nil slice with a nil error means no usable
// epoch survived.
func Estimate(s *series.Series, opts ...Option) ([]Point, error) {
	cfg := ApplyOptions(opts...)

	if cfg.LambdaCutAA > 0 {
		cfg.Logger.Info("including effects of missing flux due to line blanketing",
			"lambda_cut_aa", cfg.LambdaCutAA)
	} else {
		cfg.Logger.Info("no lambda_cut provided; assuming a pure blackbody SED")
	}

	if cfg.ExtinctionMag != 0 {
		cfg.Logger.Info("applying extinction correction",
			"a_ext_mag", cfg.ExtinctionMag)
	}

	extinction := math.Pow(10, 0.4*cfg.ExtinctionMag)

	bbOpts := append([]blackbody.Option{blackbody.WithLogger(cfg.Logger)},
		cfg.BlackbodyOptions...)

	fits, err := blackbody.Estimate(s, bbOpts...)
	if err != nil {
		return nil, err
	}

	if len(fits) == 0 {
		cfg.Logger.Warn("no valid blackbody fits; cannot estimate bolometric luminosity")

		return nil, nil
	}

	redshift := s.EffectiveRedshift()

	points := make([]Point, 0, len(fits))

	for _, f := range fits {
		var lum, lumBB float64

		if cfg.LambdaCutAA > 0 {
			lum, lumBB = sed.BoostedLuminosity(f.TemperatureK, f.RadiusCm,
				cfg.LambdaCutAA*core.CmPerAngstrom)
		} else {
			lum = sed.Luminosity(f.TemperatureK, f.RadiusCm)
			lumBB = lum
		}

		lum *= extinction
		lumBB *= extinction

		// From differentiating R^2 T^4; the boost and extinction
		// factors are fit-independent constants for the epoch.
		relErr := math.Sqrt(
			math.Pow(2*f.RadiusErr/f.RadiusCm, 2) +
				math.Pow(4*f.TemperatureErr/f.TemperatureK, 2))

		points = append(points, Point{
			Fit:           f,
			LumBol:        lum / lumUnit,
			LumBolErr:     lum * relErr / lumUnit,
			LumBolBB:      lumBB / lumUnit,
			LumBolBBErr:   lumBB * relErr / lumUnit,
			RestFrameTime: core.RestFrameTime(f.EpochTime, redshift),
		})
	}

	kept := points[:0]
	for _, p := range points {
		if p.LumBolErr/p.LumBol < 1 {
			kept = append(kept, p)
		}
	}

	cfg.Logger.Info("masking bolometric estimates with likely wrong extractions",
		"computed", len(points), "kept", len(kept))

	return kept, nil
}
