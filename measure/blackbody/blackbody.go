package blackbody

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/cwbudde/algo-photometry/internal/levmar"
	"github.com/cwbudde/algo-photometry/phot/bands"
	"github.com/cwbudde/algo-photometry/phot/core"
	"github.com/cwbudde/algo-photometry/phot/sed"
	"github.com/cwbudde/algo-photometry/phot/series"
)

// ErrRedshift is returned when the series carries no positive redshift
// and a K-correction is required.
var ErrRedshift = errors.New("blackbody: redshift must be positive for K-correction")

// Fit is the blackbody solution for one epoch.
type Fit struct {
	// EpochTime is the mean time of the epoch's measurements.
	EpochTime float64

	// TemperatureK and RadiusCm are the best-fit blackbody parameters.
	TemperatureK float64
	RadiusCm     float64

	// TemperatureErr and RadiusErr are the one-sigma uncertainties.
	TemperatureErr float64
	RadiusErr      float64
}

// Estimator fits blackbody parameters per epoch.
type Estimator struct {
	cfg Config
}

// New creates an estimator with the given options.
func New(opts ...Option) *Estimator {
	return &Estimator{cfg: ApplyOptions(opts...)}
}

// Estimate runs the estimation with the given options. See
// Estimator.Estimate for the contract.
func Estimate(s *series.Series, opts ...Option) ([]Fit, error) {
	return New(opts...).Estimate(s)
}

// Estimate bins the series into epochs and fits a blackbody SED to each.
// The returned fits are ordered by epoch time and filtered to relative
// parameter errors below unity. A nil slice with a nil error means no
// epoch had enough data or no fit succeeded; a non-nil error means the
// input or configuration is unusable and nothing was fit.
func (e *Estimator) Estimate(s *series.Series) ([]Fit, error) {
	cfg := e.cfg

	if err := s.Validate(); err != nil {
		return nil, err
	}

	cfg.Logger.Info("estimating blackbody parameters",
		"points", s.Len(), "mode", s.Mode.String())

	sorted := s.SortedByTime()

	useBandpass := sorted.Mode == series.ModeFlux || sorted.Mode == series.ModeMagnitude

	var freqs []float64
	if !useBandpass {
		freqs = sorted.FrequenciesHz
		cfg.Logger.Info("using effective wavelength approximation",
			"mode", sorted.Mode.String())
	}

	if useBandpass && cfg.UseEffectiveWavelength {
		cfg.Logger.Warn("forcing effective wavelength approximation",
			"mode", sorted.Mode.String())

		converted, err := toFluxDensity(sorted)
		if err != nil {
			return nil, err
		}

		freqs = converted
		useBandpass = false
	}

	redshift := sorted.EffectiveRedshift()
	if redshift <= 0 {
		return nil, ErrRedshift
	}

	if !useBandpass {
		rest := make([]float64, len(freqs))
		for i, nu := range freqs {
			rest[i] = core.KCorrectedFrequency(nu, redshift)
		}

		freqs = rest
	}

	var format sed.OutputFormat
	if useBandpass {
		switch sorted.Mode {
		case series.ModeFlux:
			format = sed.FormatFlux
		case series.ModeMagnitude:
			format = sed.FormatMagnitude
		}
	}

	epochs, totalBins := binEpochs(sorted.Time, cfg.BinWidthDays, cfg.MinFilters)

	cfg.Logger.Info("binned photometry",
		"bins", totalBins, "retained_epochs", len(epochs))

	if len(epochs) == 0 {
		cfg.Logger.Warn("no time bin has enough measurements; fitting cannot proceed",
			"min_filters", cfg.MinFilters)
		cfg.Logger.Warn("try wider bins, fewer filters, or more data")

		return nil, nil
	}

	results := make([]*Fit, len(epochs))

	initial := []float64{math.Log10(cfg.TInitK), math.Log10(cfg.RInitCm)}

	workers := cfg.Workers
	if workers > len(epochs) {
		workers = len(epochs)
	}

	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for k := range jobs {
				results[k] = e.fitEpoch(sorted, epochs[k], freqs, useBandpass, format, initial)
			}
		}()
	}

	for k := range epochs {
		jobs <- k
	}

	close(jobs)
	wg.Wait()

	fits := make([]Fit, 0, len(epochs))
	for _, r := range results {
		if r != nil {
			fits = append(fits, *r)
		}
	}

	if len(fits) == 0 {
		cfg.Logger.Warn("no epoch with sufficient data yielded a successful fit")

		return nil, nil
	}

	kept := fits[:0]
	for _, f := range fits {
		if f.TemperatureErr/f.TemperatureK < 1 && f.RadiusErr/f.RadiusCm < 1 {
			kept = append(kept, f)
		}
	}

	cfg.Logger.Info("masking epochs with likely wrong extractions",
		"fitted", len(fits), "kept", len(kept))

	return kept, nil
}

// fitEpoch runs one per-epoch fit. A nil return means the fit failed and
// was skipped; the failure never aborts sibling epochs.
func (e *Estimator) fitEpoch(sorted *series.Series, ep epoch, freqs []float64,
	useBandpass bool, format sed.OutputFormat, initial []float64) *Fit {
	cfg := e.cfg
	n := len(ep.indices)

	x := make([]float64, n)
	y := make([]float64, n)
	sigma := make([]float64, n)

	var model levmar.ModelFunc

	if useBandpass {
		// Fit-local band table: the numeric fitter sees integer
		// indices, the model resolves them back to bands.
		table := make([]bands.Band, n)

		for i, idx := range ep.indices {
			b, err := bands.Lookup(sorted.Bands[idx])
			if err != nil {
				cfg.Logger.Warn("skipping epoch with unresolvable band",
					"time", ep.meanTime, "err", err)

				return nil
			}

			table[i] = b
			x[i] = float64(i)
			y[i] = sorted.Y[idx]
			sigma[i] = sorted.YErr[idx]
		}

		model = bandpassModel(table, cfg.DistanceCm, sorted.EffectiveRedshift(), format)
	} else {
		for i, idx := range ep.indices {
			x[i] = freqs[idx]
			y[i] = sorted.Y[idx]
			sigma[i] = sorted.YErr[idx]
		}

		model = fluxDensityModel(cfg.DistanceCm)
	}

	res, err := levmar.Solve(
		levmar.Problem{X: x, Y: y, Sigma: sigma, Model: model},
		levmar.Settings{Initial: initial, MaxFuncEvals: cfg.MaxFuncEvals},
	)
	if err != nil {
		cfg.Logger.Warn("fit failed for epoch; skipping",
			"time", ep.meanTime, "points", n, "err", err)

		return nil
	}

	temp := math.Pow(10, res.Params[0])
	radius := math.Pow(10, res.Params[1])

	tempErr := core.Ln10 * temp * math.Sqrt(res.Covariance.At(0, 0))
	radiusErr := core.Ln10 * radius * math.Sqrt(res.Covariance.At(1, 1))

	return &Fit{
		EpochTime:      ep.meanTime,
		TemperatureK:   temp,
		RadiusCm:       radius,
		TemperatureErr: tempErr,
		RadiusErr:      radiusErr,
	}
}

// toFluxDensity rewrites a bandpass-mode series in place to flux density
// in mJy and returns the per-point effective frequencies.
func toFluxDensity(s *series.Series) ([]float64, error) {
	freqs := make([]float64, s.Len())

	for i, name := range s.Bands {
		b, err := bands.Lookup(name)
		if err != nil {
			return nil, fmt.Errorf("blackbody: resolving band for flux density conversion: %w", err)
		}

		freqs[i] = b.EffectiveFrequency()

		switch s.Mode {
		case series.ModeMagnitude:
			s.Y[i], s.YErr[i] = core.ABMagnitudeToFluxDensityMJyErr(s.Y[i], s.YErr[i])
		case series.ModeFlux:
			// Bandpass flux to flux density via the effective width.
			width := b.EffectiveWidthHz()
			s.Y[i] = s.Y[i] / width / core.MilliJanskyCGS
			s.YErr[i] = s.YErr[i] / width / core.MilliJanskyCGS
		}
	}

	return freqs, nil
}
