// Package series defines the photometric time-series container consumed by
// the estimation packages: aligned observation arrays, their representation
// mode, and the source redshift.
package series

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// Errors returned by series validation.
var (
	ErrEmpty          = errors.New("series: no data points")
	ErrLengthMismatch = errors.New("series: array lengths differ")
	ErrMissingBands   = errors.New("series: band labels required for this data mode")
	ErrMissingFreqs   = errors.New("series: frequencies required for flux density mode")
	ErrUnknownMode    = errors.New("series: unknown data mode")
)

// DataMode identifies the representation of the brightness values.
type DataMode int

const (
	// ModeFluxDensity means Y holds flux densities in mJy with numeric
	// frequencies attached per point.
	ModeFluxDensity DataMode = iota

	// ModeFlux means Y holds bandpass-integrated fluxes in
	// erg*s^-1*cm^-2 with band labels attached per point.
	ModeFlux

	// ModeMagnitude means Y holds AB magnitudes with band labels
	// attached per point.
	ModeMagnitude
)

// String returns the mode name.
func (m DataMode) String() string {
	switch m {
	case ModeFluxDensity:
		return "flux_density"
	case ModeFlux:
		return "flux"
	case ModeMagnitude:
		return "magnitude"
	default:
		return fmt.Sprintf("DataMode(%d)", int(m))
	}
}

// ParseDataMode resolves a mode name as used in catalog files.
func ParseDataMode(s string) (DataMode, error) {
	switch s {
	case "flux_density":
		return ModeFluxDensity, nil
	case "flux":
		return ModeFlux, nil
	case "magnitude":
		return ModeMagnitude, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// Series holds filtered multi-band photometry of a single transient.
// Time is in days, YErr carries one-sigma errors in the units of Y.
// Bands is used in flux and magnitude modes, FrequenciesHz in flux
// density mode; whichever applies is aligned index-for-index with Time.
type Series struct {
	Time []float64
	Y    []float64
	YErr []float64

	Bands         []string
	FrequenciesHz []float64

	Redshift float64
	Mode     DataMode
}

// Len returns the number of data points.
func (s *Series) Len() int {
	return len(s.Time)
}

// Validate checks that the arrays are aligned and the labels required by
// the data mode are present.
func (s *Series) Validate() error {
	if len(s.Time) == 0 {
		return ErrEmpty
	}

	if len(s.Y) != len(s.Time) || len(s.YErr) != len(s.Time) {
		return ErrLengthMismatch
	}

	switch s.Mode {
	case ModeFluxDensity:
		if len(s.FrequenciesHz) != len(s.Time) {
			return ErrMissingFreqs
		}
	case ModeFlux, ModeMagnitude:
		if len(s.Bands) != len(s.Time) {
			return ErrMissingBands
		}
	default:
		return fmt.Errorf("%w: %d", ErrUnknownMode, int(s.Mode))
	}

	return nil
}

// EffectiveRedshift returns the redshift with NaN coerced to zero.
// Callers that require a K-correction must still check positivity.
func (s *Series) EffectiveRedshift() float64 {
	if math.IsNaN(s.Redshift) {
		return 0
	}

	return s.Redshift
}

// SortedByTime returns a copy of the series with all aligned arrays
// reordered so that Time is ascending. The sort is stable, so points
// sharing a time keep their relative order.
func (s *Series) SortedByTime() *Series {
	n := s.Len()

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}

	sort.SliceStable(idx, func(a, b int) bool {
		return s.Time[idx[a]] < s.Time[idx[b]]
	})

	out := &Series{
		Time:     make([]float64, n),
		Y:        make([]float64, n),
		YErr:     make([]float64, n),
		Redshift: s.Redshift,
		Mode:     s.Mode,
	}

	if s.Bands != nil {
		out.Bands = make([]string, n)
	}

	if s.FrequenciesHz != nil {
		out.FrequenciesHz = make([]float64, n)
	}

	for i, j := range idx {
		out.Time[i] = s.Time[j]
		out.Y[i] = s.Y[j]
		out.YErr[i] = s.YErr[j]

		if out.Bands != nil {
			out.Bands[i] = s.Bands[j]
		}

		if out.FrequenciesHz != nil {
			out.FrequenciesHz[i] = s.FrequenciesHz[j]
		}
	}

	return out
}
