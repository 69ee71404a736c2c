// Package bands provides the photometric band registry: named filters with
// effective wavelengths, effective widths, and a parametric transmission
// profile used for bandpass integration.
package bands

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/cwbudde/algo-photometry/phot/core"
)

// ErrUnknownBand is returned when a band name is not in the registry.
var ErrUnknownBand = errors.New("bands: unknown band")

// Band describes a photometric filter by its central wavelength and
// effective width, both in angstrom.
type Band struct {
	Name     string
	CenterAA float64
	WidthAA  float64
}

// EffectiveFrequency returns the frequency in Hz corresponding to the
// band's central wavelength.
func (b Band) EffectiveFrequency() float64 {
	return core.FrequencyFromAngstrom(b.CenterAA)
}

// EffectiveWidthHz returns the band's effective width converted to a
// frequency interval:
//
//	dnu = c * dlambda / lambda^2
func (b Band) EffectiveWidthHz() float64 {
	lambdaCm := b.CenterAA * core.CmPerAngstrom
	widthCm := b.WidthAA * core.CmPerAngstrom

	return core.SpeedOfLightCmPerS * widthCm / (lambdaCm * lambdaCm)
}

// ReferenceFlux returns the AB zero-point flux integrated over the band,
// in erg*s^-1*cm^-2. A source with AB magnitude 0 delivers this bandpass
// flux.
func (b Band) ReferenceFlux() float64 {
	return core.ABReferenceJy * core.JanskyCGS * b.EffectiveWidthHz()
}

// taperFraction is the fraction of the band support occupied by each
// cosine taper of the transmission profile.
const taperFraction = 0.15

// Transmission evaluates the band's transmission profile at the given
// wavelength in angstrom. The profile is a top hat over
// [center-width, center+width] with cosine-tapered edges, so it is
// continuous and vanishes outside the support.
func (b Band) Transmission(lambdaAA float64) float64 {
	lo := b.CenterAA - b.WidthAA
	hi := b.CenterAA + b.WidthAA

	if lambdaAA <= lo || lambdaAA >= hi {
		return 0
	}

	taper := taperFraction * (hi - lo)

	switch {
	case lambdaAA < lo+taper:
		return 0.5 * (1 - math.Cos(math.Pi*(lambdaAA-lo)/taper))
	case lambdaAA > hi-taper:
		return 0.5 * (1 - math.Cos(math.Pi*(hi-lambdaAA)/taper))
	default:
		return 1
	}
}

// Registry maps band names to their definitions.
type Registry struct {
	bands map[string]Band
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{bands: make(map[string]Band)}
}

// Register adds a band definition. Registering a name twice or a band
// with non-positive geometry is an error.
func (r *Registry) Register(b Band) error {
	if b.Name == "" {
		return errors.New("bands: empty band name")
	}

	if b.CenterAA <= 0 || b.WidthAA <= 0 {
		return fmt.Errorf("bands: non-positive geometry for %q", b.Name)
	}

	if _, exists := r.bands[b.Name]; exists {
		return fmt.Errorf("bands: duplicate band %q", b.Name)
	}

	r.bands[b.Name] = b

	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(b Band) {
	err := r.Register(b)
	if err != nil {
		panic("bands registry: " + err.Error())
	}
}

// Lookup returns the band with the given name.
func (r *Registry) Lookup(name string) (Band, error) {
	b, ok := r.bands[name]
	if !ok {
		return Band{}, fmt.Errorf("%w: %q", ErrUnknownBand, name)
	}

	return b, nil
}

// Names returns the registered band names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.bands))
	for name := range r.bands {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

var defaultRegistry = buildDefaultRegistry()

// Default returns the registry of built-in bands.
func Default() *Registry {
	return defaultRegistry
}

// Lookup resolves a band name against the default registry.
func Lookup(name string) (Band, error) {
	return defaultRegistry.Lookup(name)
}
