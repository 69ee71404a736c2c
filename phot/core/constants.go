// Package core provides the physical constants and unit conversions shared
// by the photometry packages. All constants are in cgs units; conversion
// helpers carry the unit in their name so mismatches are visible at the
// call site.
package core

import "math"

// Physical constants (cgs).
const (
	// PlanckErgS is the Planck constant h in erg*s.
	PlanckErgS = 6.62607015e-27

	// SpeedOfLightCmPerS is the speed of light c in cm/s.
	SpeedOfLightCmPerS = 2.99792458e10

	// SpeedOfLightAAPerS is the speed of light in angstrom/s.
	SpeedOfLightAAPerS = 2.99792458e18

	// BoltzmannErgPerK is the Boltzmann constant k_B in erg/K.
	BoltzmannErgPerK = 1.380649e-16

	// StefanBoltzmann is the Stefan-Boltzmann constant sigma_SB in
	// erg*s^-1*cm^-2*K^-4.
	StefanBoltzmann = 5.670374419e-5
)

// Unit conversion factors.
const (
	// CmPerAngstrom converts angstrom to cm.
	CmPerAngstrom = 1e-8

	// JanskyCGS is one Jansky in erg*s^-1*cm^-2*Hz^-1.
	JanskyCGS = 1e-23

	// MilliJanskyCGS is one mJy in erg*s^-1*cm^-2*Hz^-1.
	MilliJanskyCGS = 1e-26

	// ABReferenceJy is the AB magnitude system reference flux density in Jy.
	ABReferenceJy = 3631.0
)

// Ln10 is the natural logarithm of 10, used when propagating errors of
// log10-parameterized quantities.
var Ln10 = math.Log(10)
