package core

import (
	"math"
	"testing"
)

func TestFrequencyAngstromRoundTrip(t *testing.T) {
	cases := []float64{100, 5500, 80000}
	for _, lambda := range cases {
		nu := FrequencyFromAngstrom(lambda)
		back := AngstromFromFrequency(nu)

		if !NearlyEqual(back, lambda, 1e-9) {
			t.Fatalf("round trip mismatch for %g AA: got %g", lambda, back)
		}
	}
}

func TestFrequencyFromAngstromVisible(t *testing.T) {
	// 5500 AA is 5.45e14 Hz.
	nu := FrequencyFromAngstrom(5500)
	want := 2.99792458e10 / (5500 * 1e-8)

	if !NearlyEqual(nu, want, 1e-12) {
		t.Fatalf("frequency mismatch: got %g want %g", nu, want)
	}
}

func TestABMagnitudeZeroPoint(t *testing.T) {
	// m = 0 corresponds to 3631 Jy = 3.631e6 mJy by definition.
	flux := ABMagnitudeToFluxDensityMJy(0)
	if !NearlyEqual(flux, 3.631e6, 1e-12) {
		t.Fatalf("zero point mismatch: got %g", flux)
	}

	if mag := FluxDensityMJyToABMagnitude(3.631e6); !NearlyEqual(mag, 0, 1e-12) {
		t.Fatalf("inverse zero point mismatch: got %g", mag)
	}
}

func TestABMagnitudeFluxRoundTrip(t *testing.T) {
	for _, mag := range []float64{-1, 0, 14.2, 21.7, 25} {
		flux := ABMagnitudeToFluxDensityMJy(mag)
		back := FluxDensityMJyToABMagnitude(flux)

		if !NearlyEqual(back, mag, 1e-10) {
			t.Fatalf("mag round trip mismatch for %g: got %g", mag, back)
		}
	}
}

func TestABMagnitudeErrPropagation(t *testing.T) {
	flux, fluxErr := ABMagnitudeToFluxDensityMJyErr(20, 0.1)

	wantErr := 0.4 * math.Ln10 * flux * 0.1
	if !NearlyEqual(fluxErr, wantErr, 1e-12) {
		t.Fatalf("flux error mismatch: got %g want %g", fluxErr, wantErr)
	}

	// Error scales linearly with the magnitude error.
	_, doubled := ABMagnitudeToFluxDensityMJyErr(20, 0.2)
	if !NearlyEqual(doubled, 2*fluxErr, 1e-12) {
		t.Fatalf("error not linear in magnitude error: got %g want %g", doubled, 2*fluxErr)
	}
}

func TestFluxDensityMJyToABMagnitudeEdgeCases(t *testing.T) {
	if got := FluxDensityMJyToABMagnitude(0); !math.IsInf(got, 1) {
		t.Fatalf("zero flux should map to +Inf, got %g", got)
	}

	if got := FluxDensityMJyToABMagnitude(-1); !math.IsNaN(got) {
		t.Fatalf("negative flux should map to NaN, got %g", got)
	}
}

func TestKCorrectedFrequency(t *testing.T) {
	if got := KCorrectedFrequency(1e15, 0.1); !NearlyEqual(got, 1.1e15, 1e-12) {
		t.Fatalf("k-correction mismatch: got %g", got)
	}
}

func TestRestFrameTime(t *testing.T) {
	if got := RestFrameTime(11, 0.1); !NearlyEqual(got, 10, 1e-12) {
		t.Fatalf("rest frame time mismatch: got %g", got)
	}
}

func TestAllFinite(t *testing.T) {
	if !AllFinite([]float64{0, 1, -2}) {
		t.Fatal("finite slice reported non-finite")
	}

	if AllFinite([]float64{1, math.NaN()}) {
		t.Fatal("NaN not detected")
	}

	if AllFinite([]float64{1, math.Inf(-1)}) {
		t.Fatal("Inf not detected")
	}
}
