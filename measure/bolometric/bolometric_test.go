package bolometric

import (
	"errors"
	"io"
	"log/slog"
	"math"
	"testing"

	"github.com/cwbudde/algo-photometry/measure/blackbody"
	"github.com/cwbudde/algo-photometry/phot/bands"
	"github.com/cwbudde/algo-photometry/phot/core"
	"github.com/cwbudde/algo-photometry/phot/sed"
	"github.com/cwbudde/algo-photometry/phot/series"
)

const (
	testTemp     = 1e4
	testRadius   = 1e15
	testDistance = 1e27
	testRedshift = 0.1
)

func quiet() Option {
	return WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// synthSeries builds three epochs of noise-free flux-density photometry
// from the test blackbody.
func synthSeries(t *testing.T) *series.Series {
	t.Helper()

	s := &series.Series{
		Redshift: testRedshift,
		Mode:     series.ModeFluxDensity,
	}

	for epoch := 0; epoch < 3; epoch++ {
		for i, name := range []string{"sdssg", "sdssr", "sdssi", "sdssz"} {
			b, err := bands.Lookup(name)
			if err != nil {
				t.Fatal(err)
			}

			nu := b.EffectiveFrequency()
			flux := sed.FluxDensityMJy(testTemp, testRadius, testDistance,
				core.KCorrectedFrequency(nu, testRedshift))

			s.Time = append(s.Time, float64(epoch)+0.1+0.1*float64(i))
			s.Y = append(s.Y, flux)
			s.YErr = append(s.YErr, 0.01*flux)
			s.FrequenciesHz = append(s.FrequenciesHz, nu)
		}
	}

	return s
}

func TestEstimateStefanBoltzmann(t *testing.T) {
	points, err := Estimate(synthSeries(t), quiet())
	if err != nil {
		t.Fatalf("estimate failed: %v", err)
	}

	if len(points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(points))
	}

	want := sed.Luminosity(testTemp, testRadius) / 1e50

	for i, p := range points {
		if math.Abs(p.LumBolBB-want)/want > 0.05 {
			t.Fatalf("point %d blackbody luminosity off: got %g want %g", i, p.LumBolBB, want)
		}

		// Without corrections both luminosity variants agree.
		if p.LumBol != p.LumBolBB || p.LumBolErr != p.LumBolBBErr {
			t.Fatalf("point %d variants should match without corrections: %+v", i, p)
		}

		if p.LumBolErr/p.LumBol >= 1 {
			t.Fatalf("point %d survived the filter with relative error >= 1", i)
		}
	}
}

func TestEstimateRestFrameTime(t *testing.T) {
	points, err := Estimate(synthSeries(t), quiet())
	if err != nil {
		t.Fatalf("estimate failed: %v", err)
	}

	for i, p := range points {
		want := p.EpochTime / (1 + testRedshift)
		if !core.NearlyEqual(p.RestFrameTime, want, 1e-12) {
			t.Fatalf("point %d rest frame time mismatch: got %g want %g", i, p.RestFrameTime, want)
		}

		if i > 0 && points[i].RestFrameTime <= points[i-1].RestFrameTime {
			t.Fatalf("rest frame times out of order at %d", i)
		}
	}
}

func TestEstimateErrorPropagation(t *testing.T) {
	points, err := Estimate(synthSeries(t), quiet())
	if err != nil {
		t.Fatalf("estimate failed: %v", err)
	}

	for i, p := range points {
		want := math.Sqrt(
			math.Pow(2*p.RadiusErr/p.RadiusCm, 2) +
				math.Pow(4*p.TemperatureErr/p.TemperatureK, 2))

		if !core.NearlyEqual(p.LumBolErr/p.LumBol, want, 1e-10) {
			t.Fatalf("point %d relative error mismatch: got %g want %g",
				i, p.LumBolErr/p.LumBol, want)
		}
	}
}

func TestEstimateExtinctionMonotonicity(t *testing.T) {
	s := synthSeries(t)

	base, err := Estimate(s, quiet())
	if err != nil {
		t.Fatalf("base estimate failed: %v", err)
	}

	const aExt = 1.5
	factor := math.Pow(10, 0.4*aExt)

	dimmed, err := Estimate(s, quiet(), WithExtinction(aExt))
	if err != nil {
		t.Fatalf("extinction estimate failed: %v", err)
	}

	if len(base) != len(dimmed) {
		t.Fatalf("row count changed with extinction: %d vs %d", len(base), len(dimmed))
	}

	for i := range base {
		if !core.NearlyEqual(dimmed[i].LumBol, base[i].LumBol*factor, 1e-9) {
			t.Fatalf("corrected luminosity not scaled by extinction at %d", i)
		}

		if !core.NearlyEqual(dimmed[i].LumBolBB, base[i].LumBolBB*factor, 1e-9) {
			t.Fatalf("blackbody luminosity not scaled by extinction at %d", i)
		}

		if !core.NearlyEqual(dimmed[i].LumBolErr, base[i].LumBolErr*factor, 1e-9) {
			t.Fatalf("error not scaled by extinction at %d", i)
		}

		// The relative error is extinction-invariant.
		relBase := base[i].LumBolErr / base[i].LumBol
		relDim := dimmed[i].LumBolErr / dimmed[i].LumBol

		if !core.NearlyEqual(relBase, relDim, 1e-10) {
			t.Fatalf("relative error changed with extinction at %d", i)
		}
	}
}

func TestEstimateLambdaCutBoost(t *testing.T) {
	s := synthSeries(t)

	base, err := Estimate(s, quiet())
	if err != nil {
		t.Fatalf("base estimate failed: %v", err)
	}

	boosted, err := Estimate(s, quiet(), WithLambdaCut(3000))
	if err != nil {
		t.Fatalf("boosted estimate failed: %v", err)
	}

	if len(base) != len(boosted) {
		t.Fatalf("row count changed with boost: %d vs %d", len(base), len(boosted))
	}

	for i := range base {
		// The boost only raises the corrected luminosity; the bare
		// blackbody value stays put for transparency.
		if boosted[i].LumBol <= boosted[i].LumBolBB {
			t.Fatalf("boosted luminosity should exceed the blackbody value at %d", i)
		}

		if !core.NearlyEqual(boosted[i].LumBolBB, base[i].LumBolBB, 1e-9) {
			t.Fatalf("bare luminosity changed with boost at %d", i)
		}
	}
}

func TestEstimateEmptyUpstream(t *testing.T) {
	// Too few points per bin: the blackbody stage reports the empty
	// result and the bolometric stage passes it through.
	s := &series.Series{
		Time:          []float64{0.1, 0.2},
		Y:             []float64{1, 1},
		YErr:          []float64{0.1, 0.1},
		FrequenciesHz: []float64{5e14, 6e14},
		Redshift:      testRedshift,
		Mode:          series.ModeFluxDensity,
	}

	points, err := Estimate(s, quiet())
	if err != nil {
		t.Fatalf("empty upstream must not be an error: %v", err)
	}

	if len(points) != 0 {
		t.Fatalf("expected empty result, got %d points", len(points))
	}
}

func TestEstimateRedshiftErrorPropagates(t *testing.T) {
	s := synthSeries(t)
	s.Redshift = 0

	if _, err := Estimate(s, quiet()); !errors.Is(err, blackbody.ErrRedshift) {
		t.Fatalf("expected ErrRedshift, got %v", err)
	}
}

func TestEstimateForwardsBlackbodyOptions(t *testing.T) {
	s := synthSeries(t)

	points, err := Estimate(s, quiet(),
		WithBlackbody(blackbody.WithInitialGuess(6e3, 3e14)))
	if err != nil {
		t.Fatalf("estimate failed: %v", err)
	}

	if len(points) != 3 {
		t.Fatalf("expected 3 points with forwarded options, got %d", len(points))
	}
}
