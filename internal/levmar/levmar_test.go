package levmar

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-photometry/phot/core"
)

func linearModel(params, x, out []float64) {
	for i, v := range x {
		out[i] = params[0] + params[1]*v
	}
}

func expModel(params, x, out []float64) {
	for i, v := range x {
		out[i] = params[0] * math.Exp(params[1]*v)
	}
}

func makeProblem(model ModelFunc, truth []float64, sigma float64, n int) Problem {
	x := make([]float64, n)
	y := make([]float64, n)
	s := make([]float64, n)

	for i := range x {
		x[i] = 3 * float64(i) / float64(n-1)
		s[i] = sigma
	}

	model(truth, x, y)

	return Problem{X: x, Y: y, Sigma: s, Model: model}
}

func TestSolveLinearExact(t *testing.T) {
	truth := []float64{1.5, -2.0}
	p := makeProblem(linearModel, truth, 0.1, 20)

	res, err := Solve(p, Settings{Initial: []float64{0, 0}})
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}

	for i, want := range truth {
		if !core.NearlyEqual(res.Params[i], want, 1e-8) {
			t.Fatalf("param %d mismatch: got %g want %g", i, res.Params[i], want)
		}
	}

	if res.Cost > 1e-12 {
		t.Fatalf("exact data should fit with zero cost: %g", res.Cost)
	}
}

func TestSolveExponentialExact(t *testing.T) {
	truth := []float64{2.0, -1.0}
	p := makeProblem(expModel, truth, 0.05, 25)

	res, err := Solve(p, Settings{Initial: []float64{1, -0.5}})
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}

	for i, want := range truth {
		if !core.NearlyEqual(res.Params[i], want, 1e-6) {
			t.Fatalf("param %d mismatch: got %g want %g", i, res.Params[i], want)
		}
	}
}

func TestSolveCovarianceShape(t *testing.T) {
	p := makeProblem(linearModel, []float64{1, 1}, 0.1, 20)

	res, err := Solve(p, Settings{Initial: []float64{0, 0}})
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}

	if res.Covariance.SymmetricDim() != 2 {
		t.Fatalf("covariance dimension mismatch: %d", res.Covariance.SymmetricDim())
	}

	for i := 0; i < 2; i++ {
		if res.Covariance.At(i, i) <= 0 {
			t.Fatalf("non-positive variance on diagonal %d: %g", i, res.Covariance.At(i, i))
		}
	}
}

func TestSolveAbsoluteSigmaSemantics(t *testing.T) {
	// Doubling every measurement error must quadruple the covariance;
	// the residual variance never rescales it.
	tight := makeProblem(linearModel, []float64{1, 1}, 0.1, 20)
	loose := makeProblem(linearModel, []float64{1, 1}, 0.2, 20)

	resTight, err := Solve(tight, Settings{Initial: []float64{0, 0}})
	if err != nil {
		t.Fatalf("tight solve failed: %v", err)
	}

	resLoose, err := Solve(loose, Settings{Initial: []float64{0, 0}})
	if err != nil {
		t.Fatalf("loose solve failed: %v", err)
	}

	for i := 0; i < 2; i++ {
		ratio := resLoose.Covariance.At(i, i) / resTight.Covariance.At(i, i)
		if !core.NearlyEqual(ratio, 4, 1e-6) {
			t.Fatalf("covariance should scale with sigma^2: ratio %g", ratio)
		}
	}
}

func TestSolveIdempotent(t *testing.T) {
	p := makeProblem(expModel, []float64{2, -1}, 0.05, 25)
	s := Settings{Initial: []float64{1, -0.5}}

	first, err := Solve(p, s)
	if err != nil {
		t.Fatalf("first solve failed: %v", err)
	}

	second, err := Solve(p, s)
	if err != nil {
		t.Fatalf("second solve failed: %v", err)
	}

	for i := range first.Params {
		if first.Params[i] != second.Params[i] {
			t.Fatalf("solver not deterministic: %v vs %v", first.Params, second.Params)
		}
	}

	if first.FuncEvals != second.FuncEvals {
		t.Fatalf("evaluation counts differ: %d vs %d", first.FuncEvals, second.FuncEvals)
	}
}

func TestSolveDimensionErrors(t *testing.T) {
	good := makeProblem(linearModel, []float64{1, 1}, 0.1, 10)

	cases := []struct {
		name string
		p    Problem
		s    Settings
	}{
		{"no initial", good, Settings{}},
		{"nil model", Problem{X: good.X, Y: good.Y, Sigma: good.Sigma}, Settings{Initial: []float64{0, 0}}},
		{
			"length mismatch",
			Problem{X: good.X, Y: good.Y[:5], Sigma: good.Sigma, Model: linearModel},
			Settings{Initial: []float64{0, 0}},
		},
		{
			"underdetermined",
			Problem{X: good.X[:1], Y: good.Y[:1], Sigma: good.Sigma[:1], Model: linearModel},
			Settings{Initial: []float64{0, 0}},
		},
	}

	for _, tc := range cases {
		if _, err := Solve(tc.p, tc.s); !errors.Is(err, ErrDimension) {
			t.Fatalf("%s: expected ErrDimension, got %v", tc.name, err)
		}
	}
}

func TestSolveMaxFuncEvals(t *testing.T) {
	p := makeProblem(expModel, []float64{2, -1}, 0.05, 25)

	_, err := Solve(p, Settings{Initial: []float64{20, 3}, MaxFuncEvals: 4})
	if !errors.Is(err, ErrMaxFuncEvals) {
		t.Fatalf("expected ErrMaxFuncEvals, got %v", err)
	}
}

func TestSolveSingularParameter(t *testing.T) {
	// The second parameter never influences the model, so the normal
	// matrix is singular at the solution.
	constModel := func(params, x, out []float64) {
		for i := range x {
			out[i] = params[0]
		}
	}

	p := makeProblem(constModel, []float64{3, 0}, 0.1, 10)

	_, err := Solve(p, Settings{Initial: []float64{0, 0}})
	if !errors.Is(err, ErrSingularMatrix) {
		t.Fatalf("expected ErrSingularMatrix, got %v", err)
	}
}

func TestSolveNonFiniteModel(t *testing.T) {
	nanModel := func(params, x, out []float64) {
		for i := range x {
			out[i] = math.NaN()
		}
	}

	p := makeProblem(linearModel, []float64{1, 1}, 0.1, 10)
	p.Model = nanModel

	_, err := Solve(p, Settings{Initial: []float64{0, 0}})
	if !errors.Is(err, ErrNotFinite) {
		t.Fatalf("expected ErrNotFinite, got %v", err)
	}
}
