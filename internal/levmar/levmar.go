// Package levmar implements a Levenberg-Marquardt weighted least-squares
// solver for small dense problems, shared by the estimation packages.
//
// It minimizes
//
//	sum_i ((model(x_i; p) - y_i) / sigma_i)^2
//
// with a forward-difference Jacobian and damped normal equations. The
// returned covariance is (J^T J)^-1 at the solution, i.e. absolute-sigma
// semantics: the measurement errors are taken at face value and the
// covariance is not rescaled by the residual variance.
package levmar

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-photometry/phot/core"
)

// Errors returned by Solve.
var (
	ErrDimension      = errors.New("levmar: dimension mismatch")
	ErrMaxFuncEvals   = errors.New("levmar: function evaluation limit reached")
	ErrSingularMatrix = errors.New("levmar: singular normal matrix")
	ErrNotFinite      = errors.New("levmar: non-finite model or residual values")
)

// ModelFunc evaluates the model at every x for the given parameters,
// writing one value per x into out.
type ModelFunc func(params, x, out []float64)

// Problem describes one weighted least-squares problem.
type Problem struct {
	X     []float64
	Y     []float64
	Sigma []float64
	Model ModelFunc
}

// Settings control the solver. Zero values select the defaults.
type Settings struct {
	// Initial is the starting parameter vector. Required.
	Initial []float64

	// MaxFuncEvals caps the number of model evaluations. Default 1000.
	MaxFuncEvals int

	// GradTol stops when the infinity norm of the gradient drops below
	// it. Default 1e-10.
	GradTol float64

	// StepTol stops when the proposed step is negligible relative to
	// the parameter vector. Default 1e-12.
	StepTol float64
}

// Result holds the solution of a least-squares problem.
type Result struct {
	// Params is the best-fit parameter vector.
	Params []float64

	// Covariance is (J^T J)^-1 evaluated at Params.
	Covariance *mat.SymDense

	// Cost is the final weighted sum of squared residuals.
	Cost float64

	// FuncEvals is the number of model evaluations consumed.
	FuncEvals int
}

const (
	defaultMaxFuncEvals = 1000
	defaultGradTol      = 1e-10
	defaultStepTol      = 1e-12

	initialDamping = 1e-3
	dampingUp      = 10.0
	dampingDown    = 10.0
	dampingMax     = 1e12
	dampingMin     = 1e-12
)

// Solve runs Levenberg-Marquardt on the given problem.
func Solve(p Problem, s Settings) (Result, error) {
	m := len(p.X)
	n := len(s.Initial)

	if n == 0 || p.Model == nil {
		return Result{}, ErrDimension
	}

	if len(p.Y) != m || len(p.Sigma) != m || m < n {
		return Result{}, ErrDimension
	}

	if s.MaxFuncEvals <= 0 {
		s.MaxFuncEvals = defaultMaxFuncEvals
	}

	if s.GradTol <= 0 {
		s.GradTol = defaultGradTol
	}

	if s.StepTol <= 0 {
		s.StepTol = defaultStepTol
	}

	st := &state{
		problem:  p,
		settings: s,
		params:   append([]float64(nil), s.Initial...),
		model:    make([]float64, m),
		resid:    make([]float64, m),
		trial:    make([]float64, m),
	}

	return st.run()
}

type state struct {
	problem  Problem
	settings Settings

	params []float64
	model  []float64
	resid  []float64
	trial  []float64

	evals int
}

// residuals evaluates the weighted residuals for params into dst and
// returns the cost.
func (st *state) residuals(params, dst []float64) (float64, error) {
	if st.evals >= st.settings.MaxFuncEvals {
		return 0, ErrMaxFuncEvals
	}

	st.evals++
	st.problem.Model(params, st.problem.X, st.model)

	cost := 0.0
	for i, f := range st.model {
		dst[i] = (f - st.problem.Y[i]) / st.problem.Sigma[i]
		cost += dst[i] * dst[i]
	}

	if math.IsNaN(cost) || math.IsInf(cost, 0) {
		return 0, ErrNotFinite
	}

	return cost, nil
}

// jacobian fills jac with forward-difference derivatives of the weighted
// residuals about params, using base as the residual vector at params.
func (st *state) jacobian(params, base []float64, jac *mat.Dense) error {
	m := len(st.problem.X)
	n := len(params)

	perturbed := make([]float64, m)
	probe := append([]float64(nil), params...)

	sqrtEps := math.Sqrt(2.220446049250313e-16)

	for j := 0; j < n; j++ {
		step := sqrtEps * math.Max(math.Abs(params[j]), 1)

		probe[j] = params[j] + step

		if _, err := st.residuals(probe, perturbed); err != nil {
			return err
		}

		probe[j] = params[j]

		for i := 0; i < m; i++ {
			jac.Set(i, j, (perturbed[i]-base[i])/step)
		}
	}

	if !core.AllFinite(jac.RawMatrix().Data) {
		return ErrNotFinite
	}

	return nil
}

func (st *state) run() (Result, error) {
	m := len(st.problem.X)
	n := len(st.params)

	cost, err := st.residuals(st.params, st.resid)
	if err != nil {
		return Result{}, err
	}

	jac := mat.NewDense(m, n, nil)
	grad := mat.NewVecDense(n, nil)
	step := mat.NewVecDense(n, nil)
	normal := mat.NewSymDense(n, nil)
	damped := mat.NewSymDense(n, nil)

	damping := initialDamping

	for {
		if err := st.jacobian(st.params, st.resid, jac); err != nil {
			return Result{}, err
		}

		assembleNormal(jac, normal)
		grad.MulVec(jac.T(), mat.NewVecDense(m, st.resid))

		if mat.Norm(grad, math.Inf(1)) < st.settings.GradTol {
			return st.finish(cost, normal)
		}

		accepted := false

		for !accepted {
			// Marquardt scaling: damp each diagonal element in
			// proportion to its own curvature.
			damped.CopySym(normal)
			for i := 0; i < n; i++ {
				d := normal.At(i, i)
				if d == 0 {
					d = 1
				}

				damped.SetSym(i, i, d*(1+damping))
			}

			var chol mat.Cholesky
			if !chol.Factorize(damped) {
				damping *= dampingUp
				if damping > dampingMax {
					return Result{}, ErrSingularMatrix
				}

				continue
			}

			if err := chol.SolveVecTo(step, grad); err != nil {
				return Result{}, ErrSingularMatrix
			}

			trialParams := make([]float64, n)
			for i := range trialParams {
				trialParams[i] = st.params[i] - step.AtVec(i)
			}

			stepNorm := mat.Norm(step, 2)
			paramNorm := floats.Norm(st.params, 2)

			if stepNorm <= st.settings.StepTol*(paramNorm+st.settings.StepTol) {
				return st.finish(cost, normal)
			}

			trialCost, err := st.residuals(trialParams, st.trial)

			switch {
			case errors.Is(err, ErrMaxFuncEvals):
				return Result{}, err
			case errors.Is(err, ErrNotFinite):
				// Treat a non-finite trial like a failed step and
				// back off; the fit may still recover.
				trialCost = math.Inf(1)
			case err != nil:
				return Result{}, err
			}

			if trialCost < cost {
				copy(st.params, trialParams)
				copy(st.resid, st.trial)
				cost = trialCost

				damping = math.Max(damping/dampingDown, dampingMin)
				accepted = true

				continue
			}

			damping *= dampingUp
			if damping > dampingMax {
				// No downhill step exists at any damping; accept the
				// current point as converged.
				return st.finish(cost, normal)
			}
		}
	}
}

// finish inverts the undamped normal matrix for the covariance and
// assembles the result.
func (st *state) finish(cost float64, normal *mat.SymDense) (Result, error) {
	n := len(st.params)

	var chol mat.Cholesky
	if !chol.Factorize(normal) {
		return Result{}, ErrSingularMatrix
	}

	cov := mat.NewSymDense(n, nil)
	if err := chol.InverseTo(cov); err != nil {
		return Result{}, ErrSingularMatrix
	}

	if !core.AllFinite(cov.RawSymmetric().Data) {
		return Result{}, ErrNotFinite
	}

	return Result{
		Params:     append([]float64(nil), st.params...),
		Covariance: cov,
		Cost:       cost,
		FuncEvals:  st.evals,
	}, nil
}

// assembleNormal computes J^T J into the symmetric destination.
func assembleNormal(jac *mat.Dense, dst *mat.SymDense) {
	var full mat.Dense
	full.Mul(jac.T(), jac)

	n := dst.SymmetricDim()
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			dst.SetSym(i, j, full.At(i, j))
		}
	}
}
