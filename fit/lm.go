package fit

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/galnoise/core"
)

// Termination names the criterion that stopped the solver.
type Termination string

const (
	TerminationExact    Termination = "exact"
	TerminationCost     Termination = "ftol"
	TerminationStep     Termination = "xtol"
	TerminationGradient Termination = "gtol"
)

const (
	exactRMS       = 1e-12
	initialDamping = 1e-3
	minDamping     = 1e-10
	maxDamping     = 1e16
	scaleFloor     = 1e-12
	machEps        = 0x1p-52
)

type problem struct {
	model Model
	t     []float64
	y     []float64
}

type solution struct {
	v          [numParams]float64
	ssr        float64
	iterations int
	reason     Termination
}

// residuals writes y − f into r and returns the sum of squares.
func (pr *problem) residuals(v [numParams]float64, r []float64) float64 {
	for i, t := range pr.t {
		r[i] = pr.y[i] - pr.model.eval(v, t)
	}
	return floats.Dot(r, r)
}

func (pr *problem) jacobian(v [numParams]float64, jac *mat.Dense) {
	raw := jac.RawMatrix()
	for i, t := range pr.t {
		pr.model.gradient(v, t, raw.Data[i*raw.Stride:i*raw.Stride+numParams])
	}
}

// solve runs Levenberg–Marquardt from v0. Each outer iteration linearises the
// model once; the inner loop raises the damping until a step lowers the cost.
func (pr *problem) solve(v0 [numParams]float64, cfg Config) (solution, error) {
	n := len(pr.t)
	v := canonical(v0)
	r := make([]float64, n)
	trial := make([]float64, n)

	cost := pr.residuals(v, r)
	if !core.IsFinite(cost) {
		return solution{}, fmt.Errorf("fit: initial cost is not finite: %w", core.ErrFitConvergence)
	}

	jac := mat.NewDense(n, numParams, nil)
	exact := float64(n) * exactRMS * exactRMS
	lambda := initialDamping

	for iter := 1; iter <= cfg.MaxIterations; iter++ {
		if cost <= exact {
			return solution{v: v, ssr: cost, iterations: iter - 1, reason: TerminationExact}, nil
		}

		pr.jacobian(v, jac)

		var jtj mat.SymDense
		jtj.SymOuterK(1, jac.T())

		var g mat.VecDense
		g.MulVec(jac.T(), mat.NewVecDense(n, r))

		if gradientSmall(jac, &g, cost, cfg.GTol) {
			return solution{v: v, ssr: cost, iterations: iter - 1, reason: TerminationGradient}, nil
		}

		scale := marquardtScale(&jtj)
		for {
			delta, ok := dampedStep(&jtj, &g, scale, lambda)
			if !ok {
				lambda *= 10
				if lambda > maxDamping {
					return solution{}, fmt.Errorf("fit: damping overflow after %d iterations: %w", iter, core.ErrFitConvergence)
				}
				continue
			}

			var cand [numParams]float64
			for i := range cand {
				cand[i] = v[i] + delta[i]
			}
			smallStep := floats.Norm(delta, 2) <= cfg.XTol*(floats.Norm(v[:], 2)+cfg.XTol)

			candCost := math.Inf(1)
			if finite(cand[:]) {
				cand = canonical(cand)
				candCost = pr.residuals(cand, trial)
			}

			if candCost < cost {
				reduction := (cost - candCost) / cost
				v, cost = cand, candCost
				r, trial = trial, r
				lambda = math.Max(lambda/10, minDamping)

				switch {
				case cost <= exact:
					return solution{v: v, ssr: cost, iterations: iter, reason: TerminationExact}, nil
				case reduction <= cfg.FTol:
					return solution{v: v, ssr: cost, iterations: iter, reason: TerminationCost}, nil
				case smallStep:
					return solution{v: v, ssr: cost, iterations: iter, reason: TerminationStep}, nil
				}
				break
			}

			if smallStep {
				return solution{v: v, ssr: cost, iterations: iter, reason: TerminationStep}, nil
			}
			lambda *= 10
			if lambda > maxDamping {
				return solution{}, fmt.Errorf("fit: damping overflow after %d iterations: %w", iter, core.ErrFitConvergence)
			}
		}
	}

	return solution{}, fmt.Errorf("fit: no convergence within %d iterations: %w", cfg.MaxIterations, core.ErrFitConvergence)
}

// marquardtScale returns the diagonal of JᵀJ with a floor relative to its
// largest entry, so that every direction is damped.
func marquardtScale(jtj *mat.SymDense) []float64 {
	d := make([]float64, numParams)
	for i := range d {
		d[i] = jtj.At(i, i)
	}
	floor := scaleFloor * floats.Max(d)
	if floor == 0 {
		floor = 1
	}
	for i, x := range d {
		d[i] = math.Max(x, floor)
	}
	return d
}

// dampedStep solves (JᵀJ + λ·diag(d))·δ = Jᵀr.
func dampedStep(jtj *mat.SymDense, g *mat.VecDense, d []float64, lambda float64) ([]float64, bool) {
	a := mat.NewSymDense(numParams, nil)
	a.CopySym(jtj)
	for i, x := range d {
		a.SetSym(i, i, a.At(i, i)+lambda*x)
	}

	var chol mat.Cholesky
	if !chol.Factorize(a) {
		return nil, false
	}

	var delta mat.VecDense
	if err := chol.SolveVecTo(&delta, g); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) {
			return nil, false
		}
	}

	out := make([]float64, numParams)
	for i := range out {
		out[i] = delta.AtVec(i)
	}
	if !finite(out) {
		return nil, false
	}
	return out, true
}

// gradientSmall reports whether the residual is orthogonal to every Jacobian
// column within gtol.
func gradientSmall(jac *mat.Dense, g *mat.VecDense, cost, gtol float64) bool {
	rnorm := math.Sqrt(cost)
	if rnorm == 0 {
		return true
	}
	worst := 0.0
	for j := 0; j < numParams; j++ {
		cnorm := mat.Norm(jac.ColView(j), 2)
		if cnorm == 0 {
			continue
		}
		worst = math.Max(worst, math.Abs(g.AtVec(j))/(cnorm*rnorm))
	}
	return worst <= gtol
}

// standardErrors returns sqrt(diag(s²·(JᵀJ)⁺)) with s² = ssr/dof. Singular
// values below the rank cutoff are dropped from the pseudo-inverse.
func standardErrors(jac *mat.Dense, ssr float64, dof int) ([numParams]float64, error) {
	var out [numParams]float64
	if dof <= 0 {
		for i := range out {
			out[i] = math.Inf(1)
		}
		return out, nil
	}

	var svd mat.SVD
	if !svd.Factorize(jac, mat.SVDThin) {
		return out, fmt.Errorf("fit: jacobian SVD failed: %w", core.ErrFitConvergence)
	}
	s := svd.Values(nil)
	var vm mat.Dense
	svd.VTo(&vm)

	rows, _ := jac.Dims()
	cutoff := machEps * float64(max(rows, numParams)) * s[0]
	variance := ssr / float64(dof)
	for i := range out {
		var acc float64
		for k, sk := range s {
			if sk <= cutoff {
				continue
			}
			x := vm.At(i, k) / sk
			acc += x * x
		}
		out[i] = math.Sqrt(variance * acc)
	}
	return out, nil
}

func finite(v []float64) bool {
	for _, x := range v {
		if !core.IsFinite(x) {
			return false
		}
	}
	return true
}
