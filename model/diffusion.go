package model

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// DiffusionReaction is a steady one dimensional diffusion-reaction model
// discretized with a two point flux finite volume scheme on a uniform grid of
// n cells over [0,1] with homogeneous Dirichlet boundaries:
//
//	-kappa * u'' + rho * u = f,  u(0) = u(1) = 0
//
// The parameter vector is (log(kappa), rho); the diffusion coefficient is
// parametrized by its logarithm so the forward map is defined for any real
// parameter vector. The predicted observations are the cell center values of u.
type DiffusionReaction struct {
	// n is the number of grid cells
	n int
	// src holds the source term at the cell centers
	src []float64
}

// NewDiffusionReaction creates new DiffusionReaction model on a grid of n
// cells with the source term f and returns it. A nil f defaults to the
// constant unit source.
// It returns error if n is smaller than 2.
func NewDiffusionReaction(n int, f func(x float64) float64) (*DiffusionReaction, error) {
	if n < 2 {
		return nil, fmt.Errorf("invalid number of grid cells: %d", n)
	}

	if f == nil {
		f = func(x float64) float64 { return 1.0 }
	}

	h := 1.0 / float64(n)
	src := make([]float64, n)
	for i := range src {
		src[i] = f((float64(i) + 0.5) * h)
	}

	return &DiffusionReaction{n: n, src: src}, nil
}

// Evaluate solves the discretized diffusion-reaction system for the parameter
// vector p and returns the cell center values of the solution.
// It returns error if p does not have exactly 2 components or if the
// tridiagonal system fails to be solved.
func (m *DiffusionReaction) Evaluate(p mat.Vector) (mat.Vector, error) {
	if p.Len() != 2 {
		return nil, fmt.Errorf("invalid parameter vector length: %d", p.Len())
	}

	kappa := math.Exp(p.AtVec(0))
	rho := p.AtVec(1)

	n := m.n
	h := 1.0 / float64(n)

	dl := make([]float64, n-1)
	d := make([]float64, n)
	du := make([]float64, n-1)
	b := make([]float64, n)

	for i := 0; i < n; i++ {
		d[i] = rho * h
		b[i] = m.src[i] * h
	}

	// interior faces: two point flux with transmissibility kappa/h
	t := kappa / h
	for i := 0; i < n-1; i++ {
		d[i] += t
		d[i+1] += t
		dl[i] = -t
		du[i] = -t
	}

	// boundary faces: half-cell distance to the Dirichlet values
	d[0] += 2 * t
	d[n-1] += 2 * t

	tri := mat.NewTridiag(n, dl, d, du)

	var u mat.VecDense
	if err := tri.SolveVecTo(&u, false, mat.NewVecDense(n, b)); err != nil {
		return nil, fmt.Errorf("failed to solve diffusion-reaction system: %v", err)
	}

	return &u, nil
}

// Dims returns the parameter and observation dimensions of the model.
func (m *DiffusionReaction) Dims() (int, int) {
	return 2, m.n
}
