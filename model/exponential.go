package model

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Exponential is a two parameter exponential curve model:
//
//	f(x) = p0 * exp(p1 * x)
//
// sampled at a fixed set of points. The parameter vector is (p0, p1) and the
// predicted observations are the curve values at the sample points.
type Exponential struct {
	// xs are the sample points
	xs []float64
}

// NewExponential creates new Exponential model sampled at the points xs and returns it.
// It returns error if no sample points are given.
func NewExponential(xs []float64) (*Exponential, error) {
	if len(xs) == 0 {
		return nil, fmt.Errorf("invalid sample points: %v", xs)
	}

	points := make([]float64, len(xs))
	copy(points, xs)

	return &Exponential{xs: points}, nil
}

// Evaluate returns the curve values at the sample points for the parameter vector p.
// It returns error if p does not have exactly 2 components.
func (m *Exponential) Evaluate(p mat.Vector) (mat.Vector, error) {
	if p.Len() != 2 {
		return nil, fmt.Errorf("invalid parameter vector length: %d", p.Len())
	}

	p0, p1 := p.AtVec(0), p.AtVec(1)

	out := make([]float64, len(m.xs))
	for i, x := range m.xs {
		out[i] = p0 * math.Exp(p1*x)
	}

	return mat.NewVecDense(len(out), out), nil
}

// Dims returns the parameter and observation dimensions of the model.
func (m *Exponential) Dims() (int, int) {
	return 2, len(m.xs)
}
