package noise

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Measurement is zero-mean Gaussian observation noise whose magnitude scales
// with the value of each measured component. It carries two related quantities:
//   - Cov returns the assumed measurement noise covariance Gamma, a diagonal
//     matrix with entries ((level/2) * y_k)^2
//   - Sample draws a perturbation vector whose k-th component is distributed
//     Normal(0, (level * y_k)^2)
//
// TODO: Sample scales the noise by level*y_k while Gamma carries (level/2)*y_k;
// review whether the two definitions should be unified.
type Measurement struct {
	// y is the measurement vector the noise is scaled to
	y []float64
	// level is the fractional noise level
	level float64
	// cov is the Gamma covariance matrix
	cov *mat.SymDense
	// dist is a standard normal distribution
	dist distuv.Normal
}

// NewMeasurement creates new Measurement noise scaled to the measurement
// vector y with the fractional noise level, drawing its samples from the
// random source src (the global source if src is nil).
// It returns error if y is nil or empty, or if level is outside (0,1).
func NewMeasurement(y mat.Vector, level float64, src rand.Source) (*Measurement, error) {
	if y == nil || y.Len() == 0 {
		return nil, fmt.Errorf("invalid measurement vector: %v", y)
	}

	if level <= 0 || level >= 1 {
		return nil, fmt.Errorf("invalid noise level: %f", level)
	}

	n := y.Len()
	yv := make([]float64, n)
	cov := mat.NewSymDense(n, nil)
	for k := 0; k < n; k++ {
		yv[k] = y.AtVec(k)
		sd := (level / 2) * yv[k]
		cov.SetSym(k, k, sd*sd)
	}

	return &Measurement{
		y:     yv,
		level: level,
		cov:   cov,
		dist:  distuv.Normal{Mu: 0, Sigma: 1, Src: src},
	}, nil
}

// Sample draws a perturbation vector and returns it.
// Components corresponding to zero measurement values are always zero.
func (m *Measurement) Sample() mat.Vector {
	s := make([]float64, len(m.y))
	for k := range s {
		s[k] = m.level * m.y[k] * m.dist.Rand()
	}

	return mat.NewVecDense(len(s), s)
}

// Cov returns the assumed measurement noise covariance matrix Gamma.
func (m *Measurement) Cov() mat.Symmetric {
	cov := mat.NewSymDense(m.cov.SymmetricDim(), nil)
	cov.CopySym(m.cov)

	return cov
}

// Mean returns the noise mean: a zero vector.
func (m *Measurement) Mean() []float64 {
	return make([]float64, len(m.y))
}

// String implements the Stringer interface.
func (m *Measurement) String() string {
	return fmt.Sprintf("Measurement{\nLevel=%v\nCov=%v\n}", m.level, mat.Formatted(m.cov, mat.Prefix("    "), mat.Squeeze()))
}
