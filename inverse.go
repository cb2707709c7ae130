package inverse

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrInvalidEnsembleSize is returned when an ensemble with fewer than 2 members is requested
	ErrInvalidEnsembleSize = errors.New("invalid ensemble size")
	// ErrDimensionMismatch is returned when vector dimensions are inconsistent with the problem instance
	ErrDimensionMismatch = errors.New("dimension mismatch")
	// ErrSingularCovariance is returned when the regularized prediction covariance can not be inverted
	ErrSingularCovariance = errors.New("singular covariance")
)

// ForwardMap maps a parameter vector to predicted observations.
// Evaluate must be pure and deterministic: the same parameter vector
// always yields the same prediction vector.
type ForwardMap interface {
	// Evaluate returns predicted observations for the given parameter vector
	Evaluate(p mat.Vector) (mat.Vector, error)
	// Dims returns parameter and observation dimensions of the map
	Dims() (in int, out int)
}

// Noise is observation noise
type Noise interface {
	// Mean returns noise mean
	Mean() []float64
	// Cov returns covariance matrix of the noise
	Cov() mat.Symmetric
	// Sample returns a sample of the noise
	Sample() mat.Vector
}

// Estimate is a parameter estimate
type Estimate interface {
	// Val returns estimate value
	Val() mat.Vector
	// Cov returns estimate covariance
	Cov() mat.Symmetric
}
