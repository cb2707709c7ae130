package kalman

import (
	"gonum.org/v1/gonum/mat"

	"github.com/hanzcheng/EKI-implementation/ensemble"
	"github.com/hanzcheng/EKI-implementation/estimate"
)

// Status is the terminal state of an inversion run
type Status int

const (
	// Converged means the relative residual dropped below the noise level
	Converged Status = iota
	// MaxIterReached means the iteration budget ran out before convergence
	MaxIterReached
)

// String implements the Stringer interface.
func (s Status) String() string {
	switch s {
	case Converged:
		return "Converged"
	case MaxIterReached:
		return "MaxIterReached"
	}

	return "Unknown"
}

// Result is the outcome of an inversion run
type Result struct {
	// Ensemble is the final parameter ensemble
	Ensemble *ensemble.Ensemble
	// Mean is the mean of the final ensemble
	Mean *mat.VecDense
	// Status is the terminal state of the run
	Status Status
	// Residual is the relative residual at termination
	Residual float64
	// Iterations is the number of ensemble updates performed
	Iterations int
}

// Estimate returns the final parameter estimate: the ensemble mean together
// with the empirical covariance of the final ensemble members.
func (r *Result) Estimate() (*estimate.Base, error) {
	return estimate.NewFromEnsemble(r.Ensemble.Members())
}

// Inverter is an iterative ensemble based inverse problem solver
type Inverter interface {
	// Run drives the inversion starting from the given ensemble until it
	// either converges or exhausts its iteration budget
	Run(e *ensemble.Ensemble) (*Result, error)
	// Gain returns the Kalman gain of the most recent ensemble update
	Gain() mat.Matrix
}
