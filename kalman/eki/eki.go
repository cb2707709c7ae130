package eki

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"

	inverse "github.com/hanzcheng/EKI-implementation"
	"github.com/hanzcheng/EKI-implementation/ensemble"
	"github.com/hanzcheng/EKI-implementation/kalman"
	"github.com/hanzcheng/EKI-implementation/matrix"
	"github.com/hanzcheng/EKI-implementation/noise"
)

// Config is EKI configuration
type Config struct {
	// MaxIter is the ensemble update budget; must not be negative
	MaxIter int
	// NoiseLevel is the fractional measurement noise level in (0,1)
	NoiseLevel float64
}

// EKI is an Ensemble Kalman Inversion solver. It recovers the parameters of a
// forward map from noisy observations by iteratively updating an ensemble of
// parameter candidates with a stochastic Kalman correction.
// For more information about EKI see:
// https://en.wikipedia.org/wiki/Ensemble_Kalman_filter
type EKI struct {
	// m is the forward map the parameters of which are recovered
	m inverse.ForwardMap
	// y is the measurement vector
	y *mat.VecDense
	// yNorm is the Euclidean norm of y
	yNorm float64
	// r is the measurement noise: it provides both the Gamma covariance
	// regularizing the Kalman solve and the per-member perturbations
	r inverse.Noise
	// level is the fractional noise level used by the stopping rule
	level float64
	// maxIter is the ensemble update budget
	maxIter int
	// k is the Kalman gain of the most recent update
	k *mat.Dense
}

// New creates new EKI for the forward map m, the measurement vector y and the
// configuration c, drawing its random perturbations from src (the global
// source if src is nil).
// It returns error if either of the following conditions is met:
//   - the forward map is nil or reports non-positive dimensions
//   - the measurement length differs from the forward map output dimension
//   - the iteration budget is negative or the noise level lies outside (0,1)
func New(m inverse.ForwardMap, y mat.Vector, c *Config, src rand.Source) (*EKI, error) {
	if m == nil {
		return nil, fmt.Errorf("invalid forward map: %v", m)
	}

	in, out := m.Dims()
	if in <= 0 || out <= 0 {
		return nil, fmt.Errorf("invalid forward map dimensions: [%d x %d]", in, out)
	}

	if y == nil || y.Len() != out {
		return nil, fmt.Errorf("%w: measurement length must be %d", inverse.ErrDimensionMismatch, out)
	}

	if c == nil {
		return nil, fmt.Errorf("invalid config: %v", c)
	}

	if c.MaxIter < 0 {
		return nil, fmt.Errorf("invalid iteration budget: %d", c.MaxIter)
	}

	r, err := noise.NewMeasurement(y, c.NoiseLevel, src)
	if err != nil {
		return nil, err
	}

	yv := mat.VecDenseCopyOf(y)

	return &EKI{
		m:       m,
		y:       yv,
		yNorm:   mat.Norm(yv, 2),
		r:       r,
		level:   c.NoiseLevel,
		maxIter: c.MaxIter,
		k:       mat.NewDense(in, out, nil),
	}, nil
}

// Evaluate applies the forward map to every member of the ensemble e.
// It returns the predictions stored in the columns of a matrix together with
// their mean. It returns error if the forward map fails to evaluate a member
// or if it returns a prediction of inconsistent length.
func (f *EKI) Evaluate(e *ensemble.Ensemble) (*mat.Dense, *mat.VecDense, error) {
	_, out := f.m.Dims()
	preds := mat.NewDense(out, e.Size(), nil)

	for c := 0; c < e.Size(); c++ {
		g, err := f.m.Evaluate(e.Member(c))
		if err != nil {
			return nil, nil, fmt.Errorf("forward map evaluation failed: %v", err)
		}

		if g.Len() != out {
			return nil, nil, fmt.Errorf("%w: member %d prediction length %d, expected %d", inverse.ErrDimensionMismatch, c, g.Len(), out)
		}

		preds.Slice(0, out, c, c+1).(*mat.Dense).Copy(g)
	}

	mean := mat.NewVecDense(out, matrix.RowMeans(preds))

	return preds, mean, nil
}

// Covariances calculates the empirical covariance of the predictions (CGG) and
// the cross covariance of the ensemble members and the predictions (CpG),
// both about their respective means and normalized by the number of members
// minus one. CGG is symmetric positive semi-definite by construction.
func (f *EKI) Covariances(e *ensemble.Ensemble, preds *mat.Dense, predMean *mat.VecDense) (*mat.SymDense, *mat.Dense) {
	in := e.Dim()
	out, n := preds.Dims()

	// center members and predictions about their means
	mean := e.Mean()
	xc := e.Members()
	gc := mat.NewDense(out, n, nil)
	gc.Copy(preds)

	for c := 0; c < n; c++ {
		for r := 0; r < in; r++ {
			xc.Set(r, c, xc.At(r, c)-mean.AtVec(r))
		}
		for r := 0; r < out; r++ {
			gc.Set(r, c, gc.At(r, c)-predMean.AtVec(r))
		}
	}

	cggd := &mat.Dense{}
	cggd.Mul(gc, gc.T())
	cggd.Scale(1/float64(n-1), cggd)

	cpg := &mat.Dense{}
	cpg.Mul(xc, gc.T())
	cpg.Scale(1/float64(n-1), cpg)

	cgg := mat.NewSymDense(out, nil)
	for i := 0; i < out; i++ {
		for j := i; j < out; j++ {
			cgg.SetSym(i, j, cggd.At(i, j))
		}
	}

	return cgg, cpg
}

// Update performs one stochastic Kalman update of the ensemble e and returns
// the updated ensemble. Each member is moved by CpG * (CGG+Gamma)^-1 applied
// to its own perturbed residual y + eta - G(p); the perturbations keep the
// ensemble spread across iterations. The left-hand matrix CGG+Gamma is
// factorized once and shared by all members.
// It returns error if CGG+Gamma fails to be inverted.
func (f *EKI) Update(e *ensemble.Ensemble, preds *mat.Dense, cgg *mat.SymDense, cpg *mat.Dense) (*ensemble.Ensemble, error) {
	out, n := preds.Dims()

	// regularize the empirical covariance with the noise covariance
	lhs := &mat.Dense{}
	lhs.Add(cgg, f.r.Cov())

	// each column holds one member's perturbed residual
	rhs := mat.NewDense(out, n, nil)
	for c := 0; c < n; c++ {
		eta := f.r.Sample()
		for r := 0; r < out; r++ {
			rhs.Set(r, c, f.y.AtVec(r)+eta.AtVec(r)-preds.At(r, c))
		}
	}

	var lu mat.LU
	lu.Factorize(lhs)

	var z mat.Dense
	if err := lu.SolveTo(&z, false, rhs); err != nil {
		return nil, fmt.Errorf("%w: %v", inverse.ErrSingularCovariance, err)
	}

	var kt mat.Dense
	if err := lu.SolveTo(&kt, false, cpg.T()); err != nil {
		return nil, fmt.Errorf("%w: %v", inverse.ErrSingularCovariance, err)
	}
	f.k.Copy(kt.T())

	incr := &mat.Dense{}
	incr.Mul(cpg, &z)

	next := e.Members()
	next.Add(next, incr)

	return ensemble.New(next)
}

// Run drives the inversion starting from the ensemble e. Every iteration it
// evaluates the forward map on the whole ensemble, checks the stopping rule
// and, unless the run has converged or the budget is exhausted, updates the
// ensemble. It returns the final ensemble with its mean, the terminal status,
// the last residual and the number of updates performed.
// It returns error if the ensemble dimension does not match the forward map,
// if the forward map fails or if an update encounters a singular covariance.
func (f *EKI) Run(e *ensemble.Ensemble) (*kalman.Result, error) {
	if e == nil {
		return nil, fmt.Errorf("invalid ensemble: %v", e)
	}

	in, _ := f.m.Dims()
	if e.Dim() != in {
		return nil, fmt.Errorf("%w: ensemble dimension %d, forward map input %d", inverse.ErrDimensionMismatch, e.Dim(), in)
	}

	iter := 0
	var res float64

	for {
		preds, predMean, err := f.Evaluate(e)
		if err != nil {
			return nil, err
		}

		res = f.residual(predMean)
		log.Debug().Int("iteration", iter).Float64("residual", res).Msg("eki iteration")

		if res < f.level {
			return &kalman.Result{
				Ensemble:   e,
				Mean:       e.Mean(),
				Status:     kalman.Converged,
				Residual:   res,
				Iterations: iter,
			}, nil
		}

		// only reachable without an update when the budget is zero
		if iter >= f.maxIter {
			break
		}

		cgg, cpg := f.Covariances(e, preds, predMean)

		next, err := f.Update(e, preds, cgg, cpg)
		if err != nil {
			return nil, err
		}
		e = next
		iter++

		if iter >= f.maxIter {
			break
		}
	}

	log.Warn().Int("iterations", iter).Float64("residual", res).Msg("iteration budget exhausted before convergence")

	return &kalman.Result{
		Ensemble:   e,
		Mean:       e.Mean(),
		Status:     kalman.MaxIterReached,
		Residual:   res,
		Iterations: iter,
	}, nil
}

// Gain returns the Kalman gain of the most recent ensemble update.
func (f *EKI) Gain() mat.Matrix {
	gain := &mat.Dense{}
	gain.CloneFrom(f.k)

	return gain
}

// residual returns the distance between the mean prediction and the
// measurement relative to the measurement norm. A zero-norm measurement makes
// the ratio undefined, so the absolute distance is used instead.
func (f *EKI) residual(predMean *mat.VecDense) float64 {
	d := &mat.VecDense{}
	d.SubVec(predMean, f.y)

	r := mat.Norm(d, 2)
	if f.yNorm > 0 {
		r /= f.yNorm
	}

	return r
}
