package estimate

import (
	"fmt"

	"github.com/milosgajdos/matrix"
	"gonum.org/v1/gonum/mat"

	mtx "github.com/hanzcheng/EKI-implementation/matrix"
)

// Base is base parameter estimate
type Base struct {
	// val is estimated value
	val *mat.VecDense
	// cov is estimated covariance
	cov *mat.SymDense
}

// NewBase returns base estimate given val and a zero covariance.
func NewBase(val mat.Vector) (*Base, error) {
	v := &mat.VecDense{}
	if val != nil {
		v.CloneFromVec(val)
	}

	c := mat.NewSymDense(v.Len(), nil)

	return &Base{
		val: v,
		cov: c,
	}, nil
}

// NewBaseWithCov returns base estimate given val and covariance cov.
func NewBaseWithCov(val mat.Vector, cov mat.Symmetric) (*Base, error) {
	rv, _ := val.Dims()
	rc := cov.SymmetricDim()

	if rv != rc {
		return nil, fmt.Errorf("invalid dimensions. Val: %d, Cov: %d x %d", rv, rc, rc)
	}

	v := &mat.VecDense{}
	v.CloneFromVec(val)

	c := mat.NewSymDense(cov.SymmetricDim(), nil)
	c.CopySym(cov)

	return &Base{
		val: v,
		cov: c,
	}, nil
}

// NewFromEnsemble returns base estimate built from the ensemble members stored
// in the columns of x: the estimate value is the ensemble mean and the estimate
// covariance is the empirical covariance of the members.
// It returns error if x is nil, holds fewer than 2 members or its covariance
// fails to be calculated.
func NewFromEnsemble(x *mat.Dense) (*Base, error) {
	if x == nil {
		return nil, fmt.Errorf("invalid ensemble members: %v", x)
	}

	d, n := x.Dims()
	if n < 2 {
		return nil, fmt.Errorf("invalid number of ensemble members: %d", n)
	}

	cov, err := matrix.Cov(x, "cols")
	if err != nil {
		return nil, fmt.Errorf("failed to calculate ensemble covariance: %v", err)
	}

	val := mat.NewVecDense(d, mtx.RowMeans(x))

	return NewBaseWithCov(val, cov)
}

// Val returns estimated value
func (b *Base) Val() mat.Vector {
	v := &mat.VecDense{}
	v.CloneFromVec(b.val)

	return v
}

// Cov returns covariance estimate
func (b *Base) Cov() mat.Symmetric {
	cov := mat.NewSymDense(b.cov.SymmetricDim(), nil)
	cov.CopySym(b.cov)

	return cov
}
