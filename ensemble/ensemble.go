package ensemble

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"

	inverse "github.com/hanzcheng/EKI-implementation"
	"github.com/hanzcheng/EKI-implementation/matrix"
	"github.com/hanzcheng/EKI-implementation/rnd"
)

// Ensemble is an ordered collection of candidate parameter vectors.
// The members are stored as column vectors of a dense matrix, so an
// ensemble of size n with parameter dimension d is a d x n matrix.
// An Ensemble is never mutated: every update produces a new value.
type Ensemble struct {
	// x stores ensemble members as column vectors
	x *mat.Dense
}

// New creates a new Ensemble from the members stored in the columns of x and returns it.
// The supplied matrix is cloned, so the caller may keep modifying it.
// It returns error if x is nil or if it holds fewer than 2 members.
func New(x *mat.Dense) (*Ensemble, error) {
	if x == nil {
		return nil, fmt.Errorf("%w: no members given", inverse.ErrInvalidEnsembleSize)
	}

	_, n := x.Dims()
	if n < 2 {
		return nil, fmt.Errorf("%w: %d", inverse.ErrInvalidEnsembleSize, n)
	}

	members := &mat.Dense{}
	members.CloneFrom(x)

	return &Ensemble{x: members}, nil
}

// NewUniform creates a new Ensemble of the given size whose members are drawn
// componentwise i.i.d. from Uniform(lb, ub), using the random source src
// (the global source if src is nil). dim is the parameter dimension.
// It returns error if size is smaller than 2, dim is smaller than 1 or lb is not smaller than ub.
func NewUniform(size, dim int, lb, ub float64, src rand.Source) (*Ensemble, error) {
	if size < 2 {
		return nil, fmt.Errorf("%w: %d", inverse.ErrInvalidEnsembleSize, size)
	}

	x, err := rnd.WithRangeN(lb, ub, dim, size, src)
	if err != nil {
		return nil, fmt.Errorf("failed to draw ensemble members: %v", err)
	}

	return &Ensemble{x: x}, nil
}

// NewNormal creates a new Ensemble of the given size whose members are drawn
// componentwise i.i.d. from Normal(mu, sigma), using the random source src
// (the global source if src is nil). dim is the parameter dimension.
// It returns error if size is smaller than 2, dim is smaller than 1 or sigma is not positive.
func NewNormal(size, dim int, mu, sigma float64, src rand.Source) (*Ensemble, error) {
	if size < 2 {
		return nil, fmt.Errorf("%w: %d", inverse.ErrInvalidEnsembleSize, size)
	}

	if dim < 1 {
		return nil, fmt.Errorf("invalid parameter dimension: %d", dim)
	}

	if sigma <= 0 {
		return nil, fmt.Errorf("invalid standard deviation: %f", sigma)
	}

	vars := make([]float64, dim)
	for i := range vars {
		vars[i] = sigma * sigma
	}

	x, err := rnd.WithCovN(mat.NewDiagDense(dim, vars), size, src)
	if err != nil {
		return nil, fmt.Errorf("failed to draw ensemble members: %v", err)
	}

	// center the members around mu
	rows, cols := x.Dims()
	for c := 0; c < cols; c++ {
		for r := 0; r < rows; r++ {
			x.Set(r, c, x.At(r, c)+mu)
		}
	}

	return &Ensemble{x: x}, nil
}

// Size returns the number of ensemble members.
func (e *Ensemble) Size() int {
	_, n := e.x.Dims()
	return n
}

// Dim returns the parameter dimension shared by all members.
func (e *Ensemble) Dim() int {
	d, _ := e.x.Dims()
	return d
}

// Member returns a read-only view of the i-th ensemble member.
// It panics if i is out of range.
func (e *Ensemble) Member(i int) mat.Vector {
	return e.x.ColView(i)
}

// Members returns a copy of the matrix storing the ensemble members in its columns.
func (e *Ensemble) Members() *mat.Dense {
	x := &mat.Dense{}
	x.CloneFrom(e.x)

	return x
}

// Mean returns the arithmetic mean vector of the ensemble members.
func (e *Ensemble) Mean() *mat.VecDense {
	return mat.NewVecDense(e.Dim(), matrix.RowMeans(e.x))
}
