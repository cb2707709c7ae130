package ensemble

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"

	inverse "github.com/hanzcheng/EKI-implementation"
)

func TestNew(t *testing.T) {
	assert := assert.New(t)

	x := mat.NewDense(2, 3, []float64{
		1.0, 2.0, 3.0,
		4.0, 5.0, 6.0,
	})

	e, err := New(x)
	assert.NotNil(e)
	assert.NoError(err)
	assert.Equal(3, e.Size())
	assert.Equal(2, e.Dim())

	// the ensemble must not alias the supplied matrix
	x.Set(0, 0, 100.0)
	assert.Equal(1.0, e.Member(0).AtVec(0))

	// nil members
	e, err = New(nil)
	assert.Nil(e)
	assert.True(errors.Is(err, inverse.ErrInvalidEnsembleSize))

	// a single member is not an ensemble
	e, err = New(mat.NewDense(2, 1, nil))
	assert.Nil(e)
	assert.True(errors.Is(err, inverse.ErrInvalidEnsembleSize))
}

func TestNewUniform(t *testing.T) {
	assert := assert.New(t)

	lb, ub := 1.0, 4.0
	e, err := NewUniform(40, 2, lb, ub, rand.NewSource(7))
	assert.NotNil(e)
	assert.NoError(err)
	assert.Equal(40, e.Size())
	assert.Equal(2, e.Dim())

	// every member must lie componentwise in [lb, ub]
	for i := 0; i < e.Size(); i++ {
		m := e.Member(i)
		for j := 0; j < m.Len(); j++ {
			assert.True(m.AtVec(j) >= lb && m.AtVec(j) <= ub)
		}
	}

	// invalid ensemble size
	e, err = NewUniform(1, 2, lb, ub, nil)
	assert.Nil(e)
	assert.True(errors.Is(err, inverse.ErrInvalidEnsembleSize))

	// invalid bounds
	e, err = NewUniform(10, 2, 4.0, 1.0, nil)
	assert.Nil(e)
	assert.Error(err)

	// invalid parameter dimension
	e, err = NewUniform(10, 0, lb, ub, nil)
	assert.Nil(e)
	assert.Error(err)
}

func TestNewNormal(t *testing.T) {
	assert := assert.New(t)

	e, err := NewNormal(20, 3, 2.0, 0.5, rand.NewSource(11))
	assert.NotNil(e)
	assert.NoError(err)
	assert.Equal(20, e.Size())
	assert.Equal(3, e.Dim())

	// invalid ensemble size
	e, err = NewNormal(0, 3, 2.0, 0.5, nil)
	assert.Nil(e)
	assert.True(errors.Is(err, inverse.ErrInvalidEnsembleSize))

	// invalid standard deviation
	e, err = NewNormal(20, 3, 2.0, -1.0, nil)
	assert.Nil(e)
	assert.Error(err)

	// invalid parameter dimension
	e, err = NewNormal(20, 0, 2.0, 0.5, nil)
	assert.Nil(e)
	assert.Error(err)
}

func TestDeterministicInit(t *testing.T) {
	assert := assert.New(t)

	a, err := NewUniform(15, 2, 1.0, 4.0, rand.NewSource(42))
	assert.NoError(err)
	b, err := NewUniform(15, 2, 1.0, 4.0, rand.NewSource(42))
	assert.NoError(err)

	// same seed must reproduce the same ensemble
	assert.True(mat.Equal(a.Members(), b.Members()))

	c, err := NewNormal(15, 2, 0.0, 1.0, rand.NewSource(42))
	assert.NoError(err)
	d, err := NewNormal(15, 2, 0.0, 1.0, rand.NewSource(42))
	assert.NoError(err)

	assert.True(mat.Equal(c.Members(), d.Members()))
}

func TestMean(t *testing.T) {
	assert := assert.New(t)

	x := mat.NewDense(2, 2, []float64{
		1.0, 3.0,
		-2.0, 6.0,
	})

	e, err := New(x)
	assert.NotNil(e)
	assert.NoError(err)

	mean := e.Mean()
	assert.InDelta(2.0, mean.AtVec(0), 1e-12)
	assert.InDelta(2.0, mean.AtVec(1), 1e-12)
}
