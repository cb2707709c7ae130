package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestExponential(t *testing.T) {
	assert := assert.New(t)

	m, err := NewExponential([]float64{0.0, 0.5, 1.0})
	assert.NotNil(m)
	assert.NoError(err)

	in, out := m.Dims()
	assert.Equal(2, in)
	assert.Equal(3, out)

	g, err := m.Evaluate(mat.NewVecDense(2, []float64{3.0, 2.0}))
	assert.NoError(err)
	assert.Equal(3, g.Len())
	assert.InDelta(3.0, g.AtVec(0), 1e-12)
	assert.InDelta(3.0*math.E, g.AtVec(1), 1e-12)
	assert.InDelta(3.0*math.E*math.E, g.AtVec(2), 1e-12)

	// invalid parameter vector
	g, err = m.Evaluate(mat.NewVecDense(3, nil))
	assert.Nil(g)
	assert.Error(err)

	// no sample points
	m, err = NewExponential(nil)
	assert.Nil(m)
	assert.Error(err)
}

func TestDiffusionReaction(t *testing.T) {
	assert := assert.New(t)

	n := 50
	m, err := NewDiffusionReaction(n, nil)
	assert.NotNil(m)
	assert.NoError(err)

	in, out := m.Dims()
	assert.Equal(2, in)
	assert.Equal(n, out)

	// kappa = 1, rho = 0, f = 1: the solution is u(x) = x(1-x)/2
	u, err := m.Evaluate(mat.NewVecDense(2, []float64{0.0, 0.0}))
	assert.NoError(err)
	assert.Equal(n, u.Len())

	h := 1.0 / float64(n)
	for i := 0; i < n; i++ {
		x := (float64(i) + 0.5) * h
		assert.InDelta(x*(1-x)/2, u.AtVec(i), 1e-3)
	}

	// the solution of the symmetric problem is symmetric about x = 1/2
	for i := 0; i < n/2; i++ {
		assert.InDelta(u.AtVec(i), u.AtVec(n-1-i), 1e-12)
	}

	// a reaction term damps the solution
	ur, err := m.Evaluate(mat.NewVecDense(2, []float64{0.0, 50.0}))
	assert.NoError(err)
	for i := 0; i < n; i++ {
		assert.True(ur.AtVec(i) < u.AtVec(i))
		assert.True(ur.AtVec(i) > 0)
	}

	// invalid parameter vector
	u, err = m.Evaluate(mat.NewVecDense(1, nil))
	assert.Nil(u)
	assert.Error(err)

	// invalid grid
	m, err = NewDiffusionReaction(1, nil)
	assert.Nil(m)
	assert.Error(err)
}
