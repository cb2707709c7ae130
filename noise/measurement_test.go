package noise

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

func TestNewMeasurement(t *testing.T) {
	assert := assert.New(t)

	y := mat.NewVecDense(3, []float64{2.0, -1.0, 4.0})

	m, err := NewMeasurement(y, 0.1, nil)
	assert.NotNil(m)
	assert.NoError(err)

	// nil and empty measurement vectors
	m, err = NewMeasurement(nil, 0.1, nil)
	assert.Nil(m)
	assert.Error(err)

	m, err = NewMeasurement(&mat.VecDense{}, 0.1, nil)
	assert.Nil(m)
	assert.Error(err)

	// noise level must lie in (0,1)
	for _, level := range []float64{0.0, -0.5, 1.0, 2.0} {
		m, err = NewMeasurement(y, level, nil)
		assert.Nil(m)
		assert.Error(err)
	}
}

func TestCov(t *testing.T) {
	assert := assert.New(t)

	y := mat.NewVecDense(3, []float64{2.0, -1.0, 0.0})
	level := 0.2

	m, err := NewMeasurement(y, level, nil)
	assert.NotNil(m)
	assert.NoError(err)

	cov := m.Cov()
	assert.Equal(3, cov.SymmetricDim())

	// diagonal entries are ((level/2) * y_k)^2
	assert.InDelta(0.04, cov.At(0, 0), 1e-12)
	assert.InDelta(0.01, cov.At(1, 1), 1e-12)
	// zero measurement component yields an exactly zero entry
	assert.Equal(0.0, cov.At(2, 2))

	// off-diagonal entries are zero
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if i != j {
				assert.Equal(0.0, cov.At(i, j))
			}
		}
	}
}

func TestSample(t *testing.T) {
	assert := assert.New(t)

	y := mat.NewVecDense(3, []float64{2.0, -1.0, 0.0})

	m, err := NewMeasurement(y, 0.1, rand.NewSource(3))
	assert.NotNil(m)
	assert.NoError(err)

	s := m.Sample()
	assert.Equal(3, s.Len())
	// zero measurement component is never perturbed
	assert.Equal(0.0, s.AtVec(2))

	// same seed must reproduce the same samples
	m2, err := NewMeasurement(y, 0.1, rand.NewSource(3))
	assert.NoError(err)
	s2 := m2.Sample()
	for k := 0; k < s.Len(); k++ {
		assert.Equal(s.AtVec(k), s2.AtVec(k))
	}
}

func TestMean(t *testing.T) {
	assert := assert.New(t)

	y := mat.NewVecDense(2, []float64{1.0, 2.0})

	m, err := NewMeasurement(y, 0.1, nil)
	assert.NotNil(m)
	assert.NoError(err)

	mean := m.Mean()
	assert.EqualValues([]float64{0.0, 0.0}, mean)
}
