package matrix

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// RowMeans returns a slice containing the mean of every row of m.
// It panics if m is nil.
func RowMeans(m *mat.Dense) []float64 {
	rows, cols := m.Dims()
	means := make([]float64, rows)

	for i := 0; i < rows; i++ {
		means[i] = floats.Sum(m.RawRowView(i)) / float64(cols)
	}

	return means
}

// ColMeans returns a slice containing the mean of every column of m.
// It panics if m is nil.
func ColMeans(m *mat.Dense) []float64 {
	rows, cols := m.Dims()
	means := make([]float64, cols)

	for i := 0; i < cols; i++ {
		means[i] = mat.Sum(m.ColView(i)) / float64(rows)
	}

	return means
}
