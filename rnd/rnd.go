package rnd

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// WithCovN draws n random samples from a zero-mean Normal (aka Gaussian) distribution
// with covariance cov, using the random source src (the global source if src is nil).
// It returns a matrix which contains the randomly generated samples stored in its columns.
// It fails with error if n is smaller than 1 or if SVD factorization of cov fails.
func WithCovN(cov mat.Symmetric, n int, src rand.Source) (*mat.Dense, error) {
	if n <= 0 {
		return nil, fmt.Errorf("invalid number of samples requested: %d", n)
	}

	// Use SVD instead of Cholesky as Cholesky can be numerically unstable if cov is (almost) singular
	var svd mat.SVD
	ok := svd.Factorize(cov, mat.SVDFull)
	if !ok {
		return nil, fmt.Errorf("SVD factorization failed")
	}

	U := new(mat.Dense)
	svd.UTo(U)
	vals := svd.Values(nil)
	for i := range vals {
		vals[i] = math.Sqrt(vals[i])
	}
	diag := mat.NewDiagDense(len(vals), vals)
	U.Mul(U, diag)

	dist := distuv.Normal{Mu: 0, Sigma: 1, Src: src}

	rows, _ := cov.Dims()
	data := make([]float64, rows*n)
	for i := range data {
		data[i] = dist.Rand()
	}
	samples := mat.NewDense(rows, n, data)
	samples.Mul(U, samples)

	return samples, nil
}

// WithRangeN draws a rows x n matrix of samples drawn i.i.d. from Uniform(lb, ub),
// using the random source src (the global source if src is nil).
// It fails with error if rows or n is smaller than 1 or if lb is not smaller than ub.
func WithRangeN(lb, ub float64, rows, n int, src rand.Source) (*mat.Dense, error) {
	if rows <= 0 || n <= 0 {
		return nil, fmt.Errorf("invalid sample dimensions: [%d x %d]", rows, n)
	}

	if lb >= ub {
		return nil, fmt.Errorf("invalid sample range: [%f, %f]", lb, ub)
	}

	dist := distuv.Uniform{Min: lb, Max: ub, Src: src}

	data := make([]float64, rows*n)
	for i := range data {
		data[i] = dist.Rand()
	}

	return mat.NewDense(rows, n, data), nil
}
