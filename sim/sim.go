package sim

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	inverse "github.com/hanzcheng/EKI-implementation"
)

// Observe synthesizes a noisy measurement vector by evaluating the forward map
// m at the true parameter vector truth and perturbing every component of the
// prediction with relative Gaussian noise of the given fractional level:
//
//	y_k = g_k * (1 + level * xi_k),  xi_k ~ N(0,1)
//
// Random draws come from src (the global source if src is nil). A zero level
// returns the exact predictions.
// It returns error if m is nil, truth does not match the map input dimension
// or level is negative.
func Observe(m inverse.ForwardMap, truth mat.Vector, level float64, src rand.Source) (*mat.VecDense, error) {
	if m == nil {
		return nil, fmt.Errorf("invalid forward map: %v", m)
	}

	in, _ := m.Dims()
	if truth == nil || truth.Len() != in {
		return nil, fmt.Errorf("invalid true parameter vector: %v", truth)
	}

	if level < 0 {
		return nil, fmt.Errorf("invalid noise level: %f", level)
	}

	g, err := m.Evaluate(truth)
	if err != nil {
		return nil, fmt.Errorf("forward map evaluation failed: %v", err)
	}

	dist := distuv.Normal{Mu: 0, Sigma: 1, Src: src}

	y := mat.NewVecDense(g.Len(), nil)
	for k := 0; k < g.Len(); k++ {
		y.SetVec(k, g.AtVec(k)*(1+level*dist.Rand()))
	}

	return y, nil
}
