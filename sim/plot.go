package sim

import (
	"fmt"
	"image/color"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// NewFitPlot creates new plot of the measured data against the predictions of
// the recovered parameters:
// xs:        sample points
// measured:  measurement values
// predicted: forward map predictions at the recovered parameters
// It returns error if either of the supplied vectors is nil or if their
// lengths do not match the number of sample points.
func NewFitPlot(xs []float64, measured, predicted mat.Vector) (*plot.Plot, error) {
	if measured == nil || predicted == nil {
		return nil, fmt.Errorf("invalid data supplied")
	}

	if len(xs) != measured.Len() || len(xs) != predicted.Len() {
		return nil, fmt.Errorf("invalid data dimensions")
	}

	p := plot.New()

	p.Title.Text = "Inversion fit"
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"

	legend := plot.NewLegend()
	legend.Top = true
	p.Legend = legend

	// scatter plotter for the measured data
	measScatter, err := plotter.NewScatter(makePoints(xs, measured))
	if err != nil {
		return nil, fmt.Errorf("failed to create scatter: %v", err)
	}
	measScatter.GlyphStyle.Color = color.RGBA{G: 255, A: 128}
	measScatter.GlyphStyle.Radius = vg.Points(3)

	p.Add(measScatter)
	p.Legend.Add("measured", measScatter)

	// scatter plotter for the fitted predictions
	predScatter, err := plotter.NewScatter(makePoints(xs, predicted))
	if err != nil {
		return nil, fmt.Errorf("failed to create scatter: %v", err)
	}
	predScatter.GlyphStyle.Color = color.RGBA{R: 255, B: 128, A: 255}
	predScatter.Shape = draw.CrossGlyph{}
	predScatter.GlyphStyle.Radius = vg.Points(3)

	p.Add(predScatter)
	p.Legend.Add("predicted", predScatter)

	return p, nil
}

func makePoints(xs []float64, v mat.Vector) plotter.XYs {
	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X = xs[i]
		pts[i].Y = v.AtVec(i)
	}

	return pts
}
