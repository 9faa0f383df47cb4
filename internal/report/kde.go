package report

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// kernelDensity estimates a Gaussian kernel density for samples over an
// evenly spaced grid of points on [min, max]. Bandwidth follows
// Silverman's rule of thumb.
func kernelDensity(samples []float64, min, max float64, points int) (xs, ys []float64) {
	if len(samples) == 0 || points < 2 || max <= min {
		return nil, nil
	}

	sigma := stat.StdDev(samples, nil)
	h := 1.06 * sigma * math.Pow(float64(len(samples)), -1.0/5.0)
	if h <= 0 || math.IsNaN(h) {
		// Degenerate sample spread; fall back to a sliver of the range.
		h = (max - min) / 100
	}

	xs = make([]float64, points)
	ys = make([]float64, points)
	step := (max - min) / float64(points-1)
	n := float64(len(samples))

	for i := range xs {
		x := min + float64(i)*step
		xs[i] = x
		density := 0.0
		for _, s := range samples {
			kernel := distuv.Normal{Mu: s, Sigma: h}
			density += kernel.Prob(x)
		}
		ys[i] = density / n
	}
	return xs, ys
}
