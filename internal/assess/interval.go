package assess

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// ConfidenceLevel is the two-sided confidence level applied to every
// interval this package reports.
const ConfidenceLevel = 0.95

// zScore is the two-sided critical value of the unit normal for
// ConfidenceLevel, computed from the distribution rather than hard-coded
// (1.9599... for 95%).
var zScore = distuv.UnitNormal.Quantile(1 - (1-ConfidenceLevel)/2)

// maxArea is the upper reporting bound for area-unit intervals, which
// have no natural ceiling.
var maxArea = math.Inf(1)

// ConfidenceInterval is the uncertainty of a single metric: its standard
// error, the interval half-width z·SE, and the interval bounds. Bounds
// are clamped to the metric's valid reporting range while StdErr and
// HalfWidth are kept unclamped for transparency.
type ConfidenceInterval struct {
	StdErr    float64
	HalfWidth float64
	Lower     float64
	Upper     float64
	Defined   bool
}

// Interval converts a metric estimate into its standard error and 95%
// confidence interval. scale linearly rescales both the point estimate
// and the standard error into the reporting unit (1 for proportions,
// total area for error-adjusted areas); the same linear factor applies to
// both, never the squared factor. lo and hi clamp the reported bounds to
// the metric's valid range.
//
// An undefined estimate, or a negative or NaN variance, yields an
// undefined interval rather than a silently zero-width one.
func Interval(e MetricEstimate, scale, lo, hi float64) ConfidenceInterval {
	if !e.Defined || math.IsNaN(e.Variance) || e.Variance < 0 {
		return ConfidenceInterval{
			StdErr:    math.NaN(),
			HalfWidth: math.NaN(),
			Lower:     math.NaN(),
			Upper:     math.NaN(),
			Defined:   false,
		}
	}
	se := math.Sqrt(e.Variance) * scale
	point := e.Value * scale
	return ConfidenceInterval{
		StdErr:    se,
		HalfWidth: zScore * se,
		Lower:     clamp(point-zScore*se, lo, hi),
		Upper:     clamp(point+zScore*se, lo, hi),
		Defined:   true,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
