package assess

// AreaEstimates holds the error-adjusted area metrics for one run. Scale
// is the total mapped pixel count times the pixel area; multiplying a
// proportion (or a proportion standard error) by Scale converts it to
// area units. Area[j] carries the already-converted estimate for
// convenience; its variance is the proportion variance scaled by Scale².
type AreaEstimates struct {
	Proportion []MetricEstimate
	Area       []MetricEstimate
	Scale      float64
}

// EstimateArea computes the stratified area-proportion estimate for every
// class, its variance, and the error-adjusted area in the caller's area
// unit.
//
// The proportion p̂_j is the column sum of the weighted cell proportions,
// the unbiased estimator of the true fraction of the study area that is
// class j. It is deliberately distinct from the raw mapped proportion W_j
// and from every accuracy ratio: area estimation uses column sums only,
// and conflating those with the row- and column-conditioned accuracy
// ratios is the classic error in this methodology. Keeping the estimator
// here, apart from EstimateAccuracy, enforces that separation.
func EstimateArea(m ErrorMatrix, w Weights, totalPixels int64, pixelArea float64) AreaEstimates {
	k := m.Classes()
	p := CellProportions(m, w)
	scale := float64(totalPixels) * pixelArea

	prop := make([]MetricEstimate, k)
	area := make([]MetricEstimate, k)
	for j := 0; j < k; j++ {
		var est, variance float64
		for i := 0; i < k; i++ {
			est += p[i][j]
			ni := float64(m.RowTotal(i))
			frac := float64(m[i][j]) / ni
			variance += w[i] * w[i] * frac * (1 - frac) / (ni - 1)
		}
		prop[j] = MetricEstimate{Class: j, Value: est, Variance: variance, Defined: true}
		area[j] = MetricEstimate{Class: j, Value: est * scale, Variance: variance * scale * scale, Defined: true}
	}

	return AreaEstimates{Proportion: prop, Area: area, Scale: scale}
}
