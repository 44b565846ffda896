package assess

import "math"

// CellProportions returns the weighted cell proportion matrix
// p_ij = W_i · n_ij / n_i, the unit from which every other metric in this
// package is derived. Rows with the stratum weight applied are unbiased
// estimates of the corresponding area proportions under stratified random
// sampling.
func CellProportions(m ErrorMatrix, w Weights) [][]float64 {
	k := m.Classes()
	p := make([][]float64, k)
	for i := 0; i < k; i++ {
		p[i] = make([]float64, k)
		rowTotal := float64(m.RowTotal(i))
		for j := 0; j < k; j++ {
			p[i][j] = w[i] * float64(m[i][j]) / rowTotal
		}
	}
	return p
}

// AccuracyEstimates holds the accuracy metrics for one assessment run:
// overall accuracy plus per-class user's and producer's accuracy, each
// paired with its estimated variance.
type AccuracyEstimates struct {
	Overall  MetricEstimate
	User     []MetricEstimate
	Producer []MetricEstimate
}

// EstimateAccuracy computes overall, user's and producer's accuracy and
// their variances from the error matrix and stratum weights (Olofsson et
// al. 2014, stratified random sampling). The stratum population is needed
// for the producer's-accuracy variance, which weighs strata by N_i.
//
// A reference class that never appears in any sampled stratum has an
// undefined producer's accuracy; its estimate is marked undefined rather
// than divided by zero, and no other metric is affected.
func EstimateAccuracy(m ErrorMatrix, w Weights, pop StratumPopulation) AccuracyEstimates {
	k := m.Classes()
	p := CellProportions(m, w)

	// Row totals as floats, reused by every variance term.
	n := make([]float64, k)
	for i := 0; i < k; i++ {
		n[i] = float64(m.RowTotal(i))
	}

	user := make([]MetricEstimate, k)
	for i := 0; i < k; i++ {
		rowSum := 0.0
		for j := 0; j < k; j++ {
			rowSum += p[i][j]
		}
		u := p[i][i] / rowSum
		user[i] = MetricEstimate{
			Class:    i,
			Value:    u,
			Variance: u * (1 - u) / (n[i] - 1),
			Defined:  true,
		}
	}

	overallVal, overallVar := 0.0, 0.0
	for i := 0; i < k; i++ {
		u := user[i].Value
		overallVal += p[i][i]
		overallVar += w[i] * w[i] * u * (1 - u) / (n[i] - 1)
	}
	overall := MetricEstimate{
		Class:    OverallClass,
		Value:    overallVal,
		Variance: overallVar,
		Defined:  true,
	}

	producer := make([]MetricEstimate, k)
	for j := 0; j < k; j++ {
		// N̂_j estimates the marginal population of reference class j.
		var colSum, nHat float64
		for i := 0; i < k; i++ {
			colSum += p[i][j]
			nHat += float64(pop[i]) * float64(m[i][j]) / n[i]
		}
		if nHat == 0 {
			producer[j] = undefinedEstimate(j)
			continue
		}
		pj := p[j][j] / colSum
		uj := user[j].Value

		lead := float64(pop[j]) * float64(pop[j]) * (1 - pj) * (1 - pj) * uj * (1 - uj) / (n[j] - 1)
		tail := 0.0
		for i := 0; i < k; i++ {
			if i == j {
				continue
			}
			frac := float64(m[i][j]) / n[i]
			tail += float64(pop[i]) * float64(pop[i]) * frac * (1 - frac) / (n[i] - 1)
		}
		producer[j] = MetricEstimate{
			Class:    j,
			Value:    pj,
			Variance: (lead + pj*pj*tail) / (nHat * nHat),
			Defined:  true,
		}
	}

	return AccuracyEstimates{Overall: overall, User: user, Producer: producer}
}

// undefinedEstimate marks a metric as undefined for a class. Values are
// NaN so that any accidental arithmetic on them stays visibly undefined
// instead of silently contributing zero.
func undefinedEstimate(class int) MetricEstimate {
	return MetricEstimate{
		Class:    class,
		Value:    math.NaN(),
		Variance: math.NaN(),
		Defined:  false,
	}
}
