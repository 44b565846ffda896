package assess

import "gonum.org/v1/gonum/floats"

// Weights holds the stratum weights W_i = N_i / ΣN_i derived from the
// mapped pixel totals. The weights sum to 1 up to floating-point
// tolerance and are immutable for the lifetime of one assessment run.
type Weights []float64

// StratumWeights derives the per-class stratum weights from the mapped
// pixel totals. Deterministic and pure. The zero-total check cannot fire
// after Validate has passed but is kept as a defensive guard for direct
// callers.
func StratumWeights(pop StratumPopulation) (Weights, error) {
	counts := make([]float64, len(pop))
	for i, n := range pop {
		counts[i] = float64(n)
	}
	total := floats.Sum(counts)
	if total == 0 {
		return nil, &PopulationInconsistencyError{Row: -1, Reason: "total mapped pixel count is zero"}
	}
	w := make(Weights, len(pop))
	for i := range counts {
		w[i] = counts[i] / total
	}
	return w, nil
}
