package assess

import (
	"math"
	"testing"
)

// almostEqual reports whether two floats agree within tol.
func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// scenarioA is the 2×2 worked example from Olofsson et al. (2013):
// weights W = [0.7, 0.3], weighted cells p = [[0.6, 0.1], [0.05, 0.25]].
func scenarioA(t *testing.T) (ErrorMatrix, Weights, StratumPopulation) {
	t.Helper()
	m := ErrorMatrix{{60, 10}, {5, 25}}
	pop := StratumPopulation{700, 300}
	w, err := StratumWeights(pop)
	if err != nil {
		t.Fatalf("StratumWeights failed: %v", err)
	}
	return m, w, pop
}

func TestCellProportions(t *testing.T) {
	m, w, _ := scenarioA(t)
	p := CellProportions(m, w)
	want := [][]float64{
		{0.6, 0.1},
		{0.05, 0.25},
	}
	for i := range want {
		for j := range want[i] {
			if !almostEqual(p[i][j], want[i][j], 1e-12) {
				t.Errorf("p[%d][%d] = %v, want %v", i, j, p[i][j], want[i][j])
			}
		}
	}
}

func TestEstimateAccuracyScenarioA(t *testing.T) {
	m, w, pop := scenarioA(t)
	acc := EstimateAccuracy(m, w, pop)

	if !almostEqual(acc.Overall.Value, 0.85, 1e-12) {
		t.Errorf("overall accuracy = %v, want 0.85", acc.Overall.Value)
	}
	if !almostEqual(acc.Overall.Variance, 0.0013005997001499245, 1e-15) {
		t.Errorf("overall variance = %v, want 0.0013005997001499245", acc.Overall.Variance)
	}

	wantUser := []float64{60.0 / 70.0, 25.0 / 30.0}
	wantUserVar := []float64{0.0017746228926353144, 0.004789272030651341}
	wantProd := []float64{0.6 / 0.65, 0.25 / 0.35}
	wantProdVar := []float64{0.0008814611636095749, 0.00390891601263092}
	for i := 0; i < 2; i++ {
		if !almostEqual(acc.User[i].Value, wantUser[i], 1e-12) {
			t.Errorf("user accuracy[%d] = %v, want %v", i, acc.User[i].Value, wantUser[i])
		}
		if !almostEqual(acc.User[i].Variance, wantUserVar[i], 1e-15) {
			t.Errorf("user variance[%d] = %v, want %v", i, acc.User[i].Variance, wantUserVar[i])
		}
		if !almostEqual(acc.Producer[i].Value, wantProd[i], 1e-12) {
			t.Errorf("producer accuracy[%d] = %v, want %v", i, acc.Producer[i].Value, wantProd[i])
		}
		if !almostEqual(acc.Producer[i].Variance, wantProdVar[i], 1e-15) {
			t.Errorf("producer variance[%d] = %v, want %v", i, acc.Producer[i].Variance, wantProdVar[i])
		}
		if !acc.User[i].Defined || !acc.Producer[i].Defined {
			t.Errorf("class %d metrics unexpectedly undefined", i)
		}
	}
}

func TestAccuracyBounds(t *testing.T) {
	// Overall accuracy is the trace of the weighted cells and must stay in
	// [0,1]; user's and producer's accuracy likewise whenever defined.
	matrices := []ErrorMatrix{
		{{60, 10}, {5, 25}},
		{{2, 50}, {40, 3}},
		{{10, 10, 10}, {3, 80, 7}, {2, 2, 96}},
	}
	pops := []StratumPopulation{
		{700, 300},
		{10000, 250},
		{50000, 30000, 20000},
	}
	for idx, m := range matrices {
		w, err := StratumWeights(pops[idx])
		if err != nil {
			t.Fatalf("StratumWeights failed: %v", err)
		}
		acc := EstimateAccuracy(m, w, pops[idx])

		p := CellProportions(m, w)
		trace := 0.0
		for i := range p {
			trace += p[i][i]
		}
		if !almostEqual(trace, acc.Overall.Value, 1e-12) {
			t.Errorf("matrix %d: trace %v != overall %v", idx, trace, acc.Overall.Value)
		}
		if acc.Overall.Value < 0 || acc.Overall.Value > 1 {
			t.Errorf("matrix %d: overall accuracy %v outside [0,1]", idx, acc.Overall.Value)
		}
		for i := range p {
			if u := acc.User[i].Value; u < 0 || u > 1 {
				t.Errorf("matrix %d: user accuracy[%d] = %v outside [0,1]", idx, i, u)
			}
			if pr := acc.Producer[i]; pr.Defined && (pr.Value < 0 || pr.Value > 1) {
				t.Errorf("matrix %d: producer accuracy[%d] = %v outside [0,1]", idx, i, pr.Value)
			}
		}
	}
}

func TestUserAccuracyMonotonicity(t *testing.T) {
	// Increasing the diagonal cell while holding the row total fixed must
	// not decrease user's accuracy for that row.
	pop := StratumPopulation{700, 300}
	w, err := StratumWeights(pop)
	if err != nil {
		t.Fatalf("StratumWeights failed: %v", err)
	}
	prev := -1.0
	for diag := 2; diag <= 70; diag++ {
		m := ErrorMatrix{{diag, 70 - diag}, {5, 25}}
		acc := EstimateAccuracy(m, w, pop)
		if acc.User[0].Value < prev {
			t.Fatalf("user accuracy decreased from %v to %v at diagonal %d", prev, acc.User[0].Value, diag)
		}
		prev = acc.User[0].Value
	}
}

func TestProducerAccuracyUndefinedMarginal(t *testing.T) {
	// Class 2 never appears as a reference label: its producer's accuracy
	// is undefined, everything else computes normally.
	m := ErrorMatrix{
		{50, 5, 0},
		{4, 60, 0},
		{10, 10, 0},
	}
	pop := StratumPopulation{500, 600, 200}
	w, err := StratumWeights(pop)
	if err != nil {
		t.Fatalf("StratumWeights failed: %v", err)
	}
	acc := EstimateAccuracy(m, w, pop)

	if acc.Producer[2].Defined {
		t.Error("producer accuracy for empty reference class reported as defined")
	}
	if !math.IsNaN(acc.Producer[2].Value) || !math.IsNaN(acc.Producer[2].Variance) {
		t.Errorf("undefined producer metric should carry NaN, got value=%v variance=%v",
			acc.Producer[2].Value, acc.Producer[2].Variance)
	}
	for j := 0; j < 2; j++ {
		if !acc.Producer[j].Defined {
			t.Errorf("producer accuracy[%d] unexpectedly undefined", j)
		}
	}
	if !acc.Overall.Defined || math.IsNaN(acc.Overall.Value) {
		t.Error("overall accuracy affected by one undefined producer metric")
	}
}
