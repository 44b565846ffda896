package assess

// ErrorMatrix is a square cross-tabulation of the reference sample: entry
// (i, j) counts sampled pixels mapped as class i whose reference label is
// class j. Rows are strata of the sampling design.
type ErrorMatrix [][]int

// Classes returns the number of classes k (the row count).
func (m ErrorMatrix) Classes() int {
	return len(m)
}

// RowTotal returns n_i, the number of sampled pixels in stratum i.
func (m ErrorMatrix) RowTotal(i int) int {
	total := 0
	for j := 0; j < len(m[i]); j++ {
		total += m[i][j]
	}
	return total
}

// ColumnTotal returns the number of sampled pixels whose reference label
// is class j.
func (m ErrorMatrix) ColumnTotal(j int) int {
	total := 0
	for i := 0; i < len(m); i++ {
		total += m[i][j]
	}
	return total
}

// StratumPopulation maps each class index to N_i, the total number of
// pixels mapped as that class over the whole study area.
type StratumPopulation []int64

// Total returns ΣN_i, the pixel count of the whole study area.
func (p StratumPopulation) Total() int64 {
	var total int64
	for _, n := range p {
		total += n
	}
	return total
}

// Validate checks that an error matrix, stratum population and pixel area
// form a well-posed assessment input. Checks run in a fixed order and the
// first failure wins; each failure identifies the violated rule and the
// offending row where one exists. Validate is a pure check with no side
// effects.
//
// The sample-size rule requires n_i ≥ 2 for every stratum because every
// variance estimator divides by n_i − 1; a stratum sampled once (or not at
// all) is a terminal input error, never a silent zero variance.
func Validate(m ErrorMatrix, pop StratumPopulation, pixelArea float64) error {
	k := m.Classes()
	if k < 2 {
		return &StructuralError{Row: -1, Reason: "error matrix needs at least 2 classes"}
	}
	for i := 0; i < k; i++ {
		if len(m[i]) != k {
			return &StructuralError{Row: i, Reason: "error matrix is not square"}
		}
		for j := 0; j < k; j++ {
			if m[i][j] < 0 {
				return &StructuralError{Row: i, Reason: "negative sample count"}
			}
		}
	}
	for i := 0; i < k; i++ {
		if n := m.RowTotal(i); n <= 1 {
			return &InsufficientSampleError{Row: i, SampleSize: n}
		}
	}
	if len(pop) != k {
		return &StructuralError{Row: -1, Reason: "mapped pixel totals do not match matrix classes"}
	}
	if pixelArea <= 0 {
		return &PopulationInconsistencyError{Row: -1, Reason: "pixel area must be positive"}
	}
	for i := 0; i < k; i++ {
		if pop[i] < int64(m.RowTotal(i)) {
			return &PopulationInconsistencyError{Row: i, Reason: "mapped pixel total smaller than sampled count"}
		}
	}
	if pop.Total() == 0 {
		return &PopulationInconsistencyError{Row: -1, Reason: "total mapped pixel count is zero"}
	}
	return nil
}
