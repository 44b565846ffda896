// Package assess implements stratified accuracy assessment and
// error-adjusted area estimation for thematic maps, following the
// estimators of Olofsson et al. (2013, 2014).
//
// The package turns a multi-class error matrix sampled under stratified
// random sampling (stratified by mapped class), together with the mapped
// pixel total of each stratum, into overall, user's and producer's
// accuracy, error-adjusted area estimates, and 95% confidence intervals
// for all of them.
//
// The package assumes the sample was drawn by stratified random sampling;
// it cannot detect a violated sampling design, and results are only valid
// when the caller honours that assumption.
//
// All reductions over the matrix accumulate in a fixed order, row index
// ascending then column index ascending, so repeated runs over identical
// inputs produce bit-identical reports.
package assess

// Input bundles everything one assessment run needs. The matrix row count
// implies the number of classes; Population and the matrix must agree on
// it. PixelArea is the ground area represented by a single pixel, in the
// caller's area unit (for example 900 for a 30 m Landsat pixel in m²).
type Input struct {
	Matrix     ErrorMatrix       `json:"error_matrix"`
	Population StratumPopulation `json:"mapped_pixels"`
	PixelArea  float64           `json:"pixel_area"`
}

// Run executes one full assessment: validation, stratum weights, accuracy
// and area estimation, confidence intervals, and report assembly. It is a
// pure function of its input; concurrent calls share no state.
//
// Validation failures return a classified error (StructuralError,
// InsufficientSampleError or PopulationInconsistencyError) and no report.
// A class whose producer's accuracy is undefined does not fail the run:
// that metric is marked undefined in the report and everything else is
// computed normally.
func Run(in Input) (*AssessmentReport, error) {
	if err := Validate(in.Matrix, in.Population, in.PixelArea); err != nil {
		return nil, err
	}

	weights, err := StratumWeights(in.Population)
	if err != nil {
		return nil, err
	}

	acc := EstimateAccuracy(in.Matrix, weights, in.Population)
	area := EstimateArea(in.Matrix, weights, in.Population.Total(), in.PixelArea)

	k := in.Matrix.Classes()
	classes := make([]ClassResult, k)
	for j := 0; j < k; j++ {
		classes[j] = ClassResult{
			Class:            j,
			UserAccuracy:     Metric{acc.User[j], Interval(acc.User[j], 1, 0, 1)},
			ProducerAccuracy: Metric{acc.Producer[j], Interval(acc.Producer[j], 1, 0, 1)},
			AreaProportion:   Metric{area.Proportion[j], Interval(area.Proportion[j], 1, 0, 1)},
			Area:             Metric{area.Area[j], Interval(area.Proportion[j], area.Scale, 0, maxArea)},
		}
	}
	overall := Metric{acc.Overall, Interval(acc.Overall, 1, 0, 1)}

	return Assemble(classes, overall, weights, in.Population.Total(), in.PixelArea)
}
