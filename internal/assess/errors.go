package assess

import "fmt"

// The validation error taxonomy. Each type identifies one violated
// precondition and, where one exists, the offending matrix row. Row is -1
// when the violation concerns the whole input rather than a single class.
//
// Callers that need to branch on the failure kind match with errors.As;
// the presentation layer renders all three as blocking messages since no
// report is produced.

// StructuralError reports an error matrix that is not well formed: not
// square, fewer than two classes, negative counts, or a class-count
// mismatch with the stratum population.
type StructuralError struct {
	Row    int
	Reason string
}

func (e *StructuralError) Error() string {
	if e.Row < 0 {
		return fmt.Sprintf("structural error: %s", e.Reason)
	}
	return fmt.Sprintf("structural error in row %d: %s", e.Row, e.Reason)
}

// InsufficientSampleError reports a stratum whose sample is too small for
// variance estimation (n_i ≤ 1).
type InsufficientSampleError struct {
	Row        int
	SampleSize int
}

func (e *InsufficientSampleError) Error() string {
	return fmt.Sprintf("stratum %d has sample size %d; variance estimation needs at least 2 samples per stratum",
		e.Row, e.SampleSize)
}

// PopulationInconsistencyError reports mapped pixel totals that cannot
// have produced the observed sample: a stratum population smaller than
// the sample drawn from it, a zero total population, or a non-positive
// pixel area.
type PopulationInconsistencyError struct {
	Row    int
	Reason string
}

func (e *PopulationInconsistencyError) Error() string {
	if e.Row < 0 {
		return fmt.Sprintf("population inconsistency: %s", e.Reason)
	}
	return fmt.Sprintf("population inconsistency in row %d: %s", e.Row, e.Reason)
}
