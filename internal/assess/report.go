package assess

import "fmt"

// OverallClass identifies the single map-wide metric in a MetricEstimate.
const OverallClass = -1

// MetricEstimate is one point estimate and its variance, tagged with the
// class it describes (OverallClass for the map-wide metric). Never
// mutated after creation. Defined is false for metrics the input cannot
// support (an undefined producer's accuracy); Value and Variance are NaN
// in that case.
type MetricEstimate struct {
	Class    int
	Value    float64
	Variance float64
	Defined  bool
}

// Metric pairs an estimate with its confidence interval.
type Metric struct {
	Estimate MetricEstimate     `json:"estimate"`
	Interval ConfidenceInterval `json:"interval"`
}

// ClassResult collects every per-class metric for one class.
type ClassResult struct {
	Class            int    `json:"class"`
	UserAccuracy     Metric `json:"user_accuracy"`
	ProducerAccuracy Metric `json:"producer_accuracy"`
	AreaProportion   Metric `json:"area_proportion"`
	Area             Metric `json:"area"`
}

// AssessmentReport is the complete result of one assessment run: one set
// of metrics per class plus the overall accuracy, with the run's derived
// weights and area scale echoed for transparency. Created once per run
// and immutable; ownership passes to the caller.
type AssessmentReport struct {
	Classes     []ClassResult `json:"classes"`
	Overall     Metric        `json:"overall_accuracy"`
	Weights     Weights       `json:"weights"`
	TotalPixels int64         `json:"total_pixels"`
	PixelArea   float64       `json:"pixel_area"`
	TotalArea   float64       `json:"total_area"`
}

// Assemble composes per-class results and the overall metric into one
// report. It performs no computation of its own, only shape validation:
// every class must be present exactly once, in index order, with a weight.
func Assemble(classes []ClassResult, overall Metric, weights Weights, totalPixels int64, pixelArea float64) (*AssessmentReport, error) {
	if len(classes) == 0 {
		return nil, fmt.Errorf("report has no class results")
	}
	if len(weights) != len(classes) {
		return nil, fmt.Errorf("report has %d classes but %d weights", len(classes), len(weights))
	}
	for idx, c := range classes {
		if c.Class != idx {
			return nil, fmt.Errorf("class results out of order: index %d holds class %d", idx, c.Class)
		}
	}
	if overall.Estimate.Class != OverallClass {
		return nil, fmt.Errorf("overall metric is tagged with class %d", overall.Estimate.Class)
	}
	return &AssessmentReport{
		Classes:     classes,
		Overall:     overall,
		Weights:     weights,
		TotalPixels: totalPixels,
		PixelArea:   pixelArea,
		TotalArea:   float64(totalPixels) * pixelArea,
	}, nil
}
