package assess

import (
	"encoding/json"
	"math"
)

// Undefined metrics carry NaN, which encoding/json cannot represent. The
// wire form writes null for NaN fields and restores NaN on the way back
// in, so a stored or transported report round-trips to the same values
// the engine produced.

type metricEstimateJSON struct {
	Class    int      `json:"class"`
	Value    *float64 `json:"value"`
	Variance *float64 `json:"variance"`
	Defined  bool     `json:"defined"`
}

func (e MetricEstimate) MarshalJSON() ([]byte, error) {
	return json.Marshal(metricEstimateJSON{
		Class:    e.Class,
		Value:    nanToNull(e.Value),
		Variance: nanToNull(e.Variance),
		Defined:  e.Defined,
	})
}

func (e *MetricEstimate) UnmarshalJSON(data []byte) error {
	var w metricEstimateJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	e.Class = w.Class
	e.Value = nullToNaN(w.Value)
	e.Variance = nullToNaN(w.Variance)
	e.Defined = w.Defined
	return nil
}

type confidenceIntervalJSON struct {
	StdErr    *float64 `json:"std_err"`
	HalfWidth *float64 `json:"half_width"`
	Lower     *float64 `json:"lower"`
	Upper     *float64 `json:"upper"`
	Defined   bool     `json:"defined"`
}

func (ci ConfidenceInterval) MarshalJSON() ([]byte, error) {
	return json.Marshal(confidenceIntervalJSON{
		StdErr:    nanToNull(ci.StdErr),
		HalfWidth: nanToNull(ci.HalfWidth),
		Lower:     nanToNull(ci.Lower),
		Upper:     nanToNull(ci.Upper),
		Defined:   ci.Defined,
	})
}

func (ci *ConfidenceInterval) UnmarshalJSON(data []byte) error {
	var w confidenceIntervalJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	ci.StdErr = nullToNaN(w.StdErr)
	ci.HalfWidth = nullToNaN(w.HalfWidth)
	ci.Lower = nullToNaN(w.Lower)
	ci.Upper = nullToNaN(w.Upper)
	ci.Defined = w.Defined
	return nil
}

func nanToNull(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}

func nullToNaN(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}
	return *v
}
