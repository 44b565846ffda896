// Package report serializes an AssessmentReport into the flat formats the
// presentation layer ships: a CSV table (one row per class plus an overall
// row) and a human-readable text summary. The engine itself defines no
// file format; everything here is a view over an already-computed report.
package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/caraga-geoinformatics/accuracy.report/internal/assess"
	"github.com/caraga-geoinformatics/accuracy.report/internal/units"
)

// NA is the cell value written for undefined metrics.
const NA = "NA"

// csvHeader is the fixed column layout of the export table. Confidence
// columns hold the 95% half-width (z × SE), matching the interactive
// tool's export format.
var csvHeader = []string{
	"class",
	"weight",
	"user_accuracy", "user_accuracy_se", "user_accuracy_ci95",
	"producer_accuracy", "producer_accuracy_se", "producer_accuracy_ci95",
	"area_proportion", "area_proportion_se", "area_proportion_ci95",
	"area", "area_se", "area_ci95",
	"overall_accuracy", "overall_accuracy_se", "overall_accuracy_ci95",
}

// WriteCSV writes the report as a flat table with one row per class. The
// overall-accuracy columns are repeated on every row so each row is
// self-contained, as in the reference tool's CSV export. Areas are
// converted from m² to areaUnit.
func WriteCSV(w io.Writer, r *assess.AssessmentReport, areaUnit string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, c := range r.Classes {
		row := []string{
			fmt.Sprintf("Class %d", c.Class+1),
			fmt.Sprintf("%.6f", r.Weights[c.Class]),
		}
		row = append(row, metricColumns(c.UserAccuracy, "%.4f")...)
		row = append(row, metricColumns(c.ProducerAccuracy, "%.4f")...)
		row = append(row, metricColumns(c.AreaProportion, "%.6f")...)
		row = append(row, areaColumns(c.Area, areaUnit)...)
		row = append(row, metricColumns(r.Overall, "%.4f")...)
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row for class %d: %w", c.Class, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

// metricColumns renders (point, SE, CI half-width) with the given format,
// or NA cells for an undefined metric.
func metricColumns(m assess.Metric, format string) []string {
	if !m.Estimate.Defined || !m.Interval.Defined {
		return []string{NA, NA, NA}
	}
	return []string{
		fmt.Sprintf(format, m.Estimate.Value),
		fmt.Sprintf(format, m.Interval.StdErr),
		fmt.Sprintf(format, m.Interval.HalfWidth),
	}
}

func areaColumns(m assess.Metric, areaUnit string) []string {
	if !m.Estimate.Defined || !m.Interval.Defined {
		return []string{NA, NA, NA}
	}
	return []string{
		fmt.Sprintf("%.2f", units.ConvertArea(m.Estimate.Value, areaUnit)),
		fmt.Sprintf("%.2f", units.ConvertArea(m.Interval.StdErr, areaUnit)),
		fmt.Sprintf("%.2f", units.ConvertArea(m.Interval.HalfWidth, areaUnit)),
	}
}
