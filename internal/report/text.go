package report

import (
	"fmt"
	"io"

	"github.com/caraga-geoinformatics/accuracy.report/internal/assess"
	"github.com/caraga-geoinformatics/accuracy.report/internal/units"
)

// WriteText writes a human-readable results summary: accuracies to four
// decimals, areas to two, one block per metric kind, matching the layout
// of the interactive tool's results window.
func WriteText(w io.Writer, r *assess.AssessmentReport, areaUnit string) error {
	var err error
	write := func(format string, args ...interface{}) {
		if err == nil {
			_, err = fmt.Fprintf(w, format, args...)
		}
	}

	write("User's Accuracy per Class:\n")
	for _, c := range r.Classes {
		write("  Class %d: %s\n", c.Class+1, formatMetric(c.UserAccuracy))
	}

	write("\nProducer's Accuracy per Class:\n")
	for _, c := range r.Classes {
		write("  Class %d: %s\n", c.Class+1, formatMetric(c.ProducerAccuracy))
	}

	write("\nOverall Accuracy: %s\n", formatMetric(r.Overall))

	write("\nError-Adjusted Area per Class (%s):\n", areaUnit)
	for _, c := range r.Classes {
		write("  Class %d: %s\n", c.Class+1, formatAreaMetric(c.Area, areaUnit))
	}

	if err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}
	return nil
}

func formatMetric(m assess.Metric) string {
	if !m.Estimate.Defined || !m.Interval.Defined {
		return NA
	}
	return fmt.Sprintf("%.4f, SE=%.4f, 95%% CI=±%.4f",
		m.Estimate.Value, m.Interval.StdErr, m.Interval.HalfWidth)
}

func formatAreaMetric(m assess.Metric, areaUnit string) string {
	if !m.Estimate.Defined || !m.Interval.Defined {
		return NA
	}
	return fmt.Sprintf("%.2f, SE=%.2f, 95%% CI=±%.2f",
		units.ConvertArea(m.Estimate.Value, areaUnit),
		units.ConvertArea(m.Interval.StdErr, areaUnit),
		units.ConvertArea(m.Interval.HalfWidth, areaUnit))
}
