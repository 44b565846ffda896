package report

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/caraga-geoinformatics/accuracy.report/internal/assess"
	"github.com/caraga-geoinformatics/accuracy.report/internal/units"
)

func runScenarioA(t *testing.T) *assess.AssessmentReport {
	t.Helper()
	r, err := assess.Run(assess.Input{
		Matrix:     assess.ErrorMatrix{{60, 10}, {5, 25}},
		Population: assess.StratumPopulation{700, 300},
		PixelArea:  900,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	return r
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, runScenarioA(t), units.SQM); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("re-reading CSV failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want header + 2 class rows", len(records))
	}
	if len(records[0]) != len(csvHeader) {
		t.Fatalf("header has %d columns, want %d", len(records[0]), len(csvHeader))
	}

	row := records[1] // Class 1
	checks := map[string]string{
		"class":             "Class 1",
		"weight":            "0.700000",
		"user_accuracy":     "0.8571",
		"producer_accuracy": "0.9231",
		"area_proportion":   "0.650000",
		"area":              "585000.00",
		"area_se":           "32457.45",
		"overall_accuracy":  "0.8500",
	}
	for col, want := range checks {
		idx := columnIndex(t, col)
		if row[idx] != want {
			t.Errorf("column %s = %q, want %q", col, row[idx], want)
		}
	}

	// Overall columns repeat on every class row.
	idx := columnIndex(t, "overall_accuracy")
	if records[1][idx] != records[2][idx] {
		t.Errorf("overall accuracy differs between rows: %q vs %q", records[1][idx], records[2][idx])
	}
}

func TestWriteCSVAreaUnits(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, runScenarioA(t), units.HA); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("re-reading CSV failed: %v", err)
	}
	if got := records[1][columnIndex(t, "area")]; got != "58.50" {
		t.Errorf("area in hectares = %q, want 58.50", got)
	}
}

func TestWriteCSVUndefinedMetric(t *testing.T) {
	r, err := assess.Run(assess.Input{
		Matrix: assess.ErrorMatrix{
			{50, 5, 0},
			{4, 60, 0},
			{10, 10, 0},
		},
		Population: assess.StratumPopulation{500, 600, 200},
		PixelArea:  100,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, r, units.SQM); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}
	records, readErr := csv.NewReader(&buf).ReadAll()
	if readErr != nil {
		t.Fatalf("re-reading CSV failed: %v", readErr)
	}

	// Class 3 never appears as a reference label; its producer's-accuracy
	// cells must be explicit NA while the rest of the row is populated.
	row := records[3]
	if got := row[columnIndex(t, "producer_accuracy")]; got != NA {
		t.Errorf("producer_accuracy = %q, want %s", got, NA)
	}
	if got := row[columnIndex(t, "producer_accuracy_se")]; got != NA {
		t.Errorf("producer_accuracy_se = %q, want %s", got, NA)
	}
	if got := row[columnIndex(t, "user_accuracy")]; got == NA {
		t.Error("user_accuracy should not be NA for class 3")
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteText(&buf, runScenarioA(t), units.SQM); err != nil {
		t.Fatalf("WriteText failed: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"User's Accuracy per Class:",
		"Producer's Accuracy per Class:",
		"Overall Accuracy: 0.8500",
		"Error-Adjusted Area per Class (sqm):",
		"Class 1: 0.8571",
		"Class 1: 585000.00",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func columnIndex(t *testing.T, name string) int {
	t.Helper()
	for i, col := range csvHeader {
		if col == name {
			return i
		}
	}
	t.Fatalf("no column named %s", name)
	return -1
}
