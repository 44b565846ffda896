package units

import (
	"math"
	"testing"
)

func TestIsValid(t *testing.T) {
	tests := []struct {
		name     string
		unit     string
		expected bool
	}{
		{"valid sqm", SQM, true},
		{"valid ha", HA, true},
		{"valid sqkm", SQKM, true},
		{"valid acres", ACRES, true},
		{"invalid unit", "invalid", false},
		{"empty unit", "", false},
		{"uppercase HA", "HA", false}, // Case-sensitive
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsValid(tt.unit)
			if result != tt.expected {
				t.Errorf("IsValid(%s) = %v, want %v", tt.unit, result, tt.expected)
			}
		})
	}
}

func TestGetValidUnitsString(t *testing.T) {
	result := GetValidUnitsString()
	expected := "sqm, ha, sqkm, acres"
	if result != expected {
		t.Errorf("GetValidUnitsString() = %s, want %s", result, expected)
	}
}

func TestConvertArea(t *testing.T) {
	tests := []struct {
		name     string
		areaSQM  float64
		unit     string
		expected float64
	}{
		// Test SQM (no conversion)
		{"0 m² to sqm", 0.0, SQM, 0.0},
		{"900 m² to sqm", 900.0, SQM, 900.0},

		// Test hectare conversion (1 ha = 10000 m²)
		{"0 m² to ha", 0.0, HA, 0.0},
		{"10000 m² to ha", 10000.0, HA, 1.0},
		{"585000 m² to ha", 585000.0, HA, 58.5},

		// Test km² conversion (1 km² = 1e6 m²)
		{"1e6 m² to sqkm", 1e6, SQKM, 1.0},
		{"585000 m² to sqkm", 585000.0, SQKM, 0.585},

		// Test acre conversion (1 acre = 4046.8564224 m²)
		{"4046.8564224 m² to acres", 4046.8564224, ACRES, 1.0},

		// Test unknown unit (falls back to m²)
		{"900 m² to unknown", 900.0, "unknown", 900.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ConvertArea(tt.areaSQM, tt.unit)
			if math.Abs(result-tt.expected) > 1e-9 {
				t.Errorf("ConvertArea(%v, %s) = %v, want %v", tt.areaSQM, tt.unit, result, tt.expected)
			}
		})
	}
}
