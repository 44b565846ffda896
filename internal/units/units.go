// Package units provides shared constants and validation for area units
package units

// Unit constants
const (
	SQM   = "sqm"
	HA    = "ha"
	SQKM  = "sqkm"
	ACRES = "acres"
)

// ValidUnits contains all valid unit values
var ValidUnits = []string{SQM, HA, SQKM, ACRES}

// IsValid checks if the given unit is in the list of valid units
func IsValid(unit string) bool {
	for _, validUnit := range ValidUnits {
		if unit == validUnit {
			return true
		}
	}
	return false
}

// GetValidUnitsString returns a comma-separated string of valid units for error messages
func GetValidUnitsString() string {
	return "sqm, ha, sqkm, acres"
}

// ConvertArea converts an area from square metres to the target units
// The assessment engine reports areas in m² (pixel area × pixel count)
func ConvertArea(areaSQM float64, targetUnits string) float64 {
	switch targetUnits {
	case HA:
		return areaSQM / 10000 // m² to hectares
	case SQKM:
		return areaSQM / 1e6 // m² to km²
	case ACRES:
		return areaSQM / 4046.8564224 // m² to international acres
	case SQM:
		return areaSQM // no conversion needed
	default:
		return areaSQM // default to m² if unknown unit
	}
}
