package component

import "math"

// roundTo3 rounds v to 3 decimal places, the precision spec.md mandates for
// every parent/child unit conversion.
func roundTo3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

func isIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
