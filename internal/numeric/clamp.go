// Package numeric provides the overflow-clamping policy shared by the
// network core and the feature-extraction boundary.
package numeric

import "math"

// Clamp maps non-finite values back into the representable range.
// Positive and negative infinity become the largest finite values, NaN
// becomes zero. Finite inputs pass through unchanged.
func Clamp(x float64) float64 {
	if math.IsInf(x, 1) {
		return math.MaxFloat64
	}
	if math.IsInf(x, -1) {
		return -math.MaxFloat64
	}
	if math.IsNaN(x) {
		return 0
	}
	return x
}
