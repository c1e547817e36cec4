package planner

import "math"

// DefaultMaxLongEdge caps the longest output edge.
const DefaultMaxLongEdge = 1920

// PlanGeometry computes the output frame for a source of width x height with
// the longest edge capped at maxLongEdge.
//
// Sources already within the cap only get even-rounded (scale factor 1).
// Larger sources are scaled by maxLongEdge/longEdge. The ratio is truncated
// to three decimal places (truncated, not rounded: a rounded-up ratio could
// push the long edge past the cap) and each dimension floored, then
// even-rounded. The returned ScaleFactor is recomputed from the final
// dimensions, not the raw ratio, since even-rounding perturbs the true
// value.
//
// Inputs below 2x2 are not guarded here: a 1x1 source rounds to 0x0 and must
// be rejected upstream.
func PlanGeometry(width, height, maxLongEdge int) OutputGeometry {
	longEdge := width
	if height > longEdge {
		longEdge = height
	}

	if longEdge <= maxLongEdge {
		return OutputGeometry{
			Width:       evenFloor(width),
			Height:      evenFloor(height),
			ScaleFactor: 1,
		}
	}

	factor := math.Floor(float64(maxLongEdge)/float64(longEdge)*1000) / 1000
	outW := evenFloor(int(float64(width) * factor))
	outH := evenFloor(int(float64(height) * factor))

	scale := math.Min(
		float64(outW)/float64(width),
		float64(outH)/float64(height),
	)
	return OutputGeometry{Width: outW, Height: outH, ScaleFactor: scale}
}

// evenFloor rounds n down to the nearest even number. Never rounds up, never
// produces an odd value.
func evenFloor(n int) int {
	return n / 2 * 2
}
