package planner

// Bitrate planning constants.
const (
	// DefaultSourceBitrateBps stands in when the probe couldn't measure a
	// source bitrate.
	DefaultSourceBitrateBps = 5_000_000

	// DefaultMaxBitrateBps is the output bitrate ceiling.
	DefaultMaxBitrateBps = 8_000_000
)

// PlanBitrate scales the source bitrate by the geometry's effective scale
// factor and caps the result. A zero or unknown source bitrate is replaced
// by DefaultSourceBitrateBps before scaling.
func PlanBitrate(sourceBps int64, scaleFactor float64, capBps int64) int64 {
	if sourceBps <= 0 {
		sourceBps = DefaultSourceBitrateBps
	}
	out := int64(float64(sourceBps) * scaleFactor)
	if out > capBps {
		out = capBps
	}
	return out
}
