package probe

// SourceProbe holds the measured properties of a source video that the
// planners consume. It is created once per job and read-only afterwards.
//
// Width and Height always describe the visually upright frame: when the
// container carries a ±90/±270 rotation, the raw probe dimensions are
// swapped before anything downstream sees them.
type SourceProbe struct {
	DurationMs      int64
	Width           int
	Height          int
	BitrateBps      int64
	RotationDegrees int
	ColorSpace      string // ffprobe pixel format identifier, e.g. "yuv420p"
	FromDefaults    bool   // true when probing failed and Defaults() was substituted
}

// Default values substituted when the probe fails. The job still runs; the
// remote service works from its own analysis of the real file.
const (
	DefaultDurationMs = 15000
	DefaultWidth      = 1920
	DefaultHeight     = 1080
	DefaultBitrateBps = 5_000_000
	DefaultColorSpace = "unknown"
)

// Defaults returns the documented fallback SourceProbe used when ffprobe is
// unavailable or its output cannot be parsed.
func Defaults() *SourceProbe {
	return &SourceProbe{
		DurationMs:   DefaultDurationMs,
		Width:        DefaultWidth,
		Height:       DefaultHeight,
		BitrateBps:   DefaultBitrateBps,
		ColorSpace:   DefaultColorSpace,
		FromDefaults: true,
	}
}

// Rotated reports whether the source carries a quarter-turn rotation, i.e.
// whether the raw dimensions were swapped to produce Width/Height.
func (p *SourceProbe) Rotated() bool {
	r := p.RotationDegrees % 180
	return r == 90 || r == -90
}
