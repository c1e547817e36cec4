package planner

// Overlay sizing constants.
const (
	overlaySizePercent = 10 // of the shorter output edge
	overlayMinSizePx   = 80
	overlayMinOffsetPx = 20

	// DefaultPerCornerMs is how long the watermark holds each corner in
	// looping mode.
	DefaultPerCornerMs = 5000

	// DefaultOpacityPercent is the watermark opacity.
	DefaultOpacityPercent = 70
)

// staticColorSpaces lists the source pixel formats whose frames the remote
// service's overlay preprocessor cannot combine with timed placements. For
// these the plan degrades to two untimed full-length placements.
var staticColorSpaces = map[string]bool{
	"yuv420p10le": true,
	"yuv420p":     true,
	"yuvj420p":    true,
}

// StaticOverlayColorSpace reports whether colorSpace forces static mode.
func StaticOverlayColorSpace(colorSpace string) bool {
	return staticColorSpaces[colorSpace]
}

// OverlayOptions tunes the overlay sequence. Zero values take defaults.
type OverlayOptions struct {
	PerCornerMs    int64
	OpacityPercent int
}

func (o OverlayOptions) withDefaults() OverlayOptions {
	if o.PerCornerMs <= 0 {
		o.PerCornerMs = DefaultPerCornerMs
	}
	if o.OpacityPercent <= 0 {
		o.OpacityPercent = DefaultOpacityPercent
	}
	return o
}

// PlanOverlays produces the ordered watermark placement list for the output
// frame. Positions are in final post-rotation, post-scale pixels, since the
// remote service applies rotation before overlay insertion.
//
// Looping mode bounces the image between the top-left and bottom-right
// corners, holding each for PerCornerMs, repeating until the video ends; the
// last placement is truncated to end exactly at the duration boundary.
// Static mode (color-space fallback) pins one image in each of the two
// corners for the whole video.
//
// Invariants: placements are ordered by start time, layers ascend from 0,
// and in looping mode the emitted intervals tile [0, durationMs) exactly.
func PlanOverlays(geom OutputGeometry, durationMs int64, colorSpace string, opts OverlayOptions) []OverlayPlacement {
	opts = opts.withDefaults()

	size, offset := overlayMetrics(geom)
	corners := [2]struct{ x, y int }{
		{offset, offset},
		{geom.Width - size - offset, geom.Height - size - offset},
	}

	if StaticOverlayColorSpace(colorSpace) {
		placements := make([]OverlayPlacement, 0, 2)
		for i, c := range corners {
			placements = append(placements, OverlayPlacement{
				Layer:          i,
				X:              c.x,
				Y:              c.y,
				SizePx:         size,
				OpacityPercent: opts.OpacityPercent,
			})
		}
		return placements
	}

	perCorner := opts.PerCornerMs
	cycle := 2 * perCorner
	cycles := (durationMs + cycle - 1) / cycle

	var placements []OverlayPlacement
	layer := 0
	for i := int64(0); i < cycles; i++ {
		for j := 0; j < 2; j++ {
			start := i*cycle + int64(j)*perCorner
			if start >= durationMs {
				break
			}
			dur := perCorner
			if start+dur > durationMs {
				dur = durationMs - start
			}
			placements = append(placements, OverlayPlacement{
				Layer:          layer,
				StartMs:        start,
				DurationMs:     dur,
				X:              corners[j].x,
				Y:              corners[j].y,
				SizePx:         size,
				OpacityPercent: opts.OpacityPercent,
				Timed:          true,
			})
			layer++
		}
	}
	return placements
}

// overlayMetrics derives the square watermark size and its corner inset from
// the output frame. Size is a percentage of the shorter edge with a pixel
// floor; the inset percentage grows with frame size, clamped to 3-5%.
func overlayMetrics(geom OutputGeometry) (size, offset int) {
	minDim := geom.Width
	if geom.Height < minDim {
		minDim = geom.Height
	}

	size = minDim * overlaySizePercent / 100
	if size < overlayMinSizePx {
		size = overlayMinSizePx
	}

	pct := float64(minDim) / 400
	if pct < 3 {
		pct = 3
	} else if pct > 5 {
		pct = 5
	}
	offset = int(float64(minDim) * pct / 100)
	if offset < overlayMinOffsetPx {
		offset = overlayMinOffsetPx
	}
	return size, offset
}
