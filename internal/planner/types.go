package planner

// OutputGeometry is the planned output frame: even dimensions, with the
// longest edge capped, and the effective scale factor actually achieved
// after rounding. ScaleFactor is what the bitrate planner must use; the raw
// cap ratio is perturbed by even-rounding.
type OutputGeometry struct {
	Width       int
	Height      int
	ScaleFactor float64 // in (0, 1]
}

// OverlayPlacement is one timed instance of the watermark image: where it
// sits inside the output frame, how large, how opaque, and when it shows.
//
// In static mode Timed is false and StartMs/DurationMs are zero: the image
// spans the whole video and the remote format omits both fields entirely.
type OverlayPlacement struct {
	Layer          int
	StartMs        int64
	DurationMs     int64
	X, Y           int
	SizePx         int
	OpacityPercent int
	Timed          bool
}

// JobPlan is the complete, immutable submission payload handed to the remote
// job service: the uploaded input, the planned output, and the overlay
// sequence, plus the naming and destination details the service echoes back.
type JobPlan struct {
	InputURI          string
	Geometry          OutputGeometry
	BitrateBps        int64
	Overlays          []OverlayPlacement
	WatermarkURI      string
	NameModifier      string
	DestinationPrefix string // s3:// prefix, no trailing slash
}
