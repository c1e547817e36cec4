package planner

import (
	"time"

	"github.com/backmassage/cloudmux/internal/config"
	"github.com/backmassage/cloudmux/internal/naming"
	"github.com/backmassage/cloudmux/internal/probe"
)

// BuildJobPlan produces the complete submission payload from config and
// probe data. This is the central planning step the pipeline calls once per
// job.
//
// Flow:
//  1. Geometry from the rotation-normalized source dimensions
//  2. Bitrate from the source bitrate and the achieved scale factor
//  3. Overlay sequence against the OUTPUT geometry: the remote service
//     applies rotation before overlay insertion, so placements must target
//     final post-rotation, post-scale pixels
//  4. Name modifier from the submission time
func BuildJobPlan(inputURI string, pr *probe.SourceProbe, cfg *config.Config, submittedAt time.Time) *JobPlan {
	geom := PlanGeometry(pr.Width, pr.Height, cfg.MaxLongEdge)
	bitrate := PlanBitrate(pr.BitrateBps, geom.ScaleFactor, cfg.MaxBitrateBps)
	overlays := PlanOverlays(geom, pr.DurationMs, pr.ColorSpace, OverlayOptions{
		PerCornerMs:    cfg.OverlayCornerMs,
		OpacityPercent: cfg.OverlayOpacity,
	})

	return &JobPlan{
		InputURI:          inputURI,
		Geometry:          geom,
		BitrateBps:        bitrate,
		Overlays:          overlays,
		WatermarkURI:      cfg.WatermarkURI,
		NameModifier:      naming.NameModifier(submittedAt),
		DestinationPrefix: cfg.Destination(),
	}
}
