// Package planner derives everything a transcode job needs from the probed
// source: output geometry, output bitrate, and the watermark overlay
// sequence, assembled into a single JobPlan.
//
// All planners are pure functions of their inputs. The only side effect in
// this package is reading the submission timestamp passed into BuildJobPlan.
package planner
