// Package pipeline orchestrates one transcode run end to end: local
// validation, probe, upload, plan computation, job submission, lifecycle
// monitoring, and result download.
package pipeline
