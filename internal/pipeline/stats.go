package pipeline

import "time"

// RunStats tracks what one run moved and produced.
type RunStats struct {
	InputBytes      int64
	UploadedBytes   int64
	DownloadedBytes int64
	JobID           string
	OutputURI       string
	Submitted       bool
	Downloaded      bool
	Elapsed         time.Duration
}

// SizeDelta returns the byte difference between the downloaded output and
// the input. Negative means the output is smaller.
func (s *RunStats) SizeDelta() int64 {
	if !s.Downloaded {
		return 0
	}
	return s.DownloadedBytes - s.InputBytes
}
