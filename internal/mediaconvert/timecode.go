package mediaconvert

import "fmt"

// Timecode renders a millisecond offset as the zero-based HH:MM:SS:FF string
// the service expects for overlay start times. Frames are always 00: overlay
// scheduling is second-granular, so sub-second remainders are dropped.
func Timecode(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	totalSec := ms / 1000
	h := totalSec / 3600
	m := (totalSec % 3600) / 60
	s := totalSec % 60
	return fmt.Sprintf("%02d:%02d:%02d:00", h, m, s)
}
