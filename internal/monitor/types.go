package monitor

import (
	"context"
	"time"

	"github.com/backmassage/cloudmux/internal/naming"
)

// Status is the monitor's view of the remote job lifecycle.
type Status string

const (
	StatusSubmitted   Status = "SUBMITTED"
	StatusProgressing Status = "PROGRESSING"
	StatusComplete    Status = "COMPLETE"
	StatusError       Status = "ERROR"
	StatusCanceled    Status = "CANCELED"
	StatusUnknown     Status = "UNKNOWN"
)

// Terminal reports whether no further transition can occur from s.
func (s Status) Terminal() bool {
	switch s {
	case StatusComplete, StatusError, StatusCanceled:
		return true
	}
	return false
}

// JobState is one poll's snapshot of the remote job.
type JobState struct {
	Status       Status
	Phase        string // e.g. "PROBING", "TRANSCODING", "UPLOADING"
	Percent      int32  // -1 when the service did not report one
	ErrorCode    int32
	ErrorMessage string
	Echo         naming.EchoedOutput
}

// Service is the polling capability the monitor drives. Implemented by the
// mediaconvert client; faked in tests.
type Service interface {
	Poll(ctx context.Context, jobID string) (*JobState, error)
}

// Clock abstracts time so the polling loop is testable without real delays.
type Clock interface {
	Now() time.Time
	// Sleep blocks for d or until ctx is done, returning ctx.Err() in the
	// latter case.
	Sleep(ctx context.Context, d time.Duration) error
}

// RealClock returns the wall-clock implementation.
func RealClock() Clock { return realClock{} }

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
