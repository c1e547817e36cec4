package mediaconvert

import "fmt"

// SubmitError wraps a job submission failure so callers can distinguish
// "never entered the queue" from failures of an already-running job.
type SubmitError struct {
	Err error
}

func (e *SubmitError) Error() string {
	return fmt.Sprintf("submitting transcode job: %v", e.Err)
}

func (e *SubmitError) Unwrap() error { return e.Err }
