package monitor

import "fmt"

// JobFailedError is the remote job's own ERROR terminal state, carrying the
// service-supplied diagnostic code and message when present.
type JobFailedError struct {
	JobID   string
	Code    int32
	Message string
}

func (e *JobFailedError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("job %s failed (code %d): %s", e.JobID, e.Code, e.Message)
	}
	return fmt.Sprintf("job %s failed (code %d)", e.JobID, e.Code)
}

// JobCanceledError is the CANCELED terminal state. Kept distinct from
// JobFailedError so callers can tell a cancellation from a failure.
type JobCanceledError struct {
	JobID   string
	Message string
}

func (e *JobCanceledError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("job %s canceled: %s", e.JobID, e.Message)
	}
	return fmt.Sprintf("job %s canceled", e.JobID)
}
