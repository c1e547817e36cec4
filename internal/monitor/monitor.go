// Package monitor drives a submitted remote transcode job to a terminal
// state. It polls the job service at a fixed interval, emits one event per
// status transition and throttled progress events while the job runs, and
// resolves the output artifact URI once the job completes.
//
// The monitor owns all of its session state; nothing here is shared between
// jobs, so independent jobs can run their own monitors concurrently.
package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/backmassage/cloudmux/internal/naming"
)

const (
	// DefaultPollInterval between status polls.
	DefaultPollInterval = 5 * time.Second

	// progressEverySec throttles repeated same-status progress events;
	// a newly reported percent-complete value bypasses the throttle.
	progressEverySec = 10

	// DefaultMaxPollFailures bounds consecutive transient poll errors
	// before the monitor gives up.
	DefaultMaxPollFailures = 10
)

// Result is the outcome of a completed job. OutputURI is the reconstructed
// artifact location; Resolved is false when the echoed settings were too
// incomplete and OutputURI degraded to the destination prefix (possibly
// empty). Reconstruction failure never turns a completed job into an error.
type Result struct {
	JobID     string
	OutputURI string
	Resolved  bool
}

// Monitor polls one remote job until it reaches a terminal state. The event
// hooks are optional; the pipeline wires them to the logger, tests count
// invocations. Zero-value Interval, MaxPollFailures, and Clock take
// defaults.
type Monitor struct {
	Service         Service
	Interval        time.Duration
	MaxPollFailures int
	Clock           Clock

	// OnTransition fires exactly once per observed status change,
	// including the first poll (from StatusUnknown).
	OnTransition func(from, to Status, st *JobState)
	// OnProgress fires for repeated PROGRESSING polls, at most every
	// progressEverySec seconds unless the reported percent changed.
	OnProgress func(st *JobState, elapsed time.Duration)
	// OnPollError fires for each transient poll failure that will be
	// retried.
	OnPollError func(err error, attempt int)
}

// session is the per-job mutable polling state. It lives for one Run call
// and is never shared.
type session struct {
	jobID             string
	lastStatus        Status
	startedAt         time.Time
	lastProgressLogAt int64 // elapsed seconds at the last progress event
	lastPercent       int32
}

// Run polls jobID until it completes, fails, or is canceled. Transient poll
// errors are retried after the normal interval, up to MaxPollFailures
// consecutive failures. ctx cancels the loop between and during waits.
func (m *Monitor) Run(ctx context.Context, jobID string) (*Result, error) {
	interval := m.Interval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	maxFailures := m.MaxPollFailures
	if maxFailures <= 0 {
		maxFailures = DefaultMaxPollFailures
	}
	clock := m.Clock
	if clock == nil {
		clock = realClock{}
	}

	s := &session{
		jobID:       jobID,
		lastStatus:  StatusUnknown,
		startedAt:   clock.Now(),
		lastPercent: -1,
	}

	failures := 0
	for {
		st, err := m.Service.Poll(ctx, jobID)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			failures++
			if failures >= maxFailures {
				return nil, fmt.Errorf("polling job %s: %d consecutive failures: %w", jobID, failures, err)
			}
			if m.OnPollError != nil {
				m.OnPollError(err, failures)
			}
			if err := clock.Sleep(ctx, interval); err != nil {
				return nil, err
			}
			continue
		}
		failures = 0

		m.observe(clock, s, st)

		switch st.Status {
		case StatusComplete:
			return resolveResult(jobID, st), nil
		case StatusError:
			return nil, &JobFailedError{JobID: jobID, Code: st.ErrorCode, Message: st.ErrorMessage}
		case StatusCanceled:
			return nil, &JobCanceledError{JobID: jobID, Message: st.ErrorMessage}
		}

		if err := clock.Sleep(ctx, interval); err != nil {
			return nil, err
		}
	}
}

// observe applies one poll to the session: a changed status emits a single
// transition event; an unchanged PROGRESSING status emits a throttled
// progress event.
func (m *Monitor) observe(clock Clock, s *session, st *JobState) {
	if st.Status != s.lastStatus {
		if m.OnTransition != nil {
			m.OnTransition(s.lastStatus, st.Status, st)
		}
		s.lastStatus = st.Status
		if st.Percent >= 0 {
			s.lastPercent = st.Percent
		}
		return
	}

	if st.Status != StatusProgressing {
		return
	}

	elapsed := clock.Now().Sub(s.startedAt)
	elapsedSec := int64(elapsed / time.Second)
	newPercent := st.Percent >= 0 && st.Percent != s.lastPercent
	if newPercent || elapsedSec-s.lastProgressLogAt >= progressEverySec {
		if m.OnProgress != nil {
			m.OnProgress(st, elapsed)
		}
		s.lastProgressLogAt = elapsedSec
		if st.Percent >= 0 {
			s.lastPercent = st.Percent
		}
	}
}

// resolveResult is the failure-tolerant post-step after a COMPLETE status:
// terminal detection already happened, and a naming gap here only degrades
// the URI, never the outcome.
func resolveResult(jobID string, st *JobState) *Result {
	uri, ok := naming.ArtifactURI(st.Echo)
	return &Result{JobID: jobID, OutputURI: uri, Resolved: ok}
}
