package runpod

import (
	"context"
	"errors"
	"time"

	"github.com/SunbirdAI/sunbird-ai-api-sub001/internal/logger"
)

// RunJob submits the payload and drives one job to a result:
//
//	submit -> wait for output -> (timeout -> extended polling -> cancel)
//
// It returns the normalized result together with the raw status document
// gathered for diagnostics. A job-level timeout is not an error: the caller
// receives a result whose Status carries the last known remote state, so
// "remote says FAILED" stays distinguishable from "we gave up", and operators
// keep the final state of jobs that complete moments after local abandonment.
//
// Errors: ConfigError when the client is missing credentials (no network call
// attempted), ConnectionError when submission fails, and the context's own
// error when the caller cancels. Status-fetch failures along the way are
// logged and never escalate.
func (c *Client) RunJob(ctx context.Context, payload map[string]interface{}, timeout time.Duration) (NormalizedResult, RawJobDetails, error) {
	if timeout <= 0 {
		timeout = c.runTimeout
	}

	job, err := c.Submit(ctx, payload)
	if err != nil {
		return NormalizedResult{}, nil, err
	}

	// Baseline snapshot, purely diagnostic.
	details := job.Details(ctx)
	if details.Healthy() {
		logger.Infof("job %s submitted, status %s", job.ID(), details.Status())
	} else {
		logger.Warnf("job %s submitted, baseline status unavailable: %v", job.ID(), details["error"])
	}

	output, err := job.Output(ctx, timeout)
	if err != nil {
		var timedOut *TimeoutError
		if !errors.As(err, &timedOut) {
			// Caller cancellation propagates, never swallowed.
			return NormalizedResult{}, details, err
		}

		logger.Warnf("job %s produced no output within %s, entering extended polling", job.ID(), timeout)
		output, err = c.recoverLateOutput(ctx, job)
		if err != nil {
			if !errors.As(err, &timedOut) {
				return NormalizedResult{}, details, err
			}

			// Exhausted. Cancel the job, report the last known state.
			if cancelErr := job.Cancel(ctx); cancelErr != nil {
				logger.Warnf("cancel of job %s failed: %v", job.ID(), cancelErr)
			}
			final := job.Details(ctx)
			status := string(final.Status())
			logger.Errorf("job %s abandoned after extended polling, final status %s", job.ID(), status)
			return NormalizedResult{Status: &status}, final, nil
		}
	}

	// Refresh the snapshot so normalization sees the final document with its
	// queue and execution timings, not the stale baseline.
	if refreshed := job.Details(ctx); refreshed.Healthy() {
		details = refreshed
	}
	if details.Healthy() {
		return Normalize(map[string]interface{}(details)), details, nil
	}
	return Normalize(output), details, nil
}

// recoverLateOutput is the extended-polling fallback: up to pollAttempts
// rounds of a fixed pollInterval sleep followed by a status fetch, with one
// bounded output fetch whenever the status reports the job finished.
//
// The interval is fixed, not exponential, on purpose: the remote queue applies
// its own opaque backoff, and a short constant cadence minimizes added latency
// for a job suspected to be near completion. Do not "improve" this to
// exponential backoff.
func (c *Client) recoverLateOutput(ctx context.Context, job *Job) (interface{}, error) {
	for attempt := 1; attempt <= c.pollAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.pollInterval):
		}

		status, err := job.Status(ctx)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			logger.Warnf("job %s: poll %d/%d: %v", job.ID(), attempt, c.pollAttempts, err)
			continue
		}
		logger.Debugf("job %s: poll %d/%d: status %s", job.ID(), attempt, c.pollAttempts, status)

		if status == StatusCompleted || status == StatusFailed {
			output, err := job.Output(ctx, c.outputFetchTimeout)
			if err == nil {
				return output, nil
			}
			var timedOut *TimeoutError
			if !errors.As(err, &timedOut) {
				return nil, err
			}
			// The bounded fetch timed out; keep polling rather than
			// abandoning a job this close to done.
		}
	}
	return nil, &TimeoutError{
		JobID: job.ID(),
		Wait:  time.Duration(c.pollAttempts) * (c.pollInterval + c.outputFetchTimeout),
	}
}
