package runpod

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/SunbirdAI/sunbird-ai-api-sub001/internal/logger"
)

// Job is a handle for one submitted job. It is owned by a single RunJob call
// for its whole lifetime and is never persisted or reused, but its own
// methods are safe to call concurrently.
type Job struct {
	client *Client
	id     string

	mu       sync.Mutex
	terminal bool
	status   JobStatus
	output   interface{}
}

// ID returns the job id assigned by the remote system at submission.
func (j *Job) ID() string { return j.id }

type statusResponse struct {
	Status JobStatus   `json:"status"`
	Output interface{} `json:"output"`
}

// Status fetches the current job status. A transport failure yields
// StatusUnknown together with a ConnectionError, so callers can tell a failed
// observation from a failed job. Once the job is known terminal the cached
// status is returned without a network call.
func (j *Job) Status(ctx context.Context) (JobStatus, error) {
	j.mu.Lock()
	if j.terminal {
		defer j.mu.Unlock()
		return j.status, nil
	}
	j.mu.Unlock()

	var resp statusResponse
	if err := j.client.executeRequest(ctx, http.MethodGet, j.client.statusURL(j.id), nil, &resp); err != nil {
		return StatusUnknown, &ConnectionError{Op: "fetch status for job " + j.id, Err: err}
	}
	if resp.Status == "" {
		return StatusUnknown, nil
	}
	if resp.Status.Terminal() {
		j.remember(resp.Status, resp.Output)
	}
	return resp.Status, nil
}

// Output suspends until the job reaches a terminal state or wait elapses, in
// which case it fails with a TimeoutError. Transient status-fetch failures
// during the wait are swallowed: the job may well be healthy even when the
// observation is not. Once terminal, subsequent calls return the cached
// result without touching the network.
func (j *Job) Output(ctx context.Context, wait time.Duration) (interface{}, error) {
	j.mu.Lock()
	if j.terminal {
		defer j.mu.Unlock()
		return j.output, nil
	}
	j.mu.Unlock()

	timeout := time.NewTimer(wait)
	defer timeout.Stop()

	for {
		var resp statusResponse
		err := j.client.executeRequest(ctx, http.MethodGet, j.client.statusURL(j.id), nil, &resp)
		if err == nil && resp.Status.Terminal() {
			j.remember(resp.Status, resp.Output)
			return resp.Output, nil
		}
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			logger.Debugf("output wait for job %s: status fetch failed: %v", j.id, err)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timeout.C:
			return nil, &TimeoutError{JobID: j.id, Wait: wait}
		case <-time.After(j.client.statusInterval):
		}
	}
}

// Cancel requests cancellation of the job. It is best-effort and idempotent:
// cancelling a job already known terminal is a no-op, and the result of the
// remote call is not required for correctness.
func (j *Job) Cancel(ctx context.Context) error {
	j.mu.Lock()
	if j.terminal {
		j.mu.Unlock()
		return nil
	}
	j.mu.Unlock()

	if err := j.client.executeRequest(ctx, http.MethodPost, j.client.cancelURL(j.id), nil, nil); err != nil {
		return &ConnectionError{Op: "cancel job " + j.id, Err: err}
	}
	return nil
}

// Details fetches the raw status document for this job. Best-effort, never
// fails; see Client.Details.
func (j *Job) Details(ctx context.Context) RawJobDetails {
	return j.client.Details(ctx, j.id)
}

func (j *Job) remember(status JobStatus, output interface{}) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if !j.terminal {
		j.terminal = true
		j.status = status
		j.output = output
	}
}
