package runpod

import (
	"fmt"
	"time"
)

// ConfigError indicates missing endpoint credentials or identifiers. It is
// fatal: no network call was attempted and retrying cannot help.
type ConfigError struct {
	Field string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("runpod: missing configuration: %s", e.Field)
}

// ConnectionError indicates a transport-level failure while talking to the
// serverless API. The whole operation may be retried by the caller.
type ConnectionError struct {
	Op  string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("runpod: %s: %v", e.Op, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// TimeoutError indicates a bounded wait for job output elapsed before the job
// reached a terminal state.
type TimeoutError struct {
	JobID string
	Wait  time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("runpod: job %s produced no output within %s", e.JobID, e.Wait)
}

// ValidationError indicates the remote system answered, but with a payload
// that does not match the shape the caller requires. Distinct from transport
// and timeout failures: the service was reachable, its answer is untrusted.
type ValidationError struct {
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("runpod: invalid response: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("runpod: invalid response: %s", e.Reason)
}

func (e *ValidationError) Unwrap() error { return e.Err }
