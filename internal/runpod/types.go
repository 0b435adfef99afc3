// Package runpod implements the client for the serverless inference
// endpoints: job submission, bounded waits for output, extended polling for
// late results, cancellation, and normalization of the result shapes the
// platform returns.
package runpod

// JobStatus represents the remote state of a submitted job.
type JobStatus string

// Job status values as reported by the serverless API. StatusUnknown is local:
// it marks a failed observation, not a failed job.
const (
	StatusInQueue    JobStatus = "IN_QUEUE"
	StatusInProgress JobStatus = "IN_PROGRESS"
	StatusCompleted  JobStatus = "COMPLETED"
	StatusFailed     JobStatus = "FAILED"
	StatusCancelled  JobStatus = "CANCELLED"
	StatusTimedOut   JobStatus = "TIMED_OUT"
	StatusUnknown    JobStatus = "UNKNOWN"
)

// Terminal reports whether the job has reached a final state.
func (s JobStatus) Terminal() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusCancelled, StatusTimedOut:
		return true
	}
	return false
}

// RawJobDetails is the untyped document returned by the status endpoint. Its
// schema varies across provider versions, so it is kept as a plain map and
// merged into logs and diagnostics rather than trusted for control flow.
type RawJobDetails map[string]interface{}

// Status returns the status string carried by the document, or StatusUnknown
// when the document has none.
func (d RawJobDetails) Status() JobStatus {
	if s, ok := d["status"].(string); ok && s != "" {
		return JobStatus(s)
	}
	return StatusUnknown
}

// Healthy reports whether the document came from a successful status fetch.
// Degenerate documents produced after a failed fetch carry StatusUnknown.
func (d RawJobDetails) Healthy() bool {
	return len(d) > 0 && d.Status() != StatusUnknown
}
