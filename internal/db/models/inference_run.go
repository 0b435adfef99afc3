// Package models defines the persisted records of the inference API.
package models

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

const (
	// InferenceRunCreatedAtField is the database field name for the run creation timestamp
	InferenceRunCreatedAtField = "created_at"
)

// InferenceRun is the audit record written for every orchestrated remote job.
// Result holds the normalized result document; the timing columns are lifted
// out of it so operators can query queue and compute latency directly.
type InferenceRun struct {
	gorm.Model
	RequestID       string          `json:"request_id" gorm:"not null;uniqueIndex"`
	Task            string          `json:"task" gorm:"not null;index"`
	EndpointID      string          `json:"endpoint_id" gorm:"index"`
	JobID           string          `json:"job_id" gorm:"index"`
	Status          string          `json:"status" gorm:"index"`
	DelayTimeMs     *float64        `json:"delay_time_ms,omitempty"`
	ExecutionTimeMs *float64        `json:"execution_time_ms,omitempty"`
	WorkerID        string          `json:"worker_id,omitempty"`
	Result          json.RawMessage `json:"result,omitempty" gorm:"type:jsonb"`
	Error           string          `json:"error,omitempty" gorm:"type:text"`
	CreatedAt       time.Time       `json:"created_at" gorm:"index"`
}

// ListOptions contains pagination options for list queries
type ListOptions struct {
	Limit  int
	Offset int
}
