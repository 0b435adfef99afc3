// Package repos provides data access for the persisted models.
package repos

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/SunbirdAI/sunbird-ai-api-sub001/internal/db/models"
)

// InferenceRunRepository provides access to inference run records
type InferenceRunRepository struct {
	db *gorm.DB
}

// NewInferenceRunRepository creates a new inference run repository instance
func NewInferenceRunRepository(db *gorm.DB) *InferenceRunRepository {
	return &InferenceRunRepository{db: db}
}

// Create creates a new inference run record
func (r *InferenceRunRepository) Create(ctx context.Context, run *models.InferenceRun) error {
	if run.RequestID == "" {
		return fmt.Errorf("request_id is required")
	}
	return r.db.WithContext(ctx).Create(run).Error
}

// UpdateResult records the outcome of a finished run
func (r *InferenceRunRepository) UpdateResult(ctx context.Context, requestID string, run *models.InferenceRun) error {
	var resultJSON json.RawMessage
	if run.Result != nil {
		resultJSON = run.Result
	}

	return r.db.WithContext(ctx).Model(&models.InferenceRun{}).
		Where(&models.InferenceRun{RequestID: requestID}).
		Updates(map[string]interface{}{
			"job_id":            run.JobID,
			"status":            run.Status,
			"delay_time_ms":     run.DelayTimeMs,
			"execution_time_ms": run.ExecutionTimeMs,
			"worker_id":         run.WorkerID,
			"result":            resultJSON,
			"error":             run.Error,
		}).Error
}

// GetByRequestID retrieves a run by its request id
func (r *InferenceRunRepository) GetByRequestID(ctx context.Context, requestID string) (*models.InferenceRun, error) {
	var run models.InferenceRun
	err := r.db.WithContext(ctx).
		Where(&models.InferenceRun{RequestID: requestID}).
		First(&run).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("inference run not found: %w", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get inference run: %w", err)
	}
	return &run, nil
}

// List returns runs for a task, newest first. An empty task matches all runs.
func (r *InferenceRunRepository) List(ctx context.Context, task string, opts *models.ListOptions) ([]models.InferenceRun, error) {
	var runs []models.InferenceRun
	qry := &models.InferenceRun{}
	if task != "" {
		qry.Task = task
	}

	err := r.db.WithContext(ctx).Model(&models.InferenceRun{}).
		Where(qry).
		Limit(opts.Limit).Offset(opts.Offset).
		Order(models.InferenceRunCreatedAtField + " DESC").
		Find(&runs).Error
	return runs, err
}

// Count returns the number of runs for a task. An empty task matches all runs.
func (r *InferenceRunRepository) Count(ctx context.Context, task string) (int64, error) {
	var count int64
	qry := &models.InferenceRun{}
	if task != "" {
		qry.Task = task
	}
	err := r.db.WithContext(ctx).Model(&models.InferenceRun{}).Where(qry).Count(&count).Error
	return count, err
}
