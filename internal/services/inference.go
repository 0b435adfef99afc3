// Package services implements the application services of the inference API.
package services

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/SunbirdAI/sunbird-ai-api-sub001/internal/cache"
	"github.com/SunbirdAI/sunbird-ai-api-sub001/internal/db/models"
	"github.com/SunbirdAI/sunbird-ai-api-sub001/internal/logger"
	"github.com/SunbirdAI/sunbird-ai-api-sub001/internal/runpod"
	"github.com/SunbirdAI/sunbird-ai-api-sub001/internal/storage"
	"github.com/SunbirdAI/sunbird-ai-api-sub001/internal/types"
)

// Orchestrator runs one remote job to completion. Satisfied by
// *runpod.Client; narrowed to an interface so tests can fake the remote.
type Orchestrator interface {
	RunJob(ctx context.Context, payload map[string]interface{}, timeout time.Duration) (runpod.NormalizedResult, runpod.RawJobDetails, error)
	EndpointID() string
}

// RunStore persists the audit trail of orchestrated jobs.
type RunStore interface {
	Create(ctx context.Context, run *models.InferenceRun) error
	UpdateResult(ctx context.Context, requestID string, run *models.InferenceRun) error
	GetByRequestID(ctx context.Context, requestID string) (*models.InferenceRun, error)
}

// Results caches normalized results for repeated requests.
type Results interface {
	Get(ctx context.Context, key string) (*runpod.NormalizedResult, error)
	Set(ctx context.Context, key string, result runpod.NormalizedResult) error
}

// RemoteStatusError reports a run that ended without a COMPLETED result:
// either the remote declared the job failed, or every recovery attempt was
// exhausted and the job was cancelled.
type RemoteStatusError struct {
	Status runpod.JobStatus
}

func (e *RemoteStatusError) Error() string {
	return fmt.Sprintf("remote job finished with status %s", e.Status)
}

// InferenceService fronts the remote inference endpoint for the HTTP layer.
// The audit store, result cache and audio store are optional; a nil
// dependency disables that concern.
type InferenceService struct {
	client  Orchestrator
	runs    RunStore
	results Results
	audio   storage.AudioStore
	timeout time.Duration
}

// NewInferenceService creates the service with its collaborators.
func NewInferenceService(client Orchestrator, runs RunStore, results Results, audio storage.AudioStore, timeout time.Duration) *InferenceService {
	return &InferenceService{
		client:  client,
		runs:    runs,
		results: results,
		audio:   audio,
		timeout: timeout,
	}
}

// Translate runs a translation job. Identical requests are served from the
// result cache when one is configured.
func (s *InferenceService) Translate(ctx context.Context, req *types.TranslateRequest) (*types.TranslateResponse, error) {
	payload := map[string]interface{}{
		"task":            types.TaskTranslate,
		"source_language": req.SourceLanguage,
		"target_language": req.TargetLanguage,
		"text":            req.Text,
	}

	key := cache.Key(types.TaskTranslate, payload)
	if s.results != nil {
		cached, err := s.results.Get(ctx, key)
		if err != nil {
			logger.Warnf("result cache lookup failed: %v", err)
		} else if cached != nil {
			var out types.TranslateOutput
			if decodeOutput(cached.Output, &out) == nil && out.TranslatedText != "" {
				return &types.TranslateResponse{
					TranslatedText: out.TranslatedText,
					Status:         statusString(cached.Status),
				}, nil
			}
		}
	}

	requestID := uuid.NewString()
	result, err := s.run(ctx, requestID, types.TaskTranslate, payload)
	if err != nil {
		return nil, err
	}

	var out types.TranslateOutput
	if decodeErr := decodeOutput(result.Output, &out); decodeErr != nil || out.TranslatedText == "" {
		return nil, s.invalid(ctx, requestID, "translate output carries no translated_text", decodeErr)
	}

	if s.results != nil {
		if err := s.results.Set(ctx, key, result); err != nil {
			logger.Warnf("result cache store failed: %v", err)
		}
	}

	return &types.TranslateResponse{
		RequestID:      requestID,
		TranslatedText: out.TranslatedText,
		Status:         statusString(result.Status),
	}, nil
}

// Transcribe runs a speech-to-text job against previously stored audio.
func (s *InferenceService) Transcribe(ctx context.Context, req *types.TranscribeRequest) (*types.TranscribeResponse, error) {
	payload := map[string]interface{}{
		"task":      types.TaskTranscribe,
		"audio_url": req.AudioURL,
		"language":  req.Language,
	}
	if req.Adapter != "" {
		payload["adapter"] = req.Adapter
	}

	requestID := uuid.NewString()
	result, err := s.run(ctx, requestID, types.TaskTranscribe, payload)
	if err != nil {
		return nil, err
	}

	var out types.TranscribeOutput
	if decodeErr := decodeOutput(result.Output, &out); decodeErr != nil || out.AudioTranscription == "" {
		return nil, s.invalid(ctx, requestID, "transcribe output carries no audio_transcription", decodeErr)
	}

	return &types.TranscribeResponse{
		RequestID:          requestID,
		AudioTranscription: out.AudioTranscription,
		Status:             statusString(result.Status),
	}, nil
}

// Synthesize runs a text-to-speech job and stores the synthesized audio.
func (s *InferenceService) Synthesize(ctx context.Context, req *types.SynthesizeRequest) (*types.SynthesizeResponse, error) {
	payload := map[string]interface{}{
		"task": types.TaskSynthesize,
		"text": req.Text,
	}
	if req.SpeakerID != "" {
		payload["speaker_id"] = req.SpeakerID
	}

	requestID := uuid.NewString()
	result, err := s.run(ctx, requestID, types.TaskSynthesize, payload)
	if err != nil {
		return nil, err
	}

	var out types.SynthesizeOutput
	if decodeErr := decodeOutput(result.Output, &out); decodeErr != nil || out.AudioBase64 == "" {
		return nil, s.invalid(ctx, requestID, "tts output carries no audio_base64", decodeErr)
	}

	audio, decodeErr := base64.StdEncoding.DecodeString(out.AudioBase64)
	if decodeErr != nil {
		return nil, s.invalid(ctx, requestID, "tts output audio is not valid base64", decodeErr)
	}

	audioKey := fmt.Sprintf("tts/%s.wav", requestID)
	if s.audio != nil {
		if err := s.audio.Save(ctx, audioKey, audio, "audio/wav"); err != nil {
			return nil, fmt.Errorf("failed to store synthesized audio: %w", err)
		}
	}

	return &types.SynthesizeResponse{
		RequestID: requestID,
		AudioKey:  audioKey,
		Status:    statusString(result.Status),
	}, nil
}

// GetRun returns the audit record for a request id.
func (s *InferenceService) GetRun(ctx context.Context, requestID string) (*models.InferenceRun, error) {
	if s.runs == nil {
		return nil, fmt.Errorf("run store is not configured")
	}
	return s.runs.GetByRequestID(ctx, requestID)
}

// run drives one orchestrated job and maintains its audit record. It fails
// with a RemoteStatusError when the job ends in any state but COMPLETED.
func (s *InferenceService) run(ctx context.Context, requestID, task string, payload map[string]interface{}) (runpod.NormalizedResult, error) {
	if s.runs != nil {
		record := &models.InferenceRun{
			RequestID:  requestID,
			Task:       task,
			EndpointID: s.client.EndpointID(),
			Status:     "SUBMITTED",
		}
		if err := s.runs.Create(ctx, record); err != nil {
			// Auditing is best-effort; the run itself proceeds.
			logger.Warnf("failed to record run %s: %v", requestID, err)
		}
	}

	result, details, err := s.client.RunJob(ctx, payload, s.timeout)
	if err != nil {
		s.record(ctx, requestID, &models.InferenceRun{Status: "ERROR", Error: err.Error()})
		return result, err
	}

	s.record(ctx, requestID, buildRunRecord(result, details))

	status := runpod.StatusUnknown
	if result.Status != nil {
		status = runpod.JobStatus(*result.Status)
	}
	if status != runpod.StatusCompleted {
		return result, &RemoteStatusError{Status: status}
	}
	return result, nil
}

func (s *InferenceService) record(ctx context.Context, requestID string, run *models.InferenceRun) {
	if s.runs == nil {
		return
	}
	if err := s.runs.UpdateResult(ctx, requestID, run); err != nil {
		logger.Warnf("failed to update run %s: %v", requestID, err)
	}
}

func (s *InferenceService) invalid(ctx context.Context, requestID, reason string, cause error) error {
	err := &runpod.ValidationError{Reason: reason, Err: cause}
	s.record(ctx, requestID, &models.InferenceRun{Status: "INVALID", Error: err.Error()})
	return err
}

func buildRunRecord(result runpod.NormalizedResult, details runpod.RawJobDetails) *models.InferenceRun {
	run := &models.InferenceRun{
		Status:          statusString(result.Status),
		DelayTimeMs:     result.DelayTime,
		ExecutionTimeMs: result.ExecutionTime,
	}
	if result.ID != nil {
		run.JobID = *result.ID
	}
	if result.WorkerID != nil {
		run.WorkerID = *result.WorkerID
	}
	if data, err := json.Marshal(result); err == nil {
		run.Result = data
	}
	if run.JobID == "" && details != nil {
		if id, ok := details["id"].(string); ok {
			run.JobID = id
		}
	}
	return run
}

// decodeOutput maps an untyped worker payload onto the expected shape.
func decodeOutput(output interface{}, v interface{}) error {
	data, err := json.Marshal(output)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func statusString(status *string) string {
	if status == nil {
		return ""
	}
	return *status
}
