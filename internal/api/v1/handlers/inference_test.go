package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SunbirdAI/sunbird-ai-api-sub001/internal/db/models"
	"github.com/SunbirdAI/sunbird-ai-api-sub001/internal/runpod"
	"github.com/SunbirdAI/sunbird-ai-api-sub001/internal/services"
	"github.com/SunbirdAI/sunbird-ai-api-sub001/internal/types"
)

type stubInferenceService struct {
	translateResp  *types.TranslateResponse
	transcribeResp *types.TranscribeResponse
	synthesizeResp *types.SynthesizeResponse
	run            *models.InferenceRun
	err            error
}

func (s *stubInferenceService) Translate(context.Context, *types.TranslateRequest) (*types.TranslateResponse, error) {
	return s.translateResp, s.err
}

func (s *stubInferenceService) Transcribe(context.Context, *types.TranscribeRequest) (*types.TranscribeResponse, error) {
	return s.transcribeResp, s.err
}

func (s *stubInferenceService) Synthesize(context.Context, *types.SynthesizeRequest) (*types.SynthesizeResponse, error) {
	return s.synthesizeResp, s.err
}

func (s *stubInferenceService) GetRun(context.Context, string) (*models.InferenceRun, error) {
	return s.run, s.err
}

func newTestApp(svc InferenceAPI) *fiber.App {
	app := fiber.New()
	handler := NewInferenceHandler(svc)
	tasks := app.Group("/api/v1/tasks")
	tasks.Post("/translate", handler.Translate)
	tasks.Post("/stt", handler.Transcribe)
	tasks.Post("/tts", handler.Synthesize)
	tasks.Get("/:request_id", handler.GetRun)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) (*http.Response, Response) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var envelope Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return resp, envelope
}

func TestTranslateHandler(t *testing.T) {
	validBody := &types.TranslateRequest{
		SourceLanguage: "eng",
		TargetLanguage: "lug",
		Text:           "hello",
	}

	t.Run("success", func(t *testing.T) {
		app := newTestApp(&stubInferenceService{
			translateResp: &types.TranslateResponse{
				RequestID:      "req-1",
				TranslatedText: "oli otya",
				Status:         "COMPLETED",
			},
		})

		resp, envelope := doJSON(t, app, http.MethodPost, "/api/v1/tasks/translate", validBody)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, SuccessSlug, envelope.Slug)

		data, ok := envelope.Data.(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "oli otya", data["translated_text"])
	})

	t.Run("missing fields", func(t *testing.T) {
		app := newTestApp(&stubInferenceService{})

		resp, envelope := doJSON(t, app, http.MethodPost, "/api/v1/tasks/translate",
			&types.TranslateRequest{Text: "hello"})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, InvalidInputSlug, envelope.Slug)
	})

	t.Run("malformed body", func(t *testing.T) {
		app := newTestApp(&stubInferenceService{})

		req := httptest.NewRequest(http.MethodPost, "/api/v1/tasks/translate",
			bytes.NewReader([]byte("{not json")))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("remote unreachable maps to 503", func(t *testing.T) {
		app := newTestApp(&stubInferenceService{
			err: &runpod.ConnectionError{Op: "submit job", Err: errors.New("boom")},
		})

		resp, envelope := doJSON(t, app, http.MethodPost, "/api/v1/tasks/translate", validBody)
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		assert.Equal(t, UnavailableSlug, envelope.Slug)
	})

	t.Run("exhausted job maps to 503", func(t *testing.T) {
		app := newTestApp(&stubInferenceService{
			err: &services.RemoteStatusError{Status: runpod.StatusTimedOut},
		})

		resp, envelope := doJSON(t, app, http.MethodPost, "/api/v1/tasks/translate", validBody)
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		assert.Equal(t, UnavailableSlug, envelope.Slug)
	})

	t.Run("malformed worker payload maps to 502", func(t *testing.T) {
		app := newTestApp(&stubInferenceService{
			err: &runpod.ValidationError{Reason: "translate output carries no translated_text"},
		})

		resp, envelope := doJSON(t, app, http.MethodPost, "/api/v1/tasks/translate", validBody)
		assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
		assert.Equal(t, UpstreamSlug, envelope.Slug)
	})

	t.Run("missing credentials map to 500", func(t *testing.T) {
		app := newTestApp(&stubInferenceService{
			err: &runpod.ConfigError{Field: "api key"},
		})

		resp, envelope := doJSON(t, app, http.MethodPost, "/api/v1/tasks/translate", validBody)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.Equal(t, ServerErrorSlug, envelope.Slug)
	})
}

func TestTranscribeHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		app := newTestApp(&stubInferenceService{
			transcribeResp: &types.TranscribeResponse{
				RequestID:          "req-2",
				AudioTranscription: "webale nyo",
				Status:             "COMPLETED",
			},
		})

		resp, envelope := doJSON(t, app, http.MethodPost, "/api/v1/tasks/stt",
			&types.TranscribeRequest{AudioURL: "uploads/clip.wav", Language: "lug"})
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, SuccessSlug, envelope.Slug)
	})

	t.Run("missing audio url", func(t *testing.T) {
		app := newTestApp(&stubInferenceService{})

		resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/tasks/stt",
			&types.TranscribeRequest{Language: "lug"})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestSynthesizeHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		app := newTestApp(&stubInferenceService{
			synthesizeResp: &types.SynthesizeResponse{
				RequestID: "req-3",
				AudioKey:  "tts/req-3.wav",
				Status:    "COMPLETED",
			},
		})

		resp, envelope := doJSON(t, app, http.MethodPost, "/api/v1/tasks/tts",
			&types.SynthesizeRequest{Text: "webale"})
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		data, ok := envelope.Data.(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "tts/req-3.wav", data["audio_key"])
	})

	t.Run("missing text", func(t *testing.T) {
		app := newTestApp(&stubInferenceService{})

		resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/tasks/tts",
			&types.SynthesizeRequest{})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestGetRunHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		app := newTestApp(&stubInferenceService{
			run: &models.InferenceRun{RequestID: "req-1", Task: "translate", Status: "COMPLETED"},
		})

		resp, envelope := doJSON(t, app, http.MethodGet, "/api/v1/tasks/req-1", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, SuccessSlug, envelope.Slug)
	})

	t.Run("unknown request id", func(t *testing.T) {
		app := newTestApp(&stubInferenceService{err: fmt.Errorf("not found")})

		resp, envelope := doJSON(t, app, http.MethodGet, "/api/v1/tasks/req-404", nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, InvalidInputSlug, envelope.Slug)
	})
}
