package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/SunbirdAI/sunbird-ai-api-sub001/internal/db/models"
	"github.com/SunbirdAI/sunbird-ai-api-sub001/internal/runpod"
	"github.com/SunbirdAI/sunbird-ai-api-sub001/internal/services"
	"github.com/SunbirdAI/sunbird-ai-api-sub001/internal/types"
)

// InferenceAPI is the service surface the handlers depend on.
type InferenceAPI interface {
	Translate(ctx context.Context, req *types.TranslateRequest) (*types.TranslateResponse, error)
	Transcribe(ctx context.Context, req *types.TranscribeRequest) (*types.TranscribeResponse, error)
	Synthesize(ctx context.Context, req *types.SynthesizeRequest) (*types.SynthesizeResponse, error)
	GetRun(ctx context.Context, requestID string) (*models.InferenceRun, error)
}

// InferenceHandler handles HTTP requests for inference operations
type InferenceHandler struct {
	service InferenceAPI
}

// NewInferenceHandler creates a new inference handler instance
func NewInferenceHandler(s InferenceAPI) *InferenceHandler {
	return &InferenceHandler{service: s}
}

// Translate handles the request to translate text
func (h *InferenceHandler) Translate(c *fiber.Ctx) error {
	var req types.TranslateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(errInvalidInput(ErrMsgInvalidReqBody))
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(errInvalidInput(err.Error()))
	}

	resp, err := h.service.Translate(c.Context(), &req)
	if err != nil {
		return inferenceError(c, err)
	}

	return c.JSON(Response{
		Slug: SuccessSlug,
		Data: resp,
	})
}

// Transcribe handles the request to transcribe stored audio
func (h *InferenceHandler) Transcribe(c *fiber.Ctx) error {
	var req types.TranscribeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(errInvalidInput(ErrMsgInvalidReqBody))
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(errInvalidInput(err.Error()))
	}

	resp, err := h.service.Transcribe(c.Context(), &req)
	if err != nil {
		return inferenceError(c, err)
	}

	return c.JSON(Response{
		Slug: SuccessSlug,
		Data: resp,
	})
}

// Synthesize handles the request to synthesize speech
func (h *InferenceHandler) Synthesize(c *fiber.Ctx) error {
	var req types.SynthesizeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(errInvalidInput(ErrMsgInvalidReqBody))
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(errInvalidInput(err.Error()))
	}

	resp, err := h.service.Synthesize(c.Context(), &req)
	if err != nil {
		return inferenceError(c, err)
	}

	return c.JSON(Response{
		Slug: SuccessSlug,
		Data: resp,
	})
}

// GetRun handles the request to fetch the audit record of a run
func (h *InferenceHandler) GetRun(c *fiber.Ctx) error {
	requestID := c.Params("request_id")
	if requestID == "" {
		return c.Status(fiber.StatusBadRequest).
			JSON(errInvalidInput(ErrMsgRequestIDRequired))
	}

	run, err := h.service.GetRun(c.Context(), requestID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).
			JSON(errInvalidInput(ErrMsgRunNotFound))
	}

	return c.JSON(Response{
		Slug: SuccessSlug,
		Data: run,
	})
}

// inferenceError maps service failures onto HTTP responses, keeping "we could
// not reach the remote system" distinct from "the remote system answered
// something we cannot trust".
func inferenceError(c *fiber.Ctx, err error) error {
	var (
		connErr       *runpod.ConnectionError
		timeoutErr    *runpod.TimeoutError
		statusErr     *services.RemoteStatusError
		validationErr *runpod.ValidationError
		configErr     *runpod.ConfigError
	)

	switch {
	case errors.As(err, &connErr), errors.As(err, &timeoutErr), errors.As(err, &statusErr):
		return c.Status(fiber.StatusServiceUnavailable).
			JSON(errUnavailable(ErrMsgServiceUnavailable))
	case errors.As(err, &validationErr):
		return c.Status(fiber.StatusBadGateway).
			JSON(errUpstream(ErrMsgUpstreamMalformed))
	case errors.As(err, &configErr):
		return c.Status(fiber.StatusInternalServerError).
			JSON(errServer(err.Error()))
	default:
		return c.Status(fiber.StatusInternalServerError).
			JSON(errServer(err.Error()))
	}
}
