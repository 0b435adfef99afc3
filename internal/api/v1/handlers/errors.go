// Package handlers provides HTTP request handling
package handlers

// Common error messages
const (
	ErrMsgInvalidReqBody     = "Invalid request body"
	ErrMsgServiceUnavailable = "Inference service unavailable, please retry"
	ErrMsgUpstreamMalformed  = "Upstream returned malformed data"
	ErrMsgRunNotFound        = "Inference run not found"
	ErrMsgRequestIDRequired  = "Request id is required"
)
