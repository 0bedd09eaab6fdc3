package openai

import "errors"

var (
	// ErrUnexpectedHTTPStatus indicates an unexpected HTTP status code was received.
	ErrUnexpectedHTTPStatus = errors.New("unexpected HTTP status")
	// ErrRetriesExhausted indicates a rate-limited request failed after all retry attempts.
	ErrRetriesExhausted = errors.New("request failed after retries")
	// ErrEmptyModelID indicates that a model lookup was attempted without an ID.
	ErrEmptyModelID = errors.New("model ID cannot be empty")
)
