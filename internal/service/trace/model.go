package trace

import (
	"time"
)

// TraceStatistics tracks metrics for a tracing session.
type TraceStatistics struct {
	// StartTime is when the tracing session began.
	StartTime time.Time
	// EndTime is when the tracing session completed.
	EndTime time.Time
	// RequestsSent is the number of prompts that produced a completed exchange.
	RequestsSent int64
	// RequestsFailed is the number of prompts whose request failed.
	RequestsFailed int64
	// BytesSent is the total size of captured request bodies.
	BytesSent int64
	// BytesReceived is the total size of captured response bodies.
	BytesReceived int64
	// TotalTokens is the total token usage reported by the API, when present.
	TotalTokens int64
	// Errors is a list of all errors encountered during the session.
	Errors []TraceError
}

// TraceError represents a single failed prompt.
type TraceError struct {
	// Prompt is the prompt text that failed.
	Prompt string
	// ErrorMessage is the error message.
	ErrorMessage string
}
