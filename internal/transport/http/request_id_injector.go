package http

import (
	"net/http"

	"github.com/google/uuid"
)

// RequestIDInjector is a custom http.RoundTripper that stamps each outgoing
// request with a fresh X-Ms-Client-Request-Id header when one is not already
// present. Azure-style APIs echo the ID back, which makes individual requests
// easy to find in server-side diagnostics.
type RequestIDInjector struct {
	// next is the underlying HTTP round tripper.
	next http.RoundTripper
	// newID generates request IDs; replaceable in tests.
	newID func() string
}

// NewRequestIDInjector creates and returns a new instance of RequestIDInjector.
func NewRequestIDInjector(next http.RoundTripper) *RequestIDInjector {
	return &RequestIDInjector{
		next:  next,
		newID: uuid.NewString,
	}
}

// RoundTrip executes a single HTTP transaction and injects a client request ID
// header if it is missing. It implements the http.RoundTripper interface.
func (t *RequestIDInjector) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get(requestIDHeader) == "" {
		req.Header.Set(requestIDHeader, t.newID())
	}

	return t.next.RoundTrip(req)
}
