package http

import "net/http"

// UserAgentInjector is a custom http.RoundTripper that injects a User-Agent
// header into HTTP requests. It wraps another http.RoundTripper and ensures
// that a User-Agent header is present in every request.
type UserAgentInjector struct {
	// next is the underlying HTTP round tripper.
	next http.RoundTripper
	// userAgent is the User-Agent string to inject.
	userAgent string
}

// NewUserAgentInjector creates and returns a new instance of UserAgentInjector.
func NewUserAgentInjector(next http.RoundTripper, userAgent string) *UserAgentInjector {
	return &UserAgentInjector{
		next:      next,
		userAgent: userAgent,
	}
}

// RoundTrip executes a single HTTP transaction and injects a User-Agent header
// if it is missing. It implements the http.RoundTripper interface.
func (t *UserAgentInjector) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get(userAgentHeader) == "" {
		req.Header.Set(userAgentHeader, t.userAgent)
	}

	return t.next.RoundTrip(req)
}
