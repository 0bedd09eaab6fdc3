package http

import (
	"net/http"
	"time"
)

// ClientOptions enumerates every option recognized by NewTracingClient.
// The zero value is usable: it yields a client over http.DefaultTransport
// with the default timeout and a discarding log sink.
type ClientOptions struct {
	// Transport is the inner transport traced requests are dispatched to.
	// Defaults to http.DefaultTransport.
	Transport http.RoundTripper
	// Timeout bounds each request end to end. Defaults to DefaultTimeout.
	Timeout time.Duration
	// Jar is the cookie jar handed to the underlying http.Client.
	Jar http.CookieJar
	// CheckRedirect is the redirect policy handed to the underlying http.Client.
	CheckRedirect func(req *http.Request, via []*http.Request) error
	// Sink receives trace log entries. Defaults to a discarding sink.
	Sink Sink
	// MaxLogLength caps logged body length. Defaults to DefaultMaxLogLength.
	MaxLogLength uint64
	// UserAgent, when non-empty, is injected into requests lacking one.
	UserAgent string
	// InjectRequestID, when set, stamps requests with a fresh client request ID.
	InjectRequestID bool
}

// TracingClient is a drop-in *http.Client whose transport always traces
// traffic through a TraceTransport. The captured state of the most recent
// exchange is exposed through read-only accessors; the client holds no
// capture state of its own.
type TracingClient struct {
	*http.Client

	// trace is the capturing transport at the bottom of the wrapper chain.
	trace *TraceTransport
}

// NewTracingClient builds a TracingClient from the given options.
// The transport chain is assembled so header-injecting wrappers run before
// the trace, which makes injected headers visible in the captured exchange:
// UserAgentInjector -> RequestIDInjector -> TraceTransport -> inner transport.
func NewTracingClient(opts ClientOptions) *TracingClient {
	trace := NewTraceTransport(opts.Transport, opts.Sink, opts.MaxLogLength)

	var rt http.RoundTripper = trace

	if opts.InjectRequestID {
		rt = NewRequestIDInjector(rt)
	}

	if opts.UserAgent != "" {
		rt = NewUserAgentInjector(rt, opts.UserAgent)
	}

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	return &TracingClient{
		Client: &http.Client{
			Transport:     rt,
			Timeout:       timeout,
			Jar:           opts.Jar,
			CheckRedirect: opts.CheckRedirect,
		},
		trace: trace,
	}
}

// Exchange returns a snapshot of the most recently captured exchange.
func (c *TracingClient) Exchange() CapturedExchange {
	return c.trace.Exchange()
}

// RequestHeaders returns the headers of the most recently dispatched request.
func (c *TracingClient) RequestHeaders() map[string]string {
	return c.trace.RequestHeaders()
}

// RequestContent returns the decoded body of the most recently dispatched
// request, or nil when that request carried no body.
func (c *TracingClient) RequestContent() *string {
	return c.trace.RequestContent()
}

// ResponseHeaders returns the headers of the most recently received response.
func (c *TracingClient) ResponseHeaders() map[string]string {
	return c.trace.ResponseHeaders()
}

// ResponseContent returns the decoded body of the most recently received response.
func (c *TracingClient) ResponseContent() string {
	return c.trace.ResponseContent()
}
