package http

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"
	"sync"

	"go.uber.org/zap/zapcore"

	"github.com/ansokolov/gpt-trace/internal/utils"
)

// CapturedExchange holds the request/response metadata recorded for the most
// recent request/response cycle. It is overwritten on every call, never
// accumulated.
type CapturedExchange struct {
	// RequestHeaders maps header names to values as sent to the inner transport.
	RequestHeaders map[string]string
	// RequestContent is the request body decoded as UTF-8,
	// or nil when no body was sent. An empty body counts as absent.
	RequestContent *string
	// ResponseHeaders maps header names to values as received from the inner transport.
	ResponseHeaders map[string]string
	// ResponseContent is the response body decoded using the charset declared
	// by the server, falling back to UTF-8, with invalid byte sequences replaced.
	ResponseContent string
}

// TraceTransport is a custom http.RoundTripper that captures and logs HTTP
// requests and responses. It wraps another http.RoundTripper, records the
// observed headers and bodies, and re-emits the response with the
// Content-Encoding header removed, since the body it carries has already been
// fully read and decompressed.
//
// Captured state reflects the most recent exchange only. Overlapping requests
// through the same transport overwrite each other (last writer wins); the
// mutex prevents torn reads, not interleaving.
type TraceTransport struct {
	// next is the underlying HTTP round tripper.
	next http.RoundTripper
	// sink receives trace log entries.
	sink Sink
	// maxLogLength is the maximum length of logged request/response data.
	maxLogLength uint64

	// mu guards exchange.
	mu sync.RWMutex
	// exchange is the most recently captured request/response cycle.
	exchange CapturedExchange
}

// Static error definitions for better error handling.
var (
	// ErrNilRequest indicates that the HTTP request is nil.
	ErrNilRequest = errors.New("request is nil")
)

// NewTraceTransport creates and returns a new TraceTransport.
// A nil next defaults to http.DefaultTransport, a nil sink discards log
// entries, and a zero maxLogLength defaults to DefaultMaxLogLength.
func NewTraceTransport(next http.RoundTripper, sink Sink, maxLogLength uint64) *TraceTransport {
	if next == nil {
		next = http.DefaultTransport
	}

	if sink == nil {
		sink = NopSink{}
	}

	if maxLogLength == 0 {
		maxLogLength = DefaultMaxLogLength
	}

	return &TraceTransport{
		next:         next,
		sink:         sink,
		maxLogLength: maxLogLength,
	}
}

// RoundTrip executes a single HTTP transaction, recording and logging the
// request and response along the way. It implements the http.RoundTripper
// interface. Errors from the inner transport propagate unchanged: no
// translation, no retries, no timeout of its own.
func (t *TraceTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req == nil {
		return nil, ErrNilRequest
	}

	requestHeaders := flattenHeaders(req.Header)

	requestContent, err := readRequestBody(req)
	if err != nil {
		return nil, err
	}

	t.mu.Lock()
	t.exchange.RequestHeaders = requestHeaders
	t.exchange.RequestContent = requestContent
	t.mu.Unlock()

	t.logf("Request URL: %s", req.URL)
	t.logf("Request Headers: %s", formatHeaders(requestHeaders))
	t.logf("Request Content: %s", t.truncate(requestBodyForLog(requestContent)))

	resp, err := t.next.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	raw, err := io.ReadAll(resp.Body)

	//nolint:errcheck,gosec // The body is fully consumed; an error on close is not actionable.
	resp.Body.Close()

	if err != nil {
		return nil, err
	}

	responseHeaders := flattenHeaders(resp.Header)
	responseContent := utils.DecodeText(raw, resp.Header.Get(contentTypeHeader))

	t.mu.Lock()
	t.exchange.ResponseHeaders = responseHeaders
	t.exchange.ResponseContent = responseContent
	t.mu.Unlock()

	t.logf("Response Headers: %s", formatHeaders(responseHeaders))
	t.logf("Response Content: %s", t.truncate(responseContent))

	// Re-emit an equivalent response carrying the materialized body.
	// Everything besides the Content-Encoding header and the now-known
	// content length stays identical to what the inner transport returned.
	out := new(http.Response)
	*out = *resp
	out.Header = headersWithoutContentEncoding(resp.Header)
	out.Body = io.NopCloser(bytes.NewReader(raw))
	out.ContentLength = int64(len(raw))
	out.Request = req

	return out, nil
}

// Exchange returns a snapshot of the most recently captured exchange.
func (t *TraceTransport) Exchange() CapturedExchange {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return CapturedExchange{
		RequestHeaders:  cloneHeaderMap(t.exchange.RequestHeaders),
		RequestContent:  t.exchange.RequestContent,
		ResponseHeaders: cloneHeaderMap(t.exchange.ResponseHeaders),
		ResponseContent: t.exchange.ResponseContent,
	}
}

// RequestHeaders returns the headers of the most recently dispatched request.
func (t *TraceTransport) RequestHeaders() map[string]string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return cloneHeaderMap(t.exchange.RequestHeaders)
}

// RequestContent returns the decoded body of the most recently dispatched
// request, or nil when that request carried no body.
func (t *TraceTransport) RequestContent() *string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.exchange.RequestContent
}

// ResponseHeaders returns the headers of the most recently received response.
func (t *TraceTransport) ResponseHeaders() map[string]string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return cloneHeaderMap(t.exchange.ResponseHeaders)
}

// ResponseContent returns the decoded body of the most recently received response.
func (t *TraceTransport) ResponseContent() string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.exchange.ResponseContent
}

func (t *TraceTransport) logf(format string, args ...any) {
	t.sink.Log(zapcore.InfoLevel, fmt.Sprintf(format, args...))
}

func (t *TraceTransport) truncate(data string) string {
	if uint64(len(data)) > t.maxLogLength {
		return data[:t.maxLogLength] + "... [truncated]"
	}

	return data
}

// readRequestBody fully reads the request body, restores it for the inner
// transport, and returns its decoded text. Absence of a body (including a
// zero-length one) is reported as nil, not as an empty string.
func readRequestBody(req *http.Request) (*string, error) {
	if req.Body == nil || req.Body == http.NoBody {
		return nil, nil
	}

	data, err := io.ReadAll(req.Body)

	//nolint:errcheck,gosec // The body is fully consumed; an error on close is not actionable.
	req.Body.Close()

	if err != nil {
		return nil, err
	}

	req.Body = io.NopCloser(bytes.NewReader(data))

	if len(data) == 0 {
		return nil, nil
	}

	content := utils.DecodeUTF8(data)

	return &content, nil
}

func requestBodyForLog(content *string) string {
	if content == nil {
		return "<none>"
	}

	return *content
}

// flattenHeaders converts an http.Header into a flat name-to-value mapping.
// Repeated headers are joined with a comma, matching wire representation.
func flattenHeaders(headers http.Header) map[string]string {
	flattened := make(map[string]string, len(headers))
	for name, values := range headers {
		flattened[name] = strings.Join(values, ", ")
	}

	return flattened
}

func formatHeaders(headers map[string]string) string {
	if len(headers) == 0 {
		return "{}"
	}

	names := make([]string, 0, len(headers))
	for name := range headers {
		names = append(names, name)
	}

	slices.Sort(names)

	var b strings.Builder

	b.WriteByte('{')

	for i, name := range names {
		if i > 0 {
			b.WriteString(", ")
		}

		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(headers[name])
	}

	b.WriteByte('}')

	return b.String()
}

func headersWithoutContentEncoding(headers http.Header) http.Header {
	cleaned := headers.Clone()
	cleaned.Del(contentEncodingHeader)

	return cleaned
}

func cloneHeaderMap(headers map[string]string) map[string]string {
	if headers == nil {
		return nil
	}

	cloned := make(map[string]string, len(headers))
	for name, value := range headers {
		cloned[name] = value
	}

	return cloned
}
