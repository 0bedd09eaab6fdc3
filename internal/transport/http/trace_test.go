package http

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

// recordingSink collects trace entries for assertions.
type recordingSink struct {
	mu      sync.Mutex
	entries []sinkEntry
}

type sinkEntry struct {
	level   zapcore.Level
	message string
}

func (s *recordingSink) Log(level zapcore.Level, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append(s.entries, sinkEntry{level: level, message: message})
}

func (s *recordingSink) all() []sinkEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]sinkEntry(nil), s.entries...)
}

// stubTransport returns a canned response or error without touching the network.
type stubTransport struct {
	response *http.Response
	err      error

	lastRequest *http.Request
}

func (s *stubTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	s.lastRequest = req

	if s.err != nil {
		return nil, s.err
	}

	return s.response, nil
}

func stubResponse(status int, headers http.Header, body []byte) *http.Response {
	return &http.Response{
		StatusCode: status,
		Status:     http.StatusText(status),
		Proto:      "HTTP/1.1",
		ProtoMajor: 1,
		ProtoMinor: 1,
		Header:     headers,
		Body:       io.NopCloser(bytes.NewReader(body)),
	}
}

// TestTraceTransport_CapturesRequestBody tests that a sent body is captured verbatim.
func TestTraceTransport_CapturesRequestBody(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.Equal(t, `{"prompt":"hi"}`, string(body))

		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	transport := NewTraceTransport(http.DefaultTransport, nil, 0)

	req, err := http.NewRequest(http.MethodPost, server.URL, strings.NewReader(`{"prompt":"hi"}`)) //nolint:noctx // Test code.
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := transport.RoundTrip(req)
	require.NoError(t, err)

	defer resp.Body.Close() //nolint:errcheck // Test cleanup.

	content := transport.RequestContent()
	require.NotNil(t, content)
	assert.Equal(t, `{"prompt":"hi"}`, *content)
	assert.Equal(t, "application/json", transport.RequestHeaders()["Content-Type"])
}

// TestTraceTransport_NoRequestBody tests that an absent body is captured as nil, not "".
func TestTraceTransport_NoRequestBody(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	transport := NewTraceTransport(http.DefaultTransport, nil, 0)

	req, err := http.NewRequest(http.MethodGet, server.URL, http.NoBody) //nolint:noctx // Test code.
	require.NoError(t, err)

	resp, err := transport.RoundTrip(req)
	require.NoError(t, err)

	defer resp.Body.Close() //nolint:errcheck // Test cleanup.

	assert.Nil(t, transport.RequestContent())
}

// TestTraceTransport_StripsContentEncoding tests that a gzip-marked response is
// re-emitted without Content-Encoding while everything else survives.
func TestTraceTransport_StripsContentEncoding(t *testing.T) {
	t.Parallel()

	headers := http.Header{}
	headers.Set("Content-Encoding", "gzip")
	headers.Set("X-Id", "42")

	inner := &stubTransport{response: stubResponse(http.StatusOK, headers, []byte("hello"))}
	transport := NewTraceTransport(inner, nil, 0)

	req, err := http.NewRequest(http.MethodGet, "http://api.example/v1/models", http.NoBody) //nolint:noctx // Test code.
	require.NoError(t, err)

	resp, err := transport.RoundTrip(req)
	require.NoError(t, err)

	defer resp.Body.Close() //nolint:errcheck // Test cleanup.

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, resp.Header.Get("Content-Encoding"))
	assert.Equal(t, "42", resp.Header.Get("X-Id"))
	assert.Same(t, req, resp.Request)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(body))
	assert.Equal(t, int64(len("hello")), resp.ContentLength)

	assert.Equal(t, "hello", transport.ResponseContent())

	// The captured headers still show what the inner transport returned.
	captured := transport.ResponseHeaders()
	assert.Equal(t, "gzip", captured["Content-Encoding"])
	assert.Equal(t, "42", captured["X-Id"])
}

// TestTraceTransport_DecodesDeclaredCharset tests non-UTF-8 response decoding.
func TestTraceTransport_DecodesDeclaredCharset(t *testing.T) {
	t.Parallel()

	headers := http.Header{}
	headers.Set("Content-Type", "text/plain; charset=iso-8859-1")

	// "café" in ISO-8859-1.
	inner := &stubTransport{response: stubResponse(http.StatusOK, headers, []byte{0x63, 0x61, 0x66, 0xE9})}
	transport := NewTraceTransport(inner, nil, 0)

	req, err := http.NewRequest(http.MethodGet, "http://api.example/", http.NoBody) //nolint:noctx // Test code.
	require.NoError(t, err)

	resp, err := transport.RoundTrip(req)
	require.NoError(t, err)

	defer resp.Body.Close() //nolint:errcheck // Test cleanup.

	assert.Equal(t, "café", transport.ResponseContent())
}

// TestTraceTransport_ReplacesInvalidBytes tests that undecodable bytes never fail,
// producing a replacement marker instead.
func TestTraceTransport_ReplacesInvalidBytes(t *testing.T) {
	t.Parallel()

	headers := http.Header{}
	headers.Set("Content-Type", "application/json; charset=utf-8")

	inner := &stubTransport{response: stubResponse(http.StatusOK, headers, []byte{'o', 'k', 0xFF})}
	transport := NewTraceTransport(inner, nil, 0)

	req, err := http.NewRequest(http.MethodGet, "http://api.example/", http.NoBody) //nolint:noctx // Test code.
	require.NoError(t, err)

	resp, err := transport.RoundTrip(req)
	require.NoError(t, err)

	defer resp.Body.Close() //nolint:errcheck // Test cleanup.

	assert.Equal(t, "ok�", transport.ResponseContent())

	// The re-emitted body still carries the original bytes, not the decoded text.
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, []byte{'o', 'k', 0xFF}, body)
}

// TestTraceTransport_ErrorPropagatesUnchanged tests that inner transport failures
// pass through without translation while request capture is still recorded.
func TestTraceTransport_ErrorPropagatesUnchanged(t *testing.T) {
	t.Parallel()

	innerErr := errors.New("connection refused")
	inner := &stubTransport{err: innerErr}
	transport := NewTraceTransport(inner, nil, 0)

	req, err := http.NewRequest(http.MethodPost, "http://api.example/", strings.NewReader("partial")) //nolint:noctx // Test code.
	require.NoError(t, err)

	resp, err := transport.RoundTrip(req)
	require.ErrorIs(t, err, innerErr)
	assert.Nil(t, resp)

	// Request side of the exchange was captured before the failure.
	content := transport.RequestContent()
	require.NotNil(t, content)
	assert.Equal(t, "partial", *content)
}

// TestTraceTransport_OverwritesPreviousExchange tests that only the most recent
// exchange is retained.
func TestTraceTransport_OverwritesPreviousExchange(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		_, _ = w.Write([]byte("echo:" + r.URL.Path))
	}))
	defer server.Close()

	transport := NewTraceTransport(http.DefaultTransport, nil, 0)

	for _, path := range []string{"/first", "/second"} {
		req, err := http.NewRequest(http.MethodPost, server.URL+path, strings.NewReader("body"+path)) //nolint:noctx // Test code.
		require.NoError(t, err)

		resp, err := transport.RoundTrip(req)
		require.NoError(t, err)
		require.NoError(t, resp.Body.Close())
	}

	content := transport.RequestContent()
	require.NotNil(t, content)
	assert.Equal(t, "body/second", *content)
	assert.Equal(t, "echo:/second", transport.ResponseContent())
}

// TestTraceTransport_NilRequest tests the nil request guard.
func TestTraceTransport_NilRequest(t *testing.T) {
	t.Parallel()

	transport := NewTraceTransport(nil, nil, 0)

	resp, err := transport.RoundTrip(nil)
	require.ErrorIs(t, err, ErrNilRequest)
	assert.Nil(t, resp)
}

// TestTraceTransport_LogsExchangeAtInfoLevel tests that five info entries are
// emitted per cycle: request URL, headers, content; response headers, content.
func TestTraceTransport_LogsExchangeAtInfoLevel(t *testing.T) {
	t.Parallel()

	headers := http.Header{}
	headers.Set("Content-Type", "text/plain")

	inner := &stubTransport{response: stubResponse(http.StatusOK, headers, []byte("pong"))}
	sink := &recordingSink{}
	transport := NewTraceTransport(inner, sink, 0)

	req, err := http.NewRequest(http.MethodGet, "http://api.example/ping", http.NoBody) //nolint:noctx // Test code.
	require.NoError(t, err)

	resp, err := transport.RoundTrip(req)
	require.NoError(t, err)

	defer resp.Body.Close() //nolint:errcheck // Test cleanup.

	entries := sink.all()
	require.Len(t, entries, 5)

	for _, entry := range entries {
		assert.Equal(t, zapcore.InfoLevel, entry.level)
	}

	assert.Equal(t, "Request URL: http://api.example/ping", entries[0].message)
	assert.Contains(t, entries[2].message, "<none>")
	assert.Contains(t, entries[4].message, "pong")
}

// TestTraceTransport_TruncatesLogOutput tests that oversized bodies are truncated
// in log entries but captured in full.
func TestTraceTransport_TruncatesLogOutput(t *testing.T) {
	t.Parallel()

	big := strings.Repeat("a", 64)

	inner := &stubTransport{response: stubResponse(http.StatusOK, http.Header{}, []byte(big))}
	sink := &recordingSink{}
	transport := NewTraceTransport(inner, sink, 16)

	req, err := http.NewRequest(http.MethodGet, "http://api.example/", http.NoBody) //nolint:noctx // Test code.
	require.NoError(t, err)

	resp, err := transport.RoundTrip(req)
	require.NoError(t, err)

	defer resp.Body.Close() //nolint:errcheck // Test cleanup.

	entries := sink.all()
	require.Len(t, entries, 5)
	assert.Contains(t, entries[4].message, "... [truncated]")

	assert.Equal(t, big, transport.ResponseContent())
}
