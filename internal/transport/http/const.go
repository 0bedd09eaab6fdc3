package http

import "time"

const (
	// DefaultTimeout is the default timeout duration for HTTP requests.
	DefaultTimeout = 60 * time.Second

	// DefaultMaxLogLength is the default maximum length (in bytes) of logged
	// request/response bodies. Longer bodies are truncated in log output only;
	// the captured exchange always holds the full content.
	DefaultMaxLogLength = 1 * 1024 * 1024 // 1 MB

	// userAgentHeader is the HTTP header name for User-Agent.
	userAgentHeader = "User-Agent"

	// requestIDHeader carries the per-request client ID understood by Azure-style APIs.
	requestIDHeader = "X-Ms-Client-Request-Id"

	// contentEncodingHeader is stripped from re-emitted responses because the
	// body has already been fully read and decompressed by the inner transport.
	contentEncodingHeader = "Content-Encoding"

	// contentTypeHeader declares the response media type and charset.
	contentTypeHeader = "Content-Type"
)
