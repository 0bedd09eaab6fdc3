// Package http provides custom HTTP transport utilities for tracing traffic
// between an application and a remote API: a round tripper that captures and
// logs each request/response exchange, a drop-in client built on top of it,
// and header-injecting wrappers for User-Agent and client request IDs.
package http
