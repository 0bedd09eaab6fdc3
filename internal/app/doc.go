// Package app provides the main application logic for tracing API calls.
// It initializes the SDK client together with its tracing HTTP client and
// orchestrates prompt runs and credential management.
package app
