// Package logger wraps the Zap logging library behind a small facade.
// It owns a process-wide sugared logger with an adjustable level and
// provides context-aware logging helpers used across the application.
// A request-scoped logger can be attached to a context with ToContext.
package logger
