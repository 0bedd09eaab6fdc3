// Package trace orchestrates traced prompt runs: it sends chat completions
// through the SDK client, snapshots the HTTP exchanges captured by the tracing
// client, renders them as human-readable reports and keeps session statistics.
package trace
