// Package utils provides small helpers shared across the application:
// content-type classification, charset-safe text decoding, type conversion,
// and randomized pauses for retry backoff.
package utils
