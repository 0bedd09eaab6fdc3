package utils

import (
	"math"
	"math/rand"
	"mime"
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
)

var (
	// textContentTypePatterns is a slice of regular expressions that match content types
	// considered to be text-based. This includes "text/*", JSON and XML payloads,
	// and server-sent event streams.
	//nolint:gochecknoglobals // These are immutable, pre-compiled regex patterns and used as constants.
	textContentTypePatterns = []*regexp.Regexp{
		regexp.MustCompile("^text/.+"),
		regexp.MustCompile(`^application/(.+\+)?json$`),
		regexp.MustCompile(`^application/(.+\+)?xml$`),
		regexp.MustCompile("^application/x-www-form-urlencoded$"),
	}
)

// IsTextContentType reports whether the given Content-Type header value
// describes a text-based payload.
func IsTextContentType(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}

	for _, pattern := range textContentTypePatterns {
		if pattern.MatchString(mediaType) {
			return true
		}
	}

	return false
}

// DecodeText decodes raw bytes into a string using the charset declared
// in the given Content-Type header value. A missing or unknown charset falls
// back to UTF-8. Invalid byte sequences are replaced with U+FFFD, so decoding
// never fails.
func DecodeText(data []byte, contentType string) string {
	label := ""
	if contentType != "" {
		if _, params, err := mime.ParseMediaType(contentType); err == nil {
			label = params["charset"]
		}
	}

	return decodeWithLabel(data, label)
}

// DecodeUTF8 decodes raw bytes as UTF-8, replacing invalid sequences with U+FFFD.
func DecodeUTF8(data []byte) string {
	return strings.ToValidUTF8(string(data), "�")
}

func decodeWithLabel(data []byte, label string) string {
	label = strings.ToLower(strings.TrimSpace(label))
	if label == "" || label == "utf-8" || label == "utf8" {
		return DecodeUTF8(data)
	}

	enc, err := htmlindex.Get(label)
	if err != nil || enc == unicode.UTF8 {
		return DecodeUTF8(data)
	}

	// WHATWG decoders substitute U+FFFD for malformed input instead of failing.
	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return DecodeUTF8(data)
	}

	return string(decoded)
}

// SafeUint64ToInt64 converts a uint64 value to an int64 safely,
// ensuring that the value does not exceed the maximum limit of int64.
func SafeUint64ToInt64(val uint64) int64 {
	if val > math.MaxInt64 {
		return math.MaxInt64
	}

	return int64(val)
}

// RandomPause pauses execution for a random duration between min and max values.
// The min and max parameters should be of type time.Duration and represent
// the lower and upper bounds of the delay period, respectively.
func RandomPause(minPause, maxPause time.Duration) {
	// Ensure minPause is always less than or equal to maxPause.
	if minPause > maxPause {
		minPause, maxPause = maxPause, minPause
	}

	if maxPause <= 0 {
		return
	}

	randomDelay := maxPause
	if maxPause > minPause {
		randomDelay = minPause + time.Duration(
			//nolint:gosec // Pause jitter does not need cryptographic randomness.
			rand.Int63n(int64(maxPause-minPause)),
		)
	}

	time.Sleep(randomDelay)
}
