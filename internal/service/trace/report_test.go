package trace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	http_transport "github.com/ansokolov/gpt-trace/internal/transport/http"
)

func TestRenderExchangeReport(t *testing.T) {
	t.Parallel()

	body := `{"prompt":"hi"}`

	exchange := http_transport.CapturedExchange{
		RequestHeaders: map[string]string{
			"Content-Type": "application/json",
			"Api-Key":      "secret",
		},
		RequestContent: &body,
		ResponseHeaders: map[string]string{
			"Content-Type": "application/json",
		},
		ResponseContent: `{"id":"cmpl-1"}`,
	}

	lines := renderExchangeReport(exchange)

	require.NotEmpty(t, lines)
	assert.Equal(t, "--- Traced request ---", lines[0])

	// Header names come out sorted.
	assert.Equal(t, "  Api-Key: secret", lines[1])
	assert.Equal(t, "  Content-Type: application/json", lines[2])

	assert.Contains(t, lines, body)
	assert.Contains(t, lines, "--- Traced response ---")
	assert.Contains(t, lines, `{"id":"cmpl-1"}`)
}

func TestRenderExchangeReport_EmptyExchange(t *testing.T) {
	t.Parallel()

	lines := renderExchangeReport(http_transport.CapturedExchange{})

	assert.Contains(t, lines, "Headers: <none>")
	assert.Contains(t, lines, "Body: <none>")
}

func TestRenderHeaderLines_Sorted(t *testing.T) {
	t.Parallel()

	lines := renderHeaderLines(map[string]string{
		"Zebra": "z",
		"Alpha": "a",
		"Mid":   "m",
	})

	assert.Equal(t, []string{
		"  Alpha: a",
		"  Mid: m",
		"  Zebra: z",
	}, lines)
}
