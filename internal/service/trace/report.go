package trace

import (
	"fmt"
	"slices"

	"github.com/dustin/go-humanize"

	http_transport "github.com/ansokolov/gpt-trace/internal/transport/http"
)

// renderExchangeReport renders a captured exchange as report lines,
// one header per line with names sorted for stable output.
func renderExchangeReport(exchange http_transport.CapturedExchange) []string {
	lines := make([]string, 0, len(exchange.RequestHeaders)+len(exchange.ResponseHeaders)+8)

	lines = append(lines, "--- Traced request ---")
	lines = append(lines, renderHeaderLines(exchange.RequestHeaders)...)

	if exchange.RequestContent != nil {
		lines = append(lines,
			fmt.Sprintf("Body (%s):", humanize.Bytes(uint64(len(*exchange.RequestContent)))),
			*exchange.RequestContent)
	} else {
		lines = append(lines, "Body: <none>")
	}

	lines = append(lines, "--- Traced response ---")
	lines = append(lines, renderHeaderLines(exchange.ResponseHeaders)...)
	lines = append(lines,
		fmt.Sprintf("Body (%s):", humanize.Bytes(uint64(len(exchange.ResponseContent)))),
		exchange.ResponseContent)

	return lines
}

// renderHeaderLines renders a header map as sorted "name: value" lines.
func renderHeaderLines(headers map[string]string) []string {
	if len(headers) == 0 {
		return []string{"Headers: <none>"}
	}

	names := make([]string, 0, len(headers))
	for name := range headers {
		names = append(names, name)
	}

	slices.Sort(names)

	lines := make([]string, 0, len(names))
	for _, name := range names {
		lines = append(lines, fmt.Sprintf("  %s: %s", name, headers[name]))
	}

	return lines
}
