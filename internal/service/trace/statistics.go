package trace

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/ansokolov/gpt-trace/internal/client/openai"
	"github.com/ansokolov/gpt-trace/internal/logger"
	http_transport "github.com/ansokolov/gpt-trace/internal/transport/http"
)

// formatDuration formats a duration into a human-readable string.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}

	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	if hours > 0 {
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	}

	if minutes > 0 {
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}

	return fmt.Sprintf("%ds", seconds)
}

// recordSuccess updates the counters for a completed exchange.
func (s *ServiceImpl) recordSuccess(
	exchange http_transport.CapturedExchange,
	response *openai.ChatCompletionResponse,
) {
	s.statsMutex.Lock()
	defer s.statsMutex.Unlock()

	s.stats.RequestsSent++

	if exchange.RequestContent != nil {
		s.stats.BytesSent += int64(len(*exchange.RequestContent))
	}

	s.stats.BytesReceived += int64(len(exchange.ResponseContent))

	if response.Usage != nil {
		s.stats.TotalTokens += int64(response.Usage.TotalTokens)
	}
}

// recordFailure updates the counters for a failed prompt.
func (s *ServiceImpl) recordFailure(prompt string, err error) {
	s.statsMutex.Lock()
	defer s.statsMutex.Unlock()

	s.stats.RequestsFailed++
	s.stats.Errors = append(s.stats.Errors, TraceError{
		Prompt:       prompt,
		ErrorMessage: err.Error(),
	})
}

// PrintTraceSummary prints a formatted summary of session statistics.
func (s *ServiceImpl) PrintTraceSummary(ctx context.Context) {
	s.statsMutex.Lock()
	defer s.statsMutex.Unlock()

	stats := s.stats

	// If nothing was sent, don't print summary.
	if stats.RequestsSent == 0 && stats.RequestsFailed == 0 {
		return
	}

	wasInterrupted := ctx.Err() != nil

	s.printSummaryHeader(ctx, wasInterrupted)

	logger.Infof(ctx, "Requests completed:  %d", stats.RequestsSent)

	if stats.RequestsFailed > 0 {
		logger.Infof(ctx, "Requests failed:     %d", stats.RequestsFailed)
	}

	logger.Infof(ctx, "Data sent:           %s", humanize.Bytes(safeUint64(stats.BytesSent)))
	logger.Infof(ctx, "Data received:       %s", humanize.Bytes(safeUint64(stats.BytesReceived)))

	if stats.TotalTokens > 0 {
		logger.Infof(ctx, "Tokens used:         %d", stats.TotalTokens)
	}

	if !stats.EndTime.IsZero() {
		logger.Infof(ctx, "Elapsed time:        %s", formatDuration(stats.EndTime.Sub(stats.StartTime)))
	}

	logger.Info(ctx, "═══════════════════════════════════════════════════════════════")

	s.printErrorDetails(ctx, stats)
}

// printSummaryHeader prints the summary header.
func (s *ServiceImpl) printSummaryHeader(ctx context.Context, wasInterrupted bool) {
	logger.Info(ctx, "")
	logger.Info(ctx, "═══════════════════════════════════════════════════════════════")

	if wasInterrupted {
		logger.Info(ctx, "              TRACE SUMMARY (Interrupted)")
	} else {
		logger.Info(ctx, "                     TRACE SUMMARY")
	}

	logger.Info(ctx, "═══════════════════════════════════════════════════════════════")
}

// printErrorDetails prints one line per failed prompt.
func (s *ServiceImpl) printErrorDetails(ctx context.Context, stats *TraceStatistics) {
	if len(stats.Errors) == 0 {
		return
	}

	logger.Info(ctx, "")
	logger.Warnf(ctx, "%d prompt(s) failed:", len(stats.Errors))

	for i := range stats.Errors {
		logger.Warnf(ctx, "  %q: %s", stats.Errors[i].Prompt, stats.Errors[i].ErrorMessage)
	}
}

// safeUint64 converts a non-negative int64 counter for humanize.Bytes.
func safeUint64(v int64) uint64 {
	if v < 0 {
		return 0
	}

	return uint64(v)
}
