package trace

//go:generate $MOCKGEN -source=service.go -destination=mocks/service_mock.go

import (
	"context"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/ansokolov/gpt-trace/internal/client/openai"
	"github.com/ansokolov/gpt-trace/internal/config"
	"github.com/ansokolov/gpt-trace/internal/logger"
	http_transport "github.com/ansokolov/gpt-trace/internal/transport/http"
)

// Service provides methods for running prompts through a traced HTTP client.
type Service interface {
	// TracePrompts sends each prompt as a chat completion and reports the captured exchanges.
	TracePrompts(ctx context.Context, prompts []string)
	// PrintTraceSummary prints a formatted summary of session statistics.
	PrintTraceSummary(ctx context.Context)
}

// ServiceImpl implements the prompt tracing service.
type ServiceImpl struct {
	// cfg contains the application configuration.
	cfg *config.Config
	// openAIClient is the SDK client all prompts are sent through.
	openAIClient openai.Client
	// tracingClient holds the captured exchange after each SDK call.
	tracingClient *http_transport.TracingClient
	// stats tracks session statistics.
	stats *TraceStatistics
	// statsMutex protects concurrent access to statistics.
	statsMutex *sync.Mutex
}

// NewService creates a tracing service instance with dependency-injected components.
func NewService(
	cfg *config.Config,
	openAIClient openai.Client,
	tracingClient *http_transport.TracingClient,
) Service {
	return &ServiceImpl{
		cfg:           cfg,
		openAIClient:  openAIClient,
		tracingClient: tracingClient,
		stats:         new(TraceStatistics),
		statsMutex:    new(sync.Mutex),
	}
}

// TracePrompts sends each prompt as a chat completion and reports the captured exchanges.
// Prompts are processed strictly in order; the tracing client holds only the
// most recent exchange, so each snapshot is taken before the next prompt is sent.
func (s *ServiceImpl) TracePrompts(ctx context.Context, prompts []string) {
	s.statsMutex.Lock()
	s.stats.StartTime = time.Now()
	s.statsMutex.Unlock()

	// Progress bars are disabled in debug mode to avoid interleaving
	// with per-request log output.
	var bar *progressbar.ProgressBar

	if len(prompts) > 1 && !logger.IsDebugLevel() {
		bar = progressbar.Default(int64(len(prompts)), "Tracing")
	}

	for _, prompt := range prompts {
		if ctx.Err() != nil {
			logger.Warn(ctx, "Tracing interrupted, stopping")

			break
		}

		s.tracePrompt(ctx, prompt)

		if bar != nil {
			_ = bar.Add(1)
		}
	}

	s.statsMutex.Lock()
	s.stats.EndTime = time.Now()
	s.statsMutex.Unlock()
}

// tracePrompt sends a single prompt and records the outcome.
func (s *ServiceImpl) tracePrompt(ctx context.Context, prompt string) {
	request := &openai.ChatCompletionRequest{
		Messages: s.buildMessages(prompt),
	}

	response, err := s.openAIClient.CreateChatCompletion(ctx, request)
	if err != nil {
		logger.Errorf(ctx, "Prompt failed: %v", err)
		s.recordFailure(prompt, err)
		s.reportExchange(ctx)

		return
	}

	s.recordSuccess(s.tracingClient.Exchange(), response)
	s.reportExchange(ctx)

	logger.Infof(ctx, "Assistant: %s", response.FirstMessageContent())
}

// buildMessages assembles the conversation for a single prompt,
// prepending the configured system message when present.
func (s *ServiceImpl) buildMessages(prompt string) []openai.ChatMessage {
	messages := make([]openai.ChatMessage, 0, 2)

	if s.cfg.SystemMessage != "" {
		messages = append(messages, openai.ChatMessage{
			Role:    openai.RoleSystem,
			Content: s.cfg.SystemMessage,
		})
	}

	return append(messages, openai.ChatMessage{
		Role:    openai.RoleUser,
		Content: prompt,
	})
}

// reportExchange renders the most recently captured exchange.
// A failed request may still have captured request fields, so the report
// is rendered even on failure.
func (s *ServiceImpl) reportExchange(ctx context.Context) {
	for _, line := range renderExchangeReport(s.tracingClient.Exchange()) {
		logger.Info(ctx, line)
	}
}
