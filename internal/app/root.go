package app

import (
	"context"

	openai_client "github.com/ansokolov/gpt-trace/internal/client/openai"
	"github.com/ansokolov/gpt-trace/internal/config"
	"github.com/ansokolov/gpt-trace/internal/logger"
	trace_service "github.com/ansokolov/gpt-trace/internal/service/trace"
)

// ExecuteRootCommand is the entry point for the application.
// It builds the SDK client with its tracing HTTP client and runs the
// provided prompts through them.
func ExecuteRootCommand(ctx context.Context, cfg *config.Config, prompts []string) {
	openAIClient, tracingClient, err := openai_client.NewClientWithTracing(cfg)
	if err != nil {
		logger.Fatalf(ctx, "Failed to initialize API client: %v", err)
	}

	s := trace_service.NewService(cfg, openAIClient, tracingClient)

	// Ensure statistics are ALWAYS printed, even on panic.
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf(ctx, "Panic recovered: %v", r)
		}

		s.PrintTraceSummary(ctx)
	}()

	s.TracePrompts(ctx, prompts)
}
