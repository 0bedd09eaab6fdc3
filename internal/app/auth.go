package app

import (
	"context"

	"github.com/ansokolov/gpt-trace/internal/config"
	"github.com/ansokolov/gpt-trace/internal/logger"
)

// ExecuteAuthSetKeyCommand executes the auth set-key command.
// It stores the given API key in the configuration file, preserving the
// file's key order and formatting.
func ExecuteAuthSetKeyCommand(ctx context.Context, cfg *config.Config, key string) {
	cfg.APIKey = key

	if err := config.SaveConfig(cfg); err != nil {
		logger.Fatalf(ctx, "Failed to save configuration: %v", err)
		return
	}

	logger.Info(ctx, "Configuration updated successfully!")
	logger.Info(ctx, "You can now trace API calls:")
	logger.Info(ctx, `gpt-trace "What is the capital of France?"`)
}
