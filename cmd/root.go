package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ansokolov/gpt-trace/internal/app"
	"github.com/ansokolov/gpt-trace/internal/config"
	"github.com/ansokolov/gpt-trace/internal/logger"
)

var (
	//nolint:gochecknoglobals // It is required for configuration initialization before the application starts.
	configFilenameFromFlag string

	//nolint:gochecknoglobals,lll // It is initialized once during the application's startup and shared across the command execution logic.
	appConfig *config.Config

	//nolint:gochecknoglobals,lll // Cobra command requires a global definition for proper command-line parsing and execution.
	rootCmd = &cobra.Command{
		Use:   "gpt-trace [flags] {prompts}",
		Short: "Send prompts to an OpenAI-compatible API and trace the HTTP traffic.",
		Long: `gpt-trace is a CLI tool for debugging OpenAI-compatible API integrations.
Every prompt is sent as a chat completion while the underlying HTTP exchange -
request and response headers and bodies - is captured and logged.

The tool reports each traced exchange, the assistant's reply, and a session
summary with transfer sizes and token usage.`,
		Args:             cobra.MinimumNArgs(1),
		PersistentPreRun: initConfig,
		Run: func(cmd *cobra.Command, prompts []string) {
			if err := bindFlagsToConfig(cmd.Flags(), appConfig); err != nil {
				logger.Fatalf(cmd.Context(), "Failed to parse flags: %v", err)
			}

			app.ExecuteRootCommand(cmd.Context(), appConfig, prompts)
		},
	}
)

// Execute executes the root command.
func Execute() {
	signals := []os.Signal{syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM}
	ctx, stop := signal.NotifyContext(context.Background(), signals...)

	defer func() {
		_ = logger.Logger().Sync()
	}()

	defer stop()

	go func() {
		defer stop()

		err := rootCmd.ExecuteContext(ctx)
		cobra.CheckErr(err)
	}()

	<-ctx.Done()
}

//nolint:gochecknoinits // Cobra requires the init function to set up flags before the command is executed.
func init() {
	rootCmd.PersistentFlags().StringVarP(
		&configFilenameFromFlag,
		"config",
		"c",
		"",
		fmt.Sprintf("path to the configuration file (default is '%s')",
			config.DefaultConfigFilename))

	rootCmdFlags := rootCmd.Flags()

	rootCmdFlags.StringP(
		"deployment",
		"d",
		"",
		"model deployment to send prompts to, for example: gpt-4o.")

	rootCmdFlags.String(
		"api-version",
		"",
		fmt.Sprintf("API version query parameter (default is '%s').",
			config.DefaultAPIVersion))

	rootCmdFlags.StringP(
		"max-log-length",
		"m",
		"",
		"maximum logged body length, for example: 4KB, 1MB.")

	rootCmdFlags.StringP(
		"system",
		"s",
		"",
		"system message prepended to every prompt.")
}

func initConfig(cmd *cobra.Command, _ []string) {
	var err error

	appConfig, err = config.LoadConfig(configFilenameFromFlag)
	if err != nil {
		logger.Fatalf(cmd.Context(), "Failed to load configuration: %v", err)
	}

	logger.SetLevel(appConfig.ParsedLogLevel)
}

func bindFlagsToConfig(flags *pflag.FlagSet, cfg *config.Config) error {
	if flag := flags.Lookup("deployment"); flag != nil && flag.Changed {
		cfg.Deployment, _ = flags.GetString("deployment")
	}

	if flag := flags.Lookup("api-version"); flag != nil && flag.Changed {
		cfg.APIVersion, _ = flags.GetString("api-version")
	}

	if flag := flags.Lookup("max-log-length"); flag != nil && flag.Changed {
		cfg.MaxLogLength, _ = flags.GetString("max-log-length")
	}

	if flag := flags.Lookup("system"); flag != nil && flag.Changed {
		cfg.SystemMessage, _ = flags.GetString("system")
	}

	return config.ValidateConfig(cfg)
}
