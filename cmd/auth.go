package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ansokolov/gpt-trace/internal/app"
)

var (
	authCmd = &cobra.Command{
		Use:   "auth",
		Short: "Credential management commands",
		Long: `Manage the API credential used for tracing.

Use 'auth set-key' to store the API key in the configuration file.`,
	}

	authSetKeyCmd = &cobra.Command{
		Use:   "set-key <key>",
		Short: "Store the API key in the configuration file",
		Long: `Stores the given API key in the configuration file.

The file's key order and formatting are preserved; only the api_key entry
is updated. The key is sent as the 'api-key' header on every traced request
when auth_mode is 'api-key'.`,
		Args:             cobra.ExactArgs(1),
		PersistentPreRun: initConfig,
		Run: func(cmd *cobra.Command, args []string) {
			app.ExecuteAuthSetKeyCommand(cmd.Context(), appConfig, args[0])
		},
	}
)

//nolint:gochecknoinits // Cobra requires the init function to set up commands.
func init() {
	// Add set-key subcommand to auth command.
	authCmd.AddCommand(authSetKeyCmd)

	// Add auth command to root command.
	rootCmd.AddCommand(authCmd)
}
