package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"traktsync/internal/auth"
	"traktsync/pkg/logging"
)

// Exit codes for CLI commands.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error (command failed, invalid arguments).
	ExitCodeError = 1
	// ExitCodeAuthRequired indicates credentials are missing from the configuration.
	ExitCodeAuthRequired = 2
	// ExitCodeAuthFailed indicates the OAuth flow failed or timed out.
	ExitCodeAuthFailed = 3
)

// Persistent flags shared by all commands.
var (
	configPath string
	logLevel   string
)

// rootCmd represents the base command for the traktsync application.
var rootCmd = &cobra.Command{
	Use:   "traktsync",
	Short: "Query and sync your Trakt.tv library from the command line",
	Long: `traktsync talks to the Trakt.tv API from machines without a browser
redirect endpoint of their own. It obtains and maintains an OAuth2 access
token via the device-code flow (or a relay-mediated browser flow) and keeps
it persisted across runs.`,
	// SilenceUsage prevents Cobra from printing the usage message on errors
	// that are handled by the application.
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.InitForCLI(logging.ParseLevel(logLevel), os.Stderr)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config-path", "", "Directory holding config.yaml (default ~/.config/traktsync)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")
}

// SetVersion sets the version for the root command. Called from main to
// inject the build version.
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application. It is called by
// main.main() and exits the process non-zero on any fatal error.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "traktsync version %s\n" .Version}}`)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(getExitCode(err))
	}
}

// getExitCode determines the appropriate exit code based on the error
// type, giving scripts semantic codes for auth problems.
func getExitCode(err error) int {
	if errors.Is(err, auth.ErrMissingCredentials) {
		return ExitCodeAuthRequired
	}

	var protocolErr *auth.ProtocolError
	var relayErr *auth.RelaySetupError
	if errors.Is(err, auth.ErrAuthTimeout) || errors.As(err, &protocolErr) || errors.As(err, &relayErr) {
		return ExitCodeAuthFailed
	}

	return ExitCodeError
}
