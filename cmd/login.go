package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"traktsync/internal/auth"
)

// loginCmd authenticates to Trakt and persists the resulting token.
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate to Trakt.tv",
	Long: `Authenticate to Trakt.tv using OAuth.

With a device-code endpoint configured (the default), this prints a short
code to enter at the verification URL and waits for approval. With a relay
host configured instead, it prints an authorization URL to open and waits
for the relay to hand back the code.

If a persisted token is still valid, no new flow is started.`,
	RunE: runLogin,
}

func init() {
	rootCmd.AddCommand(loginCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := newTokenStore(cfg)
	if err != nil {
		return err
	}

	spin := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	spin.Suffix = " waiting for approval..."

	prompt := func(message string) {
		fmt.Fprintln(os.Stdout, message)
		spin.Start()
	}

	manager, err := newManager(cfg, store, prompt)
	if err != nil {
		return err
	}

	session, err := manager.Authenticate(cmd.Context())
	spin.Stop()
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Logged in. Token valid until %s.\n",
		session.Token().ExpiresAt.Format(time.RFC1123))
	return nil
}

// logoutCmd removes the persisted token.
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the persisted Trakt.tv token",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig()
		if err != nil {
			return err
		}

		store, err := newTokenStore(cfg)
		if err != nil {
			return err
		}

		if err := store.Clear(); err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, "Logged out.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

// statusCmd reports whether a usable token is persisted.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show authentication status",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig()
		if err != nil {
			return err
		}

		store, err := newTokenStore(cfg)
		if err != nil {
			return err
		}

		serialized, err := store.Load()
		if err != nil {
			return err
		}
		if serialized == "" {
			fmt.Fprintln(os.Stdout, "Not logged in.")
			return nil
		}

		token, err := auth.ParseToken(serialized)
		if err != nil {
			fmt.Fprintln(os.Stdout, "Persisted token is unreadable; run 'traktsync login'.")
			return nil
		}

		if token.Valid(time.Now()) {
			fmt.Fprintf(os.Stdout, "Logged in. Token valid until %s.\n",
				token.ExpiresAt.Format(time.RFC1123))
		} else {
			fmt.Fprintf(os.Stdout, "Token expired at %s; run 'traktsync login'.\n",
				token.ExpiresAt.Format(time.RFC1123))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
