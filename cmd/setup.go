package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
)

// setupCmd interactively writes the configuration file.
var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactively configure API credentials",
	Long: `Ask for the Trakt.tv application credentials and write them to the
configuration file. Register an application at https://trakt.tv/oauth/applications
to obtain a client id and secret.`,
	RunE: runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	cfg, path, err := loadConfig()
	if err != nil {
		return err
	}

	rl, err := readline.New("> ")
	if err != nil {
		return fmt.Errorf("failed to open terminal: %w", err)
	}
	defer func() { _ = rl.Close() }()

	clientID, err := ask(rl, "Client id", cfg.Auth.ClientID)
	if err != nil {
		return err
	}
	clientSecret, err := ask(rl, "Client secret", cfg.Auth.ClientSecret)
	if err != nil {
		return err
	}
	email, err := ask(rl, "Account email (only needed for the relay flow)", cfg.Auth.Email)
	if err != nil {
		return err
	}

	cfg.Auth.ClientID = clientID
	cfg.Auth.ClientSecret = clientSecret
	cfg.Auth.Email = email

	if err := saveConfig(path, cfg); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Configuration written to %s.\n", path)
	return nil
}

// ask prompts for one value, offering the current one as the default.
func ask(rl *readline.Instance, label, current string) (string, error) {
	if current != "" {
		rl.SetPrompt(fmt.Sprintf("%s [%s]: ", label, current))
	} else {
		rl.SetPrompt(label + ": ")
	}

	line, err := rl.Readline()
	if err != nil {
		return "", fmt.Errorf("input aborted: %w", err)
	}

	line = strings.TrimSpace(line)
	if line == "" {
		return current, nil
	}
	return line, nil
}
