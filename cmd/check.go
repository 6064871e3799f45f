package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yahsan2/jira-csv/pkg/config"
	"github.com/yahsan2/jira-csv/pkg/jira"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Test Jira connection and configuration",
	Long: `Validate the configuration and probe the Jira server. This is the same
fail-fast check the upload command performs before submitting anything.`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	fmt.Println("Configuration is valid")

	client := jira.NewClient(cfg)
	info, err := client.ServerInfo()
	if err != nil {
		return fmt.Errorf("failed to connect to Jira: %w", err)
	}

	fmt.Printf("Successfully connected to Jira server: %s (version %s)\n", info.ServerTitle, info.Version)
	return nil
}
