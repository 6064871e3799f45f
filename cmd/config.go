package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yahsan2/jira-csv/pkg/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Print the configuration as resolved from defaults, the nearest
.jira-csv.yml, and environment variables. The API token is masked.`,
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	fmt.Println("Current Configuration:")
	fmt.Println(strings.Repeat("=", 30))
	fmt.Printf("Jira Base URL: %s\n", cfg.Jira.BaseURL)
	fmt.Printf("Jira Email: %s\n", cfg.Jira.Email)
	fmt.Printf("Jira API Token: %s\n", maskToken(cfg.Jira.Token))
	fmt.Printf("Default CSV Path: %s\n", cfg.Upload.CSVPath)
	fmt.Printf("Retry Attempts: %d\n", cfg.Upload.RetryAttempts)
	fmt.Printf("Retry Delay: %d seconds\n", cfg.Upload.RetryDelaySeconds)
	return nil
}

func maskToken(token string) string {
	if token == "" {
		return "Not set"
	}
	return strings.Repeat("*", len(token))
}
