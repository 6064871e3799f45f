package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yahsan2/jira-csv/pkg/config"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default configuration file",
	Long: `Write a default ` + config.ConfigFileName + ` in the current directory.

Credentials are intentionally not stored in the file; set JIRA_BASE_URL,
JIRA_EMAIL and JIRA_API_TOKEN in the environment or a .env file.`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing configuration file")
}

func runInit(cmd *cobra.Command, args []string) error {
	if config.Exists() && !initForce {
		return fmt.Errorf("configuration file %s already exists (use --force to overwrite)", config.ConfigFileName)
	}

	cfg := config.DefaultConfig()
	if err := cfg.Save(config.ConfigFileName); err != nil {
		return err
	}

	fmt.Printf("Created %s\n", config.ConfigFileName)
	return nil
}
