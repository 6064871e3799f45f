package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yahsan2/jira-csv/pkg/logging"
)

var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "jira-csv",
	Short: "Create Jira issues and subtasks from CSV data",
	Long: `A command-line tool that reads issues and their subtasks from a CSV file
and creates them in Jira through the REST API.

Rows sharing an ID column form one issue group: the row carrying summary,
description and issue type becomes the main issue, and every row with subtask
fields becomes a subtask linked under it. Transient API failures are retried
with exponential backoff; each group's outcome is reported individually.`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logging.ParseLevel(logLevel)
		if err != nil {
			return err
		}
		logging.SetLevel(level)
		return nil
	},
}

// Global flags
var (
	logLevel     string
	outputFormat string
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l", "info", "Logging level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table", "Output format (table, json, csv, quiet)")
}

func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
