package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yahsan2/jira-csv/pkg/config"
	"github.com/yahsan2/jira-csv/pkg/jira"
	"github.com/yahsan2/jira-csv/pkg/output"
	"github.com/yahsan2/jira-csv/pkg/upload"
)

var uploadFile string

var uploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Upload issues and subtasks from CSV to Jira",
	Long: `Read a CSV file, validate and group its rows, and create the resulting
issues and subtasks in Jira.

The run aborts before any submission if the server is unreachable, the
credentials are rejected, the file cannot be read, or required columns are
missing. After submissions begin, failures are recorded per group: one group's
failure never blocks another, and a failed subtask never undoes its siblings.`,
	Example: `  # Upload the CSV configured as the default
  jira-csv upload

  # Upload a specific file
  jira-csv upload --csv-file issues.csv

  # Machine-readable results
  jira-csv upload -f issues.csv -o json`,
	RunE: runUpload,
}

func init() {
	rootCmd.AddCommand(uploadCmd)
	uploadCmd.Flags().StringVarP(&uploadFile, "csv-file", "f", "", "Path to CSV file (default from configuration)")
}

func runUpload(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	format, err := output.ParseFormat(outputFormat)
	if err != nil {
		return err
	}

	csvPath := uploadFile
	if csvPath == "" {
		csvPath = cfg.Upload.CSVPath
	}

	client := jira.NewClient(cfg)
	submitter := jira.NewSubmitter(client, cfg.Upload.RetryAttempts, cfg.RetryDelay())
	uploader := upload.New(client, submitter)

	report, err := uploader.Run(csvPath)
	if err != nil {
		return err
	}

	formatter := output.NewFormatter(format)
	if err := formatter.FormatReport(report); err != nil {
		return err
	}

	if !report.Success() {
		return fmt.Errorf("%d issue group(s) finished with errors", report.Failed)
	}
	return nil
}
