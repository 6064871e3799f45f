package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yahsan2/jira-csv/pkg/ingest"
)

var validateFile string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate CSV file structure and data",
	Long: `Read a CSV file and run the full validation pipeline without touching
Jira: structural checks on the header, per-row validation, grouping, and the
one-issue-row-per-group check.`,
	Example: `  jira-csv validate --csv-file issues.csv`,
	RunE:    runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().StringVarP(&validateFile, "csv-file", "f", "", "Path to CSV file to validate")
	validateCmd.MarkFlagRequired("csv-file")
}

func runValidate(cmd *cobra.Command, args []string) error {
	rows, rowErrs, err := ingest.NewReader(validateFile).Read()
	if err != nil {
		return fmt.Errorf("CSV validation failed: %w", err)
	}

	fmt.Printf("CSV file is valid. Found %d valid rows.\n", len(rows))
	if len(rowErrs) > 0 {
		fmt.Printf("Dropped %d invalid rows:\n", len(rowErrs))
		for _, rowErr := range rowErrs {
			fmt.Printf("  %s\n", rowErr)
		}
	}

	groups := ingest.GroupRows(rows)
	shapeErrs := ingest.VerifyGroups(groups)
	if len(shapeErrs) > 0 {
		for _, shapeErr := range shapeErrs {
			fmt.Printf("  %s\n", shapeErr)
		}
		return fmt.Errorf("%d issue group(s) failed validation", len(shapeErrs))
	}

	fmt.Printf("Issue groups are valid. Found %d issue groups.\n", groups.Len())
	return nil
}
