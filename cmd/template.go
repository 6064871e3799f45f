package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const templateFileName = "template.csv"

const templateContent = `ID,Project Key,Summary,Description,Issue Type,Subtask Summary,Subtask Description
1,PROJ1,Main Issue 1,This is the first main issue,Task,Subtask 1.1,This is the first subtask for Main Issue 1
1,PROJ1,,,,Subtask 1.2,This is the second subtask for Main Issue 1
2,PROJ1,Main Issue 2,This is the second main issue,Task,Subtask 2.1,This is the first subtask for Main Issue 2
`

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Generate a template CSV file",
	Long: `Write a starter CSV file with the required columns and example rows
showing how multiple rows with the same ID form one issue with several
subtasks.`,
	RunE: runTemplate,
}

func init() {
	rootCmd.AddCommand(templateCmd)
}

func runTemplate(cmd *cobra.Command, args []string) error {
	if err := os.WriteFile(templateFileName, []byte(templateContent), 0644); err != nil {
		return fmt.Errorf("failed to write template: %w", err)
	}

	fmt.Printf("Template CSV file created: %s\n", templateFileName)
	fmt.Println("Edit this file with your data and use the upload command.")
	return nil
}
