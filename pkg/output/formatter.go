package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/yahsan2/jira-csv/pkg/upload"
)

// FormatType represents the output format type
type FormatType int

const (
	// FormatTable outputs as a formatted table
	FormatTable FormatType = iota
	// FormatJSON outputs as JSON
	FormatJSON
	// FormatCSV outputs as CSV
	FormatCSV
	// FormatQuiet outputs minimal information
	FormatQuiet
)

// ParseFormat converts a format name to a FormatType.
func ParseFormat(name string) (FormatType, error) {
	switch name {
	case "table", "":
		return FormatTable, nil
	case "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	case "quiet":
		return FormatQuiet, nil
	}
	return FormatTable, fmt.Errorf("unknown output format %q", name)
}

// Formatter handles output formatting
type Formatter struct {
	format FormatType
	writer io.Writer
}

// NewFormatter creates a new formatter
func NewFormatter(format FormatType) *Formatter {
	return &Formatter{
		format: format,
		writer: os.Stdout,
	}
}

// NewFormatterWithWriter creates a new formatter with custom writer
func NewFormatterWithWriter(format FormatType, writer io.Writer) *Formatter {
	return &Formatter{
		format: format,
		writer: writer,
	}
}

// FormatReport formats the result of one upload run.
func (f *Formatter) FormatReport(report *upload.Report) error {
	switch f.format {
	case FormatQuiet:
		return f.formatReportQuiet(report)
	case FormatJSON:
		return f.formatReportJSON(report)
	case FormatCSV:
		return f.formatReportCSV(report)
	default:
		return f.formatReportTable(report)
	}
}

// formatReportQuiet prints only the created issue URLs.
func (f *Formatter) formatReportQuiet(report *upload.Report) error {
	for _, group := range report.Groups {
		if group.Issue != nil {
			if _, err := fmt.Fprintln(f.writer, group.Issue.URL); err != nil {
				return err
			}
		}
		for _, subtask := range group.Subtasks {
			if _, err := fmt.Fprintln(f.writer, subtask.URL); err != nil {
				return err
			}
		}
	}
	return nil
}

// formatReportTable formats the report as a human-readable summary
func (f *Formatter) formatReportTable(report *upload.Report) error {
	w := tabwriter.NewWriter(f.writer, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintf(w, "Upload run %s\n\n", report.RunID)
	fmt.Fprintf(w, "Groups processed:\t%d\n", len(report.Groups))
	fmt.Fprintf(w, "Succeeded:\t%d\n", report.Succeeded)
	fmt.Fprintf(w, "With errors:\t%d\n", report.Failed)

	if len(report.DroppedRows) > 0 {
		fmt.Fprintf(w, "\nDropped rows:\n")
		for _, rowErr := range report.DroppedRows {
			fmt.Fprintf(w, "  %s\n", rowErr)
		}
	}

	for _, group := range report.Groups {
		fmt.Fprintf(w, "\nGroup %s:\n", group.GroupID)

		if group.Issue != nil {
			fmt.Fprintf(w, "  %s\t%s\n", group.Issue.Key, group.Issue.Summary)
			fmt.Fprintf(w, "  \t%s\n", group.Issue.URL)
		}

		for _, subtask := range group.Subtasks {
			fmt.Fprintf(w, "    - %s\t%s\n", subtask.Key, subtask.Summary)
			fmt.Fprintf(w, "    \t%s\n", subtask.URL)
		}

		for _, msg := range group.Errors {
			fmt.Fprintf(w, "  ! %s\n", msg)
		}
	}

	return nil
}

// formatReportJSON formats the report as JSON
func (f *Formatter) formatReportJSON(report *upload.Report) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

// formatReportCSV formats created entities as CSV
func (f *Formatter) formatReportCSV(report *upload.Report) error {
	w := csv.NewWriter(f.writer)
	defer w.Flush()

	if err := w.Write([]string{"Group", "Kind", "Key", "Summary", "URL"}); err != nil {
		return err
	}

	for _, group := range report.Groups {
		if group.Issue != nil {
			record := []string{group.GroupID, "issue", group.Issue.Key, group.Issue.Summary, group.Issue.URL}
			if err := w.Write(record); err != nil {
				return err
			}
		}
		for _, subtask := range group.Subtasks {
			record := []string{group.GroupID, "subtask", subtask.Key, subtask.Summary, subtask.URL}
			if err := w.Write(record); err != nil {
				return err
			}
		}
	}

	return nil
}
