package ingest

import (
	"fmt"
	"strings"
)

// Column names the CSV source must provide. Extra columns are ignored.
const (
	ColumnID                 = "ID"
	ColumnProjectKey         = "Project Key"
	ColumnSummary            = "Summary"
	ColumnDescription        = "Description"
	ColumnIssueType          = "Issue Type"
	ColumnSubtaskSummary     = "Subtask Summary"
	ColumnSubtaskDescription = "Subtask Description"
)

// RequiredColumns lists the columns a source header must contain.
var RequiredColumns = []string{
	ColumnID,
	ColumnProjectKey,
	ColumnSummary,
	ColumnDescription,
	ColumnIssueType,
	ColumnSubtaskSummary,
	ColumnSubtaskDescription,
}

// RawRecord is one record exactly as read from the source, keyed by header
// column name. It carries no semantic guarantees.
type RawRecord map[string]string

// Row is a validated, normalized record. GroupID and ProjectKey are always
// present; every other field is optional, with "" meaning absent. A row may
// carry both issue fields and subtask fields at the same time.
type Row struct {
	GroupID    string
	ProjectKey string

	Summary     string
	Description string
	IssueType   string

	SubtaskSummary     string
	SubtaskDescription string
}

// IsIssueRow reports whether the row carries a complete main issue
// (summary, description and issue type all present).
func (r Row) IsIssueRow() bool {
	return r.Summary != "" && r.Description != "" && r.IssueType != ""
}

// HasSubtask reports whether the row carries subtask data.
func (r Row) HasSubtask() bool {
	return r.SubtaskSummary != "" && r.SubtaskDescription != ""
}

// MalformedRowError indicates a record that cannot become a valid Row.
type MalformedRowError struct {
	Column string
}

func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("column %q must not be empty", e.Column)
}

// ValidateRecord normalizes one raw record into a Row. It fails only when the
// group ID or the project key is empty after trimming; all other fields
// normalize whitespace-only values to absent. The project key is upper-cased
// permanently.
func ValidateRecord(raw RawRecord) (Row, error) {
	groupID := strings.TrimSpace(raw[ColumnID])
	if groupID == "" {
		return Row{}, &MalformedRowError{Column: ColumnID}
	}

	projectKey := strings.TrimSpace(raw[ColumnProjectKey])
	if projectKey == "" {
		return Row{}, &MalformedRowError{Column: ColumnProjectKey}
	}

	return Row{
		GroupID:            groupID,
		ProjectKey:         strings.ToUpper(projectKey),
		Summary:            strings.TrimSpace(raw[ColumnSummary]),
		Description:        strings.TrimSpace(raw[ColumnDescription]),
		IssueType:          strings.TrimSpace(raw[ColumnIssueType]),
		SubtaskSummary:     strings.TrimSpace(raw[ColumnSubtaskSummary]),
		SubtaskDescription: strings.TrimSpace(raw[ColumnSubtaskDescription]),
	}, nil
}
