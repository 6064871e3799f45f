package upload

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/yahsan2/jira-csv/pkg/ingest"
	"github.com/yahsan2/jira-csv/pkg/jira"
	"github.com/yahsan2/jira-csv/pkg/logging"
)

// Client is the part of the Jira client the orchestrator uses directly:
// the connectivity probe and URL construction for the report.
type Client interface {
	ServerInfo() (*jira.ServerInfo, error)
	BrowseURL(key string) string
}

// Submitter performs one resilient create. *jira.Submitter satisfies it.
type Submitter interface {
	Submit(fields jira.IssueFields) (*jira.CreatedIssue, error)
}

// Uploader drives the whole pipeline: probe the server, read and validate the
// CSV, group the rows, then submit group by group. Groups are processed
// strictly sequentially and independently; within a group the main issue is
// always fully resolved before any subtask is attempted.
type Uploader struct {
	client    Client
	submitter Submitter
}

// New creates an uploader.
func New(client Client, submitter Submitter) *Uploader {
	return &Uploader{client: client, submitter: submitter}
}

// Run processes one CSV file. The returned error is reserved for failures
// that abort the run before any submission: an unreachable or unauthenticated
// server, an unreadable file, or a header missing required columns. Everything
// that happens after submissions begin is captured in the report instead.
func (u *Uploader) Run(csvPath string) (*Report, error) {
	report := &Report{RunID: uuid.NewString()}
	logging.Infof("starting upload run %s", report.RunID)

	info, err := u.client.ServerInfo()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Jira: %w", err)
	}
	logging.Infof("connected to Jira server: %s", info.ServerTitle)

	rows, rowErrs, err := ingest.NewReader(csvPath).Read()
	if err != nil {
		return nil, err
	}
	report.DroppedRows = rowErrs

	if len(rows) == 0 {
		logging.Warnf("no valid rows found in %s", csvPath)
		return report, nil
	}

	groups := ingest.GroupRows(rows)
	report.InvalidGroups = ingest.VerifyGroups(groups)

	invalid := make(map[string]ingest.ShapeError, len(report.InvalidGroups))
	for _, e := range report.InvalidGroups {
		invalid[e.GroupID] = e
	}

	for _, id := range groups.IDs() {
		var result GroupResult
		if shape, bad := invalid[id]; bad {
			// no submission for malformed groups, subtasks included
			result = GroupResult{
				GroupID: id,
				Errors:  []string{fmt.Sprintf("group skipped: %s", shape.Reason)},
			}
			logging.Warnf("skipping group %s: %s", id, shape.Reason)
		} else {
			logging.Infof("processing group %s with %d rows", id, len(groups.Rows(id)))
			result = u.processGroup(id, groups.Rows(id))
		}

		report.Groups = append(report.Groups, result)
		if result.Failed() {
			report.Failed++
		} else {
			report.Succeeded++
		}
	}

	logging.Infof("upload run %s finished: %d succeeded, %d with errors",
		report.RunID, report.Succeeded, report.Failed)
	return report, nil
}

// processGroup creates the group's main issue and then its subtasks. A failed
// main issue ends the group immediately; a failed subtask is recorded and the
// remaining subtasks still run.
func (u *Uploader) processGroup(id string, rows []ingest.Row) GroupResult {
	result := GroupResult{GroupID: id}

	issueRow, ok := findIssueRow(rows)
	if !ok {
		// VerifyGroups normally catches this first; kept as the group's own
		// guard so processing order never depends on the advisory check.
		result.Errors = append(result.Errors, fmt.Sprintf("no issue row found for group %s", id))
		return result
	}

	created, err := u.submitter.Submit(jira.IssueFields{
		ProjectKey:  issueRow.ProjectKey,
		Summary:     issueRow.Summary,
		Description: issueRow.Description,
		IssueType:   issueRow.IssueType,
	})
	if err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("failed to create issue %q: %v", issueRow.Summary, err))
		return result
	}

	result.Issue = &IssueResult{
		Key:     created.Key,
		ID:      created.ID,
		URL:     u.client.BrowseURL(created.Key),
		Summary: issueRow.Summary,
	}

	for _, row := range rows {
		if !row.HasSubtask() {
			continue
		}

		subtask, err := u.submitter.Submit(jira.IssueFields{
			ProjectKey:  row.ProjectKey,
			Summary:     row.SubtaskSummary,
			Description: row.SubtaskDescription,
			IssueType:   jira.SubtaskIssueType,
			ParentID:    created.ID,
		})
		if err != nil {
			result.Errors = append(result.Errors,
				fmt.Sprintf("failed to create subtask %q: %v", row.SubtaskSummary, err))
			continue
		}

		result.Subtasks = append(result.Subtasks, IssueResult{
			Key:     subtask.Key,
			ID:      subtask.ID,
			URL:     u.client.BrowseURL(subtask.Key),
			Summary: row.SubtaskSummary,
		})
	}

	return result
}

// findIssueRow returns the group's main issue row.
func findIssueRow(rows []ingest.Row) (ingest.Row, bool) {
	for _, row := range rows {
		if row.IsIssueRow() {
			return row, true
		}
	}
	return ingest.Row{}, false
}
