package upload

import "github.com/yahsan2/jira-csv/pkg/ingest"

// IssueResult records one created issue or subtask.
type IssueResult struct {
	Key     string `json:"key"`
	ID      string `json:"id"`
	URL     string `json:"url"`
	Summary string `json:"summary"`
}

// GroupResult is the outcome of processing one issue group. It is built up
// while the group is processed and never modified afterwards.
type GroupResult struct {
	GroupID  string        `json:"group_id"`
	Issue    *IssueResult  `json:"issue,omitempty"`
	Subtasks []IssueResult `json:"subtasks,omitempty"`
	Errors   []string      `json:"errors,omitempty"`
}

// Failed reports whether the group recorded any error.
func (g *GroupResult) Failed() bool {
	return len(g.Errors) > 0
}

// Report is the aggregated outcome of one upload run.
type Report struct {
	RunID         string              `json:"run_id"`
	Groups        []GroupResult       `json:"groups"`
	DroppedRows   []ingest.RowError   `json:"dropped_rows,omitempty"`
	InvalidGroups []ingest.ShapeError `json:"invalid_groups,omitempty"`
	Succeeded     int                 `json:"succeeded"`
	Failed        int                 `json:"failed"`
}

// Success reports whether every group completed without errors.
func (r *Report) Success() bool {
	return r.Failed == 0
}
