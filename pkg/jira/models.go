package jira

import "fmt"

// SubtaskIssueType is the Jira issue type used for child issues.
const SubtaskIssueType = "Sub-task"

// IssueFields is the payload for creating one issue. ParentID is set only for
// subtasks and links the new issue under an existing parent.
type IssueFields struct {
	ProjectKey  string
	Summary     string
	Description string
	IssueType   string
	ParentID    string
}

// Validate checks if the fields describe a creatable issue
func (f IssueFields) Validate() error {
	if f.ProjectKey == "" {
		return fmt.Errorf("project key is required")
	}
	if f.Summary == "" {
		return fmt.Errorf("summary is required")
	}
	if f.IssueType == "" {
		return fmt.Errorf("issue type is required")
	}
	return nil
}

// ToPayload converts the fields to the Jira REST create-issue request body.
func (f IssueFields) ToPayload() map[string]interface{} {
	fields := map[string]interface{}{
		"project":     map[string]string{"key": f.ProjectKey},
		"summary":     f.Summary,
		"description": f.Description,
		"issuetype":   map[string]string{"name": f.IssueType},
	}

	if f.ParentID != "" {
		fields["parent"] = map[string]string{"id": f.ParentID}
	}

	return map[string]interface{}{"fields": fields}
}

// CreatedIssue is the remote service's record of a successful creation. ID is
// the internal identifier used for parent linkage; Key is the human-facing
// identifier (e.g. "PROJ-42"). Both are assigned by Jira.
type CreatedIssue struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Self string `json:"self"`
}

// ServerInfo is the identity returned by the connectivity probe.
type ServerInfo struct {
	BaseURL     string `json:"baseUrl"`
	Version     string `json:"version"`
	ServerTitle string `json:"serverTitle"`
}
