package upload

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yahsan2/jira-csv/pkg/jira"
)

// MockSubmitter is a mock for the resilient submitter
type MockSubmitter struct {
	mock.Mock
}

func (m *MockSubmitter) Submit(fields jira.IssueFields) (*jira.CreatedIssue, error) {
	args := m.Called(fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*jira.CreatedIssue), args.Error(1)
}

// fakeClient is a stub for the probe and URL building
type fakeClient struct {
	err error
}

func (c *fakeClient) ServerInfo() (*jira.ServerInfo, error) {
	if c.err != nil {
		return nil, c.err
	}
	return &jira.ServerInfo{ServerTitle: "Test Jira"}, nil
}

func (c *fakeClient) BrowseURL(key string) string {
	return "https://jira.test/browse/" + key
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "issues.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const header = "ID,Project Key,Summary,Description,Issue Type,Subtask Summary,Subtask Description\n"

func created(id, key string) *jira.CreatedIssue {
	return &jira.CreatedIssue{ID: id, Key: key}
}

func TestRunCreatesIssuesAndSubtasks(t *testing.T) {
	csv := header +
		"1,PROJ,Main 1,First issue,Task,Sub 1.1,First sub\n" +
		"1,PROJ,,,,Sub 1.2,Second sub\n" +
		"2,PROJ,Main 2,Second issue,Task,,\n"

	submitter := new(MockSubmitter)
	submitter.On("Submit", jira.IssueFields{
		ProjectKey: "PROJ", Summary: "Main 1", Description: "First issue", IssueType: "Task",
	}).Return(created("100", "PROJ-1"), nil).Once()
	submitter.On("Submit", jira.IssueFields{
		ProjectKey: "PROJ", Summary: "Sub 1.1", Description: "First sub",
		IssueType: jira.SubtaskIssueType, ParentID: "100",
	}).Return(created("101", "PROJ-2"), nil).Once()
	submitter.On("Submit", jira.IssueFields{
		ProjectKey: "PROJ", Summary: "Sub 1.2", Description: "Second sub",
		IssueType: jira.SubtaskIssueType, ParentID: "100",
	}).Return(created("102", "PROJ-3"), nil).Once()
	submitter.On("Submit", jira.IssueFields{
		ProjectKey: "PROJ", Summary: "Main 2", Description: "Second issue", IssueType: "Task",
	}).Return(created("103", "PROJ-4"), nil).Once()

	report, err := New(&fakeClient{}, submitter).Run(writeCSV(t, csv))
	require.NoError(t, err)
	submitter.AssertExpectations(t)

	assert.NotEmpty(t, report.RunID)
	assert.True(t, report.Success())
	assert.Equal(t, 2, report.Succeeded)
	assert.Equal(t, 0, report.Failed)

	require.Len(t, report.Groups, 2)

	groupOne := report.Groups[0]
	assert.Equal(t, "1", groupOne.GroupID)
	require.NotNil(t, groupOne.Issue)
	assert.Equal(t, "PROJ-1", groupOne.Issue.Key)
	assert.Equal(t, "https://jira.test/browse/PROJ-1", groupOne.Issue.URL)
	require.Len(t, groupOne.Subtasks, 2)
	assert.Equal(t, "Sub 1.1", groupOne.Subtasks[0].Summary)
	assert.Equal(t, "Sub 1.2", groupOne.Subtasks[1].Summary)

	groupTwo := report.Groups[1]
	require.NotNil(t, groupTwo.Issue)
	assert.Empty(t, groupTwo.Subtasks)
}

func TestRunIssueFailureSkipsSubtasks(t *testing.T) {
	csv := header +
		"1,PROJ,Main 1,First issue,Task,Sub 1.1,First sub\n" +
		"1,PROJ,,,,Sub 1.2,Second sub\n"

	submitter := new(MockSubmitter)
	submitter.On("Submit", mock.MatchedBy(func(f jira.IssueFields) bool {
		return f.Summary == "Main 1"
	})).Return(nil, &jira.SubmissionError{
		Attempts: 1,
		Cause:    jira.NewStatusError(400, "bad payload"),
	}).Once()

	report, err := New(&fakeClient{}, submitter).Run(writeCSV(t, csv))
	require.NoError(t, err)
	submitter.AssertExpectations(t)
	submitter.AssertNumberOfCalls(t, "Submit", 1)

	require.Len(t, report.Groups, 1)
	group := report.Groups[0]
	assert.Nil(t, group.Issue)
	assert.Empty(t, group.Subtasks)
	require.Len(t, group.Errors, 1)
	assert.Contains(t, group.Errors[0], "failed to create issue")
	assert.Equal(t, 1, report.Failed)
	assert.False(t, report.Success())
}

func TestRunSubtaskFailureIsIsolated(t *testing.T) {
	csv := header +
		"1,PROJ,Main 1,First issue,Task,Sub 1.1,First sub\n" +
		"1,PROJ,,,,Sub 1.2,Second sub\n" +
		"1,PROJ,,,,Sub 1.3,Third sub\n"

	submitter := new(MockSubmitter)
	submitter.On("Submit", mock.MatchedBy(func(f jira.IssueFields) bool {
		return f.Summary == "Main 1"
	})).Return(created("100", "PROJ-1"), nil).Once()
	submitter.On("Submit", mock.MatchedBy(func(f jira.IssueFields) bool {
		return f.Summary == "Sub 1.1"
	})).Return(created("101", "PROJ-2"), nil).Once()
	submitter.On("Submit", mock.MatchedBy(func(f jira.IssueFields) bool {
		return f.Summary == "Sub 1.2"
	})).Return(nil, &jira.SubmissionError{
		Attempts: 3,
		Cause:    jira.NewStatusError(503, "unavailable"),
	}).Once()
	submitter.On("Submit", mock.MatchedBy(func(f jira.IssueFields) bool {
		return f.Summary == "Sub 1.3"
	})).Return(created("103", "PROJ-4"), nil).Once()

	report, err := New(&fakeClient{}, submitter).Run(writeCSV(t, csv))
	require.NoError(t, err)
	submitter.AssertExpectations(t)

	group := report.Groups[0]
	require.NotNil(t, group.Issue)

	// the failed subtask does not undo earlier or later siblings
	require.Len(t, group.Subtasks, 2)
	assert.Equal(t, "Sub 1.1", group.Subtasks[0].Summary)
	assert.Equal(t, "Sub 1.3", group.Subtasks[1].Summary)
	require.Len(t, group.Errors, 1)
	assert.Contains(t, group.Errors[0], `failed to create subtask "Sub 1.2"`)
	assert.Equal(t, 1, report.Failed)
}

func TestRunSkipsMalformedGroupsAndContinues(t *testing.T) {
	csv := header +
		"1,PROJ,,,,Orphan sub,No main issue here\n" +
		"2,PROJ,Main 2,Fine,Task,,\n" +
		"3,PROJ,Main 3,Dup A,Task,,\n" +
		"3,PROJ,Main 3 again,Dup B,Task,,\n"

	submitter := new(MockSubmitter)
	submitter.On("Submit", mock.MatchedBy(func(f jira.IssueFields) bool {
		return f.Summary == "Main 2"
	})).Return(created("200", "PROJ-5"), nil).Once()

	report, err := New(&fakeClient{}, submitter).Run(writeCSV(t, csv))
	require.NoError(t, err)
	submitter.AssertExpectations(t)

	// only the well-formed group is ever submitted; the orphan subtask
	// never reaches the submitter either
	submitter.AssertNumberOfCalls(t, "Submit", 1)

	require.Len(t, report.InvalidGroups, 2)
	require.Len(t, report.Groups, 3)

	assert.Contains(t, report.Groups[0].Errors[0], "no issue row found")
	assert.Nil(t, report.Groups[0].Issue)
	assert.NotNil(t, report.Groups[1].Issue)
	assert.Contains(t, report.Groups[2].Errors[0], "multiple issue rows found")

	assert.Equal(t, 1, report.Succeeded)
	assert.Equal(t, 2, report.Failed)
}

func TestRunGroupFailureDoesNotBlockOtherGroups(t *testing.T) {
	csv := header +
		"1,PROJ,Main 1,First,Task,,\n" +
		"2,PROJ,Main 2,Second,Task,,\n"

	submitter := new(MockSubmitter)
	submitter.On("Submit", mock.MatchedBy(func(f jira.IssueFields) bool {
		return f.Summary == "Main 1"
	})).Return(nil, &jira.SubmissionError{
		Attempts: 1,
		Cause:    jira.NewStatusError(401, "token expired"),
	}).Once()
	submitter.On("Submit", mock.MatchedBy(func(f jira.IssueFields) bool {
		return f.Summary == "Main 2"
	})).Return(created("300", "PROJ-6"), nil).Once()

	report, err := New(&fakeClient{}, submitter).Run(writeCSV(t, csv))
	require.NoError(t, err)
	submitter.AssertExpectations(t)

	// mid-run auth failure fails its own group only
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, 1, report.Succeeded)
	assert.NotNil(t, report.Groups[1].Issue)
}

func TestRunProbeFailureAbortsBeforeSubmission(t *testing.T) {
	csv := header + "1,PROJ,Main 1,First,Task,,\n"

	submitter := new(MockSubmitter)
	client := &fakeClient{err: jira.NewStatusError(401, "credentials rejected")}

	report, err := New(client, submitter).Run(writeCSV(t, csv))
	require.Error(t, err)
	assert.Nil(t, report)
	assert.Contains(t, err.Error(), "failed to connect to Jira")
	submitter.AssertNumberOfCalls(t, "Submit", 0)
}

func TestRunStructuralErrorAbortsBeforeSubmission(t *testing.T) {
	csv := "ID,Project Key\n1,PROJ\n"

	submitter := new(MockSubmitter)
	report, err := New(&fakeClient{}, submitter).Run(writeCSV(t, csv))
	require.Error(t, err)
	assert.Nil(t, report)
	assert.Contains(t, err.Error(), "missing required columns")
	submitter.AssertNumberOfCalls(t, "Submit", 0)
}

func TestRunRecordsDroppedRows(t *testing.T) {
	csv := header +
		",PROJ,No ID,desc,Task,,\n" +
		"1,PROJ,Main 1,First,Task,,\n"

	submitter := new(MockSubmitter)
	submitter.On("Submit", mock.Anything).Return(created("100", "PROJ-1"), nil).Once()

	report, err := New(&fakeClient{}, submitter).Run(writeCSV(t, csv))
	require.NoError(t, err)

	require.Len(t, report.DroppedRows, 1)
	assert.Equal(t, 2, report.DroppedRows[0].Line)
	assert.True(t, report.Success())
}

func TestRunEmptyCSVSucceedsWithNoGroups(t *testing.T) {
	submitter := new(MockSubmitter)
	report, err := New(&fakeClient{}, submitter).Run(writeCSV(t, header))
	require.NoError(t, err)
	assert.Empty(t, report.Groups)
	assert.True(t, report.Success())
	submitter.AssertNumberOfCalls(t, "Submit", 0)
}

func TestReportSuccess(t *testing.T) {
	report := &Report{Succeeded: 2}
	assert.True(t, report.Success())

	report.Failed = 1
	assert.False(t, report.Success())
}
