package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRecord(t *testing.T) {
	tests := []struct {
		name    string
		raw     RawRecord
		want    Row
		wantErr bool
		errMsg  string
	}{
		{
			name: "full row is trimmed and normalized",
			raw: RawRecord{
				ColumnID:                 " 1 ",
				ColumnProjectKey:         " proj1 ",
				ColumnSummary:            " Main Issue ",
				ColumnDescription:        " Something ",
				ColumnIssueType:          " Task ",
				ColumnSubtaskSummary:     " Sub ",
				ColumnSubtaskDescription: " Sub desc ",
			},
			want: Row{
				GroupID:            "1",
				ProjectKey:         "PROJ1",
				Summary:            "Main Issue",
				Description:        "Something",
				IssueType:          "Task",
				SubtaskSummary:     "Sub",
				SubtaskDescription: "Sub desc",
			},
		},
		{
			name: "optional whitespace-only fields become absent",
			raw: RawRecord{
				ColumnID:                 "7",
				ColumnProjectKey:         "ABC",
				ColumnSummary:            "   ",
				ColumnDescription:        "",
				ColumnIssueType:          "\t",
				ColumnSubtaskSummary:     "Sub",
				ColumnSubtaskDescription: "Details",
			},
			want: Row{
				GroupID:            "7",
				ProjectKey:         "ABC",
				SubtaskSummary:     "Sub",
				SubtaskDescription: "Details",
			},
		},
		{
			name: "empty ID is rejected",
			raw: RawRecord{
				ColumnID:         "  ",
				ColumnProjectKey: "PROJ",
			},
			wantErr: true,
			errMsg:  `column "ID" must not be empty`,
		},
		{
			name: "empty project key is rejected",
			raw: RawRecord{
				ColumnID:         "1",
				ColumnProjectKey: "",
			},
			wantErr: true,
			errMsg:  `column "Project Key" must not be empty`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateRecord(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				var malformed *MalformedRowError
				assert.ErrorAs(t, err, &malformed)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRowPredicates(t *testing.T) {
	tests := []struct {
		name       string
		row        Row
		isIssue    bool
		hasSubtask bool
	}{
		{
			name: "row with both issue and subtask data",
			row: Row{
				GroupID: "1", ProjectKey: "P",
				Summary: "a", Description: "b", IssueType: "Task",
				SubtaskSummary: "c", SubtaskDescription: "d",
			},
			isIssue:    true,
			hasSubtask: true,
		},
		{
			name: "subtask-only row",
			row: Row{
				GroupID: "1", ProjectKey: "P",
				SubtaskSummary: "c", SubtaskDescription: "d",
			},
			isIssue:    false,
			hasSubtask: true,
		},
		{
			name: "issue type missing disqualifies the issue row",
			row: Row{
				GroupID: "1", ProjectKey: "P",
				Summary: "a", Description: "b",
			},
			isIssue:    false,
			hasSubtask: false,
		},
		{
			name: "subtask needs both fields",
			row: Row{
				GroupID: "1", ProjectKey: "P",
				SubtaskSummary: "c",
			},
			isIssue:    false,
			hasSubtask: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.isIssue, tt.row.IsIssueRow())
			assert.Equal(t, tt.hasSubtask, tt.row.HasSubtask())
		})
	}
}
