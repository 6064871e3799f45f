package ingest

import (
	"fmt"

	"github.com/yahsan2/jira-csv/pkg/logging"
)

// Groups partitions rows by group ID. Iteration order is the order in which
// each ID first appeared in the input; within a group, rows keep input order.
type Groups struct {
	order []string
	byID  map[string][]Row
}

// GroupRows partitions validated rows by their group ID.
func GroupRows(rows []Row) *Groups {
	g := &Groups{byID: make(map[string][]Row)}

	for _, row := range rows {
		if _, seen := g.byID[row.GroupID]; !seen {
			g.order = append(g.order, row.GroupID)
		}
		g.byID[row.GroupID] = append(g.byID[row.GroupID], row)
	}

	logging.Infof("grouped %d rows into %d issue groups", len(rows), len(g.order))
	return g
}

// IDs returns the group IDs in first-appearance order.
func (g *Groups) IDs() []string {
	return g.order
}

// Rows returns the rows of one group in input order.
func (g *Groups) Rows(id string) []Row {
	return g.byID[id]
}

// Len returns the number of groups.
func (g *Groups) Len() int {
	return len(g.order)
}

// ShapeError reports a group that does not have exactly one issue row.
type ShapeError struct {
	GroupID string
	Reason  string
}

func (e ShapeError) String() string {
	return fmt.Sprintf("group %s: %s", e.GroupID, e.Reason)
}

// VerifyGroups checks that every group carries exactly one row with complete
// main issue data. It reports every offending group rather than stopping at
// the first; callers decide whether to skip those groups or abort.
func VerifyGroups(groups *Groups) []ShapeError {
	var errs []ShapeError

	for _, id := range groups.IDs() {
		count := 0
		for _, row := range groups.Rows(id) {
			if row.IsIssueRow() {
				count++
			}
		}

		switch {
		case count == 0:
			errs = append(errs, ShapeError{GroupID: id, Reason: "no issue row found"})
		case count > 1:
			errs = append(errs, ShapeError{GroupID: id, Reason: "multiple issue rows found"})
		}
	}

	for _, e := range errs {
		logging.Errorf("%s", e)
	}
	return errs
}
