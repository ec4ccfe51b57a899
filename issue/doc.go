// Package issue defines the issue model shared by every tracker adapter and
// the Tracker interface the workflow steps consume.
//
// Core types:
//   - Issue: a tracker item identified by key, with a summary line
//   - Selection: either no issue selected, or exactly one selected Issue
//   - Tracker: search and status transitions against Jira, GitHub or GitLab
//
// Example usage:
//
//	issues, err := tracker.Search(ctx, issue.Query{Status: "To Do"})
//	if err != nil {
//	    return err
//	}
//	sel := issue.Selected(issues[0])
//	if i, ok := sel.Get(); ok {
//	    fmt.Println(i.Key)
//	}
package issue
