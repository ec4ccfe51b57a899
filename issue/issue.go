package issue

import "fmt"

// Issue is an item from an external tracker.
type Issue struct {
	Key     string `json:"key"`
	Summary string `json:"summary"`
}

// String renders the issue the way it is offered in selection prompts.
func (i Issue) String() string {
	return fmt.Sprintf("%s: %s", i.Key, i.Summary)
}

// Selection holds the issue a workflow is operating on, if any.
// The zero value means no issue has been selected yet.
type Selection struct {
	issue    Issue
	selected bool
}

// NoneSelected returns an empty selection.
func NoneSelected() Selection {
	return Selection{}
}

// Selected returns a selection holding i.
func Selected(i Issue) Selection {
	return Selection{issue: i, selected: true}
}

// Get returns the selected issue and whether one is present.
func (s Selection) Get() (Issue, bool) {
	return s.issue, s.selected
}

// IsSelected reports whether an issue is present.
func (s Selection) IsSelected() bool {
	return s.selected
}
