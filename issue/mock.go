package issue

import (
	"context"
	"sync"
)

// MockTracker is an in-memory Tracker for tests.
type MockTracker struct {
	mu sync.Mutex

	TrackerName   string  // Defaults to "Mock"
	Issues        []Issue // Returned by every Search
	SearchErr     error
	TransitionErr error

	Queries     []Query
	Transitions []MockTransition
}

// MockTransition records one Transition call.
type MockTransition struct {
	Key    string
	Status string
}

// Name implements Tracker.
func (m *MockTracker) Name() string {
	if m.TrackerName == "" {
		return "Mock"
	}
	return m.TrackerName
}

// Search implements Tracker.
func (m *MockTracker) Search(ctx context.Context, q Query) ([]Issue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Queries = append(m.Queries, q)
	if m.SearchErr != nil {
		return nil, m.SearchErr
	}
	return append([]Issue(nil), m.Issues...), nil
}

// Transition implements Tracker.
func (m *MockTracker) Transition(ctx context.Context, key, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Transitions = append(m.Transitions, MockTransition{Key: key, Status: status})
	return m.TransitionErr
}
