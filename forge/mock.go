package forge

import (
	"context"
	"sync"
)

// MockReleaser records releases instead of publishing them.
type MockReleaser struct {
	mu                sync.Mutex
	CreateReleaseFunc func(ctx context.Context, r Release) (string, error)
	Releases          []Release
}

// CreateRelease implements Releaser.
func (m *MockReleaser) CreateRelease(ctx context.Context, r Release) (string, error) {
	m.mu.Lock()
	m.Releases = append(m.Releases, r)
	m.mu.Unlock()

	if m.CreateReleaseFunc != nil {
		return m.CreateReleaseFunc(ctx, r)
	}
	return "https://example.com/releases/" + r.Tag, nil
}
