package nav

import (
	"sync"
	"time"
)

// Scope owns the resources a screen instance acquires while it is active,
// typically timers. Release runs every release func, newest first, and leaves
// the scope empty and reusable for the next activation.
type Scope struct {
	mu       sync.Mutex
	releases []func()
}

// NewScope creates an empty scope.
func NewScope() *Scope {
	return &Scope{}
}

// Acquire registers a release func.
func (s *Scope) Acquire(release func()) {
	if release == nil {
		return
	}
	s.mu.Lock()
	s.releases = append(s.releases, release)
	s.mu.Unlock()
}

// AfterFunc starts a one-shot timer owned by the scope.
func (s *Scope) AfterFunc(d time.Duration, fn func()) {
	t := time.AfterFunc(d, fn)
	s.Acquire(func() { t.Stop() })
}

// Every calls fn on a fixed cadence until the scope is released.
func (s *Scope) Every(d time.Duration, fn func()) {
	ticker := time.NewTicker(d)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				fn()
			}
		}
	}()
	s.Acquire(func() {
		ticker.Stop()
		close(done)
	})
}

// Len reports how many resources are held.
func (s *Scope) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.releases)
}

// Release frees everything held by the scope.
func (s *Scope) Release() {
	s.mu.Lock()
	releases := s.releases
	s.releases = nil
	s.mu.Unlock()

	for i := len(releases) - 1; i >= 0; i-- {
		releases[i]()
	}
}
