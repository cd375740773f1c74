package state

import (
	"fmt"
	"sync"
	"time"
)

// Snapshot is the latest player state received from the external player.
type Snapshot struct {
	Patch               Patch
	Version             uint64 // bumped on every successful update
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int
}

// IsOffline returns true when the player has been unreachable for multiple polls.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store accumulates player patches written by the poller goroutine and read
// by the UI loop.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update merges p into the stored state. When err is non-nil the previous
// data is kept but the error is recorded for visibility.
func (s *Store) Update(p Patch, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.LastUpdated = time.Now()
	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.ConsecutiveFailures++
		return
	}

	merged := s.snapshot.Patch.Clone()
	if merged == nil {
		merged = make(Patch, len(p))
	}
	for k, v := range p {
		merged[k] = v
	}
	s.snapshot.Patch = merged
	s.snapshot.Version++
	s.snapshot.LastError = nil
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Patch = s.snapshot.Patch.Clone()
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}
