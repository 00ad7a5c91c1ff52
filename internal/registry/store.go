package registry

import (
	"fmt"
	"sync"
	"time"
)

// State represents the latest data available to the UI.
type State struct {
	Snapshot            Snapshot
	LastChecked         time.Time
	LastGrowth          time.Time
	RowsAdded           int // rows gained by the most recent growth refresh
	LastError           error
	ConsecutiveFailures int
}

// IsOffline returns true when the gateway has been unreachable for
// multiple polls in a row.
func (s State) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the table snapshot. The poller
// writes, the UI reads; the snapshot only ever grows (a refresh that
// returns fewer rows is treated as transient and ignored).
type Store struct {
	mu    sync.RWMutex
	state State
}

// ReplaceIfLarger installs candidate as the current snapshot when it has
// strictly more rows than the one held. Equal or smaller candidates are
// dropped so a transient empty response never blanks the view. Either way
// the fetch counts as a success: the error state is cleared.
func (s *Store) ReplaceIfLarger(candidate Snapshot) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	s.state.LastChecked = now
	s.state.LastError = nil
	s.state.ConsecutiveFailures = 0

	grew := len(candidate.Rows) > len(s.state.Snapshot.Rows)
	if !grew {
		return false
	}

	s.state.RowsAdded = len(candidate.Rows) - len(s.state.Snapshot.Rows)
	s.state.LastGrowth = now
	s.state.Snapshot = candidate.Clone()
	return true
}

// RecordError marks a failed refresh. The previous snapshot is kept and
// the error is retained for visibility until the next successful fetch.
func (s *Store) RecordError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.LastChecked = time.Now()
	s.state.LastError = err
	s.state.ConsecutiveFailures++
}

// State returns a copy of the current state, independent of the stored one.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := s.state
	st.Snapshot = s.state.Snapshot.Clone()
	if s.state.LastError != nil {
		st.LastError = fmt.Errorf("%w", s.state.LastError)
	}
	return st
}
