// Package memory holds the bot's process-wide mutable state: the system
// singleton and one record per sender pubkey. Records are created lazily,
// mutated by handlers and scheduler jobs, and never deleted; the snapshot
// store persists them wholesale.
package memory

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/ikuradon/823chan/internal/domain"
)

// Store owns the identity-keyed records. All access goes through WithSystem
// or WithUser, which serialize the dispatch loop and the scheduler jobs on a
// single lock; the pointers handed to callbacks must not escape them.
type Store struct {
	mu     sync.Mutex
	system *domain.SystemData
	users  map[string]*domain.UserData
}

func NewStore() *Store {
	return &Store{
		system: domain.NewSystemData(),
		users:  make(map[string]*domain.UserData),
	}
}

// WithSystem runs fn with the system record under the store lock.
func (s *Store) WithSystem(fn func(sys *domain.SystemData)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.system)
}

// WithUser runs fn with the system record and the sender's record under the
// store lock, creating the user record on first touch.
func (s *Store) WithUser(pubkey string, fn func(sys *domain.SystemData, usr *domain.UserData)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[pubkey]
	if !ok {
		u = domain.NewUserData()
		s.users[pubkey] = u
	}
	fn(s.system, u)
}

// Snapshot serializes every record as a flat (key, JSON) collection.
func (s *Store) Snapshot() (map[string][]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := make(map[string][]byte, len(s.users)+1)
	raw, err := json.Marshal(s.system)
	if err != nil {
		return nil, fmt.Errorf("marshal system record: %w", err)
	}
	snap[domain.SystemKey] = raw

	for pubkey, u := range s.users {
		raw, err := json.Marshal(u)
		if err != nil {
			return nil, fmt.Errorf("marshal user %s: %w", pubkey, err)
		}
		snap[pubkey] = raw
	}
	return snap, nil
}

// Restore replaces the store contents from a snapshot. Unknown fields in old
// snapshots are ignored; missing records start default-valued.
func (s *Store) Restore(snap map[string][]byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, raw := range snap {
		if key == domain.SystemKey {
			sys := domain.NewSystemData()
			if err := json.Unmarshal(raw, sys); err != nil {
				return fmt.Errorf("unmarshal system record: %w", err)
			}
			s.system = sys
			continue
		}
		u := domain.NewUserData()
		if err := json.Unmarshal(raw, u); err != nil {
			return fmt.Errorf("unmarshal user %s: %w", key, err)
		}
		s.users[key] = u
	}
	return nil
}
