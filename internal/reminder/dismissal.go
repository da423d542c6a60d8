package reminder

import (
	"sync"

	"github.com/google/uuid"
)

// DismissalSet is the append-only set of reminder ids hidden for the
// lifetime of one client session. There is no removal: a dismissal is
// undone only by the session ending, which discards the whole set. The
// caller owns the set's lifecycle; nothing here is persisted.
type DismissalSet struct {
	mu  sync.RWMutex
	ids map[uuid.UUID]struct{}
}

func NewDismissalSet() *DismissalSet {
	return &DismissalSet{ids: make(map[uuid.UUID]struct{})}
}

// Add records a dismissal. Adding an already-dismissed id is a no-op.
func (s *DismissalSet) Add(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids[id] = struct{}{}
}

func (s *DismissalSet) Contains(id uuid.UUID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.ids[id]
	return ok
}

func (s *DismissalSet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ids)
}
