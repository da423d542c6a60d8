package session

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"

	"spicetrade-backend/internal/reminder"
)

// Store holds the per-session dismissal sets. It lives in process memory
// only: restarting the service discards every dismissal, which is exactly
// the contract — dismissal is temporary, acknowledgment is the permanent
// path and lives in the database.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*entry
	idleTTL  time.Duration
	now      func() time.Time
}

type entry struct {
	dismissed *reminder.DismissalSet
	lastSeen  time.Time
}

func NewStore(idleTTL time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*entry),
		idleTTL:  idleTTL,
		now:      time.Now,
	}
}

// Open starts a new client session and returns its id.
func (s *Store) Open() string {
	id := newSessionID()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.purgeExpiredLocked()
	s.sessions[id] = &entry{
		dismissed: reminder.NewDismissalSet(),
		lastSeen:  s.now(),
	}
	return id
}

// Dismissals returns the dismissal set for a session, refreshing its idle
// timer. The second return is false when the session is unknown or has
// expired.
func (s *Store) Dismissals(id string) (*reminder.DismissalSet, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	if s.now().Sub(e.lastSeen) > s.idleTTL {
		delete(s.sessions, id)
		return nil, false
	}
	e.lastSeen = s.now()
	return e.dismissed, true
}

func (s *Store) purgeExpiredLocked() {
	cutoff := s.now().Add(-s.idleTTL)
	for id, e := range s.sessions {
		if e.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
		}
	}
}

func newSessionID() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms
		panic(err)
	}
	return hex.EncodeToString(buf)
}
