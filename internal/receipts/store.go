package receipts

import (
	"sync"
	"time"
)

// DefaultTTL bounds how long an unread receipt reference survives.
const DefaultTTL = 15 * time.Minute

type entry struct {
	ref     string
	expires time.Time
}

// Store holds one pending receipt reference per key (the donor's user
// id). A reference can be read exactly once; Consume removes it.
type Store struct {
	mu  sync.Mutex
	ttl time.Duration
	m   map[string]entry
	now func() time.Time
}

func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{ttl: ttl, m: make(map[string]entry), now: time.Now}
}

// Put replaces any pending reference for key. A donor confirming a new
// donation before reading the previous receipt only sees the latest.
func (s *Store) Put(key, ref string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = entry{ref: ref, expires: s.now().Add(s.ttl)}
}

// Consume returns the pending reference for key and removes it. Expired
// entries are treated as absent.
func (s *Store) Consume(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.m[key]
	if !ok {
		return "", false
	}
	delete(s.m, key)
	if s.now().After(e.expires) {
		return "", false
	}
	return e.ref, true
}
