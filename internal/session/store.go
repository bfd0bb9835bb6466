package session

import (
	"context"
	"sync"
	"time"
)

// lockEntry is a one-slot channel used as a FIFO mutex for one user, plus
// the number of goroutines holding or waiting on it.
type lockEntry struct {
	ch   chan struct{}
	refs int
}

// Store maps user IDs to their active QuoteSession. Access for a single user
// is serialized through WithLock; different users never share a lock.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*QuoteSession
	locks    map[string]*lockEntry

	idleTTL time.Duration
	now     func() time.Time
}

// Option configures the Store.
type Option func(*Store)

// WithIdleTTL enables expiry of sessions idle for longer than ttl. Zero
// disables expiry.
func WithIdleTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.idleTTL = ttl
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates an empty session store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		sessions: make(map[string]*QuoteSession),
		locks:    make(map[string]*lockEntry),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Now returns the store's current time.
func (s *Store) Now() time.Time {
	return s.now()
}

// Get returns a copy of the user's session. Mutating the copy has no effect
// until it is passed to Put.
func (s *Store) Get(userID string) (*QuoteSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[userID]
	if !ok {
		return nil, false
	}
	return sess.Clone(), true
}

// Put stores a copy of sess for userID and marks it active.
func (s *Store) Put(userID string, sess *QuoteSession) {
	c := sess.Clone()
	c.UserID = userID
	c.LastActive = s.now()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[userID] = c
}

// Delete removes the user's session, if any.
func (s *Store) Delete(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}

// Len returns the number of active sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Stats summarizes the active sessions.
type Stats struct {
	Active        int            `json:"active"`
	ByState       map[string]int `json:"by_state"`
	OldestStarted time.Time      `json:"oldest_started,omitempty"`
}

// Stats returns a snapshot of the active sessions.
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Stats{Active: len(s.sessions), ByState: make(map[string]int)}
	for _, sess := range s.sessions {
		st.ByState[sess.State.String()]++
		if st.OldestStarted.IsZero() || sess.CreatedAt.Before(st.OldestStarted) {
			st.OldestStarted = sess.CreatedAt
		}
	}
	return st
}

// WithLock runs fn while holding the user's lock. Callers for the same user
// are served in arrival order. It returns ctx.Err() if ctx is done before the
// lock is acquired.
func (s *Store) WithLock(ctx context.Context, userID string, fn func(ctx context.Context) error) error {
	entry := s.acquire(userID)
	defer s.release(userID)

	select {
	case entry.ch <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-entry.ch }()

	return fn(ctx)
}

func (s *Store) acquire(userID string) *lockEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.locks[userID]
	if !ok {
		entry = &lockEntry{ch: make(chan struct{}, 1)}
		s.locks[userID] = entry
	}
	entry.refs++
	return entry
}

func (s *Store) release(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.locks[userID]
	if !ok {
		return
	}
	entry.refs--
	if entry.refs <= 0 {
		delete(s.locks, userID)
	}
}

// Sweep deletes sessions idle for longer than the configured TTL and returns
// how many were removed. Sessions with a message in flight are skipped.
func (s *Store) Sweep() int {
	if s.idleTTL <= 0 {
		return 0
	}
	cutoff := s.now().Add(-s.idleTTL)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for userID, sess := range s.sessions {
		if _, busy := s.locks[userID]; busy {
			continue
		}
		if sess.LastActive.Before(cutoff) {
			delete(s.sessions, userID)
			removed++
		}
	}
	return removed
}
