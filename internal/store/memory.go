// Package store is the session registry: a keyed, TTL-expiring home for
// session snapshots. Sessions go in and come out by value; the only shared
// mutable state is the map itself.
package store

import (
	"crypto/rand"
	"errors"
	"strings"
	"sync"
	"time"

	"whodunit/internal/game"
)

// ErrNotFound is returned when no live session exists for a room code.
var ErrNotFound = errors.New("room not found")

// codeAlphabet avoids visually ambiguous characters (0/O, 1/I).
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

type entry struct {
	// mu serialises the read-modify-write cycle for this one room, so
	// aggregate checks that scan every participant cannot race.
	mu        sync.Mutex
	session   game.Session
	expiresAt time.Time
}

// MemoryStore holds all sessions in memory with best-effort TTL expiry.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*entry
	ttl      time.Duration
	codeLen  int
	done     chan struct{}
	now      func() time.Time
}

// NewMemoryStore creates a store whose entries expire ttl after their last
// write. A background janitor sweeps expired sessions until Close is called.
func NewMemoryStore(ttl time.Duration, codeLen int) *MemoryStore {
	s := &MemoryStore{
		sessions: make(map[string]*entry),
		ttl:      ttl,
		codeLen:  codeLen,
		done:     make(chan struct{}),
		now:      time.Now,
	}
	go s.sweep()
	return s
}

// Close stops the expiry janitor.
func (s *MemoryStore) Close() {
	close(s.done)
}

// Create allocates a fresh session under a new unique room code.
func (s *MemoryStore) Create() (game.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var code string
	for i := 0; i < 10; i++ {
		code = generateRoomCode(s.codeLen)
		if _, exists := s.sessions[code]; !exists {
			break
		}
	}
	if _, exists := s.sessions[code]; exists {
		return game.Session{}, errors.New("could not allocate a unique room code")
	}

	now := s.now()
	sess := game.NewSession(code, now)
	s.sessions[code] = &entry{session: sess, expiresAt: now.Add(s.ttl)}
	return sess.Clone(), nil
}

// Get returns a copy of the session for the given room code. Codes are
// matched case-insensitively.
func (s *MemoryStore) Get(code string) (game.Session, error) {
	e, err := s.entry(code)
	if err != nil {
		return game.Session{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.Clone(), nil
}

// Update runs fn against the current snapshot under the room's lock and, if
// fn succeeds, persists the returned session and refreshes the TTL. When fn
// fails the stored snapshot is untouched and fn's error comes back verbatim.
func (s *MemoryStore) Update(code string, fn func(game.Session) (game.Session, error)) (game.Session, error) {
	code = normalize(code)
	e, err := s.entry(code)
	if err != nil {
		return game.Session{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	next, err := fn(e.session.Clone())
	if err != nil {
		return game.Session{}, err
	}
	e.session = next
	e.expiresAt = s.now().Add(s.ttl)

	// The janitor may have swept the room between entry() and here. A
	// successful write counts as activity, so put the entry back rather
	// than let the commit land in an orphan.
	s.mu.Lock()
	s.sessions[code] = e
	s.mu.Unlock()
	return next.Clone(), nil
}

// Delete removes a session. It reports whether anything was deleted.
func (s *MemoryStore) Delete(code string) bool {
	code = normalize(code)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.sessions[code]; !exists {
		return false
	}
	delete(s.sessions, code)
	return true
}

// Len reports the number of live sessions.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *MemoryStore) entry(code string) (*entry, error) {
	code = normalize(code)
	s.mu.RLock()
	e, exists := s.sessions[code]
	s.mu.RUnlock()
	if !exists || s.now().After(e.expiresAt) {
		return nil, ErrNotFound
	}
	return e, nil
}

func (s *MemoryStore) sweep() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			now := s.now()
			s.mu.Lock()
			for code, e := range s.sessions {
				if now.After(e.expiresAt) {
					delete(s.sessions, code)
				}
			}
			s.mu.Unlock()
		}
	}
}

func normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// generateRoomCode draws a fixed-length code from the reduced alphabet.
func generateRoomCode(length int) string {
	b := make([]byte, length)
	rand.Read(b)
	for i := range b {
		b[i] = codeAlphabet[b[i]%byte(len(codeAlphabet))]
	}
	return string(b)
}
