// Package session holds the in-memory authentication state shared by every view.
//
// A [Store] starts unauthenticated and lives as long as the process. Nothing is
// written to disk, so restarting the client logs the user out.
package session

import "sync"

// Session is a point-in-time copy of the authentication state.
type Session struct {
	IsAuthenticated bool
	Username        string
}

// Store is the shared, mutex-guarded session record.
type Store struct {
	mu      sync.RWMutex
	current Session
	subs    []func(Session)
}

// NewStore returns an unauthenticated [Store].
func NewStore() *Store {
	return &Store{}
}

// Login marks the session authenticated.
func (s *Store) Login() {
	s.mu.Lock()
	s.current.IsAuthenticated = true
	snap := s.current
	subs := s.subs
	s.mu.Unlock()
	notify(subs, snap)
}

// Logout clears the authentication flag and the username.
//
// Callers redirect to the login route afterwards.
func (s *Store) Logout() {
	s.mu.Lock()
	s.current = Session{}
	subs := s.subs
	s.mu.Unlock()
	notify(subs, Session{})
}

// SetUser sets the identity sent with uploads, likes and comments.
func (s *Store) SetUser(username string) {
	s.mu.Lock()
	s.current.Username = username
	snap := s.current
	subs := s.subs
	s.mu.Unlock()
	notify(subs, snap)
}

// IsAuthenticated reports whether Login has been called since the last Logout.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.IsAuthenticated
}

// Username returns the current identity, or "".
func (s *Store) Username() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Username
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Subscribe registers fn to receive the new state after every mutation.
// fn runs on the mutating goroutine, outside the lock.
func (s *Store) Subscribe(fn func(Session)) {
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	s.mu.Unlock()
}

func notify(subs []func(Session), snap Session) {
	for _, fn := range subs {
		fn(snap)
	}
}
