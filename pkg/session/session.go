// Package session holds the signed-in state produced by a successful login.
//
// A State is created by whoever drives the login flow and passed
// explicitly to the view-model and to anything that later needs to know
// who is signed in. There is no process-wide flag.
package session

import "sync"

// State is the signed-in state of one presentation session.
type State struct {
	loggedIn bool
	userID   string
	token    string
	mu       sync.RWMutex
}

// New returns a signed-out state.
func New() *State {
	return &State{}
}

// MarkLoggedIn records a successful sign-in.
func (s *State) MarkLoggedIn(userID, token string) {
	s.mu.Lock()
	s.loggedIn = true
	s.userID = userID
	s.token = token
	s.mu.Unlock()
}

// Reset signs the session out.
func (s *State) Reset() {
	s.mu.Lock()
	s.loggedIn = false
	s.userID = ""
	s.token = ""
	s.mu.Unlock()
}

// LoggedIn reports whether a sign-in has succeeded since the last Reset.
func (s *State) LoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loggedIn
}

// UserID returns the signed-in user's id, if the backend supplied one.
func (s *State) UserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID
}

// Token returns the session token, if the backend supplied one.
func (s *State) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}
