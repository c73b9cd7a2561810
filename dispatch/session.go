package dispatch

import "sync"

// sessionState holds the single mutable session token shared by every call
// issued through one Dispatcher. The token starts at the empty placeholder
// (wire.SessionNone) and is
// replaced wholesale whenever a completed call's reply carries one; it is
// never merged or diffed. Reads happen only at dispatch time, writes only at
// completion time.
type sessionState struct {
	mu         sync.Mutex
	token      string
	generation uint64
}

// snapshot returns the token to stamp on an envelope being dispatched now.
func (s *sessionState) snapshot() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// apply installs a refreshed token from a completed call's reply. An empty
// token means the reply carried none and is a no-op.
func (s *sessionState) apply(token string) bool {
	if token == "" {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.generation++
	return true
}

// current returns the token together with how many times it has been
// replaced. The count is bookkeeping for diagnostics and tests.
func (s *sessionState) current() (string, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.generation
}
