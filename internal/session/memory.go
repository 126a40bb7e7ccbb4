package session

import (
	"fmt"
	"sync"
)

// MemoryStore is an ephemeral Store used by tests and one-shot scripting
// where no durable state is wanted.
type MemoryStore struct {
	mu    sync.Mutex
	token string
	ident Identity
	known bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.token != ""
}

func (s *MemoryStore) Identity() (Identity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ident, s.known
}

func (s *MemoryStore) Save(token string) error {
	if token == "" {
		return fmt.Errorf("access token is empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.ident, s.known = identityFromToken(token)
	return nil
}

func (s *MemoryStore) Invalidate() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.ident = Identity{}
	s.known = false
	return nil
}
