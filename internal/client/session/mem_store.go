package session

import (
	"sync"

	"github.com/spec-kit/pharmacy-pos/internal/domain"
)

// MemStore is an in-memory Store used by tests and ephemeral sessions.
type MemStore struct {
	mu        sync.Mutex
	token     string
	principal *domain.Principal
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{}
}

func (m *MemStore) Save(token string, principal *domain.Principal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	m.principal = principal
	return nil
}

func (m *MemStore) Load() (string, *domain.Principal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, m.principal, nil
}

func (m *MemStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	m.principal = nil
	return nil
}
