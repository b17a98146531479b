package session

import (
	"github.com/spec-kit/pharmacy-pos/internal/domain"
)

// Store persists the bearer token and cached principal across dashboard runs.
// The two entries are always written together and cleared together; staleness
// is never checked here, the server rejects an expired token on next use.
type Store interface {
	Save(token string, principal *domain.Principal) error
	Load() (string, *domain.Principal, error)
	Clear() error
}

// Disabled is the store used when no durable location is available. Every
// operation is a no-op and Load always reports an empty session.
type Disabled struct{}

func (Disabled) Save(string, *domain.Principal) error { return nil }

func (Disabled) Load() (string, *domain.Principal, error) { return "", nil, nil }

func (Disabled) Clear() error { return nil }
