package session

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spec-kit/pharmacy-pos/internal/domain"
)

const sessionFileName = "session.json"

// sessionFile is the serialized form: the token and the cached principal,
// stored as one document so they cannot drift apart.
type sessionFile struct {
	Token string            `json:"token"`
	User  *domain.Principal `json:"user"`
}

// FileStore keeps the session in a JSON file under the user config directory.
type FileStore struct {
	path string
}

// NewFileStore builds a store rooted at dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{path: filepath.Join(dir, sessionFileName)}
}

// DefaultStore returns a file store under the OS config dir, or the Disabled
// store when no config dir can be resolved for this process.
func DefaultStore(appName string) Store {
	base, err := os.UserConfigDir()
	if err != nil {
		return Disabled{}
	}
	return NewFileStore(filepath.Join(base, appName))
}

// Save writes token and principal atomically via a temp file rename.
func (s *FileStore) Save(token string, principal *domain.Principal) error {
	data, err := json.Marshal(sessionFile{Token: token, User: principal})
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// Load reads the stored pair. A missing or unreadable file is an empty
// session, not an error; the next Save rewrites it.
func (s *FileStore) Load() (string, *domain.Principal, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil, nil
		}
		return "", nil, err
	}

	var file sessionFile
	if err := json.Unmarshal(data, &file); err != nil {
		return "", nil, nil
	}
	return file.Token, file.User, nil
}

// Clear removes the session file. Clearing an already-empty store succeeds.
func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
