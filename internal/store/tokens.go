package store

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// TokenPair is the only client-side state persisted across restarts.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func (t TokenPair) IsZero() bool {
	return t.AccessToken == "" && t.RefreshToken == ""
}

// TokenStore keeps the session token pair in a user-readable file, the
// durable-local-storage equivalent of the browser client.
type TokenStore struct {
	path string
	mu   sync.Mutex
}

func NewTokenStore(path string) *TokenStore {
	return &TokenStore{path: path}
}

// Load reads the stored pair. A missing file is not an error; it returns an
// empty pair.
func (s *TokenStore) Load() (TokenPair, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return TokenPair{}, nil
	}
	if err != nil {
		return TokenPair{}, err
	}

	var pair TokenPair
	if err := json.Unmarshal(b, &pair); err != nil {
		return TokenPair{}, err
	}
	return pair, nil
}

func (s *TokenStore) Save(pair TokenPair) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := json.Marshal(pair)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return err
		}
	}
	return os.WriteFile(s.path, b, 0o600)
}

// Clear removes the stored pair. Clearing an already-empty store is a no-op.
func (s *TokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
