// Package session owns the client-side authentication lifecycle: the token
// pair persisted in the local store, silent restoration at startup, and
// silent refresh when the backend rejects the access token. State is held in
// one explicitly-constructed object rather than process globals.
package session

import (
	"context"
	"sync"

	"github.com/tablero-app/tablero-client/internal/dto"
	"github.com/tablero-app/tablero-client/internal/errs"
	"github.com/tablero-app/tablero-client/internal/store"
)

// authAPI is the unauthenticated backend auth surface the session needs.
type authAPI interface {
	Login(ctx context.Context, email, password string) (dto.LoginResponse, error)
	Register(ctx context.Context, email, password string) (dto.RegisterResponse, error)
	RefreshAccessToken(ctx context.Context, refreshToken string) (dto.RefreshResponse, error)
}

type Session struct {
	store *store.TokenStore
	auth  authAPI

	mu   sync.Mutex
	pair store.TokenPair
}

func New(tokens *store.TokenStore, auth authAPI) *Session {
	return &Session{store: tokens, auth: auth}
}

// Restore attempts silent session restoration from the durable store: if a
// refresh token is present, a fresh access token is requested. A rejected
// refresh clears the store and leaves the session unauthenticated; only I/O
// failures are reported.
func (s *Session) Restore(ctx context.Context) (bool, error) {
	pair, err := s.store.Load()
	if err != nil {
		return false, err
	}
	if pair.RefreshToken == "" {
		return false, nil
	}

	resp, err := s.auth.RefreshAccessToken(ctx, pair.RefreshToken)
	if err != nil {
		if _, ok := err.(*errs.RequestError); ok {
			_ = s.store.Clear()
			return false, nil
		}
		return false, err
	}

	pair.AccessToken = resp.AccessToken
	if err := s.store.Save(pair); err != nil {
		return false, err
	}

	s.mu.Lock()
	s.pair = pair
	s.mu.Unlock()
	return true, nil
}

func (s *Session) Login(ctx context.Context, email, password string) error {
	resp, err := s.auth.Login(ctx, email, password)
	if err != nil {
		return err
	}

	pair := store.TokenPair{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
	}
	if err := s.store.Save(pair); err != nil {
		return err
	}

	s.mu.Lock()
	s.pair = pair
	s.mu.Unlock()
	return nil
}

func (s *Session) Register(ctx context.Context, email, password string) (string, error) {
	resp, err := s.auth.Register(ctx, email, password)
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

// Logout clears the in-memory pair and the durable store.
func (s *Session) Logout() error {
	s.mu.Lock()
	s.pair = store.TokenPair{}
	s.mu.Unlock()
	return s.store.Clear()
}

func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.pair.IsZero()
}

// AccessToken implements backendclient.TokenSource.
func (s *Session) AccessToken(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pair.AccessToken == "" {
		return "", errs.NewSessionExpiredError()
	}
	return s.pair.AccessToken, nil
}

// Refresh implements backendclient.TokenSource. A rejected refresh token is
// irrecoverable: the session is cleared and SessionExpired is returned.
func (s *Session) Refresh(ctx context.Context) (string, error) {
	s.mu.Lock()
	refreshToken := s.pair.RefreshToken
	s.mu.Unlock()

	if refreshToken == "" {
		return "", errs.NewSessionExpiredError()
	}

	resp, err := s.auth.RefreshAccessToken(ctx, refreshToken)
	if err != nil {
		if _, ok := err.(*errs.RequestError); ok {
			_ = s.Logout()
			return "", errs.NewSessionExpiredError()
		}
		return "", err
	}

	s.mu.Lock()
	s.pair.AccessToken = resp.AccessToken
	pair := s.pair
	s.mu.Unlock()

	if err := s.store.Save(pair); err != nil {
		return "", err
	}
	return resp.AccessToken, nil
}
