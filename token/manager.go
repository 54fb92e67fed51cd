// Package token owns the client's access/refresh token pair and mirrors it into a session.Store.
package token

import (
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"

	apperrors "github.com/jrsteele09/go-storefront-client/internal/errors"
	"github.com/jrsteele09/go-storefront-client/session"
)

var _ oauth2.TokenSource = (*Manager)(nil)

// Manager holds the current credentials. Readers never observe a half-updated pair.
type Manager struct {
	mu     sync.RWMutex
	store  session.Store
	token  oauth2.Token
	logger zerolog.Logger
}

type ManagerOption func(*Manager)

func WithLogger(logger zerolog.Logger) ManagerOption {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager restores any tokens a previous process left in store.
func NewManager(store session.Store, options ...ManagerOption) (*Manager, error) {
	if store == nil {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidArgument, "[token NewManager] store is required")
	}

	m := &Manager{
		store:  store,
		logger: log.Logger,
	}
	for _, opt := range options {
		opt(m)
	}

	access, _, err := store.Get(session.KeyAccessToken)
	if err != nil {
		return nil, fmt.Errorf("[token NewManager] failed to restore access token: %w", err)
	}
	refresh, _, err := store.Get(session.KeyRefreshToken)
	if err != nil {
		return nil, fmt.Errorf("[token NewManager] failed to restore refresh token: %w", err)
	}
	m.token = oauth2.Token{AccessToken: access, RefreshToken: refresh, TokenType: "Bearer"}
	return m, nil
}

// SetTokens replaces both tokens and marks the session as logged in.
func (m *Manager) SetTokens(access, refresh string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.token.AccessToken = access
	m.token.RefreshToken = refresh

	if err := m.store.Set(session.KeyAccessToken, access); err != nil {
		return fmt.Errorf("failed to persist access token: %w", err)
	}
	if err := m.store.Set(session.KeyRefreshToken, refresh); err != nil {
		return fmt.Errorf("failed to persist refresh token: %w", err)
	}
	if err := m.store.Set(session.KeyIsLoggedIn, "true"); err != nil {
		return fmt.Errorf("failed to persist login flag: %w", err)
	}
	return nil
}

// SetAccessToken replaces the access token after a refresh. The refresh token is kept.
func (m *Manager) SetAccessToken(access string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.token.AccessToken = access
	if err := m.store.Set(session.KeyAccessToken, access); err != nil {
		return fmt.Errorf("failed to persist access token: %w", err)
	}
	return nil
}

// Clear forgets both tokens and removes every persisted credential key.
// In-memory state is cleared even when the store fails.
func (m *Manager) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.token.AccessToken = ""
	m.token.RefreshToken = ""

	var errs []error
	for _, key := range []string{session.KeyAccessToken, session.KeyRefreshToken, session.KeyIsLoggedIn} {
		if err := m.store.Remove(key); err != nil {
			errs = append(errs, fmt.Errorf("failed to remove %s: %w", key, err))
		}
	}
	return errors.Join(errs...)
}

// IsAuthenticated reports whether an access token is held. Expiry is not checked;
// a stale token is discovered by the next 401.
func (m *Manager) IsAuthenticated() bool {
	return m.AccessToken() != ""
}

func (m *Manager) AccessToken() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token.AccessToken
}

func (m *Manager) RefreshToken() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token.RefreshToken
}

// CurrentUser decodes the access token. It returns nil when there is no token or it cannot be decoded.
func (m *Manager) CurrentUser() *Identity {
	access := m.AccessToken()
	if access == "" {
		return nil
	}

	identity, err := DecodeIdentity(access)
	if err != nil {
		m.logger.Debug().Err(err).Msg("failed to decode access token")
		return nil
	}
	return identity
}

// SetAuthHeader sets "Authorization: Bearer <access token>" on req when a token is held.
func (m *Manager) SetAuthHeader(req *http.Request) bool {
	tok, err := m.Token()
	if err != nil {
		return false
	}
	tok.SetAuthHeader(req)
	return true
}

// Token returns a copy of the current credentials.
func (m *Manager) Token() (*oauth2.Token, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.token.AccessToken == "" {
		return nil, apperrors.ErrNoAccessToken
	}
	tok := m.token
	return &tok, nil
}
