package auth

import (
	"sync"
	"time"

	"github.com/bitbar/testdroid-go/internal/constants"
)

// Token holds an OAuth2 access/refresh token pair as returned by the cloud's
// token endpoint. ExpiresAt is computed from the server-reported lifetime.
type Token struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	TokenType    string    `json:"token_type,omitempty"`
	ExpiresIn    int64     `json:"expires_in,omitempty"`
	ExpiresAt    time.Time `json:"-"`
}

// Valid reports whether the token can be reused as-is. A token inside the
// refresh window counts as invalid so callers renew it before it lapses.
func (t *Token) Valid() bool {
	if t == nil || t.AccessToken == "" {
		return false
	}

	if t.ExpiresAt.IsZero() {
		return true
	}

	return time.Now().Add(constants.TokenRefreshWindow).Before(t.ExpiresAt)
}

// Expired reports whether wall-clock time has passed the token's expiry
// outright, as opposed to merely being inside the refresh window.
func (t *Token) Expired() bool {
	if t == nil || t.AccessToken == "" {
		return true
	}

	if t.ExpiresAt.IsZero() {
		return false
	}

	return time.Now().After(t.ExpiresAt)
}

// TokenStore holds the current token behind a mutex. The refreshed token
// replaces the prior token atomically.
type TokenStore struct {
	mu    sync.RWMutex
	token *Token
}

// NewTokenStore creates an empty token store.
func NewTokenStore() *TokenStore {
	return &TokenStore{}
}

// Get returns the stored token, or nil.
func (s *TokenStore) Get() *Token {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.token
}

// Set replaces the stored token.
func (s *TokenStore) Set(token *Token) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
}

// Clear removes the stored token.
func (s *TokenStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = nil
}
