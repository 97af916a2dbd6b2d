package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/bitbar/testdroid-go/internal/constants"
	"github.com/bitbar/testdroid-go/pkg/testdroid"
)

// Static errors for err113 compliance.
var (
	ErrNoCredentials  = errors.New("no valid credentials available")
	ErrNoRefreshToken = errors.New("no refresh token available")
)

// TokenManager supplies bearer tokens for API requests.
type TokenManager interface {
	// GetToken returns a valid access token, acquiring or refreshing one
	// if necessary.
	GetToken(ctx context.Context) (string, error)
	// RefreshToken forces a token refresh.
	RefreshToken(ctx context.Context) error
	// SetToken manually sets the access token.
	SetToken(token string, expiresAt time.Time)
}

// OAuth2Config configures the OAuth2 token manager.
type OAuth2Config struct {
	// TokenURL: full token grant endpoint (e.g. "https://cloud.bitbar.com/oauth/token").
	TokenURL string
	// ClientID defaults to the fixed cloud client ID when empty.
	ClientID string
	// Username/Password for the password grant.
	Username string
	Password string
	// RefreshToken: optional initial refresh token used when no password
	// is available.
	RefreshToken string
	// AccessToken: optional initial access token seeded into the store.
	AccessToken string
	// HTTPClient overrides the client used for grant requests.
	HTTPClient *http.Client
}

// OAuth2TokenManager obtains tokens via the password grant and keeps them
// fresh via the refresh-token grant. Grant requests are serialized under a
// mutex so concurrent callers never race a refresh.
type OAuth2TokenManager struct {
	config     *OAuth2Config
	store      *TokenStore
	httpClient *http.Client
	mu         sync.Mutex
}

// NewOAuth2TokenManager creates a new OAuth2 token manager.
func NewOAuth2TokenManager(config *OAuth2Config) *OAuth2TokenManager {
	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: constants.ShortHTTPTimeout}
	}

	manager := &OAuth2TokenManager{
		config:     config,
		store:      NewTokenStore(),
		httpClient: httpClient,
	}

	if config.AccessToken != "" {
		manager.store.Set(&Token{
			AccessToken:  config.AccessToken,
			RefreshToken: config.RefreshToken,
			TokenType:    "bearer",
		})
	}

	return manager
}

// NewPasswordTokenManager creates a token manager for the cloud's fixed
// client ID using the password grant.
func NewPasswordTokenManager(endpoint, username, password string) *OAuth2TokenManager {
	return NewOAuth2TokenManager(&OAuth2Config{
		TokenURL: strings.TrimSuffix(endpoint, "/") + constants.OAuthTokenPath,
		ClientID: constants.OAuthClientID,
		Username: username,
		Password: password,
	})
}

// GetToken returns a valid access token. The cached token is reused while it
// remains outside the refresh window; a token inside the window is renewed
// with the refresh-token grant; a missing or outright expired token triggers
// a fresh password grant.
func (m *OAuth2TokenManager) GetToken(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	token := m.store.Get()
	if token.Valid() {
		return token.AccessToken, nil
	}

	if !token.Expired() && token.RefreshToken != "" {
		refreshed, err := m.refreshGrant(ctx, token.RefreshToken)
		if err != nil {
			return "", err
		}

		m.store.Set(refreshed)

		return refreshed.AccessToken, nil
	}

	fresh, err := m.acquireToken(ctx)
	if err != nil {
		return "", err
	}

	m.store.Set(fresh)

	return fresh.AccessToken, nil
}

// RefreshToken forces a refresh of the stored token.
func (m *OAuth2TokenManager) RefreshToken(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	refreshToken := m.config.RefreshToken
	if token := m.store.Get(); token != nil && token.RefreshToken != "" {
		refreshToken = token.RefreshToken
	}

	var (
		token *Token
		err   error
	)

	if refreshToken != "" {
		token, err = m.refreshGrant(ctx, refreshToken)
	} else {
		token, err = m.acquireToken(ctx)
	}

	if err != nil {
		return err
	}

	m.store.Set(token)

	return nil
}

// SetToken manually sets the access token.
func (m *OAuth2TokenManager) SetToken(token string, expiresAt time.Time) {
	m.store.Set(&Token{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   expiresAt,
	})
}

// acquireToken obtains a brand-new token with whatever credentials the
// config holds.
func (m *OAuth2TokenManager) acquireToken(ctx context.Context) (*Token, error) {
	if m.config.Username != "" && m.config.Password != "" {
		return m.passwordGrant(ctx)
	}

	if m.config.RefreshToken != "" {
		return m.refreshGrant(ctx, m.config.RefreshToken)
	}

	return nil, ErrNoCredentials
}

func (m *OAuth2TokenManager) passwordGrant(ctx context.Context) (*Token, error) {
	form := url.Values{}
	form.Set("grant_type", "password")
	form.Set("username", m.config.Username)
	form.Set("password", m.config.Password)

	return m.requestToken(ctx, form)
}

func (m *OAuth2TokenManager) refreshGrant(ctx context.Context, refreshToken string) (*Token, error) {
	if refreshToken == "" {
		return nil, ErrNoRefreshToken
	}

	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", refreshToken)

	return m.requestToken(ctx, form)
}

// requestToken posts a grant request and parses the token response.
func (m *OAuth2TokenManager) requestToken(ctx context.Context, form url.Values) (*Token, error) {
	clientID := m.config.ClientID
	if clientID == "" {
		clientID = constants.OAuthClientID
	}

	form.Set("client_id", clientID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.config.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("creating token request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting token: %w", err)
	}

	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading token response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, parseAuthError(resp.StatusCode, body)
	}

	var token Token

	err = json.Unmarshal(body, &token)
	if err != nil {
		return nil, fmt.Errorf("parsing token response: %w", err)
	}

	if token.ExpiresIn > 0 {
		token.ExpiresAt = time.Now().Add(time.Duration(token.ExpiresIn) * time.Second)
	}

	return &token, nil
}

// parseAuthError extracts the server's OAuth2 error fields from a failed
// grant response.
func parseAuthError(statusCode int, body []byte) error {
	authErr := &testdroid.AuthError{StatusCode: statusCode}

	_ = json.Unmarshal(body, authErr)

	if authErr.Code == "" && authErr.Description == "" {
		authErr.Description = strings.TrimSpace(string(body))
	}

	return authErr
}
