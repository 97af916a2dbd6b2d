package client

import (
	"context"
	"fmt"
	"time"

	"github.com/bitbar/testdroid-go/internal/auth"
	"github.com/bitbar/testdroid-go/internal/constants"
	"github.com/bitbar/testdroid-go/internal/http"
	"github.com/bitbar/testdroid-go/pkg/testdroid"
)

// Client implements the testdroid.Client interface.
type Client struct {
	httpClient   *http.Client
	tokenManager auth.TokenManager
	baseURL      string
	logger       testdroid.Logger

	// Resource clients
	devices        testdroid.DevicesClient
	labelGroups    testdroid.LabelGroupsClient
	projects       testdroid.ProjectsClient
	deviceSessions testdroid.DeviceSessionsClient
	proxies        testdroid.ProxiesClient
}

// New creates a new cloud API client from the given config. The endpoint
// must already be normalized (see pkg/tdclient).
func New(config *testdroid.Config) (*Client, error) {
	if config.Endpoint == "" {
		return nil, testdroid.ErrEndpointRequired
	}

	tokenManager := createTokenManager(config)
	if tokenManager == nil {
		return nil, testdroid.ErrCredentialsRequired
	}

	httpClient := http.NewClient(config.Endpoint, tokenManager, createHTTPClientOptions(config)...)

	client := &Client{
		httpClient:   httpClient,
		tokenManager: tokenManager,
		baseURL:      config.Endpoint,
		logger:       config.Logger,
	}

	client.initializeResourceClients()

	return client, nil
}

// NewWithTokenManager creates a new cloud API client with a custom token
// manager.
func NewWithTokenManager(config *testdroid.Config, tokenManager auth.TokenManager) (*Client, error) {
	if config.Endpoint == "" {
		return nil, testdroid.ErrEndpointRequired
	}

	httpClient := http.NewClient(config.Endpoint, tokenManager, createHTTPClientOptions(config)...)

	client := &Client{
		httpClient:   httpClient,
		tokenManager: tokenManager,
		baseURL:      config.Endpoint,
		logger:       config.Logger,
	}

	client.initializeResourceClients()

	return client, nil
}

// createTokenManager creates the appropriate token manager for the available
// credentials.
func createTokenManager(config *testdroid.Config) auth.TokenManager {
	if config.AccessToken != "" {
		return &staticTokenManager{token: config.AccessToken}
	}

	if config.Username != "" && config.Password != "" {
		return auth.NewOAuth2TokenManager(&auth.OAuth2Config{
			TokenURL:     config.Endpoint + constants.OAuthTokenPath,
			ClientID:     constants.OAuthClientID,
			Username:     config.Username,
			Password:     config.Password,
			RefreshToken: config.RefreshToken,
		})
	}

	if config.RefreshToken != "" {
		return auth.NewOAuth2TokenManager(&auth.OAuth2Config{
			TokenURL:     config.Endpoint + constants.OAuthTokenPath,
			ClientID:     constants.OAuthClientID,
			RefreshToken: config.RefreshToken,
		})
	}

	return nil
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *testdroid.Config) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(&loggerAdapter{logger: config.Logger}))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.HTTPTimeout))
	}

	if config.RetryMax > 0 {
		retryWaitMin := constants.DefaultRetryWaitMin
		retryWaitMax := constants.DefaultRetryWaitMax

		if config.RetryWaitMin > 0 {
			retryWaitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			retryWaitMax = config.RetryWaitMax
		}

		httpOpts = append(httpOpts, http.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	}

	return httpOpts
}

// initializeResourceClients initializes all resource-specific clients.
func (c *Client) initializeResourceClients() {
	c.devices = NewDevicesClient(c.httpClient)
	c.labelGroups = NewLabelGroupsClient(c.httpClient)
	c.projects = NewProjectsClient(c.httpClient)
	c.deviceSessions = NewDeviceSessionsClient(c.httpClient)
	c.proxies = NewProxiesClient(c.httpClient)
}

// Devices implements testdroid.Client.Devices.
func (c *Client) Devices() testdroid.DevicesClient {
	return c.devices
}

// LabelGroups implements testdroid.Client.LabelGroups.
func (c *Client) LabelGroups() testdroid.LabelGroupsClient {
	return c.labelGroups
}

// Projects implements testdroid.Client.Projects.
func (c *Client) Projects() testdroid.ProjectsClient {
	return c.projects
}

// DeviceSessions implements testdroid.Client.DeviceSessions.
func (c *Client) DeviceSessions() testdroid.DeviceSessionsClient {
	return c.deviceSessions
}

// Proxies implements testdroid.Client.Proxies.
func (c *Client) Proxies() testdroid.ProxiesClient {
	return c.proxies
}

// GetToken returns the current access token from the token manager.
func (c *Client) GetToken(ctx context.Context) (string, error) {
	token, err := c.tokenManager.GetToken(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get token: %w", err)
	}

	return token, nil
}

// GetTokenManager returns the token manager for this client.
func (c *Client) GetTokenManager() auth.TokenManager {
	return c.tokenManager
}

// staticTokenManager provides a pre-supplied token, useful in CI where a
// long-lived API token is issued out of band.
type staticTokenManager struct {
	token string
}

func (m *staticTokenManager) GetToken(ctx context.Context) (string, error) {
	return m.token, nil
}

func (m *staticTokenManager) RefreshToken(ctx context.Context) error {
	return testdroid.ErrStaticTokenRefresh
}

func (m *staticTokenManager) SetToken(token string, expiresAt time.Time) {
	m.token = token
}

// loggerAdapter adapts testdroid.Logger to http.Logger.
type loggerAdapter struct {
	logger testdroid.Logger
}

func (l *loggerAdapter) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug(msg, fields)
}

func (l *loggerAdapter) Info(msg string, fields map[string]interface{}) {
	l.logger.Info(msg, fields)
}

func (l *loggerAdapter) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn(msg, fields)
}

func (l *loggerAdapter) Error(msg string, fields map[string]interface{}) {
	l.logger.Error(msg, fields)
}
