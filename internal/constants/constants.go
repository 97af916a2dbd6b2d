package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// ShortHTTPTimeout is used for quick operations such as token grants.
	ShortHTTPTimeout = 10 * time.Second
)

// Retry limits for the optional transport-level retries.
const (
	// DefaultRetryWaitMin is the minimum wait time between retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait time between retries.
	DefaultRetryWaitMax = 10 * time.Second
)

// Cloud API surface.
const (
	// APIPrefix is the fixed path prefix all REST endpoints live under.
	APIPrefix = "/api/v2"

	// OAuthTokenPath is the token grant endpoint under the cloud base URL.
	OAuthTokenPath = "/oauth/token"

	// OAuthClientID is the fixed OAuth2 client ID the cloud accepts.
	OAuthClientID = "testdroid-cloud-api"
)

// Token and polling intervals.
const (
	// TokenRefreshWindow is how close to expiry a token may get before it
	// is refreshed instead of reused.
	TokenRefreshWindow = 60 * time.Second

	// ProxyPollInterval is the fixed spacing between proxy search attempts.
	ProxyPollInterval = 5 * time.Second

	// ProxyPollMaxAttempts bounds the proxy search loop.
	ProxyPollMaxAttempts = 30
)
