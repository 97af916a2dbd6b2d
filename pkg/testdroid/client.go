package testdroid

import (
	"context"
	"time"
)

// DevicesClient provides access to the device inventory.
type DevicesClient interface {
	// List returns devices from the inventory. A limit of 0 requests the
	// full unbounded list.
	List(ctx context.Context, limit int) (*DeviceList, error)
	// FindByName returns devices whose display name exactly equals name.
	// The API has no server-side name filter, so the full list is fetched
	// and filtered client-side.
	FindByName(ctx context.Context, name string) ([]Device, error)
	// ListWithLabel returns devices carrying the given label, filtered
	// server-side.
	ListWithLabel(ctx context.Context, labelID int64) (*DeviceList, error)
}

// LabelGroupsClient provides label and label-group lookups.
type LabelGroupsClient interface {
	// GetGroup returns the first label group whose display name exactly
	// equals name. When several groups share a display name the server's
	// ordering decides which one wins.
	GetGroup(ctx context.Context, name string) (*LabelGroup, error)
	// GetLabel returns the first label in group whose display name exactly
	// equals name.
	GetLabel(ctx context.Context, name string, group *LabelGroup) (*Label, error)
}

// ProjectsClient provides access to the caller's projects and test runs.
type ProjectsClient interface {
	List(ctx context.Context, limit int) (*ProjectList, error)
	// Get returns the project whose name exactly equals name, or
	// ErrProjectNotFound.
	Get(ctx context.Context, name string) (*Project, error)
	// CreateTestRun starts a new test run in the given project.
	CreateTestRun(ctx context.Context, projectID int64) (*TestRun, error)
	ListTestRuns(ctx context.Context, projectID int64, limit int) (*TestRunList, error)
}

// DeviceSessionsClient manages device session lifecycle.
type DeviceSessionsClient interface {
	// Start leases an exclusive claim on the given device model.
	Start(ctx context.Context, deviceModelID int64) (*DeviceSession, error)
	// Stop releases a previously started session.
	Stop(ctx context.Context, sessionID int64) error
}

// ProxiesClient resolves proxy endpoints for claimed devices.
type ProxiesClient interface {
	// Get polls the proxy search endpoint until a proxy of the given type
	// is available for the session, or the retry budget is exhausted
	// (ProxyTimeoutError). The poll honors ctx cancellation.
	Get(ctx context.Context, proxyType string, sessionID int64) (*ProxySession, error)
}

// Client is the full Bitbar cloud API surface.
type Client interface {
	Devices() DevicesClient
	LabelGroups() LabelGroupsClient
	Projects() ProjectsClient
	DeviceSessions() DeviceSessionsClient
	Proxies() ProxiesClient

	// GetToken returns the current bearer token, acquiring or refreshing
	// it if needed.
	GetToken(ctx context.Context) (string, error)
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a testdroid.Client.
//
// # Authentication precedence
//
//  1. AccessToken: if set, it is used directly as a static Bearer token.
//  2. Username/Password: uses the OAuth2 password grant with the fixed
//     cloud client ID ("testdroid-cloud-api"); refreshed with the
//     refresh-token grant before expiry.
//  3. RefreshToken: used on its own to obtain an access token when no
//     password is available.
//
// Per-request timeouts should generally be controlled via the context passed
// to client methods. Transport retries are off by default (set RetryMax to
// enable bounded retries on 429/5xx); the only built-in retry loop is the
// proxy poll, which has its own fixed budget.
type Config struct {
	// Endpoint: base URL for the cloud (e.g. "https://cloud.bitbar.com").
	// tdclient.New normalizes this value by trimming a trailing slash and
	// adding "https://" if no scheme is present.
	Endpoint string

	// Authentication options (provide one)
	Username     string
	Password     string
	AccessToken  string
	RefreshToken string

	// Optional configurations
	HTTPTimeout  time.Duration
	RetryMax     int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
	Debug        bool
	Logger       Logger
	UserAgent    string
}
