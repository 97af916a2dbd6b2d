package tdclient

import (
	"fmt"
	"strings"

	"github.com/bitbar/testdroid-go/internal/client"
	"github.com/bitbar/testdroid-go/pkg/testdroid"
)

// New creates a new cloud API client from the given configuration.
func New(config *testdroid.Config) (testdroid.Client, error) {
	if config == nil {
		return nil, testdroid.ErrConfigRequired
	}

	if config.Endpoint == "" {
		return nil, testdroid.ErrEndpointRequired
	}

	// Normalize the endpoint
	endpoint := strings.TrimSuffix(config.Endpoint, "/")
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}

	config.Endpoint = endpoint

	if config.AccessToken == "" && config.RefreshToken == "" &&
		(config.Username == "" || config.Password == "") {
		return nil, testdroid.ErrCredentialsRequired
	}

	apiClient, err := client.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return apiClient, nil
}

// NewWithPassword creates a new client using username/password
// authentication with the cloud's fixed OAuth2 client ID.
func NewWithPassword(endpoint, username, password string) (testdroid.Client, error) {
	return New(&testdroid.Config{
		Endpoint: endpoint,
		Username: username,
		Password: password,
	})
}

// NewWithToken creates a new client with a pre-supplied access token.
func NewWithToken(endpoint, token string) (testdroid.Client, error) {
	return New(&testdroid.Config{
		Endpoint:    endpoint,
		AccessToken: token,
	})
}
