package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/bitbar/testdroid-go/internal/constants"
	"github.com/bitbar/testdroid-go/internal/http"
	"github.com/bitbar/testdroid-go/pkg/testdroid"
)

// ProxiesClient implements testdroid.ProxiesClient. Proxy sessions are
// created lazily on the server, so lookups poll the proxy-plugin search
// endpoint on a fixed budget.
type ProxiesClient struct {
	httpClient   *http.Client
	pollInterval time.Duration
	maxAttempts  int
}

// NewProxiesClient creates a new proxies client.
func NewProxiesClient(httpClient *http.Client) *ProxiesClient {
	return &ProxiesClient{
		httpClient:   httpClient,
		pollInterval: constants.ProxyPollInterval,
		maxAttempts:  constants.ProxyPollMaxAttempts,
	}
}

// Get implements testdroid.ProxiesClient.Get. The first attempt is issued
// immediately, then at fixed intervals until a proxy appears, the retry
// budget runs out, or ctx is cancelled.
func (c *ProxiesClient) Get(ctx context.Context, proxyType string, sessionID int64) (*testdroid.ProxySession, error) {
	if proxyType != testdroid.ProxyTypeADB && proxyType != testdroid.ProxyTypeMarionette {
		return nil, fmt.Errorf("%w: %s", testdroid.ErrInvalidProxyType, proxyType)
	}

	where, err := json.Marshal(map[string]interface{}{
		"type":      proxyType,
		"sessionId": sessionID,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding proxy filter: %w", err)
	}

	query := url.Values{}
	query.Set("where", string(where))

	sessions, err := c.search(ctx, query)
	if err != nil {
		return nil, err
	}

	if len(sessions) > 0 {
		return &sessions[0], nil
	}

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for attempt := 1; attempt < c.maxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("waiting for %s proxy: %w", proxyType, ctx.Err())
		case <-ticker.C:
			sessions, err = c.search(ctx, query)
			if err != nil {
				return nil, err
			}

			if len(sessions) > 0 {
				return &sessions[0], nil
			}
		}
	}

	return nil, &testdroid.ProxyTimeoutError{
		Type:      proxyType,
		SessionID: sessionID,
		Attempts:  c.maxAttempts,
	}
}

// search queries the proxy-plugin search endpoint once. Unlike the rest of
// the API it returns a bare JSON array, not the paged envelope.
func (c *ProxiesClient) search(ctx context.Context, query url.Values) ([]testdroid.ProxySession, error) {
	resp, err := c.httpClient.Get(ctx, constants.APIPrefix+"/proxy-plugin/proxies", query)
	if err != nil {
		return nil, fmt.Errorf("querying proxies: %w", err)
	}

	var sessions []testdroid.ProxySession

	err = json.Unmarshal(resp.Body, &sessions)
	if err != nil {
		return nil, fmt.Errorf("parsing proxy list: %w", err)
	}

	return sessions, nil
}
